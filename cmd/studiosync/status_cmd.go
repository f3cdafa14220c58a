package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/studiosync/studiosync/internal/sync"
	"github.com/studiosync/studiosync/internal/workspace"
)

func init() {
	rootCmd.AddCommand(newStatusCmd())
}

func newStatusCmd() *cobra.Command {
	var showFiles bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show workspace roots and tracked files",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			// Status is a local read; no credentials or remote calls needed.
			dir, err := baseDir()
			if err != nil {
				return err
			}
			settings, err := workspace.LoadSettings(filepath.Join(dir, workspace.SettingsFilename))
			if err != nil {
				return err
			}
			state := sync.NewStateStore(filepath.Join(dir, stateFilename))

			fmt.Println(styleHeader.Render("References"))
			if len(settings.References) == 0 {
				fmt.Println("  (none)")
			}
			for _, ref := range settings.References {
				fmt.Printf("  %-20s %-8s %-30s last sync %s\n",
					ref.Name, ref.Kind, ref.LocalPath, humanizeStamp(ref.LastSync))
			}

			fmt.Println(styleHeader.Render("Projects"))
			if len(settings.Projects) == 0 {
				fmt.Println("  (none)")
			}
			for _, proj := range settings.Projects {
				fmt.Printf("  %-20s %-8s %-30s last pull %s, last push %s\n",
					proj.Name, proj.Kind, proj.LocalPath,
					humanizeStamp(proj.LastPull), humanizeStamp(proj.LastPush))
			}

			count, err := state.Count()
			if err != nil {
				return err
			}
			fmt.Printf("\n%d tracked files\n", count)

			if !showFiles {
				return nil
			}
			paths, err := state.Paths()
			if err != nil {
				return err
			}
			for _, p := range paths {
				st, err := state.Get(p)
				if err != nil {
					return err
				}
				fmt.Printf("  %-50s synced %s\n", p, humanizeStamp(st.LastSync))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&showFiles, "files", "l", false, "list every tracked file")
	return cmd
}

// humanizeStamp renders an RFC3339 stamp as a relative time, or "never".
func humanizeStamp(stamp string) string {
	if stamp == "" {
		return "never"
	}
	t, err := time.Parse(time.RFC3339, stamp)
	if err != nil {
		return stamp
	}
	return humanize.Time(t)
}
