package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/studiosync/studiosync/internal/sync"
	"github.com/studiosync/studiosync/internal/workspace"
)

func init() {
	rootCmd.AddCommand(newRefCmd())
}

func newRefCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ref",
		Short: "Manage read-only references",
	}
	cmd.AddCommand(newRefAddCmd())
	cmd.AddCommand(newRefListCmd())
	cmd.AddCommand(newRefUpdateCmd())
	cmd.AddCommand(newRefRemoveCmd())
	return cmd
}

func newRefAddCmd() *cobra.Command {
	var (
		localPath  string
		autoUpdate bool
		flat       bool
	)

	cmd := &cobra.Command{
		Use:   "add <name> <url>",
		Short: "Add a read-only reference from a platform URL",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			mgr, err := buildLocalManager()
			if err != nil {
				return err
			}

			ref, err := workspace.NewReference(args[1], args[0], localPath, autoUpdate, !flat)
			if err != nil {
				return err
			}

			mgr.Settings.AddReference(ref)
			if err := mgr.Save(); err != nil {
				return err
			}
			fmt.Printf("added reference %q -> %s\n", ref.Name, ref.LocalPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&localPath, "path", "", "local directory (default references/<name>)")
	cmd.Flags().BoolVar(&autoUpdate, "auto-update", false, "refresh on every `ref update` without --force")
	cmd.Flags().BoolVar(&flat, "flat", false, "do not recurse into subfolders")
	return cmd
}

func newRefListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List references",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			mgr, err := buildLocalManager()
			if err != nil {
				return err
			}

			if len(mgr.Settings.References) == 0 {
				fmt.Println("no references configured")
				return nil
			}
			for _, ref := range mgr.Settings.References {
				fmt.Printf("%-20s %-8s %-30s last sync %s\n",
					ref.Name, ref.Kind, ref.LocalPath, humanizeStamp(ref.LastSync))
			}
			return nil
		},
	}
}

func newRefUpdateCmd() *cobra.Command {
	var (
		force     bool
		checkOnly bool
	)

	cmd := &cobra.Command{
		Use:   "update [name...]",
		Short: "Refresh references that are behind the remote",
		Long: `Refresh references from the remote store.

Only references that are stale are pulled: document references compare the
cached version token against the live one, folder references go by age.
--force refreshes regardless, --check reports staleness without pulling.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			ctx := cmd.Context()

			mgr, client, err := buildManager()
			if err != nil {
				return err
			}

			refs := selectReferences(mgr.Settings, args)
			if len(args) > 0 && len(refs) < len(args) {
				for _, name := range args {
					if mgr.Settings.GetReference(name) == nil {
						return fmt.Errorf("no reference named %q", name)
					}
				}
			}

			engine := buildEngine(client, mgr.BaseDir(), sync.Options{Force: true})

			total := &sync.Summary{}
			touched := false
			for _, ref := range refs {
				stale, err := mgr.ReferenceNeedsUpdate(ctx, ref)
				if err != nil {
					return err
				}

				if checkOnly {
					status := "up to date"
					if stale {
						status = "stale"
					}
					fmt.Printf("%-20s %s\n", ref.Name, status)
					continue
				}
				if !stale && !force {
					fmt.Printf("%s %s is up to date\n", styleSkipped.Render("skip"), ref.Name)
					continue
				}

				s := engine.Pull(ctx, []sync.Source{ref.Source()})
				mergeSummary(total, s)
				// A clean run means the local copy now matches the remote,
				// even when every file was already in sync.
				if s.Clean() {
					mgr.RecordReferenceSync(ctx, ref)
					touched = true
				}
			}

			if checkOnly {
				return nil
			}
			if touched {
				if err := mgr.Save(); err != nil {
					return err
				}
			}
			return renderSummary(sync.OpPull, total)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "refresh even when up to date")
	cmd.Flags().BoolVar(&checkOnly, "check", false, "report staleness without pulling")
	return cmd
}

func newRefRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove a reference (local files are kept)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			mgr, err := buildLocalManager()
			if err != nil {
				return err
			}

			if !mgr.Settings.RemoveReference(args[0]) {
				return fmt.Errorf("no reference named %q", args[0])
			}
			if err := mgr.Save(); err != nil {
				return err
			}
			fmt.Printf("removed reference %q\n", args[0])
			return nil
		},
	}
}
