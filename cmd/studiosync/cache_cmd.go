package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/studiosync/studiosync/internal/stdcache"
	"github.com/studiosync/studiosync/internal/workspace"
)

var cacheStdDir string

func init() {
	cmd := newCacheCmd()
	cmd.PersistentFlags().StringVar(&cacheStdDir, "std-dir", "", "standard library cache directory (default <dir>/std)")
	rootCmd.AddCommand(cmd)
}

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the standard library cache",
		Long: `Manage the local cache of standard library feature studios.

Cached files let imports resolve without an API round trip. The cache dir
holds the .fs files plus a manifest recording where each one came from and
the version it was read at.`,
	}
	cmd.AddCommand(newCacheStatusCmd())
	cmd.AddCommand(newCacheAddCmd())
	cmd.AddCommand(newCacheFetchCmd())
	cmd.AddCommand(newCacheUpdateCmd())
	return cmd
}

func stdDir() (string, error) {
	if cacheStdDir != "" {
		return cacheStdDir, nil
	}
	dir, err := baseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "std"), nil
}

// buildLocalCache opens the cache without an API client, for commands that
// never fetch.
func buildLocalCache() (*stdcache.Manager, error) {
	dir, err := stdDir()
	if err != nil {
		return nil, err
	}
	return stdcache.NewManager(dir, nil), nil
}

// buildRemoteCache opens the cache with an API client wired from the
// workspace settings.
func buildRemoteCache() (*stdcache.Manager, error) {
	dir, err := stdDir()
	if err != nil {
		return nil, err
	}

	base, err := baseDir()
	if err != nil {
		return nil, err
	}
	settings, err := workspace.LoadSettings(filepath.Join(base, workspace.SettingsFilename))
	if err != nil {
		return nil, err
	}

	client, err := buildClient(settings)
	if err != nil {
		return nil, err
	}
	return stdcache.NewManager(dir, client), nil
}

func newCacheStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show cached standard library files",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			cache, err := buildLocalCache()
			if err != nil {
				return err
			}
			status, err := cache.Status()
			if err != nil {
				return err
			}

			fmt.Printf("%s %s\n", styleHeader.Render("cache dir:"), status.StdDir)
			if status.LastUpdated != "" {
				fmt.Printf("%s %s\n", styleHeader.Render("last updated:"), humanizeStamp(status.LastUpdated))
			}
			if len(status.Files) == 0 {
				fmt.Println("no cached files")
				return nil
			}
			for _, f := range status.Files {
				state := styleOK.Render("cached")
				if !f.Exists {
					state = styleSkipped.Render("missing")
				}
				fmt.Printf("%-30s %-8s %-12s fetched %s\n",
					f.Filename, state, f.Microversion, humanizeStamp(f.FetchedAt))
			}
			return nil
		},
	}
}

func newCacheAddCmd() *cobra.Command {
	var (
		documentID  string
		elementID   string
		workspaceID string
	)

	cmd := &cobra.Command{
		Use:   "add <filename>",
		Short: "Register a standard library file without fetching it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			cache, err := buildLocalCache()
			if err != nil {
				return err
			}
			if err := cache.Add(args[0], documentID, elementID, workspaceID); err != nil {
				return err
			}
			fmt.Printf("added %s to the cache manifest\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&documentID, "document-id", "", "document id holding the file")
	cmd.Flags().StringVar(&elementID, "element-id", "", "element id of the feature studio")
	cmd.Flags().StringVar(&workspaceID, "workspace-id", "", "workspace id (default workspace when empty)")
	cmd.MarkFlagRequired("document-id")
	cmd.MarkFlagRequired("element-id")
	return cmd
}

func newCacheFetchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch <import-path>",
		Short: "Resolve an import through the cache, fetching on a miss",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			cache, err := buildRemoteCache()
			if err != nil {
				return err
			}
			contents, err := cache.ResolveImport(cmd.Context(), args[0], true)
			if err != nil {
				return err
			}
			fmt.Printf("%s %s (%d bytes)\n", styleOK.Render("ok"), args[0], len(contents))
			return nil
		},
	}
}

func newCacheUpdateCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "update [filename]",
		Short: "Refresh cached files from the remote",
		Long: `Refresh cached standard library files from the remote store.

Without a filename every manifest entry is checked. Files whose remote
microversion matches the cached one are skipped unless --force is set.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			cache, err := buildRemoteCache()
			if err != nil {
				return err
			}

			filename := ""
			if len(args) > 0 {
				filename = args[0]
			}

			results, err := cache.Update(cmd.Context(), filename, force)
			if err != nil {
				return err
			}

			failed := 0
			for _, r := range results {
				switch {
				case r.Err != nil:
					failed++
					fmt.Printf("%s %s: %v\n", styleFailed.Render("FAILED"), r.Filename, r.Err)
				case r.Updated:
					fmt.Printf("%s %s: %s\n", styleOK.Render("ok"), r.Filename, r.Message)
				default:
					fmt.Printf("%s %s: %s\n", styleSkipped.Render("skip"), r.Filename, styleSkipped.Render(r.Message))
				}
			}
			if failed > 0 {
				return fmt.Errorf("cache update finished with %d failures", failed)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "refresh even when the microversion is unchanged")
	return cmd
}
