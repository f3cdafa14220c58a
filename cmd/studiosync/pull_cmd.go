package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/studiosync/studiosync/internal/sync"
	"github.com/studiosync/studiosync/internal/workspace"
)

func init() {
	rootCmd.AddCommand(newPullCmd())
}

func newPullCmd() *cobra.Command {
	var (
		dryRun     bool
		force      bool
		noBackup   bool
		syncConfig string
	)

	cmd := &cobra.Command{
		Use:   "pull [name...]",
		Short: "Pull remote documents into the local tree",
		Long: `Pull feature studios from the remote store into the local tree.

With no arguments every project and reference in the workspace is pulled.
Names select specific roots. --config switches to a standalone sync.yaml.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			ctx := cmd.Context()

			if syncConfig != "" {
				return pullSyncFile(ctx, syncConfig, dryRun, force, noBackup)
			}

			mgr, client, err := buildManager()
			if err != nil {
				return err
			}
			if err := unknownRootsError(mgr.Settings, args); err != nil {
				return err
			}

			opts := sync.Options{DryRun: dryRun, Force: force, BackupOnPull: !noBackup}
			engine := buildEngine(client, mgr.BaseDir(), opts)

			total := &sync.Summary{}
			touched := false

			for _, proj := range selectProjects(mgr.Settings, args) {
				s := engine.Pull(ctx, []sync.Source{proj.Source()})
				mergeSummary(total, s)
				if s.Succeeded > 0 && !dryRun {
					proj.TouchPull()
					touched = true
				}
			}
			for _, ref := range selectReferences(mgr.Settings, args) {
				s := engine.Pull(ctx, []sync.Source{ref.Source()})
				mergeSummary(total, s)
				if s.Succeeded > 0 && !dryRun {
					mgr.RecordReferenceSync(ctx, ref)
					touched = true
				}
			}

			if touched {
				if err := mgr.Save(); err != nil {
					return err
				}
			}
			return renderSummary(sync.OpPull, total)
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "report intended actions without transferring")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite local changes on conflict")
	cmd.Flags().BoolVar(&noBackup, "no-backup", false, "skip backups before overwriting local files")
	cmd.Flags().StringVar(&syncConfig, "config", "", "standalone sync.yaml config file")
	return cmd
}

func pullSyncFile(ctx context.Context, path string, dryRun, force, noBackup bool) error {
	file, err := workspace.LoadSyncFile(path)
	if err != nil {
		return err
	}

	client, err := buildClient(&workspace.Settings{API: workspace.APIConfig{BaseURL: file.BaseURL}})
	if err != nil {
		return err
	}

	dir, err := baseDir()
	if err != nil {
		return err
	}

	opts := file.EngineOptions(dryRun, force)
	if noBackup {
		opts.BackupOnPull = false
	}
	engine := buildEngine(client, dir, opts)
	return renderSummary(sync.OpPull, engine.Pull(ctx, file.Sources()))
}

// selectProjects returns projects matching names, or all when names is empty.
func selectProjects(settings *workspace.Settings, names []string) []*workspace.Project {
	if len(names) == 0 {
		return settings.Projects
	}
	var out []*workspace.Project
	for _, name := range names {
		if proj := settings.GetProject(name); proj != nil {
			out = append(out, proj)
		}
	}
	return out
}

// selectReferences returns references matching names, or all when names is empty.
func selectReferences(settings *workspace.Settings, names []string) []*workspace.Reference {
	if len(names) == 0 {
		return settings.References
	}
	var out []*workspace.Reference
	for _, name := range names {
		if ref := settings.GetReference(name); ref != nil {
			out = append(out, ref)
		}
	}
	return out
}

func mergeSummary(total *sync.Summary, s *sync.Summary) {
	total.Outcomes = append(total.Outcomes, s.Outcomes...)
	total.Succeeded += s.Succeeded
	total.Skipped += s.Skipped
	total.Conflicts += s.Conflicts
	total.Failed += s.Failed
}

// unknownRootsError reports names that matched neither a project nor a reference.
func unknownRootsError(settings *workspace.Settings, names []string) error {
	for _, name := range names {
		if settings.GetProject(name) == nil && settings.GetReference(name) == nil {
			return fmt.Errorf("no project or reference named %q", name)
		}
	}
	return nil
}
