package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/studiosync/studiosync/internal/sync"
	"github.com/studiosync/studiosync/internal/workspace"
)

func init() {
	rootCmd.AddCommand(newPushCmd())
}

func newPushCmd() *cobra.Command {
	var (
		dryRun     bool
		force      bool
		syncConfig string
	)

	cmd := &cobra.Command{
		Use:   "push [name...]",
		Short: "Push local edits back to the remote store",
		Long: `Push locally edited feature studios back to the remote store.

With no arguments every project in the workspace is pushed. References are
read-only: a push targeting a reference root fails before anything is sent.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			ctx := cmd.Context()

			mgr, client, err := buildManager()
			if err != nil {
				return err
			}

			if syncConfig != "" {
				return pushSyncFile(ctx, mgr, syncConfig, dryRun, force)
			}

			projects := selectProjects(mgr.Settings, args)
			if len(args) > 0 && len(projects) < len(args) {
				for _, name := range args {
					if mgr.Settings.GetProject(name) == nil {
						return fmt.Errorf("no project named %q", name)
					}
				}
			}

			// Policy gate: never invoke the engine for a read-only root.
			for _, proj := range projects {
				if err := mgr.ValidatePushAllowed(proj.LocalPath); err != nil {
					return err
				}
			}

			opts := sync.Options{DryRun: dryRun, Force: force}
			engine := buildEngine(client, mgr.BaseDir(), opts)

			total := &sync.Summary{}
			touched := false
			for _, proj := range projects {
				s := engine.Push(ctx, []sync.Source{proj.Source()})
				mergeSummary(total, s)
				if s.Succeeded > 0 && !dryRun {
					proj.TouchPush()
					touched = true
				}
			}

			if touched {
				if err := mgr.Save(); err != nil {
					return err
				}
			}
			return renderSummary(sync.OpPush, total)
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "report intended actions without transferring")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite remote changes on conflict")
	cmd.Flags().StringVar(&syncConfig, "config", "", "standalone sync.yaml config file")
	return cmd
}

func pushSyncFile(ctx context.Context, mgr *workspace.Manager, path string, dryRun, force bool) error {
	file, err := workspace.LoadSyncFile(path)
	if err != nil {
		return err
	}

	sources := file.Sources()
	for _, src := range sources {
		if err := mgr.ValidatePushAllowed(src.LocalPath); err != nil {
			return err
		}
	}

	client, err := buildClient(&workspace.Settings{API: workspace.APIConfig{BaseURL: file.BaseURL}})
	if err != nil {
		return err
	}

	engine := buildEngine(client, mgr.BaseDir(), file.EngineOptions(dryRun, force))
	return renderSummary(sync.OpPush, engine.Push(ctx, sources))
}
