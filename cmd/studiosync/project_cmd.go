package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/studiosync/studiosync/internal/workspace"
)

func init() {
	rootCmd.AddCommand(newProjectCmd())
}

func newProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage bidirectional projects",
	}
	cmd.AddCommand(newProjectAddCmd())
	cmd.AddCommand(newProjectListCmd())
	cmd.AddCommand(newProjectRemoveCmd())
	return cmd
}

func newProjectAddCmd() *cobra.Command {
	var (
		localPath   string
		description string
		references  []string
	)

	cmd := &cobra.Command{
		Use:   "add <name> <url>",
		Short: "Add a project from a platform URL",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			mgr, err := buildLocalManager()
			if err != nil {
				return err
			}

			proj, err := workspace.NewProject(args[1], args[0], description, localPath, references)
			if err != nil {
				return err
			}

			// A project rooted inside a reference would make the reference
			// writable through the back door.
			if err := mgr.ValidatePushAllowed(proj.LocalPath); err != nil {
				return err
			}

			mgr.Settings.AddProject(proj)
			if err := mgr.Save(); err != nil {
				return err
			}
			fmt.Printf("added project %q -> %s\n", proj.Name, proj.LocalPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&localPath, "path", "", "local directory (default projects/<name>)")
	cmd.Flags().StringVar(&description, "description", "", "short project description")
	cmd.Flags().StringSliceVar(&references, "ref", nil, "reference names this project depends on")
	return cmd
}

func newProjectListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			mgr, err := buildLocalManager()
			if err != nil {
				return err
			}

			if len(mgr.Settings.Projects) == 0 {
				fmt.Println("no projects configured")
				return nil
			}
			for _, proj := range mgr.Settings.Projects {
				fmt.Printf("%-20s %-8s %-30s last pull %s, last push %s\n",
					proj.Name, proj.Kind, proj.LocalPath,
					humanizeStamp(proj.LastPull), humanizeStamp(proj.LastPush))
			}
			return nil
		},
	}
}

func newProjectRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove a project (local files are kept)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			mgr, err := buildLocalManager()
			if err != nil {
				return err
			}

			if !mgr.Settings.RemoveProject(args[0]) {
				return fmt.Errorf("no project named %q", args[0])
			}
			if err := mgr.Save(); err != nil {
				return err
			}
			fmt.Printf("removed project %q\n", args[0])
			return nil
		},
	}
}
