package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/studiosync/studiosync/internal/workspace"
)

func init() {
	rootCmd.AddCommand(newVerifyCmd())
}

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Verify API credentials and connectivity",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			dir, err := baseDir()
			if err != nil {
				return err
			}
			settings, err := workspace.LoadSettings(filepath.Join(dir, workspace.SettingsFilename))
			if err != nil {
				return err
			}

			client, err := buildClient(settings)
			if err != nil {
				return err
			}

			info, err := client.GetSessionInfo(cmd.Context())
			if err != nil {
				return fmt.Errorf("credential check failed: %w", err)
			}

			fmt.Printf("%s authenticated as %s <%s>\n", styleOK.Render("ok"), info.Name, info.Email)
			fmt.Printf("   server: %s\n", client.BaseURL())
			return nil
		},
	}
}
