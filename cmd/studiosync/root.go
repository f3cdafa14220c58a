package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/studiosync/studiosync/internal/cadsdk"
	"github.com/studiosync/studiosync/internal/sync"
	"github.com/studiosync/studiosync/internal/utils"
	"github.com/studiosync/studiosync/internal/version"
	"github.com/studiosync/studiosync/internal/workspace"
)

const (
	defaultBaseURL = "https://cad.onshape.com"
	stateFilename  = ".sync-state.json"
	envPrefix      = "STUDIOSYNC"
)

var rootCmd = &cobra.Command{
	Use:           "studiosync",
	Short:         "Sync feature studios between a local tree and the CAD platform",
	Version:       version.Detailed(),
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringP("dir", "C", ".", "workspace base directory")
	rootCmd.PersistentFlags().StringP("server", "s", "", "platform base URL (overrides workspace settings)")

	viper.BindPFlag("dir", rootCmd.PersistentFlags().Lookup("dir"))
	viper.BindPFlag("base_url", rootCmd.PersistentFlags().Lookup("server"))
	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()
}

// baseDir resolves the workspace root to an absolute path.
func baseDir() (string, error) {
	return utils.ResolvePath(viper.GetString("dir"))
}

// buildClient creates the API client from env credentials and the workspace
// settings. Missing credentials are a configuration error before any transfer.
func buildClient(settings *workspace.Settings) (*cadsdk.Client, error) {
	baseURL := viper.GetString("base_url")
	if baseURL == "" && settings != nil {
		baseURL = settings.API.BaseURL
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	accessKey := viper.GetString("access_key")
	secretKey := viper.GetString("secret_key")
	if accessKey == "" || secretKey == "" {
		return nil, &sync.ConfigurationError{
			Reason: fmt.Sprintf("missing API credentials; set %s_ACCESS_KEY and %s_SECRET_KEY", envPrefix, envPrefix),
		}
	}

	return cadsdk.New(&cadsdk.Config{
		BaseURL:   baseURL,
		AccessKey: accessKey,
		SecretKey: secretKey,
	})
}

// buildManager loads the workspace settings and wraps them with policy.
func buildManager() (*workspace.Manager, *cadsdk.Client, error) {
	dir, err := baseDir()
	if err != nil {
		return nil, nil, err
	}

	settings, err := workspace.LoadSettings(filepath.Join(dir, workspace.SettingsFilename))
	if err != nil {
		return nil, nil, err
	}

	client, err := buildClient(settings)
	if err != nil {
		return nil, nil, err
	}

	mgr, err := workspace.NewManager(dir, client)
	if err != nil {
		return nil, nil, err
	}
	return mgr, client, nil
}

// buildLocalManager loads the workspace without an API client, for commands
// that never talk to the remote.
func buildLocalManager() (*workspace.Manager, error) {
	dir, err := baseDir()
	if err != nil {
		return nil, err
	}
	return workspace.NewManager(dir, nil)
}

// buildEngine wires a sync engine rooted at the workspace dir.
func buildEngine(client *cadsdk.Client, dir string, opts sync.Options) *sync.Engine {
	state := sync.NewStateStore(filepath.Join(dir, stateFilename))
	return sync.New(client, state, dir, opts, newCLIReporter())
}
