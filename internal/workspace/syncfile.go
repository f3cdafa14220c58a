package workspace

import (
	"fmt"
	"os"

	"github.com/studiosync/studiosync/internal/sync"
	"gopkg.in/yaml.v3"
)

// SyncFile is the standalone sync.yaml configuration, predating the workspace
// settings file. It drives ad-hoc pulls/pushes without registering a reference
// or project.
type SyncFile struct {
	BaseURL   string             `yaml:"base_url"`
	Folders   []SyncFileFolder   `yaml:"folders"`
	Documents []SyncFileDocument `yaml:"documents"`
	Settings  SyncFileSettings   `yaml:"settings"`
}

type SyncFileFolder struct {
	Name      string   `yaml:"name"`
	FolderID  string   `yaml:"folder_id"`
	LocalPath string   `yaml:"local_path"`
	Recursive *bool    `yaml:"recursive"`
	Exclude   []string `yaml:"exclude"`
}

type SyncFileDocument struct {
	Name        string `yaml:"name"`
	DocumentID  string `yaml:"document_id"`
	WorkspaceID string `yaml:"workspace_id"`
	LocalPath   string `yaml:"local_path"`
}

type SyncFileSettings struct {
	BackupOnPull  *bool  `yaml:"backup_on_pull"`
	BackupDir     string `yaml:"backup_dir"`
	FileExtension string `yaml:"file_extension"`
}

// LoadSyncFile parses a sync.yaml config.
func LoadSyncFile(path string) (*SyncFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sync config %s: %w", path, err)
	}

	var f SyncFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode sync config %s: %w", path, err)
	}
	return &f, nil
}

// Sources converts the config into engine sync sources.
func (f *SyncFile) Sources() []sync.Source {
	sources := make([]sync.Source, 0, len(f.Folders)+len(f.Documents))
	for _, folder := range f.Folders {
		recursive := true
		if folder.Recursive != nil {
			recursive = *folder.Recursive
		}
		sources = append(sources, sync.Source{
			Name:      folder.Name,
			Kind:      sync.SourceFolder,
			FolderID:  folder.FolderID,
			LocalPath: folder.LocalPath,
			Recursive: recursive,
			Exclude:   folder.Exclude,
		})
	}
	for _, doc := range f.Documents {
		sources = append(sources, sync.Source{
			Name:        doc.Name,
			Kind:        sync.SourceDocument,
			DocumentID:  doc.DocumentID,
			WorkspaceID: doc.WorkspaceID,
			LocalPath:   doc.LocalPath,
		})
	}
	return sources
}

// EngineOptions folds the file's settings into engine options.
func (f *SyncFile) EngineOptions(dryRun, force bool) sync.Options {
	opts := sync.Options{
		DryRun:       dryRun,
		Force:        force,
		BackupOnPull: true,
		BackupDir:    f.Settings.BackupDir,
		FileExt:      f.Settings.FileExtension,
	}
	if f.Settings.BackupOnPull != nil {
		opts.BackupOnPull = *f.Settings.BackupOnPull
	}
	return opts
}
