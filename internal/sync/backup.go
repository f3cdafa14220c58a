package sync

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/studiosync/studiosync/internal/utils"
)

// backupFile copies an existing local file into the backup dir under a
// timestamped name before it gets overwritten. Best effort: a crash between
// backup and state update just means the next run backs up again under a new
// name. A random suffix keeps two overwrites within the same second from
// clobbering each other's backup.
func (e *Engine) backupFile(path string) (string, error) {
	if !e.opts.BackupOnPull || !utils.FileExists(path) {
		return "", nil
	}

	base := filepath.Base(path)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	timestamp := time.Now().Format("20060102_150405")
	suffix := uuid.NewString()[:8]

	backupPath := filepath.Join(e.baseDir, e.opts.BackupDir, fmt.Sprintf("%s_%s_%s%s", stem, timestamp, suffix, ext))
	if err := utils.CopyFile(path, backupPath); err != nil {
		return "", fmt.Errorf("backup %s: %w", path, err)
	}
	return backupPath, nil
}
