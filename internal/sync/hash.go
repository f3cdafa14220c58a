package sync

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
)

// ContentHash returns the SHA-256 hex digest of content.
func ContentHash(content []byte) string {
	return fmt.Sprintf("%x", sha256.Sum256(content))
}

// HashFile returns the SHA-256 hex digest of the file at path. exists is false
// when the file is absent, which is not an error.
func HashFile(path string) (hash string, exists bool, err error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	h := sha256.New()
	if _, err := io.Copy(h, file); err != nil {
		return "", false, fmt.Errorf("hash %s: %w", path, err)
	}
	return fmt.Sprintf("%x", h.Sum(nil)), true, nil
}
