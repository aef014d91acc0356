package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ArchiveDir moves dir to <parent of dir>/archive/<name>-<timestamp> and
// returns the archive path
func ArchiveDir(dir string) (string, error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return "", fmt.Errorf("directory does not exist: %s", dir)
	}
	if err != nil {
		return "", fmt.Errorf("failed to stat directory: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("not a directory: %s", dir)
	}

	archiveDir := filepath.Join(filepath.Dir(dir), "archive")
	if err := os.MkdirAll(archiveDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	name := filepath.Base(dir)
	archivePath := filepath.Join(archiveDir, fmt.Sprintf("%s-%s", name, time.Now().Format("20060102-150405")))

	// Two archives within the same second
	if _, err := os.Stat(archivePath); err == nil {
		archivePath = filepath.Join(archiveDir, fmt.Sprintf("%s-%s", name, time.Now().Format("20060102-150405.000000")))
	}

	if err := os.Rename(dir, archivePath); err != nil {
		return "", fmt.Errorf("failed to archive directory: %w", err)
	}

	return archivePath, nil
}

// ArchiveTier archives the audio directory of a tier below audioRoot. A
// tier without a directory is not an error and returns an empty path.
func ArchiveTier(audioRoot, tier string) (string, error) {
	if tier == "" {
		return "", fmt.Errorf("the single-list layout has no tier directory to archive")
	}

	dir := filepath.Join(audioRoot, tier)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return "", nil
	}

	return ArchiveDir(dir)
}
