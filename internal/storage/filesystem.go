package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"
)

// SanitizeTitle replaces characters unsafe for filesystem paths.
// Allows alphanumeric, dots, and hyphens. Replaces everything else with underscore.
func SanitizeTitle(title string) string {
	re := regexp.MustCompile(`[^a-zA-Z0-9.\-]+`)
	return re.ReplaceAllString(title, "_")
}

// DefaultOutputPath generates a report output path when the caller
// does not supply one. Format: {baseDir}/{title}_{YYYYMMDD}_{HHMMSS}.pdf
func DefaultOutputPath(baseDir string, title string, generatedAt time.Time) string {
	sanitized := SanitizeTitle(title)
	timestamp := generatedAt.Format("20060102_150405")
	fileName := fmt.Sprintf("%s_%s.pdf", sanitized, timestamp)
	return filepath.Join(baseDir, fileName)
}

// EnsureDir creates a directory (and parents) if it does not exist
func EnsureDir(path string) error {
	if path == "" || path == "." {
		return nil
	}
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("creating directory %s: %w", path, err)
	}
	return nil
}
