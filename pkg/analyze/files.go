package analyze

import (
	"fmt"
	"os"
	"path/filepath"
)

// ListPathwayFiles returns the files directly under dir that some source
// recognizes, sorted by name. Subdirectories are not descended into, the
// provider dumps unpack flat.
func ListPathwayFiles(dir string, sources []Source) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list pathway folder: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if _, ok := DetectSource(path, sources); ok {
			paths = append(paths, path)
		}
	}
	return paths, nil
}
