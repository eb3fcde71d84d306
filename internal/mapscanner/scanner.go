package mapscanner

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// MapEntry represents a discoverable map in a maps directory
type MapEntry struct {
	Name string // Display name (file name without extension)
	Path string // Path to the TMX file
}

// ScanMapDirectory scans a directory for Tiled maps.
// Returns one MapEntry per .tmx file, sorted by name.
func ScanMapDirectory(dir string) ([]MapEntry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read map directory: %w", err)
	}

	var maps []MapEntry

	for _, entry := range entries {
		// Skip directories (tileset images usually live in subfolders)
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		ext := filepath.Ext(name)
		if !strings.EqualFold(ext, ".tmx") {
			continue
		}

		maps = append(maps, MapEntry{
			Name: strings.TrimSuffix(name, ext),
			Path: filepath.Join(dir, name),
		})
	}

	sort.Slice(maps, func(i, j int) bool {
		return maps[i].Name < maps[j].Name
	})

	return maps, nil
}
