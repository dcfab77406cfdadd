package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Source is one file in the input directory selected for processing.
type Source struct {
	// Name is the bare filename inside the input directory.
	Name string
	// Path is the full path to the file.
	Path string
	// Stem is the filename without its extension.
	Stem string
	// Size is the file size in bytes.
	Size int64
}

// Scan lists the files in inputDir whose name ends with the given
// extension, matched case-insensitively. The listing is non-recursive
// and sorted by name so batch order is deterministic regardless of
// what order the filesystem returns entries in.
func Scan(inputDir, ext string) ([]Source, error) {
	suffix := "." + strings.TrimPrefix(strings.ToLower(ext), ".")

	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", inputDir, err)
	}

	var sources []Source
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(strings.ToLower(name), suffix) {
			continue
		}

		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", name, err)
		}

		sources = append(sources, Source{
			Name: name,
			Path: filepath.Join(inputDir, name),
			Stem: strings.TrimSuffix(name, filepath.Ext(name)),
			Size: info.Size(),
		})
	}

	sort.Slice(sources, func(i, j int) bool { return sources[i].Name < sources[j].Name })
	return sources, nil
}
