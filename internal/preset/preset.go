// Package preset defines named parameter bundles for common targets.
package preset

import "sort"

// Preset bundles workflow parameters under a name.
type Preset struct {
	Name    string
	Format  string // output format
	Width   int    // target width; height derives from aspect ratio
	Quality int    // encoding quality 1-100
}

// Built-in presets.
var presets = map[string]Preset{
	"gallery-web": {
		Name:    "gallery-web",
		Format:  "webp",
		Width:   800,
		Quality: 50,
	},
	"archive-jpeg": {
		Name:    "archive-jpeg",
		Format:  "jpeg",
		Width:   1600,
		Quality: 85,
	},
	"thumbs": {
		Name:    "thumbs",
		Format:  "webp",
		Width:   320,
		Quality: 60,
	},
}

// Get returns a preset by name.
func Get(name string) (Preset, bool) {
	p, ok := presets[name]
	return p, ok
}

// Names returns the available preset names, sorted.
func Names() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
