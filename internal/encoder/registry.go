// Package encoder provides per-format image encoders behind a registry.
package encoder

import (
	"fmt"
	"strings"
)

// Registry holds the available encoders keyed by format name.
type Registry struct {
	encoders map[string]Encoder
}

// NewRegistry creates a registry with all built-in encoders.
func NewRegistry() *Registry {
	r := &Registry{
		encoders: make(map[string]Encoder),
	}

	all := []Encoder{
		&WebPEncoder{},
		&JPEGEncoder{},
		&PNGEncoder{},
	}

	for _, enc := range all {
		r.encoders[enc.Format()] = enc
	}

	return r
}

// Get returns an encoder for the given format, or nil if unknown.
// Format aliases (jpg) are resolved before lookup.
func (r *Registry) Get(format string) Encoder {
	return r.encoders[Normalize(format)]
}

// Formats returns all registered format names in priority order.
func (r *Registry) Formats() []string {
	var result []string
	for _, f := range []string{"webp", "jpeg", "png"} {
		if _, ok := r.encoders[f]; ok {
			result = append(result, f)
		}
	}
	return result
}

// String returns a summary of registered encoders.
func (r *Registry) String() string {
	return fmt.Sprintf("encoders: %s", strings.Join(r.Formats(), ", "))
}
