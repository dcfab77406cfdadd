package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/imgnorm/imgnorm-cli/internal/manifest"
)

var statsCmd = &cobra.Command{
	Use:   "stats <out_dir_or_manifest>",
	Short: "Display statistics for a processed asset directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(_ *cobra.Command, args []string) error {
	path := args[0]

	// If path is a directory, look for the manifest inside.
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		path = filepath.Join(path, manifest.DefaultFilename)
	}

	m, err := manifest.ReadJSON(path)
	if err != nil {
		return err
	}

	printStats(m, filepath.Dir(path))
	return nil
}

func printStats(m *manifest.Manifest, baseDir string) {
	fmt.Println()
	fmt.Printf("  Manifest version: %d\n", m.Version)
	fmt.Printf("  Generated:        %s\n", m.GeneratedAt)
	fmt.Printf("  Parameters:       format=%s width=%d quality=%d\n", m.Format, m.Width, m.Quality)
	fmt.Println()

	s := m.Stats
	fmt.Printf("  Files:            %d\n", s.Files)
	fmt.Printf("  Input size:       %s\n", formatBytes(s.TotalInputBytes))
	fmt.Printf("  Output size:      %s\n", formatBytes(s.TotalOutputBytes))
	if s.TotalInputBytes > 0 {
		ratio := float64(s.TotalOutputBytes) / float64(s.TotalInputBytes) * 100
		fmt.Printf("  Compression:      %.1f%% of original\n", ratio)
	}
	fmt.Println()

	// Heaviest outputs first.
	entries := make([]manifest.Entry, len(m.Entries))
	copy(entries, m.Entries)
	sort.Slice(entries, func(i, j int) bool { return entries[i].Size > entries[j].Size })

	n := len(entries)
	if n > 10 {
		n = 10
	}
	if n > 0 {
		fmt.Printf("  Top %d heaviest (source → output):\n", n)
		for _, e := range entries[:n] {
			saved := float64(0)
			if e.SourceBytes > 0 {
				saved = (1 - float64(e.Size)/float64(e.SourceBytes)) * 100
			}
			fmt.Printf("    %-32s %8s → %8s  (−%.0f%%)\n",
				e.Source, formatBytes(e.SourceBytes), formatBytes(e.Size), saved)
		}
		fmt.Println()
	}

	// Warn about manifest entries whose files vanished or changed size.
	var warnings []string
	for _, e := range m.Entries {
		full := filepath.Join(baseDir, e.Output)
		info, err := os.Stat(full)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("output missing: %s", e.Output))
		} else if e.Size > 0 && info.Size() != e.Size {
			warnings = append(warnings, fmt.Sprintf("size mismatch: %s manifest=%d disk=%d",
				e.Output, e.Size, info.Size()))
		}
	}
	if len(warnings) > 0 {
		fmt.Printf("  Warnings (%d):\n", len(warnings))
		for _, w := range warnings {
			fmt.Printf("    ⚠ %s\n", w)
		}
		fmt.Println()
	}
}
