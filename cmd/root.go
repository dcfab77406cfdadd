package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	verbose bool
	cfgFile string
)

var rootCmd = &cobra.Command{
	Use:   "imgnorm",
	Short: "Batch image normalization for web gallery assets",
	Long: `imgnorm — converts, resizes and compresses directories of source
images into normalized web assets.

Each image runs through a fixed workflow: format conversion (flattening
transparency for lossy targets), proportional Lanczos resize, and lossy
encoding at a chosen quality. Outputs mirror the input directory one
file per source.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default imgnorm.yaml in cwd)")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"imgnorm %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}

// logVerbose prints a message only when --verbose is set.
func logVerbose(format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[imgnorm] "+format+"\n", args...)
	}
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
