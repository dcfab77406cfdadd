package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/imgnorm/imgnorm-cli/internal/encoder"
	"github.com/imgnorm/imgnorm-cli/internal/workflow"
)

var (
	fileFormat  string
	fileWidth   int
	fileHeight  int
	fileQuality int
)

var fileCmd = &cobra.Command{
	Use:   "file <input> <output>",
	Short: "Run the normalization workflow on a single image",
	Long: `Runs one image through the full workflow: format conversion,
proportional resize, compression, and encode at the given quality.
When --format is not set it is inferred from the output extension,
falling back to jpeg.`,
	Args: cobra.ExactArgs(2),
	RunE: runFile,
}

func init() {
	fileCmd.Flags().StringVarP(&fileFormat, "format", "f", "", "output format (default: from output extension, else jpeg)")
	fileCmd.Flags().IntVarP(&fileWidth, "width", "W", 800, "target width in pixels")
	fileCmd.Flags().IntVarP(&fileHeight, "height", "H", 0, "target height (0 = keep aspect ratio)")
	fileCmd.Flags().IntVarP(&fileQuality, "quality", "q", 50, "encoding quality 1-100")
	rootCmd.AddCommand(fileCmd)
}

func runFile(_ *cobra.Command, args []string) error {
	inputPath, outputPath := args[0], args[1]

	format := fileFormat
	if format == "" {
		format = encoder.Normalize(strings.TrimPrefix(filepath.Ext(outputPath), "."))
		if format == "" {
			format = "jpeg"
		}
	}

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	res, err := workflow.Run(inputPath, outputPath, workflow.Params{
		Format:  format,
		Width:   fileWidth,
		Height:  fileHeight,
		Quality: fileQuality,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Wrote %s (%s, %dx%d, %s)\n",
		res.OutputPath, res.Format, res.Width, res.Height, formatBytes(res.OutputBytes))
	return nil
}
