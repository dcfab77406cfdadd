package cmd

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/imgnorm/imgnorm-cli/internal/batch"
	"github.com/imgnorm/imgnorm-cli/internal/config"
	"github.com/imgnorm/imgnorm-cli/internal/manifest"
	"github.com/imgnorm/imgnorm-cli/internal/preset"
	"github.com/imgnorm/imgnorm-cli/internal/workflow"
)

var (
	convertOutDir   string
	convertFrom     string
	convertFormat   string
	convertWidth    int
	convertHeight   int
	convertQuality  int
	convertWorkers  int
	convertPreset   string
	convertManifest string
)

var convertCmd = &cobra.Command{
	Use:   "convert <input_dir>",
	Short: "Convert, resize and compress every matching image in a directory",
	Long: `Lists files in the input directory whose extension matches --from
(case-insensitive), runs each through the normalization workflow, and
writes <stem>.<ext> into the output directory.

Files are processed strictly in name order; the first failure aborts
the batch. Already-written outputs are left intact. Use --workers to
fan independent files out to a bounded pool instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringVarP(&convertOutDir, "out", "o", "processed", "output directory")
	convertCmd.Flags().StringVar(&convertFrom, "from", "png", "input extension filter")
	convertCmd.Flags().StringVarP(&convertFormat, "format", "f", "webp", "output format (jpeg, png, webp)")
	convertCmd.Flags().IntVarP(&convertWidth, "width", "W", 800, "target width in pixels")
	convertCmd.Flags().IntVarP(&convertHeight, "height", "H", 0, "target height (0 = keep aspect ratio)")
	convertCmd.Flags().IntVarP(&convertQuality, "quality", "q", 50, "encoding quality 1-100")
	convertCmd.Flags().IntVarP(&convertWorkers, "workers", "w", 1, "parallel workers (1 = sequential)")
	convertCmd.Flags().StringVarP(&convertPreset, "preset", "p", "", "parameter preset: "+strings.Join(preset.Names(), ", "))
	convertCmd.Flags().StringVar(&convertManifest, "manifest", "", "write a JSON manifest of the run to this path")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	inputDir, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolve input path: %w", err)
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	// Precedence: explicit flag > preset > config file/env > default.
	outDir := cfg.OutputDir
	from := cfg.InputFormat
	params := workflow.Params{
		Format:  cfg.OutputFormat,
		Width:   cfg.Width,
		Height:  cfg.Height,
		Quality: cfg.Quality,
	}
	workers := cfg.Workers

	if convertPreset != "" {
		p, ok := preset.Get(convertPreset)
		if !ok {
			return fmt.Errorf("unknown preset %q (available: %s)", convertPreset, strings.Join(preset.Names(), ", "))
		}
		params.Format = p.Format
		params.Width = p.Width
		params.Height = 0
		params.Quality = p.Quality
	}

	flags := cmd.Flags()
	if flags.Changed("out") {
		outDir = convertOutDir
	}
	if flags.Changed("from") {
		from = convertFrom
	}
	if flags.Changed("format") {
		params.Format = convertFormat
	}
	if flags.Changed("width") {
		params.Width = convertWidth
	}
	if flags.Changed("height") {
		params.Height = convertHeight
	}
	if flags.Changed("quality") {
		params.Quality = convertQuality
	}
	if flags.Changed("workers") {
		workers = convertWorkers
	}

	absOut, err := filepath.Abs(outDir)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}

	logVerbose("input:  %s (*.%s)", inputDir, strings.TrimPrefix(strings.ToLower(from), "."))
	logVerbose("output: %s (format=%s width=%d quality=%d workers=%d)",
		absOut, params.Format, params.Width, params.Quality, workers)

	job := &batch.Job{
		InputDir:  inputDir,
		OutputDir: absOut,
		InputExt:  from,
		Params:    params,
		Workers:   workers,
		Verbose:   verbose,
	}

	rep, err := job.Run()
	if err != nil {
		return err
	}

	if convertManifest != "" {
		m := manifestFromReport(rep, inputDir, absOut, params)
		if err := manifest.WriteJSON(m, convertManifest); err != nil {
			return fmt.Errorf("write manifest: %w", err)
		}
		logVerbose("manifest: %s (%d entries)", convertManifest, len(m.Entries))
	}

	printRunReport(rep)
	return nil
}

func manifestFromReport(rep *batch.Report, inputDir, outputDir string, params workflow.Params) *manifest.Manifest {
	m := manifest.New(inputDir, outputDir)
	m.Format = params.Format
	m.Width = params.Width
	m.Quality = params.Quality

	for _, r := range rep.Results {
		m.Entries = append(m.Entries, manifest.Entry{
			Source:      filepath.Base(r.InputPath),
			SourceBytes: r.InputBytes,
			Output:      filepath.Base(r.OutputPath),
			Format:      r.Format,
			Width:       r.Width,
			Height:      r.Height,
			Size:        r.OutputBytes,
			Hash:        r.Hash,
		})
	}
	return m
}

func printRunReport(rep *batch.Report) {
	ratio := float64(0)
	if rep.InputBytes > 0 {
		ratio = float64(rep.OutputBytes) / float64(rep.InputBytes) * 100
	}

	fmt.Println()
	fmt.Printf("  Files:       %d\n", len(rep.Results))
	fmt.Printf("  Input size:  %s\n", formatBytes(rep.InputBytes))
	fmt.Printf("  Output size: %s\n", formatBytes(rep.OutputBytes))
	fmt.Printf("  Ratio:       %.1f%% of original\n", ratio)
	fmt.Printf("  Time:        %s\n", rep.Elapsed.Round(time.Millisecond))
	fmt.Println()
}
