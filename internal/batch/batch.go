// Package batch drives the workflow over every matching file in a
// directory. Files share no state; a batch is just the same parameters
// applied to each of them, strictly in order unless fanned out.
package batch

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/imgnorm/imgnorm-cli/internal/encoder"
	"github.com/imgnorm/imgnorm-cli/internal/workflow"
)

// Job describes one directory batch run.
type Job struct {
	InputDir  string
	OutputDir string
	InputExt  string // input extension filter, matched case-insensitively
	Params    workflow.Params
	Workers   int // <=1 runs strictly sequentially
	Verbose   bool

	// Progress receives the per-file and completion lines. Defaults to
	// os.Stdout. Diagnostics go to Log, defaulting to os.Stderr.
	Progress io.Writer
	Log      io.Writer
}

// Report aggregates the outcome of a completed batch.
type Report struct {
	Results     []workflow.Result
	InputBytes  int64
	OutputBytes int64
	Elapsed     time.Duration
}

// Run processes every matching file in the input directory. The output
// directory is created if absent. The first file error aborts the run:
// outputs already written stay on disk, later files are not touched.
func (j *Job) Run() (*Report, error) {
	start := time.Now()

	if err := j.Params.Validate(); err != nil {
		return nil, err
	}

	format := encoder.Normalize(j.Params.Format)
	enc := encoder.NewRegistry().Get(format)
	if enc == nil {
		return nil, fmt.Errorf("%w: unsupported output format %q", workflow.ErrEncode, j.Params.Format)
	}

	sources, err := Scan(j.InputDir, j.InputExt)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(j.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	j.logVerbose("found %d matching files in %s", len(sources), j.InputDir)

	var results []workflow.Result
	if j.Workers > 1 {
		results, err = j.runParallel(sources, enc)
	} else {
		results, err = j.runSequential(sources, enc)
	}
	if err != nil {
		return nil, err
	}

	fmt.Fprintln(j.progress(), "All images processed.")

	rep := &Report{Results: results, Elapsed: time.Since(start)}
	for _, r := range results {
		rep.InputBytes += r.InputBytes
		rep.OutputBytes += r.OutputBytes
	}
	return rep, nil
}

func (j *Job) runSequential(sources []Source, enc encoder.Encoder) ([]workflow.Result, error) {
	results := make([]workflow.Result, 0, len(sources))
	for _, src := range sources {
		fmt.Fprintf(j.progress(), "Processing %s...\n", src.Path)

		res, err := workflow.Run(src.Path, j.outputPath(src, enc), j.Params)
		if err != nil {
			return nil, fmt.Errorf("process %s: %w", src.Name, err)
		}

		j.logVerbose("done: %s (%dx%d, %d bytes)", src.Name, res.Width, res.Height, res.OutputBytes)
		results = append(results, res)
	}
	return results, nil
}

// runParallel fans files out to a bounded worker pool. Per-file
// atomicity is unchanged; progress lines are serialized through one
// mutex. The first error stops further scheduling and is returned for
// the earliest file in batch order.
func (j *Job) runParallel(sources []Source, enc encoder.Encoder) ([]workflow.Result, error) {
	results := make([]workflow.Result, len(sources))
	errs := make([]error, len(sources))

	var wg sync.WaitGroup
	var printMu sync.Mutex
	var once sync.Once
	sem := make(chan struct{}, j.Workers)
	stop := make(chan struct{})

dispatch:
	for i, src := range sources {
		select {
		case <-stop:
			break dispatch
		default:
		}

		wg.Add(1)
		go func(idx int, s Source) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			select {
			case <-stop:
				return
			default:
			}

			printMu.Lock()
			fmt.Fprintf(j.progress(), "Processing %s...\n", s.Path)
			printMu.Unlock()

			res, err := workflow.Run(s.Path, j.outputPath(s, enc), j.Params)
			if err != nil {
				errs[idx] = err
				once.Do(func() { close(stop) })
				return
			}
			results[idx] = res
		}(i, src)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("process %s: %w", sources[i].Name, err)
		}
	}

	// Files skipped after a stop leave zero-value gaps, but a stop
	// always carries an error, so reaching here means none were skipped.
	return results, nil
}

func (j *Job) outputPath(src Source, enc encoder.Encoder) string {
	return filepath.Join(j.OutputDir, src.Stem+"."+enc.Extension())
}

func (j *Job) progress() io.Writer {
	if j.Progress != nil {
		return j.Progress
	}
	return os.Stdout
}

func (j *Job) logVerbose(format string, args ...any) {
	if !j.Verbose {
		return
	}
	log := j.Log
	if log == nil {
		log = os.Stderr
	}
	fmt.Fprintf(log, "[imgnorm] "+format+"\n", args...)
}
