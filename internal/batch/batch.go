// Package batch checks many SFL source files concurrently.
package batch

import (
	"context"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	mdwerror "github.com/msto63/sfl/foundation/core/error"
	"github.com/msto63/sfl/pkg/core/logging"
)

// Checker verifies one source text. *sfl.Engine implements it.
type Checker interface {
	Verify(source string) error
}

// Result is the verdict for one file
type Result struct {
	Path string
	OK   bool
	Err  error // Rejection or read failure; nil when OK
}

// Config holds runner settings
type Config struct {
	// Workers bounds concurrent checks (default: number of CPUs)
	Workers int
	Logger  *logging.Logger
}

// Runner checks files with a bounded worker pool
type Runner struct {
	checker Checker
	workers int
	logger  *logging.Logger
}

// New creates a runner
func New(checker Checker, cfg Config) *Runner {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.New("batch")
	}
	return &Runner{checker: checker, workers: workers, logger: logger}
}

// Run checks every path and returns the results in the order of paths.
// Per-file failures are reported in the results; the returned error is
// only set when ctx is cancelled before all files were checked.
func (r *Runner) Run(ctx context.Context, paths []string) ([]Result, error) {
	results := make([]Result, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = r.checkFile(path)
			return nil
		})
	}

	err := g.Wait()
	r.logger.Debug("Batch finished",
		"files", len(paths),
		"failed", Failed(results),
		"workers", r.workers,
	)
	return results, err
}

func (r *Runner) checkFile(path string) Result {
	content, err := os.ReadFile(path)
	if err != nil {
		return Result{
			Path: path,
			Err: mdwerror.Wrap(err, "failed to read source").
				WithCode(mdwerror.CodeReadFailed).
				WithOperation("batch.checkFile").
				WithDetail("path", path),
		}
	}

	if err := r.checker.Verify(string(content)); err != nil {
		return Result{Path: path, Err: err}
	}
	return Result{Path: path, OK: true}
}

// Failed counts the results that are not OK
func Failed(results []Result) int {
	n := 0
	for _, res := range results {
		if !res.OK {
			n++
		}
	}
	return n
}
