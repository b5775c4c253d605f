package lint

import (
	"context"
	"errors"
	"io"
	"runtime"
	"sync"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/gnolang/pycheck/internal"
	tt "github.com/gnolang/pycheck/internal/types"
	"github.com/gnolang/pycheck/scanner"
)

// StdinPath is the path argument that reads source from standard input.
const StdinPath = "-"

type LintEngine interface {
	Run(ctx context.Context, filePath string) (tt.FileReport, error)
	RunSource(ctx context.Context, filePath string, source []byte) (tt.FileReport, error)
}

// New creates the lint engine.
func New() *internal.Engine {
	return internal.NewEngine()
}

// Options tune how ProcessFiles walks and schedules files.
type Options struct {
	// Scanner expands path arguments. Nil means the default configuration.
	Scanner *scanner.Scanner
	// Jobs bounds the number of files processed at once. Zero means NumCPU.
	Jobs int
	// Progress receives a progress bar when non-nil.
	Progress io.Writer
}

// ProcessFiles expands paths and analyzes every file found. Problems with a
// single file are recorded in the run and never stop the others; only
// context cancellation aborts the run.
func ProcessFiles(
	ctx context.Context,
	logger *zap.Logger,
	engine LintEngine,
	paths []string,
	opts Options,
) (*tt.AnalysisRun, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Scanner == nil {
		opts.Scanner = DefaultConfig().NewScanner()
	}

	run := tt.NewAnalysisRun()
	files := expandPaths(logger, opts.Scanner, paths, run)

	bar := newProgressBar(opts.Progress, len(files))

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			break
		}
		fp := file
		g.Go(func() error {
			report, err := ProcessFile(gctx, engine, fp)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				logger.Warn("Error processing file", zap.String("file", fp), zap.Error(err))
				run.Fail(fp, err)
			} else {
				logger.Debug("Processed file", zap.String("file", fp), zap.Int("violations", len(report.Violations)))
				run.Add(report)
			}
			if bar != nil {
				_ = bar.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait()

	if bar != nil {
		_ = bar.Finish()
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return run, nil
}

// expandPaths resolves path arguments to a deduplicated file list. Paths
// that cannot be accessed are recorded as failures.
func expandPaths(logger *zap.Logger, s *scanner.Scanner, paths []string, run *tt.AnalysisRun) []string {
	seen := make(map[string]bool)
	var files []string
	for _, path := range paths {
		infos, err := s.Expand(path)
		if errors.Is(err, scanner.ErrNotTarget) {
			logger.Info("Skipping file", zap.String("path", path))
			continue
		}
		if err != nil {
			logger.Warn("Error processing path", zap.String("path", path), zap.Error(err))
			run.Fail(path, err)
			continue
		}
		for _, info := range infos {
			if seen[info.Path] {
				continue
			}
			seen[info.Path] = true
			files = append(files, info.Path)
		}
	}
	return files
}

func newProgressBar(w io.Writer, total int) *progressbar.ProgressBar {
	if w == nil || total == 0 {
		return nil
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("analyzing"),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}

// ProcessSource analyzes source read from somewhere other than the file
// system, reporting it under filePath.
func ProcessSource(ctx context.Context, engine LintEngine, filePath string, source []byte) (*tt.AnalysisRun, error) {
	run := tt.NewAnalysisRun()
	report, err := engine.RunSource(ctx, filePath, source)
	if err != nil {
		run.Fail(filePath, err)
	} else {
		run.Add(report)
	}
	return run, ctx.Err()
}

func ProcessFile(ctx context.Context, engine LintEngine, filePath string) (tt.FileReport, error) {
	return engine.Run(ctx, filePath)
}
