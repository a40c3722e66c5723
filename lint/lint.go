package lint

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/gnolang/solint/internal"
	tt "github.com/gnolang/solint/internal/types"
)

// ErrSkippedFiles is returned, joined with the individual failures, when
// files below a directory could not be linted. Issues of the other files
// are still returned.
var ErrSkippedFiles = errors.New("files could not be linted")

type LintEngine interface {
	Run(filePath string) ([]tt.Issue, error)
	RunSource(source []byte) ([]tt.Issue, error)
	IgnoreRule(rule string)
	IgnorePath(pattern string) error
}

// New builds an engine from the configuration file at configurationPath.
// An empty path falls back to DefaultConfigPath when it exists.
func New(configurationPath string, opts ...internal.Option) (*internal.Engine, error) {
	config, err := LoadConfig(configurationPath)
	if err != nil {
		return nil, err
	}

	engine, err := internal.NewEngine(config.Rules, opts...)
	if err != nil {
		return nil, err
	}
	for _, pattern := range config.IgnorePaths {
		if err := engine.IgnorePath(pattern); err != nil {
			return nil, err
		}
	}
	return engine, nil
}

func ProcessSources(
	ctx context.Context,
	logger *zap.Logger,
	engine LintEngine,
	sources [][]byte,
	processor func(LintEngine, []byte) ([]tt.Issue, error),
) ([]tt.Issue, error) {
	var allIssues []tt.Issue
	for i, source := range sources {
		if err := ctx.Err(); err != nil {
			return allIssues, err
		}
		issues, err := processor(engine, source)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing source", zap.Int("source", i), zap.Error(err))
			}
			return nil, err
		}
		allIssues = append(allIssues, issues...)
	}

	return allIssues, nil
}

func ProcessFiles(
	ctx context.Context,
	logger *zap.Logger,
	engine LintEngine,
	paths []string,
	processor func(LintEngine, string) ([]tt.Issue, error),
) ([]tt.Issue, error) {
	var (
		allIssues []tt.Issue
		skipped   []error
	)
	for _, path := range paths {
		issues, err := ProcessPath(ctx, logger, engine, path, processor)
		if errors.Is(err, ErrSkippedFiles) {
			allIssues = append(allIssues, issues...)
			skipped = append(skipped, err)
			continue
		}
		if err != nil {
			if logger != nil {
				logger.Error("Error processing path", zap.String("path", path), zap.Error(err))
			}
			return allIssues, err
		}
		allIssues = append(allIssues, issues...)
	}

	return allIssues, errors.Join(skipped...)
}

// ProcessPath lints a single syntax tree file, or every syntax tree file
// below a directory. Directory entries are processed in parallel. A file
// that fails is logged and the walk goes on; the failures are returned
// wrapped in ErrSkippedFiles. Results keep the walk order.
func ProcessPath(
	ctx context.Context,
	logger *zap.Logger,
	engine LintEngine,
	path string,
	processor func(LintEngine, string) ([]tt.Issue, error),
) ([]tt.Issue, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", path, err)
	}

	if !info.IsDir() {
		if !hasDesiredExtension(path) {
			return nil, nil
		}
		return processor(engine, path)
	}

	files, err := collectFiles(path)
	if err != nil {
		return nil, fmt.Errorf("error walking %s: %w", path, err)
	}

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription(path),
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

	// each worker owns its slot, no locking needed
	results := make([][]tt.Issue, len(files))
	failures := make([]error, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, fp := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			defer bar.Add(1)

			fileIssues, err := processor(engine, fp)
			if err != nil {
				if logger != nil {
					logger.Error("Error processing file", zap.String("file", fp), zap.Error(err))
				}
				failures[i] = fmt.Errorf("%s: %w", fp, err)
				return nil
			}
			results[i] = fileIssues
			return nil
		})
	}

	waitErr := g.Wait()
	_ = bar.Finish()

	issues := make([]tt.Issue, 0)
	for _, fileIssues := range results {
		issues = append(issues, fileIssues...)
	}
	if waitErr != nil {
		return issues, waitErr
	}
	if err := errors.Join(failures...); err != nil {
		return issues, fmt.Errorf("%w: %w", ErrSkippedFiles, err)
	}
	return issues, nil
}

func collectFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && hasDesiredExtension(path) {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

func ProcessFile(engine LintEngine, filePath string) ([]tt.Issue, error) {
	return engine.Run(filePath)
}

func ProcessSource(engine LintEngine, source []byte) ([]tt.Issue, error) {
	return engine.RunSource(source)
}

func hasDesiredExtension(path string) bool {
	return internal.IsASTFile(path)
}
