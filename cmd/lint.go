package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/solint/formatter"
	"github.com/gnolang/solint/internal"
	"github.com/gnolang/solint/internal/metrics"
	tt "github.com/gnolang/solint/internal/types"
	"github.com/gnolang/solint/lint"
)

var (
	ignoreRules    string
	ignorePaths    string
	lintJsonOutput bool
	outPath        string
	cacheDir       string
	metricsOut     string
)

var lintCmd = &cobra.Command{
	Use:   "lint [paths...]",
	Short: "Lint Solidity syntax trees (*.sol.json, *.ast.json)",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide file or directory paths")
			os.Exit(1)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		opts := lintOptions{
			configPath:  cfgFile,
			ignoreRules: splitList(ignoreRules),
			ignorePaths: splitList(ignorePaths),
			json:        lintJsonOutput,
			outPath:     outPath,
			cacheDir:    cacheDir,
			metricsOut:  metricsOut,
		}

		count, err := runLint(ctx, logger, opts, args, os.Stdout)
		if err != nil {
			logger.Fatal("Error running linter", zap.Error(err))
		}
		if count > 0 {
			os.Exit(1)
		}
	},
}

func init() {
	lintCmd.Flags().StringVar(&ignoreRules, "ignore", "", "Comma-separated list of lint rules to ignore")
	lintCmd.Flags().StringVar(&ignorePaths, "ignore-paths", "", "Comma-separated list of path globs to ignore")
	lintCmd.Flags().BoolVar(&lintJsonOutput, "json", false, "Output issues in JSON format")
	lintCmd.Flags().StringVarP(&outPath, "output", "o", "", "Output path (when using JSON)")
	lintCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "Directory for cached results (disabled when empty)")
	lintCmd.Flags().StringVar(&metricsOut, "metrics-out", "", "Write Prometheus metrics to this file")
}

type lintOptions struct {
	configPath  string
	ignoreRules []string
	ignorePaths []string
	json        bool
	outPath     string
	cacheDir    string
	metricsOut  string
}

// runLint lints paths and prints the findings to w. It returns the number
// of issues found. Files that could not be linted are reported through an
// error wrapping lint.ErrSkippedFiles after the findings are printed.
func runLint(ctx context.Context, logger *zap.Logger, opts lintOptions, paths []string, w io.Writer) (int, error) {
	engineOpts := []internal.Option{internal.WithLogger(logger)}

	var cache *internal.Cache
	if opts.cacheDir != "" {
		var err error
		cache, err = internal.NewCache(opts.cacheDir)
		if err != nil {
			return 0, err
		}
		engineOpts = append(engineOpts, internal.WithCache(cache))
	}

	var m *metrics.Metrics
	if opts.metricsOut != "" {
		m = metrics.New()
		engineOpts = append(engineOpts, internal.WithMetrics(m))
	}

	engine, err := lint.New(opts.configPath, engineOpts...)
	if err != nil {
		return 0, fmt.Errorf("failed to initialize lint engine: %w", err)
	}
	for _, rule := range opts.ignoreRules {
		engine.IgnoreRule(rule)
	}
	for _, pattern := range opts.ignorePaths {
		if err := engine.IgnorePath(pattern); err != nil {
			return 0, err
		}
	}

	// skipped files still let the other findings through
	issues, err := lint.ProcessFiles(ctx, logger, engine, paths, lint.ProcessFile)
	skipped := errors.Is(err, lint.ErrSkippedFiles)
	if err != nil && !skipped {
		return 0, fmt.Errorf("error processing files: %w", err)
	}

	if cache != nil {
		if err := cache.Save(); err != nil && logger != nil {
			logger.Warn("Error saving cache", zap.Error(err))
		}
	}
	if m != nil {
		if err := m.WriteFile(opts.metricsOut); err != nil && logger != nil {
			logger.Warn("Error writing metrics", zap.String("path", opts.metricsOut), zap.Error(err))
		}
	}

	if err := printIssues(logger, issues, opts.json, opts.outPath, w); err != nil {
		return len(issues), err
	}
	if skipped {
		return len(issues), err
	}
	return len(issues), nil
}

func printIssues(logger *zap.Logger, issues []tt.Issue, isJson bool, jsonOutput string, w io.Writer) error {
	issuesByFile := make(map[string][]tt.Issue)
	for _, issue := range issues {
		issuesByFile[issue.Filename] = append(issuesByFile[issue.Filename], issue)
	}

	if isJson {
		d, err := json.Marshal(issuesByFile)
		if err != nil {
			return fmt.Errorf("error marshalling issues to JSON: %w", err)
		}
		if jsonOutput == "" {
			_, err = fmt.Fprintln(w, string(d))
			return err
		}
		if err := os.WriteFile(jsonOutput, d, 0o644); err != nil {
			return fmt.Errorf("error writing JSON output file: %w", err)
		}
		return nil
	}

	sortedFiles := make([]string, 0, len(issuesByFile))
	for filename := range issuesByFile {
		sortedFiles = append(sortedFiles, filename)
	}
	sort.Strings(sortedFiles)

	for _, filename := range sortedFiles {
		fmt.Fprint(w, formatter.GenerateFormattedIssue(issuesByFile[filename], loadSnippet(logger, filename)))
	}
	return nil
}

// loadSnippet returns the source lines issues point into, or nil when
// they point into a syntax tree file.
func loadSnippet(logger *zap.Logger, filename string) *internal.SourceCode {
	if filename == "" || internal.IsASTFile(filename) {
		return nil
	}
	sourceCode, err := internal.ReadSourceCode(filename)
	if err != nil {
		if logger != nil {
			logger.Error("Error reading source file", zap.String("file", filename), zap.Error(err))
		}
		return nil
	}
	return sourceCode
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
