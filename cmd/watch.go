package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/solint/formatter"
	"github.com/gnolang/solint/internal"
	tt "github.com/gnolang/solint/internal/types"
	"github.com/gnolang/solint/lint"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dirs...]",
	Short: "Re-lint syntax trees whenever they change",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			args = []string{"."}
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		engine, err := lint.New(cfgFile, internal.WithLogger(logger))
		if err != nil {
			logger.Fatal("Failed to initialize lint engine", zap.Error(err))
		}
		for _, rule := range splitList(ignoreRules) {
			engine.IgnoreRule(rule)
		}

		logger.Info("Watching for changes", zap.Strings("dirs", args))
		if err := engine.Watch(ctx, args, watchHandler(logger, cmd.OutOrStdout())); err != nil {
			logger.Fatal("Watcher stopped", zap.Error(err))
		}
	},
}

func init() {
	watchCmd.Flags().StringVar(&ignoreRules, "ignore", "", "Comma-separated list of lint rules to ignore")
}

func watchHandler(logger *zap.Logger, w io.Writer) internal.WatchHandler {
	return func(filename string, issues []tt.Issue, err error) {
		if err != nil {
			logger.Error("Error linting file", zap.String("file", filename), zap.Error(err))
			return
		}
		logger.Info("Linted", zap.String("file", filename), zap.Int("issues", len(issues)))
		if len(issues) == 0 {
			return
		}

		byFile := make(map[string][]tt.Issue)
		var order []string
		for _, issue := range issues {
			if _, ok := byFile[issue.Filename]; !ok {
				order = append(order, issue.Filename)
			}
			byFile[issue.Filename] = append(byFile[issue.Filename], issue)
		}
		for _, name := range order {
			fmt.Fprint(w, formatter.GenerateFormattedIssue(byFile[name], loadSnippet(logger, name)))
		}
	}
}
