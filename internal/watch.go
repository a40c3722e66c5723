package internal

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	tt "github.com/gnolang/solint/internal/types"
)

// defaultDebounce lets a parser finish rewriting a tree before it is read.
const defaultDebounce = 100 * time.Millisecond

// WatchHandler receives the result of every re-run.
type WatchHandler func(filename string, issues []tt.Issue, err error)

// Watch re-lints syntax tree files under dirs whenever they are written,
// until ctx is done.
func (e *Engine) Watch(ctx context.Context, dirs []string, handle WatchHandler) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("error creating watcher: %w", err)
	}
	defer watcher.Close()

	for _, dir := range dirs {
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return watcher.Add(path)
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("error adding directory to watcher: %w", err)
		}
	}

	pending := make(map[string]struct{})
	timer := time.NewTimer(defaultDebounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !e.shouldRelint(event) {
				continue
			}
			pending[event.Name] = struct{}{}
			timer.Reset(defaultDebounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			if e.logger != nil {
				e.logger.Error("watcher error", zap.Error(err))
			}
		case <-timer.C:
			for name := range pending {
				issues, err := e.Run(name)
				handle(name, issues, err)
			}
			pending = make(map[string]struct{})
		}
	}
}

func (e *Engine) shouldRelint(event fsnotify.Event) bool {
	if !IsASTFile(event.Name) {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create) != 0
}
