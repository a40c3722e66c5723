package internal

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gobwas/glob"
	"go.uber.org/zap"

	"github.com/gnolang/solint/internal/ast"
	"github.com/gnolang/solint/internal/metrics"
	"github.com/gnolang/solint/internal/nolint"
	"github.com/gnolang/solint/internal/rules"
	tt "github.com/gnolang/solint/internal/types"
)

// Engine manages the linting process.
//
// The engine itself is safe to share between goroutines once configured:
// every run builds its own rule instances, reporter and dispatch table.
type Engine struct {
	configured   map[string]tt.ConfigRule
	ignoredRules map[string]bool
	ignoredPaths []glob.Glob
	cache        *Cache
	metrics      *metrics.Metrics
	logger       *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

func WithCache(cache *Cache) Option {
	return func(e *Engine) { e.cache = cache }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// NewEngine creates a new lint engine. Every rule id in the configuration
// must name an available rule.
func NewEngine(configured map[string]tt.ConfigRule, opts ...Option) (*Engine, error) {
	e := &Engine{
		configured:   make(map[string]tt.ConfigRule),
		ignoredRules: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(e)
	}
	if err := e.applyRules(configured); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Engine) applyRules(configured map[string]tt.ConfigRule) error {
	known := make(map[string]bool)
	for _, id := range rules.IDs() {
		known[id] = true
	}

	for key, rule := range configured {
		id, deprecated := rules.Canonical(key)
		if deprecated && e.logger != nil {
			e.logger.Warn("deprecated rule name", zap.String("rule", key), zap.String("replacement", id))
		}
		if !known[id] {
			return fmt.Errorf("%w: unknown rule %q", rules.ErrConfiguration, key)
		}
		e.configured[id] = rule
	}
	return nil
}

// IgnoreRule disables a rule for every subsequent run.
func (e *Engine) IgnoreRule(rule string) {
	id, _ := rules.Canonical(rule)
	e.ignoredRules[id] = true
}

// IgnorePath skips every file whose path or base name matches the glob
// pattern. "**" crosses directories, "*" does not.
func (e *Engine) IgnorePath(pattern string) error {
	g, err := glob.Compile(pattern, '/')
	if err != nil {
		return fmt.Errorf("%w: invalid ignore pattern %q: %v", rules.ErrConfiguration, pattern, err)
	}
	e.ignoredPaths = append(e.ignoredPaths, g)
	return nil
}

func (e *Engine) isIgnoredPath(path string) bool {
	if len(e.ignoredPaths) == 0 {
		return false
	}
	slashed := filepath.ToSlash(filepath.Clean(path))
	base := filepath.Base(path)
	for _, g := range e.ignoredPaths {
		if g.Match(slashed) || g.Match(base) {
			return true
		}
	}
	return false
}

// ActiveRules returns the ids of the rules a run will build, sorted.
func (e *Engine) ActiveRules() []string {
	var active []string
	for _, id := range rules.IDs() {
		if e.ignoredRules[id] {
			continue
		}
		if e.configured[id].IsOff() {
			continue
		}
		active = append(active, id)
	}
	return active
}

// Run lints the syntax tree stored at filename. When the Solidity source
// the tree was produced from sits next to it, issues point into that file
// and its solhint directives are honoured. Ignored paths yield no issues.
func (e *Engine) Run(filename string) ([]tt.Issue, error) {
	if e.isIgnoredPath(filename) {
		return nil, nil
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", filename, err)
	}

	// the source carries the directives, so it is part of the cache key
	target := filename
	var source []byte
	if src := SourcePathFor(filename); src != "" {
		if content, err := os.ReadFile(src); err == nil {
			target = src
			source = content
		}
	}

	hash := e.contentHash(data, source)
	if e.cache != nil {
		if issues, ok := e.cache.Get(filename, hash); ok {
			if e.metrics != nil {
				e.metrics.ObserveCached(issues)
			}
			return issues, nil
		}
	}

	root, err := ast.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", filename, err)
	}

	var lines []string
	if source != nil {
		lines = newSourceCode(source).Lines
	}

	issues, err := e.analyze(target, root, lines)
	if err != nil {
		return nil, err
	}

	if e.cache != nil {
		e.cache.Set(filename, hash, issues)
	}
	return issues, nil
}

// RunSource lints an in-memory syntax tree.
func (e *Engine) RunSource(source []byte) ([]tt.Issue, error) {
	root, err := ast.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("error parsing content: %w", err)
	}
	return e.analyze("", root, nil)
}

// analyze runs one traversal over root with fresh rule instances.
func (e *Engine) analyze(filename string, root *ast.Node, lines []string) ([]tt.Issue, error) {
	start := time.Now()

	collector := NewCollector(filename)
	active := e.ActiveRules()
	instances := make([]rules.Rule, 0, len(active))
	for _, id := range active {
		r, err := rules.New(id, collector, e.configured[id].Data)
		if err != nil {
			return nil, err
		}
		instances = append(instances, r)
	}

	if err := rules.NewDispatcher(instances...).Run(root); err != nil {
		return nil, fmt.Errorf("error analyzing %s: %w", filename, err)
	}

	nolintMgr := nolint.ParseLines(lines)
	issues := make([]tt.Issue, 0, len(collector.Issues()))
	for _, issue := range collector.Issues() {
		if nolintMgr.IsNolint(issue.Start.Line, issue.Rule) {
			continue
		}
		issue.Severity = e.severityFor(issue)
		issues = append(issues, issue)
	}

	sort.SliceStable(issues, func(i, j int) bool {
		a, b := issues[i].Start, issues[j].Start
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Column < b.Column
	})

	if e.metrics != nil {
		e.metrics.ObserveFile(time.Since(start))
		e.metrics.AddIssues(issues)
	}
	if e.logger != nil {
		e.logger.Debug("analyzed", zap.String("file", filename), zap.Int("issues", len(issues)))
	}

	return issues, nil
}

// severityFor returns the configured severity of the issue's rule, or the
// level it was reported with when the configuration sets none.
func (e *Engine) severityFor(issue tt.Issue) tt.Severity {
	if s, ok := e.configured[issue.Rule].Override(); ok {
		return s
	}
	return issue.Severity
}

// contentHash keys cache entries on the tree, its source and the rule
// configuration. A nil source means the tree was linted without one.
func (e *Engine) contentHash(tree, source []byte) string {
	h := sha256.New()
	fmt.Fprintf(h, "tree:%d\x00", len(tree))
	h.Write(tree)
	if source == nil {
		h.Write([]byte("\x00nosource"))
	} else {
		fmt.Fprintf(h, "\x00source:%d\x00", len(source))
		h.Write(source)
	}
	for _, id := range e.ActiveRules() {
		cfg := e.configured[id]
		severity := "default"
		if s, ok := cfg.Override(); ok {
			severity = s.String()
		}
		fmt.Fprintf(h, "\x00%s=%s:%v", id, severity, cfg.Data)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// IsASTFile reports whether path names a syntax tree file the engine reads.
func IsASTFile(path string) bool {
	return strings.HasSuffix(path, ".sol.json") || strings.HasSuffix(path, ".ast.json")
}

// SourcePathFor maps a syntax tree file to the Solidity file it was
// produced from: "Token.sol.json" and "Token.ast.json" both map to
// "Token.sol". Other names have no known source.
func SourcePathFor(astPath string) string {
	switch {
	case strings.HasSuffix(astPath, ".sol.json"):
		return strings.TrimSuffix(astPath, ".json")
	case strings.HasSuffix(astPath, ".ast.json"):
		return strings.TrimSuffix(astPath, ".ast.json") + ".sol"
	default:
		return ""
	}
}

// SourceCode stores the content of a source code file.
type SourceCode struct {
	Lines []string
}

// ReadSourceCode reads the content of a file and returns it as a `SourceCode` struct.
func ReadSourceCode(filename string) (*SourceCode, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return newSourceCode(content), nil
}

func newSourceCode(content []byte) *SourceCode {
	return &SourceCode{Lines: strings.Split(string(content), "\n")}
}
