package internal

import (
	"go/token"

	"github.com/gnolang/solint/internal/ast"
	tt "github.com/gnolang/solint/internal/types"
)

const namingCategory = "naming"

// Collector is the reporter handed to the rules of one run.
// It turns every finding into an Issue positioned at the reported node.
type Collector struct {
	filename string
	issues   []tt.Issue
}

func NewCollector(filename string) *Collector {
	return &Collector{filename: filename}
}

func (c *Collector) Error(n *ast.Node, ruleID, message string) {
	c.add(n, ruleID, message, tt.SeverityError)
}

func (c *Collector) Warn(n *ast.Node, ruleID, message string) {
	c.add(n, ruleID, message, tt.SeverityWarning)
}

// Issues returns the findings in the order they were reported.
func (c *Collector) Issues() []tt.Issue {
	return c.issues
}

func (c *Collector) add(n *ast.Node, ruleID, message string, severity tt.Severity) {
	issue := tt.Issue{
		Rule:     ruleID,
		Category: namingCategory,
		Filename: c.filename,
		Message:  message,
		Severity: severity,
	}
	if n != nil && n.Loc != nil {
		issue.Start = c.position(n.Loc.Start)
		issue.End = c.position(n.Loc.End)
	}
	c.issues = append(c.issues, issue)
}

// position converts the parser's 0-based column to a 1-based one.
func (c *Collector) position(p ast.Position) token.Position {
	return token.Position{
		Filename: c.filename,
		Line:     p.Line,
		Column:   p.Column + 1,
	}
}
