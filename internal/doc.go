// Package internal provides the core of the Solidity naming linter.
//
// The Engine reads syntax trees produced by @solidity-parser/parser (stored
// as "*.sol.json" or "*.ast.json" files), builds a fresh set of naming rules
// for every run and walks the tree once, dispatching enter and exit events
// to the rules subscribed to each node kind.
//
// Key components:
//
// Engine: coordinates a run. It applies the rule configuration, filters
// findings through solhint directives found in the sibling ".sol" file and
// optionally consults a Cache and records Metrics.
//
// Collector: the reporter handed to rules. It turns findings into Issues.
//
// Cache: msgpack-encoded results keyed by file path and content hash.
//
// Watch: re-lints syntax tree files as they are rewritten.
//
// Usage:
//
//	engine, err := internal.NewEngine(nil)
//	if err != nil {
//	    // handle error
//	}
//
//	issues, err := engine.Run("contracts/Token.sol.json")
//	if err != nil {
//	    // handle error
//	}
//
//	for _, issue := range issues {
//	    fmt.Printf("%s: %s\n", issue.Start, issue.Message)
//	}
//
// This package is intended for internal use within the linting tool and should not be
// imported by external packages.
package internal
