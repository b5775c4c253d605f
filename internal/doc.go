// Package internal provides the rule-checking engine of pycheck.
//
// Key components:
//
// Engine: runs every rule over one file and returns its violations in
// report order (line, then rule code). It keeps no state between files.
//
// LintRule: the contract of a detector family. LineRule applies the text
// level checks to the physical lines of a file; TreeRule applies the naming
// and default value checks to its syntax tree.
//
// SourceFile: a file ready for analysis, holding its lines and its parsed
// tree. NewSourceFile builds one from raw source; a parse failure aborts
// the file.
//
// Usage:
//
//	engine := internal.NewEngine()
//	report, err := engine.Run(ctx, "path/to/file.py")
//	if err != nil {
//	    // file-scoped failure: unreadable or unparsable
//	}
//	for _, v := range report.Violations {
//	    fmt.Printf("%s: %s\n", report.Path, v)
//	}
package internal
