// Package pyast parses Python source with tree-sitter and exposes the small,
// closed set of syntax nodes the style rules inspect: function definitions,
// class definitions, attribute accesses and plain assignments.
//
// Parsing is eager. The concrete syntax tree is released as soon as the
// typed nodes are extracted, so a Module holds plain Go values only and is
// safe to share between goroutines.
package pyast
