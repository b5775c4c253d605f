package lints

import (
	"regexp"
	"strings"
	"unicode/utf8"

	tt "github.com/gnolang/pycheck/internal/types"
)

const (
	maxLineLength  = 79
	indentWidth    = 4
	maxBlankLines  = 2
	commentMarker  = "#"
	todoMarker     = "TODO"
	minCommentsGap = "  "
)

var constructorSpacesRe = regexp.MustCompile(`^ *(class|def) {2,}([\p{L}\p{N}_]+)`)

// LineScanner runs the line level rules over the physical lines of one file.
// The zero value is ready to use; a scanner must not be reused across files.
type LineScanner struct {
	blankRun int
}

// ScanLines runs the line level rules over lines, numbered from 1.
func ScanLines(lines []string) []tt.Violation {
	var (
		s          LineScanner
		violations []tt.Violation
	)
	for i, line := range lines {
		violations = s.Scan(i+1, line, violations)
	}
	return violations
}

// Scan checks one line and appends any violations to dst.
func (s *LineScanner) Scan(lineNo int, line string, dst []tt.Violation) []tt.Violation {
	if len(line) == 0 {
		s.blankRun++
		return dst
	}

	if s.blankRun > maxBlankLines {
		dst = append(dst, tt.NewViolation(tt.BlankLines, lineNo, ""))
	}
	s.blankRun = 0

	if isTooLong(line) {
		dst = append(dst, tt.NewViolation(tt.TooLong, lineNo, ""))
	}
	if hasBadIndentation(line) {
		dst = append(dst, tt.NewViolation(tt.Indentation, lineNo, ""))
	}
	if hasTrailingSemicolon(line) {
		dst = append(dst, tt.NewViolation(tt.Semicolon, lineNo, ""))
	}
	if hasTightInlineComment(line) {
		dst = append(dst, tt.NewViolation(tt.InlineCommentSpaces, lineNo, ""))
	}
	if hasTodo(line) {
		dst = append(dst, tt.NewViolation(tt.Todo, lineNo, ""))
	}
	if name, ok := constructorSpaces(line); ok {
		dst = append(dst, tt.NewViolation(tt.ConstructorSpaces, lineNo, name))
	}
	return dst
}

func isTooLong(line string) bool {
	return utf8.RuneCountInString(line) > maxLineLength
}

func hasBadIndentation(line string) bool {
	indent := len(line) - len(strings.TrimLeft(line, " "))
	return indent%indentWidth != 0
}

// splitComment splits line at the first comment marker. ok is false when
// the line has no comment.
func splitComment(line string) (code, comment string, ok bool) {
	return strings.Cut(line, commentMarker)
}

func hasTrailingSemicolon(line string) bool {
	code, _, _ := splitComment(line)
	return strings.HasSuffix(strings.TrimSpace(code), ";")
}

func hasTightInlineComment(line string) bool {
	code, _, ok := splitComment(line)
	if !ok || strings.HasPrefix(line, commentMarker) {
		return false
	}
	return !strings.HasSuffix(code, minCommentsGap)
}

// hasTodo matches the marker as a plain substring, so "mastodon" counts too.
func hasTodo(line string) bool {
	_, comment, ok := splitComment(line)
	if !ok {
		return false
	}
	// only the text up to the next marker, as in "x  # a # todo"
	comment, _, _ = strings.Cut(comment, commentMarker)
	return strings.Contains(strings.ToUpper(comment), todoMarker)
}

func constructorSpaces(line string) (string, bool) {
	m := constructorSpacesRe.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[2], true
}
