package lints

import "regexp"

var (
	// snakeCaseRe only anchors the start of the name: "foo_Bar1" passes.
	snakeCaseRe = regexp.MustCompile(`^[a-z_]+`)
	camelCaseRe = regexp.MustCompile(`^(?:[A-Z][a-z]*)+$`)
)

// IsSnakeCase reports whether name starts with lowercase letters or underscores.
func IsSnakeCase(name string) bool {
	return snakeCaseRe.MatchString(name)
}

// IsCamelCase reports whether name consists only of capitalized words.
func IsCamelCase(name string) bool {
	return camelCaseRe.MatchString(name)
}
