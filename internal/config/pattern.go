package config

import (
	"fmt"
	"regexp"
)

// Pattern is one expected console line. The source text is a Go regular
// expression matched unanchored against single output lines, so a plain
// literal matches as a substring. This mirrors the regex-by-default matching
// of expect-style tooling.
type Pattern struct {
	Source string
	re     *regexp.Regexp
}

// CompilePattern compiles a pattern source. An uncompilable source is a
// specification error, caught at load time rather than mid-run.
func CompilePattern(source string) (Pattern, error) {
	re, err := regexp.Compile(source)
	if err != nil {
		return Pattern{}, fmt.Errorf("invalid pattern %q: %w", source, err)
	}
	return Pattern{Source: source, re: re}, nil
}

// MustCompilePattern is like CompilePattern but panics on error. For tests
// and static pattern tables.
func MustCompilePattern(source string) Pattern {
	p, err := CompilePattern(source)
	if err != nil {
		panic(err)
	}
	return p
}

// MatchLine reports whether one console line satisfies the pattern.
func (p Pattern) MatchLine(line string) bool {
	return p.re.MatchString(line)
}

func (p Pattern) String() string {
	return p.Source
}
