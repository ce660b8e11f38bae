// Package ansi removes terminal escape sequences from captured process output.
package ansi

import "regexp"

// Pattern matches a CSI escape sequence: ESC '[' followed by parameter and
// intermediate bytes, terminated by a final byte.
const Pattern = `\x1B\[[0-?]*[ -/]*[@-~]`

// Stripper holds the compiled escape-sequence pattern.
// It is safe to share between callers.
type Stripper struct {
	re *regexp.Regexp
}

// NewStripper compiles Pattern and returns a ready-to-use Stripper.
func NewStripper() *Stripper {
	return &Stripper{re: regexp.MustCompile(Pattern)}
}

// Strip returns text with every escape sequence removed.
func (s *Stripper) Strip(text string) string {
	return s.re.ReplaceAllString(text, "")
}
