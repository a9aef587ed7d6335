package format

import (
	"runtime"
	"strings"
)

// Symbol constants for failures
const (
	SymbolCross         = "✖"
	SymbolCrossFallback = "×" // Windows consoles lack the heavy cross
)

// CrossSymbol returns the failure glyph for the current platform.
func CrossSymbol() string {
	if runtime.GOOS == "windows" {
		return SymbolCrossFallback
	}
	return SymbolCross
}

// Indentation constants
const (
	IndentBase = "  " // 2 spaces
)

// Pad prefixes s with the base indent.
func Pad(s string) string {
	return IndentBase + s
}

// Indent prefixes s with two base indents (4 spaces).
func Indent(s string) string {
	return Pad(Pad(s))
}

// ErrorIndent prefixes s with three base indents (6 spaces).
func ErrorIndent(s string) string {
	return Pad(Indent(s))
}

// ExtraIndent returns n spaces. Negative n yields no indent.
func ExtraIndent(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}

// block prefixes every line with extra spaces and joins them with newlines
func block(lines []string, extra int) string {
	prefix := ExtraIndent(extra)
	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(prefix)
		b.WriteString(line)
	}
	return b.String()
}
