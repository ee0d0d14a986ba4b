// Package format provides text helpers shared by the TUI components.
package format

import (
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Count formats a download count with thousands separators, or "-" if unknown.
func Count(n *uint64) string {
	if n == nil {
		return "-"
	}
	return printer.Sprintf("%d", *n)
}

// Int formats n with thousands separators.
func Int(n int) string {
	return printer.Sprintf("%d", n)
}

// Date formats t as YYYY-MM-DD, or "-" if unknown.
func Date(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("2006-01-02")
}

// Truncate collapses whitespace and shortens s to at most width runes.
func Truncate(s string, width int) string {
	s = strings.Join(strings.Fields(s), " ")
	if width <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	runes := []rune(s)
	return string(runes[:width-1]) + "…"
}

// Pad truncates s to width runes and pads it with spaces on the right.
func Pad(s string, width int) string {
	s = Truncate(s, width)
	if n := utf8.RuneCountInString(s); n < width {
		s += strings.Repeat(" ", width-n)
	}
	return s
}

// PadLeft truncates s to width runes and pads it with spaces on the left.
func PadLeft(s string, width int) string {
	s = Truncate(s, width)
	if n := utf8.RuneCountInString(s); n < width {
		s = strings.Repeat(" ", width-n) + s
	}
	return s
}
