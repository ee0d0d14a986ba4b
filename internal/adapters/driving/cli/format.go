package cli

import (
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/custodia-labs/seek/internal/core/domain"
)

// defaultWidth is used when stdout is not a terminal.
const defaultWidth = 100

var numbers = message.NewPrinter(language.English)

// formatCount formats a download count with thousands separators.
// Unknown counts are shown as "-".
func formatCount(n *uint64) string {
	if n == nil {
		return "-"
	}
	return numbers.Sprintf("%d", *n)
}

// terminalWidth returns the width of stdout, or defaultWidth.
func terminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return defaultWidth
	}
	return w
}

// truncate shortens s to at most width runes, ending with an ellipsis.
func truncate(s string, width int) string {
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

// markers returns the P/I badges for project and installed crates.
func markers(c domain.Crate) string {
	var b strings.Builder
	if c.InProject() {
		b.WriteByte('P')
	}
	if c.Installed() {
		b.WriteByte('I')
	}
	return b.String()
}

// orDash returns "-" for empty strings.
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
