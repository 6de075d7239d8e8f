package render

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Wrap word-wraps text to width and indents every resulting line.
// Existing line breaks are kept; blank lines stay blank.
func Wrap(text string, width int, indent string) []string {
	var lines []string
	for _, para := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		if strings.TrimSpace(para) == "" {
			lines = append(lines, "")
			continue
		}
		for _, l := range strings.Split(ansi.Wordwrap(para, width, ""), "\n") {
			lines = append(lines, indent+strings.TrimRight(l, " "))
		}
	}
	return lines
}
