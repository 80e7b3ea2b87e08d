// Package display holds the small set of framing helpers shared by the
// runner and the topic packages.
package display

import (
	"fmt"
	"io"
	"strings"
)

const width = 50

// Section prints a sub-section title inside a topic.
func Section(w io.Writer, title string) {
	fmt.Fprintf(w, "\n━━━ %s ━━━\n", title)
}

// Header prints the title line the runner writes before each topic.
func Header(w io.Writer, title string) {
	fmt.Fprintf(w, "\n=== %s ===\n", strings.ToUpper(title))
}

// Banner prints a centered title between two rules.
func Banner(w io.Writer, title string) {
	rule := strings.Repeat("=", width)
	pad := (width - len([]rune(title))) / 2
	if pad < 0 {
		pad = 0
	}
	fmt.Fprintf(w, "%s\n%s%s\n%s\n", rule, strings.Repeat(" ", pad), title, rule)
}
