// Package basictypes covers variables, strings, numbers and conversions.
package basictypes

import (
	"io"

	"github.com/marcodamonte/go-guide/internal/display"
)

// Run prints the basic types topic to w.
func Run(w io.Writer) {
	display.Section(w, "Variables and zero values")
	demoVariables(w)

	display.Section(w, "Strings")
	demoStrings(w)

	display.Section(w, "Formatting")
	demoFormatting(w)

	display.Section(w, "String functions")
	demoStringFuncs(w)

	display.Section(w, "Escape sequences")
	demoEscapes(w)

	display.Section(w, "Bytes and runes")
	demoRunes(w)

	display.Section(w, "Numbers and operators")
	demoNumbers(w)

	display.Section(w, "math package")
	demoMath(w)

	display.Section(w, "Conversions")
	demoConversions(w)

	display.Section(w, "Locale-aware number formatting")
	demoLocale(w)
}
