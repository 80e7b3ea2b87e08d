package basictypes

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// demoVariables shows the three ways to declare a variable and the zero
// value every type starts with.
func demoVariables(w io.Writer) {
	var name string = "Juan"
	age := 30
	height := 1.75
	isStudent := true

	fmt.Fprintf(w, "  name      %-6v  type %T\n", name, name)
	fmt.Fprintf(w, "  age       %-6v  type %T\n", age, age)
	fmt.Fprintf(w, "  height    %-6v  type %T\n", height, height)
	fmt.Fprintf(w, "  isStudent %-6v  type %T\n", isStudent, isStudent)

	// Declared without a value: every type has a usable zero value.
	var (
		s string
		n int
		f float64
		b bool
		p *int
	)
	fmt.Fprintf(w, "\n  zero values: %q %d %v %v %v\n", s, n, f, b, p)

	const greeting = "hello" // untyped constant, fixed at compile time
	fmt.Fprintf(w, "  const greeting = %q\n", greeting)
}

// demoStrings shows interpreted and raw string literals. Strings are
// immutable byte sequences, UTF-8 by convention.
func demoStrings(w io.Writer) {
	greeting := "Hello, world!"
	multiline := `This text
spans several
lines.`

	fmt.Fprintln(w, "  greeting:", greeting)
	fmt.Fprintf(w, "  raw multi-line literal:\n%s\n", indent(multiline))
	fmt.Fprintln(w, "  concatenation:", greeting+" Bye.")
}

// demoFormatting compares the ways to build a string from values.
func demoFormatting(w io.Writer) {
	name, age := "Juan", 30

	fmt.Fprintln(w, "  1. concatenation:   "+"My name is "+name+".")
	fmt.Fprintln(w, "  2. fmt.Sprintf:     "+fmt.Sprintf("My name is %s and I am %d.", name, age))

	var sb strings.Builder
	sb.WriteString("My name is ")
	sb.WriteString(name)
	fmt.Fprintf(&sb, " and I am %d.", age)
	fmt.Fprintln(w, "  3. strings.Builder: "+sb.String())

	fmt.Fprintln(w, "\n  common verbs:")
	fmt.Fprintf(w, "    %%v  %v\n", []int{1, 2})
	fmt.Fprintf(w, "    %%+v %+v\n", struct{ X, Y int }{1, 2})
	fmt.Fprintf(w, "    %%q  %q\n", "quoted")
	fmt.Fprintf(w, "    %%x  %x\n", 255)
	fmt.Fprintf(w, "    %%08.3f %08.3f\n", 3.14159)
}

// demoStringFuncs covers the strings package. Title casing lives in
// golang.org/x/text/cases because strings.Title is deprecated: it does not
// handle Unicode word boundaries.
func demoStringFuncs(w io.Writer) {
	text := "  go is amazing  "
	fmt.Fprintf(w, "  original:        %q\n", text)
	fmt.Fprintf(w, "  ToUpper:         %q\n", strings.ToUpper(text))
	fmt.Fprintf(w, "  cases.Title:     %q\n", cases.Title(language.English).String(text))
	fmt.Fprintf(w, "  TrimSpace:       %q\n", strings.TrimSpace(text))
	fmt.Fprintf(w, "  ReplaceAll:      %q\n", strings.ReplaceAll(text, "amazing", "great"))
	fmt.Fprintf(w, "  Fields:          %q\n", strings.Fields(text))
	fmt.Fprintf(w, "  Join:            %q\n", strings.Join([]string{"go", "is", "great"}, "_"))
	fmt.Fprintf(w, "  Index(\"go\"):     %d\n", strings.Index(text, "go"))
	fmt.Fprintf(w, "  Contains(\"is\"):  %v\n", strings.Contains(text, "is"))
}

func demoEscapes(w io.Writer) {
	raw := []string{`newline: \n`, `tab: \t`, `double quote: \"`, `backslash: \\`, `unicode: é`}
	fmt.Fprintln(w, "  as written (raw):")
	for _, e := range raw {
		fmt.Fprintln(w, "   ", e)
	}

	fmt.Fprintln(w, "\n  interpreted:")
	fmt.Fprint(w, "    newline:\n    example\n")
	fmt.Fprint(w, "    tab:\texample\n")
	fmt.Fprint(w, "    quotes: \"example\"\n")
	fmt.Fprint(w, "    unicode: café\n")
}

// demoRunes shows that len counts bytes while range walks runes.
func demoRunes(w io.Writer) {
	s := "héllo"
	fmt.Fprintf(w, "  s = %q  len (bytes) = %d  runes = %d\n", s, len(s), utf8.RuneCountInString(s))
	fmt.Fprintf(w, "  s[1] is a byte: %d (%T)\n", s[1], s[1])
	fmt.Fprint(w, "  range yields runes:")
	for i, r := range s {
		fmt.Fprintf(w, " %d:%c", i, r)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  []rune(s)[1] = %c\n", []rune(s)[1])
}

func indent(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = "    " + l
	}
	return strings.Join(lines, "\n")
}
