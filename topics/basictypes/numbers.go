package basictypes

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

func demoNumbers(w io.Writer) {
	var (
		integer   int        = 42
		small     int8       = 127
		floating  float64    = 3.14159
		complexNo complex128 = complex(1, 2)
	)
	fmt.Fprintf(w, "  %-8v %T\n", integer, integer)
	fmt.Fprintf(w, "  %-8v %T (range -128..127)\n", small, small)
	fmt.Fprintf(w, "  %-8v %T\n", floating, floating)
	fmt.Fprintf(w, "  %-8v %T  real=%v imag=%v\n", complexNo, complexNo, real(complexNo), imag(complexNo))

	a, b := 5, 3
	fmt.Fprintln(w, "\n  integer operators:")
	fmt.Fprintf(w, "    %d + %d = %d\n", a, b, a+b)
	fmt.Fprintf(w, "    %d - %d = %d\n", a, b, a-b)
	fmt.Fprintf(w, "    %d * %d = %d\n", a, b, a*b)
	fmt.Fprintf(w, "    %d / %d = %d   (integer division truncates)\n", a, b, a/b)
	fmt.Fprintf(w, "    %d %% %d = %d\n", a, b, a%b)
	fmt.Fprintf(w, "    float64(%d) / float64(%d) = %.4f\n", a, b, float64(a)/float64(b))
	fmt.Fprintf(w, "    math.Pow(%d, %d) = %v   (no ** operator)\n", a, b, math.Pow(float64(a), float64(b)))

	// Fixed-size integers wrap around silently.
	small++
	fmt.Fprintf(w, "\n  int8(127) + 1 wraps to %d\n", small)
}

func demoMath(w io.Writer) {
	fmt.Fprintf(w, "  math.Pi          %v\n", math.Pi)
	fmt.Fprintf(w, "  math.Sqrt(16)    %v\n", math.Sqrt(16))
	fmt.Fprintf(w, "  math.Floor(3.7)  %v\n", math.Floor(3.7))
	fmt.Fprintf(w, "  math.Ceil(3.7)   %v\n", math.Ceil(3.7))
	fmt.Fprintf(w, "  math.Round(2.5)  %v\n", math.Round(2.5))
	fmt.Fprintf(w, "  math.Sin(Pi/2)   %v\n", math.Sin(math.Pi/2))
	fmt.Fprintf(w, "  math.MaxInt64    %v\n", int64(math.MaxInt64))
	fmt.Fprintf(w, "  math.Inf(1)      %v\n", math.Inf(1))
}

// demoConversions shows that Go never converts implicitly: numeric types
// convert with T(v), strings parse through strconv and report errors.
func demoConversions(w io.Writer) {
	n, err := strconv.Atoi("42")
	fmt.Fprintf(w, "  strconv.Atoi(\"42\")          = %d, err=%v\n", n, err)

	f, err := strconv.ParseFloat("3.14", 64)
	fmt.Fprintf(w, "  strconv.ParseFloat(\"3.14\")  = %v, err=%v\n", f, err)

	_, err = strconv.Atoi("forty-two")
	fmt.Fprintf(w, "  strconv.Atoi(\"forty-two\")   → %v\n", err)

	fmt.Fprintf(w, "  strconv.Itoa(42)            = %q\n", strconv.Itoa(42))
	x := 3.99
	fmt.Fprintf(w, "  int(%v)                   = %d (truncates)\n", x, int(x))
	fmt.Fprintf(w, "  string(rune(65))            = %q\n", string(rune(65)))

	b, _ := strconv.ParseBool("true")
	fmt.Fprintf(w, "  strconv.ParseBool(\"true\")   = %v\n", b)
	fmt.Fprintln(w, "  bool(1) does not compile; write n != 0 instead:", n != 0)
}

// demoLocale formats the same numbers for different locales with
// golang.org/x/text/message.
func demoLocale(w io.Writer) {
	for _, tag := range []language.Tag{language.English, language.Spanish, language.German} {
		p := message.NewPrinter(tag)
		fmt.Fprintf(w, "  %-3s %s\n", tag, p.Sprintf("%d  %.2f  %v", 1234567, 1234.5, number.Percent(0.25)))
	}
}
