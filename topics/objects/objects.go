// Package objects shows how Go expresses object-oriented ideas: structs
// with methods, embedding instead of inheritance, unexported fields for
// encapsulation and interfaces for polymorphism.
package objects

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/marcodamonte/go-guide/internal/display"
)

// Run prints the object-oriented topic to w.
func Run(w io.Writer) {
	display.Section(w, "Structs and methods")
	demoStructs(w)

	display.Section(w, "Embedding instead of inheritance")
	demoEmbedding(w)

	display.Section(w, "Encapsulation")
	demoEncapsulation(w)

	display.Section(w, "Properties: getters and setters")
	demoProperties(w)

	display.Section(w, "Special methods: String, Equal, operators")
	demoSpecial(w)

	display.Section(w, "Package-level values and constructors")
	demoConstructors(w)

	display.Section(w, "Polymorphism with interfaces")
	demoPolymorphism(w)

	display.Section(w, "Type assertions and type switches")
	demoAssertions(w)

	display.Section(w, "Value types and struct tags")
	demoValueTypes(w)

	display.Section(w, "Exercise: library management")
	demoLibrary(w)
}

// ── Structs and embedding ────────────────────────────────────────────────────

// Person is a plain struct with methods.
type Person struct {
	Name string
	Age  int
}

func (p Person) Greet() string {
	return fmt.Sprintf("Hi, I am %s and I am %d", p.Name, p.Age)
}

// Birthday needs a pointer receiver to change the caller's value.
func (p *Person) Birthday() { p.Age++ }

// Student embeds Person: Person's fields and methods are promoted.
type Student struct {
	Person
	School string
}

// Greet shadows Person.Greet and still reaches it explicitly.
func (s Student) Greet() string {
	return s.Person.Greet() + " and I study at " + s.School
}

func demoStructs(w io.Writer) {
	p := Person{Name: "Ana", Age: 28}
	fmt.Fprintln(w, " ", p.Greet())
	p.Birthday()
	fmt.Fprintln(w, "  after Birthday():", p.Age)

	q := p
	q.Name = "Copy"
	fmt.Fprintf(w, "  assignment copies: p.Name=%s q.Name=%s\n", p.Name, q.Name)
}

func demoEmbedding(w io.Writer) {
	s := Student{Person: Person{Name: "Luis", Age: 20}, School: "Go Academy"}
	fmt.Fprintln(w, " ", s.Greet())
	fmt.Fprintln(w, "  promoted field s.Name:", s.Name)
	s.Birthday()
	fmt.Fprintln(w, "  promoted method s.Birthday():", s.Age)

	// A Student is not a Person; pass the embedded value explicitly.
	describe := func(p Person) string { return p.Name }
	fmt.Fprintln(w, "  describe(s.Person):", describe(s.Person))
}

// ── Encapsulation and properties ─────────────────────────────────────────────

// account hides its balance; other packages go through the methods.
type account struct {
	owner   string
	balance float64
	history []string
}

func (a *account) deposit(amount float64) error {
	if amount <= 0 {
		return errors.New("deposit must be positive")
	}
	a.balance += amount
	a.history = append(a.history, fmt.Sprintf("+%.2f", amount))
	return nil
}

func (a *account) withdraw(amount float64) error {
	if amount > a.balance {
		return fmt.Errorf("cannot withdraw %.2f from %.2f", amount, a.balance)
	}
	a.balance -= amount
	a.history = append(a.history, fmt.Sprintf("-%.2f", amount))
	return nil
}

func (a *account) Balance() float64 { return a.balance }

func demoEncapsulation(w io.Writer) {
	acct := &account{owner: "Ana"}
	_ = acct.deposit(100)
	_ = acct.withdraw(30)
	if err := acct.withdraw(500); err != nil {
		fmt.Fprintln(w, "  withdraw:", err)
	}
	fmt.Fprintf(w, "  %s balance %.2f history %v\n", acct.owner, acct.Balance(), acct.history)
	fmt.Fprintln(w, "  lower-case identifiers are invisible outside the package")
}

// absoluteZero is the lowest valid Celsius value.
const absoluteZero = -273.15

// Temperature stores Celsius and exposes Fahrenheit as a derived property.
type Temperature struct {
	celsius float64
}

func (t *Temperature) Celsius() float64 { return t.celsius }

// SetCelsius rejects values below absolute zero.
func (t *Temperature) SetCelsius(c float64) error {
	if c < absoluteZero {
		return fmt.Errorf("%.2f°C is below absolute zero", c)
	}
	t.celsius = c
	return nil
}

func (t *Temperature) Fahrenheit() float64 { return t.celsius*9/5 + 32 }

func (t *Temperature) SetFahrenheit(f float64) error {
	return t.SetCelsius((f - 32) * 5 / 9)
}

func demoProperties(w io.Writer) {
	var t Temperature
	_ = t.SetCelsius(25)
	fmt.Fprintf(w, "  %.1f°C = %.1f°F\n", t.Celsius(), t.Fahrenheit())
	_ = t.SetFahrenheit(212)
	fmt.Fprintf(w, "  %.1f°F = %.1f°C\n", t.Fahrenheit(), t.Celsius())
	if err := t.SetCelsius(-300); err != nil {
		fmt.Fprintln(w, "  SetCelsius(-300):", err)
	}
}

// ── Special methods ──────────────────────────────────────────────────────────

// Vector2D is a small value type with operator-like methods.
type Vector2D struct {
	X, Y float64
}

func (v Vector2D) String() string           { return fmt.Sprintf("Vector2D(%g, %g)", v.X, v.Y) }
func (v Vector2D) Add(o Vector2D) Vector2D  { return Vector2D{v.X + o.X, v.Y + o.Y} }
func (v Vector2D) Sub(o Vector2D) Vector2D  { return Vector2D{v.X - o.X, v.Y - o.Y} }
func (v Vector2D) Scale(k float64) Vector2D { return Vector2D{v.X * k, v.Y * k} }
func (v Vector2D) Dot(o Vector2D) float64   { return v.X*o.X + v.Y*o.Y }
func (v Vector2D) Len() float64             { return math.Hypot(v.X, v.Y) }
func (v Vector2D) Equal(o Vector2D) bool    { return v == o }
func (v Vector2D) Less(o Vector2D) bool     { return v.Len() < o.Len() }
func (v Vector2D) IsZero() bool             { return v == Vector2D{} }
func (v Vector2D) Neg() Vector2D            { return v.Scale(-1) }

func demoSpecial(w io.Writer) {
	a, b := Vector2D{3, 4}, Vector2D{1, 2}
	fmt.Fprintln(w, "  a =", a, " b =", b)
	fmt.Fprintln(w, "  a.Add(b)   =", a.Add(b))
	fmt.Fprintln(w, "  a.Sub(b)   =", a.Sub(b))
	fmt.Fprintln(w, "  a.Scale(2) =", a.Scale(2))
	fmt.Fprintln(w, "  a.Dot(b)   =", a.Dot(b))
	fmt.Fprintln(w, "  a.Len()    =", a.Len())
	fmt.Fprintln(w, "  a.Equal(Vector2D{3, 4}) =", a.Equal(Vector2D{3, 4}))
	fmt.Fprintln(w, "  b.Less(a)  =", b.Less(a))
	fmt.Fprintln(w, "  a.Neg()    =", a.Neg(), " zero?", Vector2D{}.IsZero())
}

// ── Constructors and package-level values ────────────────────────────────────

// Constants and plain functions live at package level; Go has no static
// methods.
const goldenRatio = 1.618033988749895

func isEven(n int) bool { return n%2 == 0 }

// newSquare is a named constructor, the idiom that replaces alternative
// class constructors.
func newSquare(side float64) Rectangle { return Rectangle{Width: side, Height: side} }

func demoConstructors(w io.Writer) {
	fmt.Fprintln(w, "  goldenRatio =", goldenRatio)
	fmt.Fprintln(w, "  isEven(10)  =", isEven(10))
	fmt.Fprintln(w, "  newSquare(3) =", newSquare(3), "area", newSquare(3).Area())

	p := &Person{Name: "Marta"} // composite literal; Age takes its zero value
	fmt.Fprintf(w, "  &Person{Name: \"Marta\"} = %+v\n", *p)
}

// ── Polymorphism ─────────────────────────────────────────────────────────────

func demoPolymorphism(w io.Writer) {
	shapes := []Shape{Circle{Radius: 5}, Rectangle{Width: 4, Height: 6}, triangle{3, 4, 5}}
	for _, s := range shapes {
		name := fmt.Sprintf("%T", s)
		if str, ok := s.(fmt.Stringer); ok {
			name = str.String()
		}
		fmt.Fprintf(w, "  %-32s area %8.3f  perimeter %7.3f\n", name, s.Area(), s.Perimeter())
	}
	fmt.Fprintf(w, "  total area %.3f\n", TotalArea(shapes...))

	var none Shape
	fmt.Fprintln(w, "  zero-value interface is nil:", none == nil)
}

func demoAssertions(w io.Writer) {
	var s Shape = Circle{Radius: 2}
	if c, ok := s.(Circle); ok {
		fmt.Fprintf(w, "  s.(Circle) ok, radius %g\n", c.Radius)
	}
	if _, ok := s.(Rectangle); !ok {
		fmt.Fprintln(w, "  s.(Rectangle) fails without panicking when using comma-ok")
	}

	for _, v := range []any{Circle{1}, Rectangle{2, 3}, triangle{3, 4, 5}, "not a shape"} {
		switch v := v.(type) {
		case Circle:
			fmt.Fprintf(w, "  circle with radius %g\n", v.Radius)
		case Rectangle:
			fmt.Fprintf(w, "  rectangle %gx%g\n", v.Width, v.Height)
		case Shape:
			fmt.Fprintf(w, "  some other shape, area %.1f\n", v.Area())
		default:
			fmt.Fprintf(w, "  %T is not a shape\n", v)
		}
	}
}

// Point is a comparable value type with YAML field names.
type Point struct {
	X     int    `yaml:"x"`
	Y     int    `yaml:"y"`
	Label string `yaml:"label,omitempty"`
}

// ColorPoint extends Point; the inline tag flattens it when encoded.
type ColorPoint struct {
	Point `yaml:",inline"`
	Color string `yaml:"color"`
}

func demoValueTypes(w io.Writer) {
	p1, p2 := Point{X: 1, Y: 2}, Point{X: 1, Y: 2}
	fmt.Fprintf(w, "  %+v == %+v: %v\n", p1, p2, p1 == p2)

	cp := ColorPoint{Point: Point{X: 3, Y: 4, Label: "corner"}, Color: "red"}
	out, err := yaml.Marshal(cp)
	if err != nil {
		fmt.Fprintln(w, "  marshal:", err)
		return
	}
	fmt.Fprintln(w, "  yaml.Marshal(ColorPoint):")
	for line := range strings.Lines(string(out)) {
		fmt.Fprint(w, "    ", line)
	}

	var back ColorPoint
	if err := yaml.Unmarshal(out, &back); err != nil {
		fmt.Fprintln(w, "  unmarshal:", err)
		return
	}
	fmt.Fprintln(w, "  round trip equal:", back == cp)
}

func demoLibrary(w io.Writer) {
	lib := NewLibrary("Central Library")
	quijote := NewBook("Don Quixote", "Miguel de Cervantes", 863)
	solitude := NewBook("One Hundred Years of Solitude", "Gabriel García Márquez", 417)
	godfather := NewDVD("The Godfather", "Francis Ford Coppola", 175)

	for _, it := range []Item{quijote, solitude, godfather} {
		if err := lib.Add(it); err != nil {
			fmt.Fprintln(w, "  add:", err)
			continue
		}
		fmt.Fprintf(w, "  added %q\n", it.Title())
	}
	if err := lib.Add(NewBook("Don Quixote", "someone else", 1)); err != nil {
		fmt.Fprintln(w, "  add:", err)
	}
	fmt.Fprintln(w, "  id of", quijote.Title(), "=", quijote.ID())

	printItems(w, "all items", lib.Items())

	_ = lib.CheckOut(quijote.ID())
	if err := lib.CheckOut(quijote.ID()); err != nil {
		fmt.Fprintln(w, "  check out again:", err)
	}
	printItems(w, "available", lib.Available())

	_ = lib.Return(quijote.ID())
	if err := lib.Return(quijote.ID()); err != nil {
		fmt.Fprintln(w, "  return again:", err)
	}
	printItems(w, "available", lib.Available())
}

func printItems(w io.Writer, label string, items []Item) {
	fmt.Fprintf(w, "  %s:\n", label)
	if len(items) == 0 {
		fmt.Fprintln(w, "    (none)")
	}
	for i, it := range items {
		fmt.Fprintf(w, "    %d. %s\n", i+1, it.Info())
	}
}
