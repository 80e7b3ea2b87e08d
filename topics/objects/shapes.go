package objects

import (
	"fmt"
	"math"
)

// Shape is implemented by any type that can report its area and perimeter.
type Shape interface {
	Area() float64
	Perimeter() float64
}

// Rectangle is an axis-aligned rectangle.
type Rectangle struct {
	Width, Height float64
}

// Area returns width times height.
func (r Rectangle) Area() float64 { return r.Width * r.Height }

// Perimeter returns the length of the four sides.
func (r Rectangle) Perimeter() float64 { return 2 * (r.Width + r.Height) }

// String formats the rectangle with its dimensions.
func (r Rectangle) String() string {
	return fmt.Sprintf("Rectangle(width=%g, height=%g)", r.Width, r.Height)
}

// Circle is a circle of the given radius.
type Circle struct {
	Radius float64
}

// Area returns pi r squared.
func (c Circle) Area() float64 { return math.Pi * c.Radius * c.Radius }

// Circumference is the circle's perimeter.
func (c Circle) Circumference() float64 { return 2 * math.Pi * c.Radius }

// Perimeter is Circumference, so Circle satisfies Shape.
func (c Circle) Perimeter() float64 { return c.Circumference() }

// String formats the circle with its radius.
func (c Circle) String() string { return fmt.Sprintf("Circle(radius=%g)", c.Radius) }

// triangle implements Shape but not fmt.Stringer.
type triangle struct {
	a, b, c float64
}

// Area uses Heron's formula.
func (t triangle) Area() float64 {
	s := (t.a + t.b + t.c) / 2
	return math.Sqrt(s * (s - t.a) * (s - t.b) * (s - t.c))
}
func (t triangle) Perimeter() float64 { return t.a + t.b + t.c }

// TotalArea sums the area of every shape.
func TotalArea(shapes ...Shape) float64 {
	total := 0.0
	for _, s := range shapes {
		total += s.Area()
	}
	return total
}
