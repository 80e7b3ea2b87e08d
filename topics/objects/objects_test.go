package objects

import (
	"bytes"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShapes(t *testing.T) {
	r := Rectangle{Width: 5, Height: 10}
	assert.Equal(t, 50.0, r.Area())
	assert.Equal(t, 30.0, r.Perimeter())
	assert.Equal(t, "Rectangle(width=5, height=10)", r.String())

	c := Circle{Radius: 7}
	assert.InDelta(t, math.Pi*49, c.Area(), 1e-9)
	assert.InDelta(t, 14*math.Pi, c.Circumference(), 1e-9)
	assert.Equal(t, c.Circumference(), c.Perimeter())
	assert.Equal(t, "Circle(radius=7)", c.String())

	assert.InDelta(t, 6.0, triangle{3, 4, 5}.Area(), 1e-9)
	assert.InDelta(t, 56.0, TotalArea(r, triangle{3, 4, 5}), 1e-9)
	assert.Zero(t, TotalArea())
}

func TestTemperature(t *testing.T) {
	var temp Temperature
	require.NoError(t, temp.SetFahrenheit(212))
	assert.InDelta(t, 100.0, temp.Celsius(), 1e-9)

	assert.Error(t, temp.SetCelsius(-274))
	assert.InDelta(t, 100.0, temp.Celsius(), 1e-9, "rejected value must not be stored")
}

func TestVector2D(t *testing.T) {
	a, b := Vector2D{3, 4}, Vector2D{1, 2}
	assert.Equal(t, Vector2D{4, 6}, a.Add(b))
	assert.Equal(t, Vector2D{2, 2}, a.Sub(b))
	assert.Equal(t, 11.0, a.Dot(b))
	assert.Equal(t, 5.0, a.Len())
	assert.True(t, b.Less(a))
	assert.True(t, Vector2D{}.IsZero())
}

func TestLibrary(t *testing.T) {
	lib := NewLibrary("test")
	book := NewBook("Dune", "Frank Herbert", 412)
	dvd := NewDVD("Alien", "Ridley Scott", 117)

	require.NoError(t, lib.Add(book))
	require.NoError(t, lib.Add(dvd))
	assert.ErrorIs(t, lib.Add(NewBook("Dune", "copy", 1)), ErrDuplicateItem)

	assert.Equal(t, book.ID(), NewBook("Dune", "x", 0).ID(), "ids derive from the title")
	assert.NotEqual(t, book.ID(), dvd.ID())

	require.NoError(t, lib.CheckOut(book.ID()))
	assert.ErrorIs(t, lib.CheckOut(book.ID()), ErrCheckedOut)
	assert.Equal(t, []Item{dvd}, lib.Available())
	assert.Contains(t, book.Info(), "checked out")

	require.NoError(t, lib.Return(book.ID()))
	assert.ErrorIs(t, lib.Return(book.ID()), ErrNotCheckedOut)
	assert.Len(t, lib.Available(), 2)

	assert.ErrorIs(t, lib.CheckOut(uuid.New()), ErrItemNotFound)
	assert.Equal(t, []Item{book, dvd}, lib.Items())
}

func TestRun(t *testing.T) {
	var first, second bytes.Buffer
	Run(&first)
	Run(&second)
	out := first.String()

	assert.Equal(t, out, second.String())
	assert.Contains(t, out, "Hi, I am Luis and I am 20 and I study at Go Academy")
	assert.Contains(t, out, "25.0°C = 77.0°F")
	assert.Contains(t, out, "a.Add(b)   = Vector2D(4, 6)")
	assert.Contains(t, out, "objects.triangle")
	assert.Contains(t, out, "    color: red\n")
	assert.Contains(t, out, "round trip equal: true")
	assert.Contains(t, out, "check out again:")
	assert.Contains(t, out, "item already in library")
}
