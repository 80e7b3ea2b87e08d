// Package advancedtypes covers Go's composite types: slices, arrays, maps
// and sets built on maps, plus generic helpers to transform them.
package advancedtypes

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/marcodamonte/go-guide/internal/display"
)

// Run prints the advanced types topic to w.
func Run(w io.Writer) {
	display.Section(w, "Slices")
	demoSlices(w)

	display.Section(w, "Modifying slices")
	demoModify(w)

	display.Section(w, "Multiple assignment")
	demoUnpack(w)

	display.Section(w, "Iterating")
	demoIterate(w)

	display.Section(w, "Searching and counting")
	demoSearch(w)

	display.Section(w, "Sorting")
	demoSort(w)

	display.Section(w, "Function literals")
	demoLiterals(w)

	display.Section(w, "Generic Map, Filter, Reduce")
	demoGeneric(w)

	display.Section(w, "Slice internals")
	demoInternals(w)

	display.Section(w, "Arrays as tuples")
	demoArrays(w)

	display.Section(w, "Sets")
	demoSets(w)

	display.Section(w, "Maps")
	demoMaps(w)

	display.Section(w, "Nested data as YAML")
	demoYAML(w)
}

func demoSlices(w io.Writer) {
	nums := []int{1, 2, 3, 4, 5}
	mixed := []any{1, "hello", 3.14, true}

	fmt.Fprintln(w, "  nums:", nums)
	fmt.Fprintln(w, "  mixed ([]any):", mixed)
	fmt.Fprintln(w, "  nums[0] =", nums[0], " last =", nums[len(nums)-1])
	fmt.Fprintln(w, "  nums[1:3] =", nums[1:3])
	fmt.Fprintln(w, "  nums[:2] =", nums[:2], " nums[3:] =", nums[3:])
	fmt.Fprintln(w, "  no negative indexes; len(nums) =", len(nums))
}

func demoModify(w io.Writer) {
	fruits := []string{"apple", "banana", "cherry"}
	fmt.Fprintln(w, "  start:          ", fruits)

	fruits[1] = "blueberry"
	fmt.Fprintln(w, "  fruits[1] = ... ", fruits)

	fruits = append(fruits, "orange")
	fmt.Fprintln(w, "  append:         ", fruits)

	fruits = slices.Insert(fruits, 1, "mango")
	fmt.Fprintln(w, "  slices.Insert:  ", fruits)

	last := fruits[len(fruits)-1]
	fruits = fruits[:len(fruits)-1]
	fmt.Fprintf(w, "  pop %q:  %v\n", last, fruits)

	if i := slices.Index(fruits, "apple"); i >= 0 {
		fruits = slices.Delete(fruits, i, i+1)
	}
	fmt.Fprintln(w, "  remove apple:   ", fruits)

	more := []string{"kiwi", "lime"}
	fruits = append(fruits, more...)
	fmt.Fprintln(w, "  extend:         ", fruits)

	fruits = slices.Replace(fruits, 0, 2, "fig")
	fmt.Fprintln(w, "  replace [0:2]:  ", fruits)

	fruits = fruits[:0]
	fmt.Fprintf(w, "  clear: %v len=%d\n", fruits, len(fruits))
}

func demoUnpack(w io.Writer) {
	coords := []int{10, 20, 30}
	x, y, z := coords[0], coords[1], coords[2]
	fmt.Fprintf(w, "  x=%d y=%d z=%d\n", x, y, z)

	first, rest := coords[0], coords[1:]
	fmt.Fprintln(w, "  first =", first, " rest =", rest)

	a, b := 1, 2
	a, b = b, a
	fmt.Fprintf(w, "  swapped: a=%d b=%d\n", a, b)
}

func demoIterate(w io.Writer) {
	colors := []string{"red", "green", "blue"}
	for i, c := range colors {
		fmt.Fprintf(w, "  %d: %s\n", i, c)
	}

	names := []string{"Ana", "Luis"}
	ages := []int{28, 35}
	for i := range min(len(names), len(ages)) {
		fmt.Fprintf(w, "  zip: %s is %d\n", names[i], ages[i])
	}

	for i, c := range slices.Backward(colors) {
		fmt.Fprintf(w, "  backward %d: %s\n", i, c)
	}
}

func demoSearch(w io.Writer) {
	nums := []int{3, 1, 4, 1, 5, 9, 2, 6, 5}
	fmt.Fprintln(w, "  nums:", nums)
	fmt.Fprintln(w, "  slices.Contains(nums, 9) =", slices.Contains(nums, 9))
	fmt.Fprintln(w, "  slices.Index(nums, 5)    =", slices.Index(nums, 5))
	fmt.Fprintln(w, "  count of 1               =", len(Filter(nums, func(n int) bool { return n == 1 })))
	fmt.Fprintln(w, "  min, max                 =", slices.Min(nums), slices.Max(nums))
}

func demoSort(w io.Writer) {
	nums := []int{3, 1, 4, 1, 5, 9, 2, 6}

	sorted := slices.Sorted(slices.Values(nums))
	fmt.Fprintln(w, "  sorted copy:     ", sorted, " original:", nums)

	slices.Sort(nums)
	fmt.Fprintln(w, "  sorted in place: ", nums)

	slices.Reverse(nums)
	fmt.Fprintln(w, "  reversed:        ", nums)

	words := []string{"banana", "Apple", "cherry", "fig"}
	slices.SortFunc(words, func(a, b string) int {
		return strings.Compare(strings.ToLower(a), strings.ToLower(b))
	})
	fmt.Fprintln(w, "  case-insensitive:", words)

	slices.SortStableFunc(words, func(a, b string) int { return len(a) - len(b) })
	fmt.Fprintln(w, "  by length:       ", words)
}

// demoLiterals uses anonymous functions where other languages reach for
// lambdas or comprehensions.
func demoLiterals(w io.Writer) {
	square := func(n int) int { return n * n }
	fmt.Fprintln(w, "  square(5) =", square(5))

	squares := make([]int, 0, 10)
	for n := range 10 {
		if n%2 == 0 {
			squares = append(squares, square(n))
		}
	}
	fmt.Fprintln(w, "  squares of evens below 10:", squares)

	type student struct {
		name  string
		grade int
	}
	students := []student{{"Ana", 85}, {"Luis", 92}, {"Marta", 78}}
	slices.SortFunc(students, func(a, b student) int { return b.grade - a.grade })
	fmt.Fprintln(w, "  students by grade:", students)
}

func demoGeneric(w io.Writer) {
	nums := []int{1, 2, 3, 4, 5}

	doubled := Map(nums, func(n int) int { return n * 2 })
	labels := Map(nums, func(n int) string { return fmt.Sprintf("#%d", n) })
	evens := Filter(nums, func(n int) bool { return n%2 == 0 })
	sum := Reduce(nums, 0, func(acc, n int) int { return acc + n })
	joined := Reduce(labels, "", func(acc, s string) string { return acc + s })

	fmt.Fprintln(w, "  Map double:    ", doubled)
	fmt.Fprintln(w, "  Map to string: ", labels)
	fmt.Fprintln(w, "  Filter evens:  ", evens)
	fmt.Fprintln(w, "  Reduce sum:    ", sum)
	fmt.Fprintln(w, "  Reduce join:   ", joined)
}

// demoArrays: fixed-size arrays are values, comparable and usable as map
// keys, which makes them a natural fit for small immutable tuples.
func demoArrays(w io.Writer) {
	point := [2]int{10, 20}
	copied := point
	copied[0] = 99
	fmt.Fprintln(w, "  point =", point, " copy after change =", copied)

	visits := map[[2]int]int{{0, 0}: 1}
	visits[[2]int{0, 0}]++
	fmt.Fprintln(w, "  arrays as map keys: visits[{0 0}] =", visits[[2]int{0, 0}])

	person := struct {
		Name string
		Age  int
	}{"Ana", 28}
	fmt.Fprintf(w, "  anonymous struct as a record: %+v\n", person)
}

func demoSets(w io.Writer) {
	a := NewSet(1, 2, 3, 4, 5)
	b := NewSet(4, 5, 6, 7, 8)
	fmt.Fprintln(w, "  a:", a.Sorted(), " b:", b.Sorted())
	fmt.Fprintln(w, "  union:               ", a.Union(b).Sorted())
	fmt.Fprintln(w, "  intersection:        ", a.Intersection(b).Sorted())
	fmt.Fprintln(w, "  difference a - b:    ", a.Difference(b).Sorted())
	fmt.Fprintln(w, "  symmetric difference:", a.SymmetricDifference(b).Sorted())

	dupes := NewSet("go", "go", "rust")
	dupes.Add("zig")
	dupes.Remove("rust")
	fmt.Fprintf(w, "  duplicates collapse: %v has(go)=%v\n", dupes.Sorted(), dupes.Has("go"))
}

func demoMaps(w io.Writer) {
	person := map[string]string{"name": "Ana", "city": "Madrid"}

	age, ok := person["age"]
	fmt.Fprintf(w, "  person[\"age\"] = %q, ok=%v\n", age, ok)
	if _, ok := person["age"]; !ok {
		person["age"] = "28"
	}

	person["city"] = "Sevilla"
	delete(person, "missing")

	for _, k := range slices.Sorted(maps.Keys(person)) {
		fmt.Fprintf(w, "  %-5s → %s\n", k, person[k])
	}

	counts := make(map[string]int)
	for _, word := range strings.Fields("go is fun and go is fast") {
		counts[word]++
	}
	fmt.Fprintln(w, "  word counts:", counts) // fmt prints maps with sorted keys

	merged := MergeMaps(map[string]int{"a": 1, "b": 2}, map[string]int{"b": 3, "c": 4})
	fmt.Fprintln(w, "  MergeMaps (later wins):", merged)
}

type course struct {
	Name     string   `yaml:"name"`
	Credits  int      `yaml:"credits"`
	Students []string `yaml:"students,omitempty"`
}

type school struct {
	Name    string            `yaml:"name"`
	Courses []course          `yaml:"courses"`
	Meta    map[string]string `yaml:"meta"`
}

// demoYAML renders nested data with gopkg.in/yaml.v3. Map keys are emitted
// in sorted order, so the output is stable.
func demoYAML(w io.Writer) {
	s := school{
		Name: "Go Academy",
		Courses: []course{
			{Name: "Basics", Credits: 3, Students: []string{"Ana", "Luis"}},
			{Name: "Concurrency", Credits: 5},
		},
		Meta: map[string]string{"city": "Madrid", "founded": "2009"},
	}

	var sb strings.Builder
	enc := yaml.NewEncoder(&sb)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		fmt.Fprintln(w, "  encode:", err)
		return
	}
	_ = enc.Close()
	for line := range strings.Lines(sb.String()) {
		fmt.Fprint(w, "  ", line)
	}

	var back school
	if err := yaml.Unmarshal([]byte(sb.String()), &back); err != nil {
		fmt.Fprintln(w, "  decode:", err)
		return
	}
	fmt.Fprintf(w, "  decoded back: %d courses, first student %s\n", len(back.Courses), back.Courses[0].Students[0])
}
