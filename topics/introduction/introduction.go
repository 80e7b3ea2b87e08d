// Package introduction opens the guide: why Go, a first program, and what
// happens between `go build` and a running process.
package introduction

import (
	"fmt"
	"io"
	"runtime"

	"github.com/marcodamonte/go-guide/internal/display"
)

// Run prints the introduction topic to w.
func Run(w io.Writer) {
	display.Section(w, "Why learn Go?")
	demoWhyGo(w)

	display.Section(w, "First program")
	demoHelloWorld(w)

	display.Section(w, "How Go code runs")
	demoHowItRuns(w)

	display.Section(w, "Stack vs heap (escape analysis)")
	demoEscape(w)
}

func demoWhyGo(w io.Writer) {
	reasons := []string{
		"Small, readable language with one formatting style (gofmt)",
		"Fast compilation to a single static binary",
		"Concurrency built in: goroutines and channels",
		"A standard library that covers networking, encoding and testing",
		"Strong tooling: go test, go vet, race detector, pprof",
		"Widely used for services, CLIs and infrastructure",
	}
	for i, r := range reasons {
		fmt.Fprintf(w, "  %d. %s\n", i+1, r)
	}
}

func demoHelloWorld(w io.Writer) {
	fmt.Fprintln(w, "  package main")
	fmt.Fprintln(w)
	fmt.Fprintln(w, `  import "fmt"`)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  func main() {")
	fmt.Fprintln(w, `      fmt.Println("Hello, World!")`)
	fmt.Fprintln(w, "  }")
	fmt.Fprintln(w, "\n  Output:")
	fmt.Fprintln(w, "  Hello, World!")
}

// demoHowItRuns walks through the build pipeline and prints facts about
// the runtime executing this very program.
func demoHowItRuns(w io.Writer) {
	fmt.Fprintln(w, "  1. The compiler type-checks the package and its imports")
	fmt.Fprintln(w, "  2. It compiles straight to machine code (no bytecode, no VM)")
	fmt.Fprintln(w, "  3. The linker produces one static binary, runtime included")
	fmt.Fprintln(w, "  4. The runtime schedules goroutines and runs the garbage collector")
	fmt.Fprintf(w, "\n  toolchain:  %s\n", runtime.Version())
	fmt.Fprintf(w, "  platform:   %s/%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Fprintf(w, "  CPUs:       %d\n", runtime.NumCPU())
}
