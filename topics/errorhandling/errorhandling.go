// Package errorhandling covers Go's error model: errors as values, wrapping
// and inspection, custom error types, defer for cleanup, panic and recover,
// and retries.
package errorhandling

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"

	"github.com/marcodamonte/go-guide/internal/display"
)

// Run prints the error handling topic to w.
func Run(w io.Writer) {
	display.Section(w, "Errors are values")
	demoValues(w)

	display.Section(w, "Several kinds of error")
	demoKinds(w)

	display.Section(w, "defer as finally")
	demoDefer(w)

	display.Section(w, "Inspecting errors: Is, As, wrapping, Join")
	demoInspect(w)

	display.Section(w, "Returning errors")
	demoReturning(w)

	display.Section(w, "Validation with struct tags")
	demoValidation(w)

	display.Section(w, "Custom error types")
	demoCustom(w)

	display.Section(w, "Managing resources with defer")
	demoResources(w)

	display.Section(w, "panic and recover")
	demoPanic(w)

	display.Section(w, "Fallback values in one line")
	demoOneLine(w)

	display.Section(w, "Retry")
	demoRetry(w)

	display.Section(w, "Exercise: dividing user input")
	demoDivide(w)
}

func demoValues(w io.Writer) {
	_, err := strconv.Atoi("ten")
	if err != nil {
		fmt.Fprintln(w, "  strconv.Atoi(\"ten\"):", err)
	}
	n, err := strconv.Atoi("10")
	fmt.Fprintf(w, "  strconv.Atoi(\"10\"): %d, err == nil: %v\n", n, err == nil)
}

func demoKinds(w io.Writer) {
	inputs := []string{"10", "0", "abc"}
	for _, in := range inputs {
		res, err := divideString(100, in)
		switch {
		case errors.Is(err, ErrDivisionByZero):
			fmt.Fprintf(w, "  100 / %q → cannot divide by zero\n", in)
		case errors.Is(err, strconv.ErrSyntax):
			fmt.Fprintf(w, "  100 / %q → not a number\n", in)
		case err != nil:
			fmt.Fprintf(w, "  100 / %q → unexpected: %v\n", in, err)
		default:
			fmt.Fprintf(w, "  100 / %q = %v\n", in, res)
		}
	}
}

func divideString(a float64, s string) (float64, error) {
	b, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse divisor: %w", err)
	}
	if b == 0 {
		return 0, ErrDivisionByZero
	}
	return a / b, nil
}

// demoDefer: deferred calls run when the function returns, on success,
// error and panic alike, in last-in first-out order.
func demoDefer(w io.Writer) {
	run := func(fail bool) (err error) {
		fmt.Fprintln(w, "    acquire")
		defer fmt.Fprintln(w, "    release (always runs)")
		if fail {
			return errors.New("step failed")
		}
		fmt.Fprintln(w, "    work done")
		return nil
	}

	fmt.Fprintln(w, "  success path:")
	_ = run(false)
	fmt.Fprintln(w, "  error path:")
	fmt.Fprintln(w, "    returned:", run(true))

	fmt.Fprint(w, "  LIFO order:")
	func() {
		for i := range 3 {
			defer fmt.Fprint(w, " ", i)
		}
	}()
	fmt.Fprintln(w)
}

func demoInspect(w io.Writer) {
	_, err := afero.ReadFile(afero.NewMemMapFs(), "/config.yaml")
	wrapped := fmt.Errorf("load settings: %w", err)

	fmt.Fprintln(w, "  error:", wrapped)
	fmt.Fprintln(w, "  errors.Is(err, fs.ErrNotExist):", errors.Is(wrapped, fs.ErrNotExist))

	var pathErr *fs.PathError
	if errors.As(wrapped, &pathErr) {
		fmt.Fprintf(w, "  errors.As → *fs.PathError op=%q path=%q\n", pathErr.Op, pathErr.Path)
	}
	fmt.Fprintln(w, "  errors.Unwrap once:", errors.Unwrap(wrapped) == err)

	// %v formats the cause without keeping it in the chain.
	flat := fmt.Errorf("load settings: %v", err)
	fmt.Fprintf(w, "  with %%v instead of %%w, Is: %v\n", errors.Is(flat, fs.ErrNotExist))

	joined := errors.Join(
		&ValidationError{Field: "name", Message: "required"},
		fmt.Errorf("age: %w", ErrInvalidAmount),
	)
	fmt.Fprintln(w, "  errors.Join:")
	for line := range strings.Lines(joined.Error()) {
		fmt.Fprint(w, "    ", line)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Is(joined, ErrInvalidAmount):", errors.Is(joined, ErrInvalidAmount))
	fmt.Fprintln(w, "  errors.Join(nil, nil) == nil:", errors.Join(nil, nil) == nil)
}

func validateAge(age int) error {
	switch {
	case age < 0:
		return &ValidationError{Field: "age", Message: "cannot be negative"}
	case age > 150:
		return &ValidationError{Field: "age", Message: "is unrealistically high"}
	}
	return nil
}

func demoReturning(w io.Writer) {
	for _, age := range []int{25, -5, 200} {
		if err := validateAge(age); err != nil {
			fmt.Fprintf(w, "  validateAge(%d): %v\n", age, err)
			continue
		}
		fmt.Fprintf(w, "  validateAge(%d): ok\n", age)
	}
}

type signup struct {
	Name  string `validate:"required"`
	Age   int    `validate:"gte=0,lte=150"`
	Email string `validate:"omitempty,email"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateSignup turns validator's field errors into *ValidationError
// values joined into one error.
func validateSignup(s signup) error {
	err := validate.Struct(s)
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	errs := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs = append(errs, &ValidationError{Field: fe.Field(), Message: "failed " + fe.Tag()})
	}
	return errors.Join(errs...)
}

func demoValidation(w io.Writer) {
	forms := []signup{
		{Name: "Ana", Age: 28, Email: "ana@example.com"},
		{Name: "", Age: 200, Email: "not-an-email"},
	}
	for _, f := range forms {
		err := validateSignup(f)
		if err == nil {
			fmt.Fprintf(w, "  %+v → valid\n", f)
			continue
		}
		fmt.Fprintf(w, "  %+v →\n", f)
		for line := range strings.Lines(err.Error()) {
			fmt.Fprint(w, "    ", line)
		}
		fmt.Fprintln(w)
	}
}

func demoCustom(w io.Writer) {
	acct := NewAccount("Ana", 100)
	fmt.Fprintf(w, "  %s opens with %.2f\n", acct.Owner, acct.Balance())

	if err := acct.Deposit(-5); err != nil {
		fmt.Fprintln(w, "  deposit:", err)
	}
	if err := acct.Withdraw(30); err == nil {
		fmt.Fprintf(w, "  withdrew 30.00, balance %.2f\n", acct.Balance())
	}

	err := acct.Withdraw(500)
	var funds *InsufficientFundsError
	if errors.As(err, &funds) {
		fmt.Fprintln(w, "  withdraw:", err)
		fmt.Fprintf(w, "  short by %.2f\n", funds.Shortfall())
	}
}

// demoResources writes and reads a file on an in-memory filesystem. WithFile
// closes the file whether the callback succeeds or not.
func demoResources(w io.Writer) {
	fsys := afero.NewMemMapFs()

	err := WithFile(fsys, "/notes.txt", func(f afero.File) error {
		_, err := f.WriteString("defer closes me\n")
		return err
	})
	fmt.Fprintln(w, "  write:", errString(err))

	err = WithFile(fsys, "/notes.txt", func(f afero.File) error {
		data, err := afero.ReadAll(f)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "  read: %q\n", data)
		return errors.New("callback failed after reading")
	})
	fmt.Fprintln(w, "  callback error still closes the file:", err)

	err = WithFile(afero.NewReadOnlyFs(fsys), "/new.txt", func(afero.File) error { return nil })
	fmt.Fprintln(w, "  read-only fs:", err)
}

func errString(err error) string {
	if err == nil {
		return "ok"
	}
	return err.Error()
}

func demoPanic(w io.Writer) {
	err := SafeCall(func() {
		var m map[string]int
		m["boom"] = 1
	})
	fmt.Fprintln(w, "  nil map write:", err)

	err = SafeCall(func() {
		nums := []int{1, 2, 3}
		idx := 5
		_ = nums[idx]
	})
	fmt.Fprintln(w, "  out of range:", err)

	var pe *PanicError
	if errors.As(SafeCall(func() { panic("custom") }), &pe) {
		fmt.Fprintf(w, "  panic(%q) recovered as %T\n", pe.Value, pe)
	}
	fmt.Fprintln(w, "  no panic:", SafeCall(func() {}))
}

func demoOneLine(w io.Writer) {
	parse := func(s string) func() (int, error) {
		return func() (int, error) { return strconv.Atoi(s) }
	}
	fmt.Fprintln(w, "  SafeOperation(Atoi(\"42\"), -1) =", SafeOperation(parse("42"), -1))
	fmt.Fprintln(w, "  SafeOperation(Atoi(\"x\"), -1)  =", SafeOperation(parse("x"), -1))
	fmt.Fprintln(w, "  SafeOperation(panics, \"n/a\")  =", SafeOperation(func() (string, error) { panic("boom") }, "n/a"))
}

func demoRetry(w io.Writer) {
	attempts := 0
	err := Retry(context.Background(), 5, time.Millisecond, func() error {
		attempts++
		if attempts < 3 {
			fmt.Fprintf(w, "  attempt %d: failing\n", attempts)
			return errors.New("unstable")
		}
		fmt.Fprintf(w, "  attempt %d: ok\n", attempts)
		return nil
	})
	fmt.Fprintln(w, "  result:", errString(err))

	attempts = 0
	err = Retry(context.Background(), 5, time.Millisecond, func() error {
		attempts++
		return Permanent(errors.New("bad credentials"))
	})
	fmt.Fprintf(w, "  permanent error after %d attempt: %v\n", attempts, err)
}

// divideNumbers parses both operands and divides them, wrapping each
// failure with the operand that caused it.
func divideNumbers(a, b string) (float64, error) {
	x, err := strconv.ParseFloat(strings.TrimSpace(a), 64)
	if err != nil {
		return 0, fmt.Errorf("dividend %q: %w", a, err)
	}
	return divideString(x, strings.TrimSpace(b))
}

func demoDivide(w io.Writer) {
	cases := [][2]string{{"10", "2"}, {"10", "0"}, {"ten", "2"}, {" 7 ", " 2 "}}
	for _, c := range cases {
		res, err := divideNumbers(c[0], c[1])
		if err != nil {
			fmt.Fprintf(w, "  %q / %q → error: %v\n", c[0], c[1], err)
			continue
		}
		fmt.Fprintf(w, "  %q / %q = %v\n", c[0], c[1], res)
	}
}
