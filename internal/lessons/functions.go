package lessons

import (
	"context"
	"fmt"
	"io"
)

// Functions covers parameters, block scope and return values.
type Functions struct{}

func (Functions) Name() string  { return "functions" }
func (Functions) Title() string { return "Functions, parameters and return values" }

func (Functions) Run(ctx context.Context, out io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	fmt.Fprintln(out, "Hello, world!")
	anotherFunction(out)
	withParam(out, 5)
	withParams(out, 5, 'i')

	y := 10
	// A func literal called in place gives a block that yields a value.
	z := func() int {
		x := 4
		return x + 2
	}()
	fmt.Fprintf(out, "y is: %d. z is: %d.\n", y, z)

	n := five()
	m, ok := six()
	fmt.Fprintf(out, "n is: %d. m is: %d (ok=%v)\n", n, m, ok)
	return nil
}

func anotherFunction(out io.Writer) {
	fmt.Fprintln(out, "Another function.")
}

func withParam(out io.Writer, x int32) {
	fmt.Fprintf(out, "The value of x is: %d\n", x)
}

func withParams(out io.Writer, value int32, unit rune) {
	fmt.Fprintf(out, "The measurement is: %d%c\n", value, unit)
}

func five() int32 {
	return 5
}

// six uses named results and a bare return.
func six() (v int32, ok bool) {
	v, ok = 6, true
	return
}
