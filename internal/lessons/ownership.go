package lessons

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"
)

// Ownership contrasts values that are copied on assignment with values that
// share underlying storage.
type Ownership struct{}

func (Ownership) Name() string  { return "ownership" }
func (Ownership) Title() string { return "Values, copies and shared storage" }

func (Ownership) Run(ctx context.Context, out io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	// Strings are immutable; growing one goes through a builder.
	var st strings.Builder
	st.WriteString("hello")
	st.WriteString(", world!")
	fmt.Fprintln(out, st.String())

	x := 5
	y := x
	y++
	fmt.Fprintln(out, y)
	fmt.Fprintln(out, x)

	// Both variables point at the same bytes, which is safe because they
	// can never change.
	s1 := "hello"
	s2 := s1
	fmt.Fprintf(out, "s1: %s, s2: %s.\n", s1, s2)

	s3 := "Hi"
	s4 := s3 + " there!"
	fmt.Fprintf(out, "s3 = %s, s4 = %s\n", s3, s4)

	// Slices are views: assignment copies the header, not the elements.
	a := []int{1, 2, 3}
	b := a
	b[0] = 99
	fmt.Fprintf(out, "shared: a=%v b=%v\n", a, b)

	c := slices.Clone(a)
	c[0] = 1
	fmt.Fprintf(out, "cloned: a=%v c=%v\n", a, c)

	consume(out, "Hello!")
	n := 5
	makesCopy(out, n)
	fmt.Fprintln(out, n)

	given := givesValue()
	back := takesAndGivesBack(given)
	fmt.Fprintf(out, "given back: %s\n", back)

	greeting, num := multipleReturns()
	fmt.Fprintf(out, "greeting %s, num %d\n", greeting, num)
	return nil
}

// consume receives its own copy of the string header.
func consume(out io.Writer, s string) {
	fmt.Fprintf(out, "Took a copy of %s\n", s)
}

func makesCopy(out io.Writer, i int) {
	fmt.Fprintf(out, "Just a copy of %d\n", i)
}

func givesValue() string {
	someString := "yours"
	return someString
}

func takesAndGivesBack(s string) string {
	return s
}

func multipleReturns() (string, int) {
	return "hello", 6
}
