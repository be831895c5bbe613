package lessons

import (
	"context"
	"fmt"
	"io"
)

// References covers pointers: taking addresses, pointers to pointers,
// mutation through a pointer and returning the address of a local.
type References struct{}

func (References) Name() string  { return "references" }
func (References) Title() string { return "Pointers and borrowing" }

func (References) Run(ctx context.Context, out io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s1 := "hello"
	s2 := &s1
	s3 := &s2
	s4 := s2
	fmt.Fprintln(out, *s2)
	fmt.Fprintln(out, **s3)
	fmt.Fprintln(out, *s4)

	length := calculateLength(out, &s1)
	fmt.Fprintf(out, "The length of '%s' is %d.\n", s1, length)

	st := "hello"
	change(&st)
	fmt.Fprintln(out, st)

	// Any number of pointers may alias the same variable; every write is
	// visible through all of them.
	a := "hello"
	r1, r2 := &a, &a
	fmt.Fprintf(out, "%s, %s\n", *r1, *r2)
	*r1 += " world"
	fmt.Fprintf(out, "%s, %s\n", *r1, *r2)

	var missing *string
	fmt.Fprintf(out, "nil pointer: %v\n", missing == nil)

	// Escape analysis moves the local to the heap, so the pointer stays valid.
	p := noDangle()
	fmt.Fprintf(out, "noDangle returned %q\n", *p)
	return nil
}

func calculateLength(out io.Writer, s *string) int {
	receivesReference(out, s)
	return len(*s)
}

func receivesReference(out io.Writer, s *string) {
	fmt.Fprintln(out, *s)
}

func change(s *string) {
	*s += ", world"
}

func noDangle() *string {
	s := "hello"
	return &s
}
