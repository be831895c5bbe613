package lessons

import (
	"context"
	"fmt"
	"io"
	"slices"
)

// SliceType finds the first word of a string three ways and slices an array.
type SliceType struct{}

func (SliceType) Name() string  { return "slice-type" }
func (SliceType) Title() string { return "Slices of strings and arrays" }

func (SliceType) Run(ctx context.Context, out io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s := "hello world"
	end := firstWordEnd(s)
	fmt.Fprintf(out, "first word ends at index %d\n", end)
	// The index is not tied to s, so it silently goes stale.
	s = ""
	fmt.Fprintf(out, "after clearing, index %d is out of range for len %d\n", end, len(s))

	m := "hello world"
	hello := m[:5]
	world := m[6:]
	fmt.Fprintf(out, "%s, %s\n", hello, world)
	fmt.Fprintf(out, "the first word is: %s\n", FirstWord(m))
	fmt.Fprintln(out, FirstWord(m[:6]))
	fmt.Fprintln(out, FirstWord("single"))

	a := [5]int{1, 2, 3, 4, 5}
	slice := a[1:3]
	fmt.Fprintf(out, "a[1:3] = %v, equal to [2 3]: %v\n", slice, slices.Equal(slice, []int{2, 3}))
	fmt.Fprintf(out, "len %d, cap %d\n", len(slice), cap(slice))

	// Writing through the slice changes the array it views.
	slice[0] = 20
	fmt.Fprintf(out, "a after slice[0] = 20: %v\n", a)
	return nil
}

// firstWordEnd returns the byte index of the first space, or len(s).
func firstWordEnd(s string) int {
	for i := 0; i < len(s); i++ {
		if s[i] == ' ' {
			return i
		}
	}
	return len(s)
}

// FirstWord returns the prefix of s up to the first space. The result
// shares memory with s.
func FirstWord(s string) string {
	return s[:firstWordEnd(s)]
}
