package lessons

import (
	"context"
	"fmt"
	"io"
)

// PlayingWithStructs computes an area through a function and shows the
// formatting verbs used to inspect structs.
type PlayingWithStructs struct{}

func (PlayingWithStructs) Name() string  { return "playing-with-structs" }
func (PlayingWithStructs) Title() string { return "Playing with structs: functions and debug printing" }

type person struct {
	name string
}

// area takes a pointer so the caller's rectangle is never copied.
func area(r *Rectangle) uint32 {
	return r.Width * r.Height
}

func (PlayingWithStructs) Run(ctx context.Context, out io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	rect1 := Rectangle{Width: 30, Height: 50}
	fmt.Fprintf(out, "The area of the rectangle is %d square pixels.\n", area(&rect1))
	fmt.Fprintf(out, "rect1 is %v\n", rect1)
	fmt.Fprintf(out, "rect1 is %+v\n", rect1)
	fmt.Fprintf(out, "rect1 is %#v\n", rect1)

	scale := uint32(2)
	rect2 := Rectangle{Width: 30 * scale, Height: 50}
	fmt.Fprintf(out, "rect2 is %+v, scale is still %d\n", rect2, scale)

	name := "john"
	john := person{name: name}
	fmt.Fprintf(out, "john is %+v and name is still %q\n", john, name)
	return nil
}
