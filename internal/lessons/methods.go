package lessons

import (
	"context"
	"fmt"
	"io"
)

// Methods shows value and pointer receivers on Rectangle.
type Methods struct{}

func (Methods) Name() string  { return "methods" }
func (Methods) Title() string { return "Methods: value and pointer receivers" }

func (Methods) Run(ctx context.Context, out io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	rect1 := Rectangle{Width: 10, Height: 20}
	fmt.Fprintln(out, rect1.Area())
	fmt.Fprintf(out, "The width of this rectangle is: %d\n", rect1.Width)

	// rect1 is addressable, so Go takes &rect1 for the pointer receiver.
	rect1.ScaleHeight(10)
	fmt.Fprintf(out, "after ScaleHeight(10): %+v\n", rect1)

	resized := rect1.Resized(130, 13)
	fmt.Fprintf(out, "after Resized(130, 13): %+v (original %+v)\n", resized, rect1)
	rect1 = resized

	rect2 := Rectangle{Width: 10, Height: 40}
	rect3 := Rectangle{Width: 60, Height: 45}
	fmt.Fprintln(out, rect1.LargerThan(rect2))
	fmt.Fprintln(out, rect1.LargerThan(rect3))

	square := Square(10)
	fmt.Fprintf(out, "Square(10): %+v\n", square)

	// Go rejects a method named like a field on the same type, so the field
	// and an accessor cannot both be called Width.
	fmt.Fprintf(out, "square.Width is a field: %d\n", square.Width)

	// A method value binds the receiver; a method expression takes it as
	// the first argument.
	area := square.Area
	areaOf := Rectangle.Area
	fmt.Fprintf(out, "method value: %d, method expression: %d\n", area(), areaOf(rect2))
	return nil
}
