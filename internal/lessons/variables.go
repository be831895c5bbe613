package lessons

import (
	"context"
	"fmt"
	"io"
)

// threeHoursInSeconds is evaluated at compile time.
const threeHoursInSeconds = 60 * 60 * 3

// Variables covers assignment, constants and shadowing.
type Variables struct{}

func (Variables) Name() string  { return "variables" }
func (Variables) Title() string { return "Variables, constants and shadowing" }

func (Variables) Run(ctx context.Context, out io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	x := 5
	fmt.Fprintf(out, "The value of x is: %d\n", x)
	x = 6
	fmt.Fprintf(out, "The value of x is: %d\n", x)

	fmt.Fprintf(out, "threeHoursInSeconds: %d\n", threeHoursInSeconds)

	y := 5
	y = y + 1
	{
		// := in an inner block declares a new y that hides the outer one.
		y := y * 2
		fmt.Fprintf(out, "The value of y in the inner scope is: %d\n", y)
	}
	fmt.Fprintf(out, "The value of y is: %d\n", y)

	// A variable keeps its type; a new name is needed for the length.
	spaces := "    "
	numSpaces := len(spaces)
	fmt.Fprintln(out, numSpaces)
	return nil
}
