package lessons

import (
	"context"
	"fmt"
	"io"
	"math"

	"github.com/agbru/lessons/internal/arith"
	apperrors "github.com/agbru/lessons/internal/errors"
)

// Branches walks through conditionals and every loop form Go offers, then
// runs the two arithmetic exercises.
type Branches struct {
	Fahrenheit int
	FibMax     int
}

func (*Branches) Name() string  { return "branches" }
func (*Branches) Title() string { return "Control flow: if, for, labels and range" }

func (b *Branches) Run(ctx context.Context, out io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if b.Fahrenheit < math.MinInt32 || b.Fahrenheit > math.MaxInt32 {
		return apperrors.NewInvalidArgument(arith.OpFahrenheitToCelsius, int64(b.Fahrenheit))
	}
	if b.FibMax < 0 || b.FibMax > math.MaxInt32 {
		return apperrors.NewInvalidArgument(arith.OpFibonacciSequence, int64(b.FibMax))
	}

	// The condition must be a bool; Go never converts numbers to booleans.
	number := 7
	if number < 5 {
		fmt.Fprintln(out, "condition was true")
	} else {
		fmt.Fprintln(out, "condition was false")
	}
	if number != 0 {
		fmt.Fprintln(out, "number was something other than zero")
	}

	x := 6
	if x%4 == 0 {
		fmt.Fprintln(out, "number is divisible by 4")
	} else if x%3 == 0 {
		fmt.Fprintln(out, "number is divisible by 3")
	} else {
		fmt.Fprintln(out, "number is not divisible by 4 or 3")
	}

	// There is no conditional expression, so pick a default and overwrite it.
	condition := true
	y := 6
	if condition {
		y = 5
	}
	fmt.Fprintln(out, y)

	counter := 0
	var result int
	for {
		counter++
		if counter == 10 {
			result = counter * 2
			break
		}
	}
	fmt.Fprintf(out, "the result is %d\n", result)
	fmt.Fprintf(out, "the counter is %d\n", counter)

	count := 0
countingUp:
	for {
		fmt.Fprintf(out, "count = %d\n", count)
		remaining := 10
		for {
			fmt.Fprintf(out, "remaining = %d\n", remaining)
			if remaining == 9 {
				break
			}
			if count == 2 {
				break countingUp
			}
			remaining--
		}
		count++
	}
	fmt.Fprintf(out, "End count = %d\n", count)

	// A for with only a condition is Go's while loop.
	value := 3
	for value != 0 {
		fmt.Fprintf(out, "%d!\n", value)
		value--
	}
	fmt.Fprintln(out, "LIFTOFF!!")

	a := [5]int{10, 20, 30, 40, 50}
	for index := 0; index < len(a); index++ {
		fmt.Fprintf(out, "the value is: %d\n", a[index])
	}
	for _, element := range [5]int{1, 2, 3, 4, 5} {
		fmt.Fprintf(out, "the value is: %d\n", element)
	}
	for n := 3; n >= 1; n-- {
		fmt.Fprintf(out, "%d!\n", n)
	}
	fmt.Fprintln(out, "LIFTOFF!!")

	celsius, err := arith.FahrenheitToCelsius(int32(b.Fahrenheit))
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%d°F is %d°C\n", b.Fahrenheit, celsius)

	printTerm := arith.TermSinkFunc(func(_, v int32) { fmt.Fprintln(out, v) })
	_, err = arith.FibonacciSequence(int32(b.FibMax), printTerm)
	return err
}
