package lessons

import (
	"context"
	"fmt"
	"io"
	"math"
	"strconv"

	"golang.org/x/sys/cpu"
)

// DataTypes parses a typed value from text and tours the scalar types,
// finishing with the properties of the machine the lesson runs on.
type DataTypes struct{}

func (DataTypes) Name() string  { return "data-types" }
func (DataTypes) Title() string { return "Scalar types and parsing" }

func (DataTypes) Run(ctx context.Context, out io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	// The target width is chosen by the bitSize argument, not inferred.
	parsed, err := strconv.ParseUint("42", 10, 32)
	if err != nil {
		return fmt.Errorf("parse guess: %w", err)
	}
	guess := uint32(parsed)
	fmt.Fprintf(out, "Value of guess: %d\n", guess)

	if _, err := strconv.ParseUint("-1", 10, 32); err != nil {
		fmt.Fprintf(out, "parsing -1 as uint32 fails: %v\n", err)
	}

	fmt.Fprintf(out, "int8: %d..%d, uint8: 0..%d\n", math.MinInt8, math.MaxInt8, math.MaxUint8)
	fmt.Fprintf(out, "int32: %d..%d\n", math.MinInt32, math.MaxInt32)

	var small uint8 = 255
	small++
	fmt.Fprintf(out, "uint8 255 + 1 wraps to %d\n", small)

	f := 2.0
	var g float32 = 3.0
	fmt.Fprintf(out, "float64 %v, float32 %v, 7/2 = %d, 7.0/2 = %v\n", f, g, 7/2, 7.0/2)

	t := true
	var heart rune = '♥'
	fmt.Fprintf(out, "bool %v, rune %c is %d (%d bytes as UTF-8)\n", t, heart, heart, len(string(heart)))

	tup := [3]any{500, 6.4, uint8(1)}
	fmt.Fprintf(out, "array of any: %v\n", tup)

	order := "little"
	if cpu.IsBigEndian {
		order = "big"
	}
	fmt.Fprintf(out, "int is %d bits on this machine, byte order %s-endian\n", strconv.IntSize, order)
	return nil
}
