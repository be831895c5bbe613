// Package arith holds the two small pure functions exercised by the branches
// lesson: a Fahrenheit to Celsius conversion and the shifted Fibonacci term.
//
// Both functions work on 32-bit signed integers. Results that cannot be
// represented are reported as errors instead of wrapping around.
package arith

import (
	"math"

	apperrors "github.com/agbru/lessons/internal/errors"
)

// Operation names used in ArithmeticError values.
const (
	OpFahrenheitToCelsius = "fahrenheit_to_celsius"
	OpFibonacciTerm       = "fibonacci_term"
	OpFibonacciSequence   = "fibonacci_sequence"
)

// MaxFibonacciIndex is the largest index whose term fits in an int32.
// term(47) = 1836311903; term(48) would be 2971215073.
const MaxFibonacciIndex = 47

// TermSink receives the value computed by FibonacciTerm.
type TermSink interface {
	// OnTerm is called once per computed term with its index and value.
	OnTerm(n, value int32)
}

// TermSinkFunc adapts a plain function to the TermSink interface.
type TermSinkFunc func(n, value int32)

// OnTerm calls f(n, value).
func (f TermSinkFunc) OnTerm(n, value int32) {
	f(n, value)
}

// FahrenheitToCelsius converts a temperature using (f - 32) * 5 / 9 with
// truncating integer division.
//
// Returns an ErrOverflow ArithmeticError when an intermediate value leaves
// the int32 range.
func FahrenheitToCelsius(f int32) (int32, error) {
	scaled := (int64(f) - 32) * 5
	if scaled < math.MinInt32 || scaled > math.MaxInt32 {
		return 0, apperrors.NewOverflow(OpFahrenheitToCelsius, int64(f))
	}
	return int32(scaled / 9), nil
}

// FibonacciTerm returns the n-th term of the sequence where term(0) and
// term(1) are 0 and term(2) is 1. Every later term is the sum of the two
// terms before it.
//
// When n >= 2 the computed value is passed to sink, which may be nil.
// A negative n yields ErrInvalidArgument and n > MaxFibonacciIndex yields
// ErrOverflow.
func FibonacciTerm(n int32, sink TermSink) (int32, error) {
	if n < 0 {
		return 0, apperrors.NewInvalidArgument(OpFibonacciTerm, int64(n))
	}
	if n <= 1 {
		return 0, nil
	}

	fib, prev := int32(1), int32(0)
	for i := int32(2); i < n; i++ {
		if fib > math.MaxInt32-prev {
			return 0, apperrors.NewOverflow(OpFibonacciTerm, int64(n))
		}
		fib, prev = fib+prev, fib
	}

	if sink != nil {
		sink.OnTerm(n, fib)
	}
	return fib, nil
}

// FibonacciSequence computes term(1) through term(max) in order, forwarding
// each computed value to sink. It stops at the first error.
func FibonacciSequence(max int32, sink TermSink) ([]int32, error) {
	if max < 0 {
		return nil, apperrors.NewInvalidArgument(OpFibonacciSequence, int64(max))
	}
	// Terms past MaxFibonacciIndex overflow, so max never sizes the slice.
	terms := make([]int32, 0, min(max, MaxFibonacciIndex))
	for n := int32(1); n <= max; n++ {
		v, err := FibonacciTerm(n, sink)
		if err != nil {
			return terms, err
		}
		terms = append(terms, v)
	}
	return terms, nil
}
