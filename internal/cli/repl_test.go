package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/agbru/lessons/internal/lessons"
)

func runREPL(t *testing.T, input string) string {
	t.Helper()
	repl := NewREPL(lessons.NewDefaultRegistry(lessons.DefaultOptions()), REPLConfig{Timeout: 5 * time.Second})
	var out bytes.Buffer
	repl.SetInput(strings.NewReader(input))
	repl.SetOutput(&out)
	repl.Start(context.Background())
	return out.String()
}

func TestREPL_Commands(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		input    string
		contains []string
	}{
		{"help", "help\nexit\n", []string{"Available commands:", "c2f <f>", "Goodbye!"}},
		{"list", "list\nquit\n", []string{"Available lessons:", "ownership", "slice-type"}},
		{"c2f", "c2f 212\n", []string{"212°F is 100°C"}},
		{"c2f overflow", "c2f 2147483647\n", []string{"Error: fahrenheit_to_celsius(2147483647): integer overflow"}},
		{"fib", "fib 12\n", []string{"term(12) = 89"}},
		{"fib negative", "fib -3\n", []string{"Error: fibonacci_term(-3): invalid argument"}},
		{"fib overflow", "fib 48\n", []string{"Error: fibonacci_term(48): integer overflow"}},
		{"seq", "seq 7\n", []string{"lessons> 1 1 2 3 5 8\n"}},
		{"seq overflow", "seq 50\n", []string{"1836311903\nError: fibonacci_term(48): integer overflow"}},
		{"seq at int32 limit", "seq 2147483647\n", []string{"1836311903\nError: fibonacci_term(48): integer overflow"}},
		{"run", "run variables\n", []string{"=== variables", "The value of x is: 6"}},
		{"bare lesson name", "Variables\n", []string{"=== variables"}},
		{"unknown lesson", "run generics\n", []string{`unknown lesson: "generics"`}},
		{"unknown command", "frobnicate\n", []string{"Unknown command: frobnicate"}},
		{"usage", "fib\nc2f x\n", []string{"Usage: fib <n>", `Error: validation error for "fahrenheit": "x" is not a 32-bit integer`}},
		{"out of int32 range", "seq 2147483648\n", []string{`Error: validation error for "max": "2147483648" is not a 32-bit integer`}},
		{"no trailing newline", "fib 10", []string{"term(10) = 34", "Goodbye!"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			out := runREPL(t, tt.input)
			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("output should contain %q, got:\n%s", want, out)
				}
			}
		})
	}
}

func TestREPL_ExitStopsReading(t *testing.T) {
	t.Parallel()
	out := runREPL(t, "exit\nfib 5\n")
	if strings.Contains(out, "term(5)") {
		t.Error("commands after exit must not run")
	}
}

func TestREPL_CanceledContext(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	repl := NewREPL(lessons.NewDefaultRegistry(lessons.DefaultOptions()), REPLConfig{Timeout: time.Second})
	var out bytes.Buffer
	repl.SetInput(strings.NewReader("fib 5\n"))
	repl.SetOutput(&out)
	repl.Start(ctx)

	if strings.Contains(out.String(), "term(5)") {
		t.Error("a canceled session must not process commands")
	}
}
