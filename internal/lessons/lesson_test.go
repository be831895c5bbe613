package lessons

import (
	"bytes"
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	apperrors "github.com/agbru/lessons/internal/errors"
)

func runLesson(t *testing.T, l Lesson) string {
	t.Helper()
	var buf bytes.Buffer
	if err := l.Run(context.Background(), &buf); err != nil {
		t.Fatalf("%s: Run() unexpected error: %v", l.Name(), err)
	}
	return buf.String()
}

func TestDefaultRegistry(t *testing.T) {
	t.Parallel()
	r := NewDefaultRegistry(DefaultOptions())

	want := []string{
		"branches", "data-types", "functions", "methods", "ownership",
		"playing-with-structs", "references", "slice-type", "structs", "variables",
	}
	got := r.List()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("List() = %v, want %v", got, want)
	}

	all := r.GetAll()
	if len(all) != len(want) {
		t.Fatalf("GetAll() returned %d lessons, want %d", len(all), len(want))
	}
	for i, l := range all {
		if l.Name() != want[i] {
			t.Errorf("GetAll()[%d] = %q, want %q", i, l.Name(), want[i])
		}
		if l.Title() == "" {
			t.Errorf("lesson %q has no title", l.Name())
		}
	}
}

func TestRegistry_GetAndRegister(t *testing.T) {
	t.Parallel()
	r := NewRegistry()

	if err := r.Register(Variables{}); err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}
	if err := r.Register(Variables{}); err == nil {
		t.Error("registering a duplicate name should fail")
	}

	l, err := r.Get("variables")
	if err != nil || l.Name() != "variables" {
		t.Errorf("Get(variables) = %v, %v", l, err)
	}
	if _, err := r.Get("generics"); err == nil {
		t.Error("Get of an unknown lesson should fail")
	}
}

func TestAllLessonsRun(t *testing.T) {
	t.Parallel()
	for _, l := range NewDefaultRegistry(DefaultOptions()).GetAll() {
		l := l
		t.Run(l.Name(), func(t *testing.T) {
			t.Parallel()
			first := runLesson(t, l)
			if first == "" {
				t.Fatal("lesson printed nothing")
			}
			if second := runLesson(t, l); second != first {
				t.Errorf("lesson output is not deterministic:\n%s\n---\n%s", first, second)
			}
		})
	}
}

func TestAllLessons_CanceledContext(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, l := range NewDefaultRegistry(DefaultOptions()).GetAll() {
		var buf bytes.Buffer
		if err := l.Run(ctx, &buf); !errors.Is(err, context.Canceled) {
			t.Errorf("%s: Run() error = %v, want context.Canceled", l.Name(), err)
		}
		if buf.Len() != 0 {
			t.Errorf("%s: printed %q after cancellation", l.Name(), buf.String())
		}
	}
}

func TestBranches_Output(t *testing.T) {
	t.Parallel()
	out := runLesson(t, &Branches{Fahrenheit: 50, FibMax: 12})

	want := `condition was false
number was something other than zero
number is divisible by 3
5
the result is 20
the counter is 10
count = 0
remaining = 10
remaining = 9
count = 1
remaining = 10
remaining = 9
count = 2
remaining = 10
End count = 2
3!
2!
1!
LIFTOFF!!
the value is: 10
the value is: 20
the value is: 30
the value is: 40
the value is: 50
the value is: 1
the value is: 2
the value is: 3
the value is: 4
the value is: 5
3!
2!
1!
LIFTOFF!!
50°F is 10°C
1
1
2
3
5
8
13
21
34
55
89
`
	if out != want {
		t.Errorf("branches output mismatch\ngot:\n%s\nwant:\n%s", out, want)
	}
}

func TestBranches_InvalidInputs(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		b    *Branches
		kind error
	}{
		{"negative fib max", &Branches{Fahrenheit: 50, FibMax: -1}, apperrors.ErrInvalidArgument},
		{"fib max overflows", &Branches{Fahrenheit: 50, FibMax: 60}, apperrors.ErrOverflow},
		{"fib max at int32 limit", &Branches{Fahrenheit: 50, FibMax: math.MaxInt32}, apperrors.ErrOverflow},
		{"fib max beyond int32", &Branches{Fahrenheit: 50, FibMax: math.MaxInt32 + 1}, apperrors.ErrInvalidArgument},
		{"fahrenheit overflows", &Branches{Fahrenheit: 2_000_000_000, FibMax: 3}, apperrors.ErrOverflow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			if err := tt.b.Run(context.Background(), &buf); !errors.Is(err, tt.kind) {
				t.Errorf("Run() error = %v, want %v", err, tt.kind)
			}
		})
	}
}

func TestVariables_Output(t *testing.T) {
	t.Parallel()
	want := `The value of x is: 5
The value of x is: 6
threeHoursInSeconds: 10800
The value of y in the inner scope is: 12
The value of y is: 6
4
`
	if got := runLesson(t, Variables{}); got != want {
		t.Errorf("variables output mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestLessonOutputs_Contain(t *testing.T) {
	t.Parallel()
	tests := []struct {
		lesson   Lesson
		contains []string
	}{
		{DataTypes{}, []string{"Value of guess: 42", "parsing -1 as uint32 fails", "uint8 255 + 1 wraps to 0", "7/2 = 3", "byte order"}},
		{Functions{}, []string{"Another function.", "The value of x is: 5", "The measurement is: 5i", "y is: 10. z is: 6.", "n is: 5. m is: 6 (ok=true)"}},
		{Methods{}, []string{"200\n", "after ScaleHeight(10): {Width:10 Height:200}", "after Resized(130, 13): {Width:130 Height:13} (original {Width:10 Height:200})", "true\nfalse\n", "Square(10): {Width:10 Height:10}", "method value: 100, method expression: 400"}},
		{Ownership{}, []string{"hello, world!", "6\n5\n", "s3 = Hi, s4 = Hi there!", "shared: a=[99 2 3] b=[99 2 3]", "cloned: a=[99 2 3] c=[1 2 3]", "Just a copy of 5", "given back: yours", "greeting hello, num 6"}},
		{PlayingWithStructs{}, []string{"The area of the rectangle is 1500 square pixels.", "rect1 is {30 50}", "rect1 is {Width:30 Height:50}", "rect1 is lessons.Rectangle{", "rect2 is {Width:60 Height:50}, scale is still 2", `name is still "john"`}},
		{References{}, []string{"The length of 'hello' is 5.", "hello, world\n", "hello, hello\nhello world, hello world\n", "nil pointer: true", `noDangle returned "hello"`}},
		{SliceType{}, []string{"first word ends at index 5", "hello, world", "the first word is: hello", "a[1:3] = [2 3], equal to [2 3]: true", "len 2, cap 4", "[1 20 3 4 5]"}},
		{Structs{}, []string{"someone@example.com, someusername123, true, 1", "user2 signed in 2 times, user1 1", "DaveDave", "another@example.com, someusername123", "0\n1\n", "empty struct size: 0, equal to itself: true"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.lesson.Name(), func(t *testing.T) {
			t.Parallel()
			out := runLesson(t, tt.lesson)
			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("output should contain %q, got:\n%s", want, out)
				}
			}
		})
	}
}

func TestFirstWord(t *testing.T) {
	t.Parallel()
	tests := map[string]string{
		"hello world": "hello",
		"hello":       "hello",
		"":            "",
		" leading":    "",
		"a b c":       "a",
	}
	for in, want := range tests {
		if got := FirstWord(in); got != want {
			t.Errorf("FirstWord(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRectangle(t *testing.T) {
	t.Parallel()
	r := Rectangle{Width: 3, Height: 4}
	if r.Area() != 12 {
		t.Errorf("Area() = %d, want 12", r.Area())
	}
	r.ScaleHeight(2)
	if r.Height != 8 {
		t.Errorf("ScaleHeight(2) height = %d, want 8", r.Height)
	}
	resized := r.Resized(1, 1)
	if r.Width != 3 || resized.Width != 1 {
		t.Errorf("Resized must not modify the receiver: r=%+v resized=%+v", r, resized)
	}
	if !r.LargerThan(Square(4)) || Square(5).LargerThan(Square(5)) {
		t.Error("LargerThan comparison is wrong")
	}
}
