//go:generate mockgen -source=lesson.go -destination=mocks/mock_lesson.go -package=mocks

package lessons

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
)

// Lesson is a self-contained demonstration program. Run writes everything
// the lesson prints to out and returns an error only when the lesson cannot
// complete (for example, an arithmetic input outside its domain).
type Lesson interface {
	// Name is the short identifier used on the command line, e.g. "ownership".
	Name() string
	// Title is a human-readable description.
	Title() string
	// Run executes the lesson.
	Run(ctx context.Context, out io.Writer) error
}

// Options carries the few tunable inputs of the default lessons.
type Options struct {
	// Fahrenheit is converted to Celsius by the branches lesson.
	Fahrenheit int
	// FibMax is the last Fibonacci index printed by the branches lesson.
	FibMax int
}

// DefaultOptions returns 50°F and the first twelve Fibonacci indices.
func DefaultOptions() Options {
	return Options{Fahrenheit: 50, FibMax: 12}
}

// Registry maps lesson names to implementations. It is safe for concurrent
// use.
type Registry struct {
	mu      sync.RWMutex
	lessons map[string]Lesson
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{lessons: make(map[string]Lesson)}
}

// NewDefaultRegistry returns a registry holding every built-in lesson.
func NewDefaultRegistry(opts Options) *Registry {
	r := NewRegistry()
	for _, l := range []Lesson{
		&Branches{Fahrenheit: opts.Fahrenheit, FibMax: opts.FibMax},
		DataTypes{},
		Functions{},
		Methods{},
		Ownership{},
		PlayingWithStructs{},
		References{},
		SliceType{},
		Structs{},
		Variables{},
	} {
		// Names are distinct, Register cannot fail here.
		_ = r.Register(l)
	}
	return r
}

// Register adds a lesson. It fails if the name is empty or already taken.
func (r *Registry) Register(l Lesson) error {
	name := l.Name()
	if name == "" {
		return fmt.Errorf("lesson has an empty name")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.lessons[name]; exists {
		return fmt.Errorf("lesson %q is already registered", name)
	}
	r.lessons[name] = l
	return nil
}

// Get returns the lesson registered under name.
func (r *Registry) Get(name string) (Lesson, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.lessons[name]
	if !ok {
		return nil, fmt.Errorf("unknown lesson: %q", name)
	}
	return l, nil
}

// List returns the registered names in alphabetical order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.lessons))
	for name := range r.lessons {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetAll returns every registered lesson, ordered by name.
func (r *Registry) GetAll() []Lesson {
	names := r.List()
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]Lesson, 0, len(names))
	for _, name := range names {
		all = append(all, r.lessons[name])
	}
	return all
}
