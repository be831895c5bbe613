package orchestration

import (
	"github.com/agbru/lessons/internal/config"
	"github.com/agbru/lessons/internal/lessons"
)

// LessonSource is the read side of lessons.Registry.
type LessonSource interface {
	Get(name string) (lessons.Lesson, error)
	GetAll() []lessons.Lesson
}

// SelectLessons resolves the lessons to run from the configured name.
// config.AllLessons yields every lesson in name order.
//
// Parameters:
//   - name: A lesson name or config.AllLessons.
//   - source: The registry to resolve names from.
//
// Returns:
//   - []lessons.Lesson: The lessons to execute.
//   - error: When name is neither "all" nor registered.
func SelectLessons(name string, source LessonSource) ([]lessons.Lesson, error) {
	if name == config.AllLessons {
		return source.GetAll(), nil
	}
	l, err := source.Get(name)
	if err != nil {
		return nil, err
	}
	return []lessons.Lesson{l}, nil
}
