package lesson

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed lessons.yaml
var embeddedLessons []byte

// ErrNotFound is returned when a lesson or step lookup misses.
var ErrNotFound = errors.New("not found")

// Catalog is the immutable set of lessons loaded at startup.
type Catalog struct {
	lessons []Lesson
	index   map[int]int
}

type catalogFile struct {
	Lessons []Lesson `yaml:"lessons"`
}

// Default returns the catalog compiled into the binary. It is parsed once.
var Default = sync.OnceValues(func() (*Catalog, error) {
	return ParseCatalog(embeddedLessons)
})

// LoadCatalogFile reads a catalog from a YAML file on disk.
func LoadCatalogFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes YAML lesson data. Structural problems that playback
// tolerates (dangling references, bad line indexes) are left to Validate;
// only data that cannot be represented is rejected here.
func ParseCatalog(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if len(f.Lessons) == 0 {
		return nil, fmt.Errorf("catalog has no lessons")
	}

	c := &Catalog{
		lessons: f.Lessons,
		index:   make(map[int]int, len(f.Lessons)),
	}
	for i, l := range f.Lessons {
		if _, dup := c.index[l.ID]; dup {
			return nil, fmt.Errorf("duplicate lesson id %d", l.ID)
		}
		c.index[l.ID] = i

		for _, s := range l.Steps {
			switch s.Kind {
			case KindContent, KindMCQ, KindVisualization:
			default:
				return nil, fmt.Errorf("lesson %d step %s: unknown step type %q", l.ID, s.ID, s.Kind)
			}
			for j, es := range s.ExecutionSteps {
				if !es.Action.Valid() {
					return nil, fmt.Errorf("lesson %d step %s execution step %d: unknown action %q",
						l.ID, s.ID, j, es.Action)
				}
			}
		}
	}
	return c, nil
}

// Lessons returns all lessons in authored order.
func (c *Catalog) Lessons() []Lesson {
	return slices.Clone(c.lessons)
}

// Lesson returns the lesson with the given id.
func (c *Catalog) Lesson(id int) (Lesson, error) {
	i, ok := c.index[id]
	if !ok {
		return Lesson{}, fmt.Errorf("lesson %d: %w", id, ErrNotFound)
	}
	return c.lessons[i], nil
}

// Step returns a step of a lesson together with the lesson itself.
func (c *Catalog) Step(lessonID int, stepID string) (Lesson, Step, error) {
	l, err := c.Lesson(lessonID)
	if err != nil {
		return Lesson{}, Step{}, err
	}
	s, ok := l.Step(stepID)
	if !ok {
		return Lesson{}, Step{}, fmt.Errorf("lesson %d step %q: %w", lessonID, stepID, ErrNotFound)
	}
	return l, s, nil
}

// Len returns the number of lessons.
func (c *Catalog) Len() int {
	return len(c.lessons)
}
