package todo

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Storage keys.
const (
	KeyTodos = "todos"
	KeyTheme = "theme"
)

// KV is the durable key-value storage the list is mirrored to.
type KV interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// Load rehydrates tasks and theme from kv. The returned state is always
// usable: missing or unreadable values fall back to an empty list and the
// light theme. A non-nil error only describes what was replaced.
func Load(kv KV) (State, error) {
	var s State
	var errs []error

	raw, ok, err := kv.Get(KeyTodos)
	switch {
	case err != nil:
		errs = append(errs, fmt.Errorf("read %s: %w", KeyTodos, err))
	case ok:
		tasks, err := decodeTasks(raw)
		if err != nil {
			errs = append(errs, err)
		}
		s.Tasks = tasks
	}

	raw, ok, err = kv.Get(KeyTheme)
	switch {
	case err != nil:
		errs = append(errs, fmt.Errorf("read %s: %w", KeyTheme, err))
	case ok:
		theme, err := ParseTheme(strings.Trim(strings.TrimSpace(raw), `"`))
		if err != nil {
			errs = append(errs, fmt.Errorf("decode %s: %w", KeyTheme, err))
		}
		s.Theme = theme
	}

	return s, errors.Join(errs...)
}

// decodeTasks parses the stored task array. Later entries reusing an id are
// dropped so the uniqueness invariant holds after reload.
func decodeTasks(raw string) ([]Task, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var tasks []Task
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		return nil, fmt.Errorf("decode %s: %w", KeyTodos, err)
	}
	seen := make(map[int64]struct{}, len(tasks))
	var dropped []int64
	tasks = slices.DeleteFunc(tasks, func(t Task) bool {
		if _, dup := seen[t.ID]; dup {
			dropped = append(dropped, t.ID)
			return true
		}
		seen[t.ID] = struct{}{}
		return false
	})
	if len(dropped) > 0 {
		return tasks, fmt.Errorf("decode %s: dropped duplicate ids %v", KeyTodos, dropped)
	}
	return tasks, nil
}

// Persister writes the task list and theme back after each state change.
type Persister struct {
	kv KV
}

func NewPersister(kv KV) *Persister {
	return &Persister{kv: kv}
}

// OnChange is the hook invoked after every mutation. Filter and draft are
// view state and never trigger a write.
func (p *Persister) OnChange(prev, next State) error {
	if p == nil || p.kv == nil {
		return nil
	}
	if prev.Theme == next.Theme && slices.Equal(prev.Tasks, next.Tasks) {
		return nil
	}
	return p.Save(next)
}

// Save replaces both stored values with the ones in s.
func (p *Persister) Save(s State) error {
	tasks := s.Tasks
	if tasks == nil {
		tasks = []Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("encode %s: %w", KeyTodos, err)
	}
	if err := p.kv.Set(KeyTodos, string(data)); err != nil {
		return fmt.Errorf("write %s: %w", KeyTodos, err)
	}
	if err := p.kv.Set(KeyTheme, s.Theme.String()); err != nil {
		return fmt.Errorf("write %s: %w", KeyTheme, err)
	}
	return nil
}
