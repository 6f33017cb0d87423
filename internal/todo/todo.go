// Package todo holds the task list state and the reducer functions that
// produce the next state from a user intent.
package todo

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

var (
	ErrUnknownFilter = errors.New("unknown filter")
	ErrUnknownTheme  = errors.New("unknown theme")
)

type Task struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
}

type Filter int

const (
	FilterAll Filter = iota
	FilterActive
	FilterCompleted
)

// Filters lists every filter in display order.
func Filters() []Filter {
	return []Filter{FilterAll, FilterActive, FilterCompleted}
}

func (f Filter) String() string {
	switch f {
	case FilterActive:
		return "active"
	case FilterCompleted:
		return "completed"
	default:
		return "all"
	}
}

// Next cycles all -> active -> completed -> all.
func (f Filter) Next() Filter {
	return Filter((int(f) + 1) % len(Filters()))
}

func (f Filter) valid() bool {
	return f >= FilterAll && f <= FilterCompleted
}

// Matches reports whether t belongs to the view selected by f.
func (f Filter) Matches(t Task) bool {
	switch f {
	case FilterActive:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	default:
		return true
	}
}

func ParseFilter(v string) (Filter, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "all":
		return FilterAll, nil
	case "active":
		return FilterActive, nil
	case "completed", "done":
		return FilterCompleted, nil
	default:
		return FilterAll, fmt.Errorf("%w: %q", ErrUnknownFilter, v)
	}
}

type Theme int

const (
	ThemeLight Theme = iota
	ThemeDark
)

func (t Theme) String() string {
	if t == ThemeDark {
		return "dark"
	}
	return "light"
}

// Toggle returns the other theme. Toggle(Toggle(t)) == t.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

func ParseTheme(v string) (Theme, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "light":
		return ThemeLight, nil
	case "dark":
		return ThemeDark, nil
	default:
		return ThemeLight, fmt.Errorf("%w: %q", ErrUnknownTheme, v)
	}
}

// State is the whole in-memory state of the list. The zero value is the
// default state: no tasks, filter all, empty draft, light theme.
type State struct {
	Tasks  []Task
	Filter Filter
	Draft  string
	Theme  Theme
}

// AddTask appends a new active task built from text and clears the draft.
// Blank text leaves the state unchanged.
func AddTask(s State, text string, now time.Time) State {
	text = strings.TrimSpace(text)
	if text == "" {
		return s
	}
	tasks := make([]Task, len(s.Tasks), len(s.Tasks)+1)
	copy(tasks, s.Tasks)
	s.Tasks = append(tasks, Task{
		ID:        nextID(s.Tasks, now),
		Text:      text,
		Completed: false,
		CreatedAt: now.UTC(),
	})
	s.Draft = ""
	return s
}

// nextID derives the id from the creation time but never reuses or goes
// below an existing id, so two adds within one millisecond stay distinct.
// Once math.MaxInt64 is taken the smallest free positive id is used.
func nextID(tasks []Task, now time.Time) int64 {
	id := now.UnixMilli()
	for _, t := range tasks {
		if t.ID == math.MaxInt64 {
			return lowestFreeID(tasks)
		}
		if t.ID >= id {
			id = t.ID + 1
		}
	}
	return id
}

func lowestFreeID(tasks []Task) int64 {
	used := make(map[int64]struct{}, len(tasks))
	for _, t := range tasks {
		used[t.ID] = struct{}{}
	}
	id := int64(1)
	for {
		if _, ok := used[id]; !ok {
			return id
		}
		id++
	}
}

func ToggleTask(s State, id int64) State {
	i := indexOf(s.Tasks, id)
	if i < 0 {
		return s
	}
	tasks := make([]Task, len(s.Tasks))
	copy(tasks, s.Tasks)
	tasks[i].Completed = !tasks[i].Completed
	s.Tasks = tasks
	return s
}

func DeleteTask(s State, id int64) State {
	i := indexOf(s.Tasks, id)
	if i < 0 {
		return s
	}
	tasks := make([]Task, 0, len(s.Tasks)-1)
	tasks = append(tasks, s.Tasks[:i]...)
	tasks = append(tasks, s.Tasks[i+1:]...)
	s.Tasks = tasks
	return s
}

func SetFilter(s State, f Filter) State {
	if !f.valid() {
		return s
	}
	s.Filter = f
	return s
}

func SetTheme(s State, t Theme) State {
	if t != ThemeLight && t != ThemeDark {
		return s
	}
	s.Theme = t
	return s
}

func ToggleTheme(s State) State {
	s.Theme = s.Theme.Toggle()
	return s
}

func SetDraft(s State, text string) State {
	s.Draft = text
	return s
}

// VisibleTasks returns the tasks matching f in their original order.
func VisibleTasks(tasks []Task, f Filter) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}

// Counts returns how many tasks are still active and how many are done.
func Counts(tasks []Task) (active, completed int) {
	for _, t := range tasks {
		if t.Completed {
			completed++
		} else {
			active++
		}
	}
	return active, completed
}

func indexOf(tasks []Task, id int64) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
