package ui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"todolist/internal/config"
	"todolist/internal/todo"
)

type memKV map[string]string

func (m memKV) Get(key string) (string, bool, error) {
	v, ok := m[key]
	return v, ok, nil
}

func (m memKV) Set(key, value string) error {
	m[key] = value
	return nil
}

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg, err := config.LoadOrCreate(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("LoadOrCreate failed: %v", err)
	}
	return cfg
}

func newTestModel(t *testing.T, state todo.State) (Model, memKV) {
	t.Helper()
	kv := memKV{}
	m := NewModel(state, todo.NewPersister(kv), testConfig(t), nil)
	tick := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	m.now = func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	}
	return m, kv
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(Model)
	}
	return m
}

func TestAddTaskFlow(t *testing.T) {
	m, kv := newTestModel(t, todo.State{})
	m = press(t, m, "a", "Buy milk")
	if m.State().Draft != "Buy milk" {
		t.Errorf("Draft: got %q", m.State().Draft)
	}
	if _, ok := kv[todo.KeyTodos]; ok {
		t.Error("typing a draft should not persist anything")
	}

	m = press(t, m, "enter")
	tasks := m.State().Tasks
	if len(tasks) != 1 || tasks[0].Text != "Buy milk" || tasks[0].Completed {
		t.Fatalf("Tasks: got %+v", tasks)
	}
	if m.mode != modeList {
		t.Error("should return to list mode after adding")
	}
	if m.State().Draft != "" || m.input.Value() != "" {
		t.Errorf("draft not cleared: %q / %q", m.State().Draft, m.input.Value())
	}
	if !strings.Contains(kv[todo.KeyTodos], `"text":"Buy milk"`) {
		t.Errorf("persisted todos: %q", kv[todo.KeyTodos])
	}
	if !strings.Contains(m.View(), "Buy milk") {
		t.Error("view does not show the new task")
	}
}

func TestAddBlankKeepsInputOpen(t *testing.T) {
	m, kv := newTestModel(t, todo.State{})
	m = press(t, m, "a", "   ", "enter")
	if len(m.State().Tasks) != 0 {
		t.Errorf("blank add created %d tasks", len(m.State().Tasks))
	}
	if m.mode != modeAdd {
		t.Error("blank add should stay in add mode")
	}
	if m.status != "Title cannot be empty" {
		t.Errorf("status: got %q", m.status)
	}
	if len(kv) != 0 {
		t.Errorf("blank add wrote storage: %v", kv)
	}
}

func TestCancelAddClearsDraft(t *testing.T) {
	m, _ := newTestModel(t, todo.State{})
	m = press(t, m, "a", "half", "esc")
	if m.mode != modeList || m.State().Draft != "" || len(m.State().Tasks) != 0 {
		t.Errorf("after cancel: mode %v draft %q tasks %d", m.mode, m.State().Draft, len(m.State().Tasks))
	}
}

func TestToggleSelectedTask(t *testing.T) {
	state := todo.State{Tasks: []todo.Task{{ID: 1, Text: "A"}, {ID: 2, Text: "B"}}}
	m, kv := newTestModel(t, state)

	m = press(t, m, "j", " ")
	if m.State().Tasks[0].Completed || !m.State().Tasks[1].Completed {
		t.Fatalf("Tasks: got %+v", m.State().Tasks)
	}
	if !strings.Contains(kv[todo.KeyTodos], `"id":2,"text":"B","completed":true`) {
		t.Errorf("persisted todos: %q", kv[todo.KeyTodos])
	}

	m = press(t, m, " ")
	if m.State().Tasks[1].Completed {
		t.Error("second toggle should restore the task")
	}
}

func TestDeleteNeedsConfirmation(t *testing.T) {
	state := todo.State{Tasks: []todo.Task{{ID: 1, Text: "A"}, {ID: 2, Text: "B"}}}
	m, kv := newTestModel(t, state)

	m = press(t, m, "d", "n")
	if len(m.State().Tasks) != 2 {
		t.Fatalf("declined delete removed a task")
	}

	m = press(t, m, "d", "y")
	tasks := m.State().Tasks
	if len(tasks) != 1 || tasks[0].ID != 2 {
		t.Fatalf("Tasks: got %+v", tasks)
	}
	if strings.Contains(kv[todo.KeyTodos], `"text":"A"`) {
		t.Errorf("deleted task still persisted: %q", kv[todo.KeyTodos])
	}
}

func TestFilterKeys(t *testing.T) {
	state := todo.State{Tasks: []todo.Task{
		{ID: 1, Text: "open"},
		{ID: 2, Text: "finished", Completed: true},
	}}
	m, kv := newTestModel(t, state)

	m = press(t, m, "3")
	if m.State().Filter != todo.FilterCompleted {
		t.Fatalf("Filter: got %v", m.State().Filter)
	}
	view := m.View()
	if !strings.Contains(view, "finished") || strings.Contains(view, "open") {
		t.Errorf("completed view:\n%s", view)
	}
	if len(kv) != 0 {
		t.Errorf("filter change wrote storage: %v", kv)
	}

	// Toggling the only visible task empties the completed view.
	m = press(t, m, " ")
	if !strings.Contains(m.View(), "No tasks found in completed") {
		t.Errorf("empty view:\n%s", m.View())
	}
	if m.cursor != 0 {
		t.Errorf("cursor: got %d, want 0", m.cursor)
	}

	m = press(t, m, "f")
	if m.State().Filter != todo.FilterAll {
		t.Errorf("cycle from completed: got %v, want all", m.State().Filter)
	}
}

func TestThemeToggle(t *testing.T) {
	m, kv := newTestModel(t, todo.State{})
	m = press(t, m, "t")
	if m.State().Theme != todo.ThemeDark {
		t.Fatalf("Theme: got %v, want dark", m.State().Theme)
	}
	if kv[todo.KeyTheme] != "dark" {
		t.Errorf("persisted theme: %q", kv[todo.KeyTheme])
	}
	if !strings.Contains(m.View(), "☀") {
		t.Error("dark theme should offer the light switch")
	}

	m = press(t, m, "t")
	if m.State().Theme != todo.ThemeLight || kv[todo.KeyTheme] != "light" {
		t.Errorf("second toggle: theme %v stored %q", m.State().Theme, kv[todo.KeyTheme])
	}
}

func TestCompactVariant(t *testing.T) {
	state := todo.State{Tasks: []todo.Task{{ID: 1, Text: "A"}, {ID: 2, Text: "B", Completed: true}}}
	m, _ := newTestModel(t, state)
	m.cfg.Variant = config.VariantCompact

	view := m.View()
	for _, want := range []string{"[ ] A", "[x]", "1 item left"} {
		if !strings.Contains(view, want) {
			t.Errorf("compact view missing %q:\n%s", want, view)
		}
	}
}

func TestDefaultFilterFromConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.DefaultFilter = "active"
	m := NewModel(todo.State{}, nil, cfg, nil)
	if m.State().Filter != todo.FilterActive {
		t.Errorf("Filter: got %v, want active", m.State().Filter)
	}
}

func TestEmptyListView(t *testing.T) {
	m, _ := newTestModel(t, todo.State{})
	view := m.View()
	if !strings.Contains(view, "No tasks found") || strings.Contains(view, "No tasks found in") {
		t.Errorf("empty view:\n%s", view)
	}
	m = press(t, m, "j", " ", "d")
	if m.confirmDel {
		t.Error("delete on empty list should not ask for confirmation")
	}
}

func TestCtrlCQuitsFromEveryMode(t *testing.T) {
	state := todo.State{Tasks: []todo.Task{{ID: 1, Text: "A"}}}
	tests := []struct {
		name string
		keys []string
	}{
		{"list", nil},
		{"add", []string{"a", "half"}},
		{"delete confirm", []string{"d"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestModel(t, state)
			m = press(t, m, tt.keys...)
			_, cmd := m.Update(key("ctrl+c"))
			if cmd == nil {
				t.Fatal("ctrl+c returned no command")
			}
			if _, ok := cmd().(tea.QuitMsg); !ok {
				t.Errorf("ctrl+c command produced %T, want tea.QuitMsg", cmd())
			}
		})
	}
}

func TestThemeBackgroundPerTheme(t *testing.T) {
	for _, theme := range []todo.Theme{todo.ThemeLight, todo.ThemeDark} {
		got := newStyles(theme).Screen.GetBackground()
		if got != palettes[theme].Background {
			t.Errorf("%v screen background: got %v, want %v", theme, got, palettes[theme].Background)
		}
	}
	m, _ := newTestModel(t, todo.State{})
	m = press(t, m, "t")
	if m.styles.Screen.GetBackground() != palettes[todo.ThemeDark].Background {
		t.Error("theme switch did not swap the screen background")
	}
}

func TestClampCursor(t *testing.T) {
	tests := []struct{ cur, n, want int }{
		{0, 0, 0},
		{-1, 3, 0},
		{5, 3, 2},
		{1, 3, 1},
	}
	for _, tt := range tests {
		if got := clampCursor(tt.cur, tt.n); got != tt.want {
			t.Errorf("clampCursor(%d, %d) = %d, want %d", tt.cur, tt.n, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("abcdef", 4); got != "abc…" {
		t.Errorf("truncate: got %q", got)
	}
	if got := truncate("abc", 0); got != "abc" {
		t.Errorf("truncate with no width: got %q", got)
	}
}
