package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"todolist/internal/config"
	"todolist/internal/todo"
)

type mode int

const (
	modeList mode = iota
	modeAdd
)

type Model struct {
	state      todo.State
	persister  *todo.Persister
	logger     *log.Logger
	cfg        config.Config
	styles     styles
	cursor     int
	mode       mode
	input      textinput.Model
	status     string
	width      int
	confirmDel bool
	pendingDel *todo.Task
	now        func() time.Time
}

// Run loads the persisted list from kv and runs the terminal UI until quit.
func Run(kv todo.KV, cfg config.Config, logger *log.Logger) error {
	state, err := todo.Load(kv)
	if err != nil {
		logger.Warn("persisted state replaced with defaults", "err", err)
	}
	logger.Info("loaded", "tasks", len(state.Tasks), "theme", state.Theme)

	m := NewModel(state, todo.NewPersister(kv), cfg, logger)
	program := tea.NewProgram(m, tea.WithAltScreen())
	_, err = program.Run()
	return err
}

// NewModel builds the UI around an already loaded state. The initial filter
// comes from the config's default_filter.
func NewModel(state todo.State, persister *todo.Persister, cfg config.Config, logger *log.Logger) Model {
	if f, err := todo.ParseFilter(cfg.DefaultFilter); err == nil {
		state = todo.SetFilter(state, f)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	ti := textinput.New()
	ti.Placeholder = "Add a new task..."
	ti.CharLimit = 256
	ti.Width = 40
	ti.SetValue(state.Draft)

	return Model{
		state:     state,
		persister: persister,
		logger:    logger,
		cfg:       cfg,
		styles:    newStyles(state.Theme),
		status:    fmt.Sprintf("Press '%s' to add, space to toggle, '%s' to delete.", cfg.Keys.Add, cfg.Keys.Delete),
		input:     ti,
		mode:      modeList,
		now:       time.Now,
	}
}

// State returns the current list state.
func (m Model) State() todo.State {
	return m.state
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.confirmDel {
			return m.updateDeleteConfirm(msg.String())
		}
		if m.mode == modeAdd {
			return m.updateAddMode(msg.String(), msg)
		}
		return m.updateListMode(msg.String())
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(msg.Width-16, 10)
	}
	return m, nil
}

// apply installs next as the current state and runs the persistence hook.
func (m *Model) apply(next todo.State) {
	prev := m.state
	m.state = next
	if prev.Theme != next.Theme {
		m.styles = newStyles(next.Theme)
	}
	m.cursor = clampCursor(m.cursor, len(m.visible()))
	if err := m.persister.OnChange(prev, next); err != nil {
		m.logger.Error("persist failed", "err", err)
		m.status = fmt.Sprintf("save failed: %v", err)
	}
}

func (m Model) visible() []todo.Task {
	return todo.VisibleTasks(m.state.Tasks, m.state.Filter)
}

func (m Model) selected() (todo.Task, bool) {
	v := m.visible()
	if len(v) == 0 {
		return todo.Task{}, false
	}
	return v[clampCursor(m.cursor, len(v))], true
}

func (m Model) updateAddMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel:
		m.mode = modeList
		m.input.SetValue("")
		m.input.Blur()
		m.status = "Cancelled"
		m.apply(todo.SetDraft(m.state, ""))
		return m, nil
	case m.cfg.Keys.Confirm:
		text := m.input.Value()
		if strings.TrimSpace(text) == "" {
			m.status = "Title cannot be empty"
			return m, nil
		}
		m.status = "Added task"
		m.apply(todo.AddTask(m.state, text, m.now()))
		added := m.state.Tasks[len(m.state.Tasks)-1]
		m.logger.Debug("task added", "id", added.ID, "tasks", len(m.state.Tasks))
		if m.state.Filter.Matches(added) {
			n := len(m.visible())
			m.cursor = clampCursor(n-1, n)
		}
		m.input.SetValue(m.state.Draft)
		m.input.Blur()
		m.mode = modeList
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.apply(todo.SetDraft(m.state, m.input.Value()))
		return m, cmd
	}
}

func (m Model) updateListMode(key string) (tea.Model, tea.Cmd) {
	n := len(m.visible())
	switch key {
	case m.cfg.Keys.Quit:
		return m, tea.Quit
	case m.cfg.Keys.Down, "down":
		if n == 0 {
			return m, nil
		}
		m.cursor = clampCursor(m.cursor+1, n)
	case m.cfg.Keys.Up, "up":
		if m.cursor > 0 {
			m.cursor = clampCursor(m.cursor-1, n)
		}
	case m.cfg.Keys.Add:
		m.mode = modeAdd
		m.input.Focus()
		m.status = "Add mode: type a title and press Enter"
	case m.cfg.Keys.Toggle:
		t, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.status = "Toggled task"
		m.apply(todo.ToggleTask(m.state, t.ID))
	case m.cfg.Keys.Delete:
		t, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.confirmDel = true
		m.pendingDel = &t
		m.status = fmt.Sprintf("Delete \"%s\"? y/n", t.Text)
	case m.cfg.Keys.FilterAll:
		m.setFilter(todo.FilterAll)
	case m.cfg.Keys.FilterActive:
		m.setFilter(todo.FilterActive)
	case m.cfg.Keys.FilterCompleted:
		m.setFilter(todo.FilterCompleted)
	case m.cfg.Keys.CycleFilter, "tab":
		m.setFilter(m.state.Filter.Next())
	case m.cfg.Keys.Theme:
		m.status = "Theme switched"
		m.apply(todo.ToggleTheme(m.state))
		m.logger.Debug("theme switched", "theme", m.state.Theme)
	}
	return m, nil
}

func (m *Model) setFilter(f todo.Filter) {
	m.cursor = 0
	m.status = "Showing " + f.String()
	m.apply(todo.SetFilter(m.state, f))
}

func (m Model) updateDeleteConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "n", "N", m.cfg.Keys.Cancel:
		m.status = "Delete cancelled"
	case "y", "Y":
		if m.pendingDel == nil {
			m.status = "Nothing to delete"
			break
		}
		m.status = "Deleted task"
		m.apply(todo.DeleteTask(m.state, m.pendingDel.ID))
	default:
		return m, nil
	}
	m.confirmDel = false
	m.pendingDel = nil
	return m, nil
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}
