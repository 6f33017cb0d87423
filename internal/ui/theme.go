package ui

import (
	"github.com/charmbracelet/lipgloss"

	"todolist/internal/todo"
)

type palette struct {
	Background lipgloss.Color
	Surface    lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Accent     lipgloss.Color
	AccentText lipgloss.Color
	Done       lipgloss.Color
	Danger     lipgloss.Color
	Border     lipgloss.Color
}

var palettes = map[todo.Theme]palette{
	todo.ThemeLight: {
		Background: "#F3F4F6",
		Surface:    "#FFFFFF",
		Text:       "#374151",
		Muted:      "#9CA3AF",
		Accent:     "#3B82F6",
		AccentText: "#FFFFFF",
		Done:       "#22C55E",
		Danger:     "#F87171",
		Border:     "#E5E7EB",
	},
	todo.ThemeDark: {
		Background: "#111827",
		Surface:    "#1F2937",
		Text:       "#E5E7EB",
		Muted:      "#6B7280",
		Accent:     "#3B82F6",
		AccentText: "#FFFFFF",
		Done:       "#4ADE80",
		Danger:     "#EF4444",
		Border:     "#374151",
	},
}

type styles struct {
	Screen    lipgloss.Style
	Frame     lipgloss.Style
	Title     lipgloss.Style
	Toggle    lipgloss.Style
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
	Item      lipgloss.Style
	DoneItem  lipgloss.Style
	Check     lipgloss.Style
	Cursor    lipgloss.Style
	Delete    lipgloss.Style
	Empty     lipgloss.Style
	Input     lipgloss.Style
	Status    lipgloss.Style
	Help      lipgloss.Style
}

func newStyles(t todo.Theme) styles {
	p, ok := palettes[t]
	if !ok {
		p = palettes[todo.ThemeLight]
	}
	return styles{
		Screen: lipgloss.NewStyle().
			Background(p.Background),
		Frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Background(p.Surface).
			Padding(1, 2),
		Title: lipgloss.NewStyle().
			Foreground(p.Text).
			Bold(true),
		Toggle: lipgloss.NewStyle().
			Foreground(p.Text),
		Tab: lipgloss.NewStyle().
			Foreground(p.Muted).
			Padding(0, 1),
		ActiveTab: lipgloss.NewStyle().
			Foreground(p.AccentText).
			Background(p.Accent).
			Padding(0, 1),
		Item: lipgloss.NewStyle().
			Foreground(p.Text),
		DoneItem: lipgloss.NewStyle().
			Foreground(p.Muted).
			Strikethrough(true),
		Check: lipgloss.NewStyle().
			Foreground(p.Done),
		Cursor: lipgloss.NewStyle().
			Foreground(p.Accent).
			Bold(true),
		Delete: lipgloss.NewStyle().
			Foreground(p.Danger),
		Empty: lipgloss.NewStyle().
			Foreground(p.Muted).
			Italic(true),
		Input: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Accent).
			Padding(0, 1),
		Status: lipgloss.NewStyle().
			Foreground(p.Muted),
		Help: lipgloss.NewStyle().
			Foreground(p.Muted).
			Faint(true),
	}
}
