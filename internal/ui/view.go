package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"todolist/internal/config"
	"todolist/internal/todo"
)

const cardWidth = 60

func (m Model) View() string {
	if strings.EqualFold(m.cfg.Variant, config.VariantCompact) {
		return m.compactView()
	}
	return m.cardView()
}

// cardView draws the framed layout: header with theme switch, input box,
// filter tabs, task rows and footer.
func (m Model) cardView() string {
	st := m.styles
	width := cardWidth
	if m.width > 0 && m.width-4 < width {
		width = max(m.width-4, 20)
	}
	inner := width - 6

	title := st.Title.Render("Todo List")
	toggle := st.Toggle.Render(themeGlyph(m.state.Theme))
	gap := max(inner-lipgloss.Width(title)-lipgloss.Width(toggle), 1)
	header := title + strings.Repeat(" ", gap) + toggle

	var input string
	if m.mode == modeAdd {
		input = st.Input.Width(inner - 2).Render(m.input.View())
	} else {
		input = st.Status.Render(fmt.Sprintf("[%s] Add Task", m.cfg.Keys.Add))
	}

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n\n")
	b.WriteString(input)
	b.WriteString("\n\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")
	b.WriteString(m.renderRows(inner, "●", "○"))
	b.WriteString("\n")
	b.WriteString(st.Status.Render(m.footer()))

	frame := st.Frame.Width(width).Render(b.String())
	return st.Screen.Render(frame + "\n" + st.Status.Render(m.status) + "\n" + st.Help.Render(renderHelp(m.cfg.Keys)))
}

// compactView is the plain checklist layout.
func (m Model) compactView() string {
	st := m.styles
	var b strings.Builder

	b.WriteString(st.Title.Render(fmt.Sprintf("Todo (%s, %s)", m.state.Filter, m.state.Theme)))
	b.WriteString("\n\n")
	b.WriteString(m.renderRows(0, "[x]", "[ ]"))
	b.WriteString("\n")
	if m.mode == modeAdd {
		b.WriteString("Add Task: ")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}
	b.WriteString(m.footer())
	b.WriteString("\n\n")
	b.WriteString(st.Status.Render(m.status))
	b.WriteString("\n")
	b.WriteString(st.Help.Render(renderHelp(m.cfg.Keys)))
	return st.Screen.Render(b.String())
}

func (m Model) renderTabs() string {
	tabs := make([]string, 0, len(todo.Filters()))
	for _, f := range todo.Filters() {
		if f == m.state.Filter {
			tabs = append(tabs, m.styles.ActiveTab.Render(f.String()))
		} else {
			tabs = append(tabs, m.styles.Tab.Render(f.String()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// renderRows lists the visible tasks. A positive width truncates long text.
func (m Model) renderRows(width int, doneMark, openMark string) string {
	st := m.styles
	visible := m.visible()
	if len(visible) == 0 {
		msg := "No tasks found"
		if m.state.Filter != todo.FilterAll {
			msg += " in " + m.state.Filter.String()
		}
		return st.Empty.Render(msg) + "\n"
	}

	var b strings.Builder
	for i, t := range visible {
		cursor := " "
		if i == m.cursor && m.mode == modeList {
			cursor = st.Cursor.Render(">")
		}
		mark := openMark
		text := st.Item.Render(truncate(t.Text, width-8))
		if t.Completed {
			mark = st.Check.Render(doneMark)
			text = st.DoneItem.Render(truncate(t.Text, width-8))
		}
		row := fmt.Sprintf("%s %s %s", cursor, mark, text)
		if m.confirmDel && m.pendingDel != nil && m.pendingDel.ID == t.ID {
			row += " " + st.Delete.Render("✗")
		}
		b.WriteString(row)
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) footer() string {
	active, _ := todo.Counts(m.state.Tasks)
	noun := "items"
	if active == 1 {
		noun = "item"
	}
	return fmt.Sprintf("%d %s left", active, noun)
}

func renderHelp(k config.Keymap) string {
	return fmt.Sprintf("%s/%s move • %s add • %s toggle • %s delete • %s/%s/%s filter • %s theme • %s quit",
		k.Up, k.Down, k.Add, keyLabel(k.Toggle), k.Delete, k.FilterAll, k.FilterActive, k.FilterCompleted, k.Theme, k.Quit)
}

func keyLabel(k string) string {
	if k == " " {
		return "space"
	}
	return k
}

// themeGlyph shows the theme a press of the switch leads to.
func themeGlyph(t todo.Theme) string {
	if t == todo.ThemeDark {
		return "☀"
	}
	return "☾"
}

func truncate(s string, n int) string {
	if n <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}
