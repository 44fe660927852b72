package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderDashboard renders the two-panel dashboard
func (m Model) renderDashboard() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	panels := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderTeamsPanel(),
		" ",
		m.renderTodosPanel(),
	)
	b.WriteString(panels)
	b.WriteString("\n")

	if m.adding {
		b.WriteString(m.styles.Status.Render("New todo: "))
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	if m.lastError != "" {
		b.WriteString(m.styles.Error.Render("✗ " + m.lastError))
		b.WriteString("\n")
	}

	b.WriteString(m.renderHelpLine())

	return b.String()
}

// renderHeader renders the title bar with the signed-in user
func (m Model) renderHeader() string {
	title := m.styles.Title.Render("Crewdeck")

	who := ""
	if m.user != nil {
		who = m.styles.Subtitle.Render(fmt.Sprintf("%s <%s> · %s", m.user.Name, m.user.Email, m.user.Role))
	}

	status := ""
	if m.loading {
		status = m.styles.Status.Render(m.spinner.View() + "loading")
	}

	return lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", who, "  ", status)
}

// renderTeamsPanel renders the team list
func (m Model) renderTeamsPanel() string {
	var b strings.Builder

	b.WriteString(m.styles.Status.Render("Teams"))
	b.WriteString("\n\n")

	if len(m.teams) == 0 {
		b.WriteString(m.styles.Muted.Render("No teams yet"))
	}

	for i, team := range m.teams {
		line := team.Name
		if i == m.teamCursor {
			line = m.styles.Highlighted.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	return m.panelStyle(PanelTeams).Width(m.panelWidth()).Render(b.String())
}

// renderTodosPanel renders the todos of the selected team
func (m Model) renderTodosPanel() string {
	var b strings.Builder

	header := "Todos"
	if team := m.selectedTeam(); team != nil {
		header = fmt.Sprintf("Todos · %s", team.Name)
	}
	b.WriteString(m.styles.Status.Render(header))
	b.WriteString("\n\n")

	if len(m.todos) == 0 {
		b.WriteString(m.styles.Muted.Render("No todos"))
	}

	for i, todo := range m.todos {
		mark := "○"
		style := m.styles.Subtitle
		if todo.Completed {
			mark = "✓"
			style = m.styles.Success
		}
		line := fmt.Sprintf("%s %s", mark, todo.Title)
		if i == m.todoCursor && m.activePanel == PanelTodos {
			line = m.styles.Highlighted.Render("> " + line)
		} else {
			line = "  " + style.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	return m.panelStyle(PanelTodos).Width(m.panelWidth()).Render(b.String())
}

// panelStyle picks the focused or unfocused border for a panel
func (m Model) panelStyle(p Panel) lipgloss.Style {
	if m.activePanel == p {
		return m.styles.FocusBorder
	}
	return m.styles.Border
}

// panelWidth splits the terminal width between the two panels
func (m Model) panelWidth() int {
	width := (m.width - 6) / 2
	if width < 20 {
		width = 20
	}
	return width
}

// renderHelpLine renders the hotkey line at the bottom
func (m Model) renderHelpLine() string {
	helpItems := []string{
		m.styles.Key.Render("tab") + " " + m.styles.KeyDesc.Render("switch panel"),
		m.styles.Key.Render("↑/↓") + " " + m.styles.KeyDesc.Render("move"),
		m.styles.Key.Render("enter") + " " + m.styles.KeyDesc.Render("open/toggle"),
		m.styles.Key.Render("n") + " " + m.styles.KeyDesc.Render("new todo"),
	}
	if m.canManage() {
		helpItems = append(helpItems, m.styles.Key.Render("d")+" "+m.styles.KeyDesc.Render("delete todo"))
	}
	helpItems = append(helpItems,
		m.styles.Key.Render("r")+" "+m.styles.KeyDesc.Render("reload"),
		m.styles.Key.Render("q")+" "+m.styles.KeyDesc.Render("quit"),
	)

	return m.styles.Help.Render(strings.Join(helpItems, " • "))
}
