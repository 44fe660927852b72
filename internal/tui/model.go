package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/crewdeck/crewdeck/internal/api"
	"github.com/crewdeck/crewdeck/internal/session"
)

// Panel identifies which pane of the dashboard has focus
type Panel int

// Panel constants
const (
	// PanelTeams is the team list on the left
	PanelTeams Panel = iota
	// PanelTodos is the todo list on the right
	PanelTodos
)

// Model represents the dashboard state
type Model struct {
	ctx    context.Context
	client *api.Client
	user   *session.User

	// Data state
	teams      []api.Team
	todos      []api.Todo
	teamCursor int
	todoCursor int

	// UI state
	activePanel Panel
	loading     bool
	adding      bool
	width       int
	height      int
	ready       bool
	quitting    bool
	lastError   string

	spinner spinner.Model
	input   textinput.Model
	styles  Styles
}

// Styles contains lipgloss styles for the dashboard
type Styles struct {
	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	Status      lipgloss.Style
	Error       lipgloss.Style
	Success     lipgloss.Style
	Muted       lipgloss.Style
	Border      lipgloss.Style
	FocusBorder lipgloss.Style
	Highlighted lipgloss.Style
	Help        lipgloss.Style
	Key         lipgloss.Style
	KeyDesc     lipgloss.Style
}

// NewModel creates a new dashboard model
func NewModel(ctx context.Context, client *api.Client, user *session.User) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	in := textinput.New()
	in.Placeholder = "New todo title"
	in.CharLimit = 120

	return Model{
		ctx:         ctx,
		client:      client,
		user:        user,
		activePanel: PanelTeams,
		loading:     true,
		spinner:     sp,
		input:       in,
		styles:      DefaultStyles(),
	}
}

// DefaultStyles returns the default lipgloss styles
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")). // Purple
			MarginBottom(1),
		Subtitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")), // Gray
		Status: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86")), // Cyan
		Error: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")), // Red
		Success: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("46")), // Green
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")), // Gray
		Border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")). // Gray
			Padding(0, 1),
		FocusBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")). // Purple
			Padding(0, 1),
		Highlighted: lipgloss.NewStyle().
			Background(lipgloss.Color("63")).  // Purple
			Foreground(lipgloss.Color("230")). // Light yellow
			Bold(true),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")). // Gray
			MarginTop(1),
		Key: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")), // Purple
		KeyDesc: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")), // Gray
	}
}

// Run starts the dashboard and blocks until it exits
func Run(ctx context.Context, client *api.Client, user *session.User) error {
	model := NewModel(ctx, client, user)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

// Init initializes the dashboard model (required by Bubble Tea)
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadTeams())
}

// Update handles messages and updates the model state (required by Bubble Tea)
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case teamsLoadedMsg:
		m.loading = false
		m.lastError = ""
		m.teams = msg.Teams
		if m.teamCursor >= len(m.teams) {
			m.teamCursor = 0
		}
		if len(m.teams) == 0 {
			m.todos = nil
			return m, nil
		}
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.loadTodos(m.selectedTeam().ID))

	case todosLoadedMsg:
		m.loading = false
		m.lastError = ""
		// A slow response for a previously selected team is stale
		if team := m.selectedTeam(); team == nil || team.ID != msg.TeamID {
			return m, nil
		}
		m.todos = msg.Todos
		if m.todoCursor >= len(m.todos) {
			m.todoCursor = 0
		}
		return m, nil

	case todoSavedMsg:
		m.loading = true
		if team := m.selectedTeam(); team != nil {
			return m, tea.Batch(m.spinner.Tick, m.loadTodos(team.ID))
		}
		return m, nil

	case todoDeletedMsg:
		m.loading = true
		if team := m.selectedTeam(); team != nil {
			return m, tea.Batch(m.spinner.Tick, m.loadTodos(team.ID))
		}
		return m, nil

	case errMsg:
		m.loading = false
		m.lastError = msg.Err.Error()
		return m, nil
	}

	if m.adding {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the dashboard (required by Bubble Tea)
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	if m.quitting {
		return ""
	}
	return m.renderDashboard()
}

// handleKeyPress handles keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Ctrl+C always quits
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	// The new-todo input captures all other keys while open
	if m.adding {
		switch msg.String() {
		case "enter":
			title := m.input.Value()
			m.adding = false
			m.input.Reset()
			m.input.Blur()
			team := m.selectedTeam()
			if title == "" || team == nil {
				return m, nil
			}
			m.loading = true
			return m, tea.Batch(m.spinner.Tick, m.createTodo(title, team.ID))
		case "esc":
			m.adding = false
			m.input.Reset()
			m.input.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q", "esc":
		m.quitting = true
		return m, tea.Quit

	case "tab":
		if m.activePanel == PanelTeams {
			m.activePanel = PanelTodos
		} else {
			m.activePanel = PanelTeams
		}

	case "up", "k":
		return m.moveCursor(-1), nil

	case "down", "j":
		return m.moveCursor(1), nil

	case "enter", " ":
		if m.activePanel == PanelTeams {
			if team := m.selectedTeam(); team != nil {
				m.todoCursor = 0
				m.loading = true
				return m, tea.Batch(m.spinner.Tick, m.loadTodos(team.ID))
			}
			return m, nil
		}
		if todo := m.selectedTodo(); todo != nil {
			m.loading = true
			return m, tea.Batch(m.spinner.Tick, m.toggleTodo(*todo))
		}

	case "n":
		if m.selectedTeam() != nil {
			m.adding = true
			m.input.Focus()
			return m, textinput.Blink
		}

	case "d":
		// Todo deletion is reserved for admins and team leads
		if !m.canManage() {
			return m, nil
		}
		if m.activePanel == PanelTodos {
			if todo := m.selectedTodo(); todo != nil {
				m.loading = true
				return m, tea.Batch(m.spinner.Tick, m.deleteTodo(todo.ID))
			}
		}

	case "r":
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.loadTeams())
	}

	return m, nil
}

// moveCursor moves the cursor of the focused panel, clamped to its list
func (m Model) moveCursor(delta int) Model {
	if m.activePanel == PanelTeams {
		m.teamCursor = clamp(m.teamCursor+delta, len(m.teams))
	} else {
		m.todoCursor = clamp(m.todoCursor+delta, len(m.todos))
	}
	return m
}

func clamp(pos, length int) int {
	if length == 0 {
		return 0
	}
	if pos < 0 {
		return 0
	}
	if pos >= length {
		return length - 1
	}
	return pos
}

func (m Model) selectedTeam() *api.Team {
	if m.teamCursor < 0 || m.teamCursor >= len(m.teams) {
		return nil
	}
	return &m.teams[m.teamCursor]
}

func (m Model) selectedTodo() *api.Todo {
	if m.todoCursor < 0 || m.todoCursor >= len(m.todos) {
		return nil
	}
	return &m.todos[m.todoCursor]
}

// canManage reports whether the signed-in user may delete todos
func (m Model) canManage() bool {
	if m.user == nil {
		return false
	}
	return m.user.Role == session.RoleAdmin || m.user.Role == session.RoleLead
}

// Commands

func (m Model) loadTeams() tea.Cmd {
	ctx, client, userID := m.ctx, m.client, m.user.ID
	return func() tea.Msg {
		teams, err := client.TeamsByMember(ctx, userID)
		if err != nil {
			return errMsg{Err: err}
		}
		return teamsLoadedMsg{Teams: teams}
	}
}

func (m Model) loadTodos(teamID string) tea.Cmd {
	ctx, client := m.ctx, m.client
	return func() tea.Msg {
		todos, err := client.ListTodos(ctx, teamID)
		if err != nil {
			return errMsg{Err: err}
		}
		return todosLoadedMsg{TeamID: teamID, Todos: todos}
	}
}

func (m Model) createTodo(title, teamID string) tea.Cmd {
	ctx, client := m.ctx, m.client
	return func() tea.Msg {
		todo, err := client.CreateTodo(ctx, title, teamID)
		if err != nil {
			return errMsg{Err: err}
		}
		return todoSavedMsg{Todo: *todo}
	}
}

func (m Model) toggleTodo(todo api.Todo) tea.Cmd {
	ctx, client := m.ctx, m.client
	return func() tea.Msg {
		completed := !todo.Completed
		updated, err := client.UpdateTodo(ctx, todo.ID, api.UpdateTodoRequest{
			Completed: &completed,
			TeamID:    todo.TeamID,
		})
		if err != nil {
			return errMsg{Err: err}
		}
		return todoSavedMsg{Todo: *updated}
	}
}

func (m Model) deleteTodo(todoID string) tea.Cmd {
	ctx, client := m.ctx, m.client
	return func() tea.Msg {
		if err := client.DeleteTodo(ctx, todoID); err != nil {
			return errMsg{Err: err}
		}
		return todoDeletedMsg{TodoID: todoID}
	}
}

// Custom messages for dashboard events

// teamsLoadedMsg carries the freshly fetched team list
type teamsLoadedMsg struct {
	Teams []api.Team
}

// todosLoadedMsg carries the todos of one team
type todosLoadedMsg struct {
	TeamID string
	Todos  []api.Todo
}

// todoSavedMsg indicates a todo was created or updated
type todoSavedMsg struct {
	Todo api.Todo
}

// todoDeletedMsg indicates a todo was deleted
type todoDeletedMsg struct {
	TodoID string
}

// errMsg carries a failed backend call
type errMsg struct {
	Err error
}
