package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tidy/internal/config"
	"tidy/internal/log"
	"tidy/internal/tasks"
)

type mode int

const (
	modeList mode = iota
	modeAdd
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	doneStyle     = lipgloss.NewStyle().Strikethrough(true).Faint(true)
	deletedStyle  = lipgloss.NewStyle().Faint(true)
	statusStyle   = lipgloss.NewStyle().Italic(true)
	helpStyle     = lipgloss.NewStyle().Faint(true)
	selectedStyle = lipgloss.NewStyle().Bold(true)
)

// row is a rendered line: the task and its position in the list it lives in.
type row struct {
	index int
	task  tasks.Task
}

type Model struct {
	ctx    context.Context
	mgr    *tasks.Manager
	cfg    config.Config
	logger log.Logger
	cursor int
	mode   mode
	input  textinput.Model
	status string
	err    error
}

// New builds the model. The manager filter starts at cfg.DefaultFilter.
func New(ctx context.Context, mgr *tasks.Manager, cfg config.Config, logger log.Logger) Model {
	if logger == nil {
		logger = log.Noop
	}

	ti := textinput.New()
	ti.Placeholder = "Enter a task..."
	ti.CharLimit = 256
	ti.Width = 40

	mgr.SetFilter(tasks.ParseFilter(cfg.DefaultFilter))

	return Model{
		ctx:    ctx,
		mgr:    mgr,
		cfg:    cfg,
		logger: logger.WithValues(log.Kv{"svc": "ui.Model"}),
		input:  ti,
		mode:   modeList,
		status: fmt.Sprintf("Press '%s' to add, '%s' to change filter.", cfg.Keys.Add, cfg.Keys.NextFilter),
	}
}

// Run runs the program until the user quits or ctx is done. A persistence
// failure stops the program and is returned.
func Run(ctx context.Context, mgr *tasks.Manager, cfg config.Config, logger log.Logger, opts ...tea.ProgramOption) error {
	m := New(ctx, mgr, cfg, logger)

	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	program := tea.NewProgram(m, opts...)
	final, err := program.Run()
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}
	if fm, ok := final.(Model); ok && fm.err != nil {
		return fm.err
	}
	return nil
}

// Err returns the persistence error that stopped the model, if any.
func (m Model) Err() error { return m.err }

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.mode == modeAdd {
			return m.updateAddMode(msg.String(), msg)
		}
		return m.updateListMode(msg.String())
	case tea.WindowSizeMsg:
		m.input.Width = max(msg.Width-10, 10)
	}
	return m, nil
}

func (m Model) updateAddMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+c":
		return m, tea.Quit
	case m.cfg.Keys.Cancel:
		m.mode = modeList
		m.input.Blur()
		m.status = "Cancelled"
		return m, nil
	case m.cfg.Keys.Confirm:
		m.mgr.SetPendingInput(m.input.Value())
		idx, err := m.mgr.Submit(m.ctx)
		if err != nil {
			return m.fail(err)
		}
		if idx < 0 {
			m.status = "Task cannot be empty"
			return m, nil
		}
		m.status = "Added task"
		if m.mgr.Filter() == tasks.FilterDeleted || m.mgr.Filter() == tasks.FilterCompleted {
			m.mgr.SetFilter(tasks.FilterAll)
			m.status = "Added task (showing all)"
		}
		m.input.SetValue(m.mgr.PendingInput())
		m.input.Blur()
		m.mode = modeList
		m.cursor = m.rowOf(m.mgr.Active()[idx].ID)
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.mgr.SetPendingInput(m.input.Value())
		return m, cmd
	}
}

func (m Model) updateListMode(key string) (tea.Model, tea.Cmd) {
	rows := m.rows()
	deletedView := m.mgr.Filter() == tasks.FilterDeleted

	switch key {
	case "ctrl+c", m.cfg.Keys.Quit:
		return m, tea.Quit
	case m.cfg.Keys.Down, "down":
		m.cursor = clampCursor(m.cursor+1, len(rows))
	case m.cfg.Keys.Up, "up":
		m.cursor = clampCursor(m.cursor-1, len(rows))
	case m.cfg.Keys.Add:
		m.mode = modeAdd
		m.input.SetValue(m.mgr.PendingInput())
		m.input.CursorEnd()
		m.input.Focus()
		m.status = "Add mode: type a task and press Enter"
	case m.cfg.Keys.NextFilter:
		m.setFilter(m.mgr.Filter().Next())
	case "1", "2", "3", "4":
		m.setFilter(tasks.Filters[int(key[0]-'1')])
	case m.cfg.Keys.Toggle, m.cfg.Keys.Select:
		if len(rows) == 0 {
			return m, nil
		}
		r := rows[m.cursor]
		if deletedView {
			m.mgr.ToggleSelectDeleted(r.index)
			m.status = fmt.Sprintf("%d selected", len(m.mgr.Selected()))
			return m, nil
		}
		if key != m.cfg.Keys.Toggle {
			return m, nil
		}
		if err := m.mgr.ToggleComplete(m.ctx, r.index); err != nil {
			return m.fail(err)
		}
		m.cursor = m.rowOf(r.task.ID)
		m.status = "Toggled task"
	case m.cfg.Keys.Delete:
		if len(rows) == 0 || deletedView {
			return m, nil
		}
		r := rows[m.cursor]
		if err := m.mgr.DeleteTask(m.ctx, r.index); err != nil {
			return m.fail(err)
		}
		m.cursor = clampCursor(m.cursor, len(m.rows()))
		m.status = fmt.Sprintf("Deleted %q", r.task.Text)
	case m.cfg.Keys.Restore:
		if len(rows) == 0 || !deletedView {
			return m, nil
		}
		r := rows[m.cursor]
		if err := m.mgr.RestoreTask(m.ctx, r.index); err != nil {
			return m.fail(err)
		}
		m.cursor = clampCursor(m.cursor, len(m.rows()))
		m.status = fmt.Sprintf("Restored %q", r.task.Text)
	case m.cfg.Keys.Purge:
		if !deletedView || len(m.mgr.Selected()) == 0 {
			return m, nil
		}
		n := len(m.mgr.Selected())
		if err := m.mgr.DeleteSelectedTasks(m.ctx); err != nil {
			return m.fail(err)
		}
		m.cursor = clampCursor(m.cursor, len(m.rows()))
		m.status = fmt.Sprintf("Permanently deleted %d task(s)", n)
	}
	return m, nil
}

func (m *Model) setFilter(f tasks.Filter) {
	m.mgr.SetFilter(f)
	m.cursor = 0
	m.status = "Showing " + string(f)
}

func (m Model) fail(err error) (tea.Model, tea.Cmd) {
	m.logger.Errorf("persistence failed: %s", err)
	m.err = err
	m.status = fmt.Sprintf("save failed: %v", err)
	return m, tea.Quit
}

func (m Model) rows() []row {
	if m.mgr.Filter() == tasks.FilterDeleted {
		deleted := m.mgr.Deleted()
		out := make([]row, len(deleted))
		for i, t := range deleted {
			out[i] = row{index: i, task: t}
		}
		return out
	}
	views := m.mgr.FilteredView()
	out := make([]row, len(views))
	for i, v := range views {
		out[i] = row{index: v.Index, task: v.Task}
	}
	return out
}

// rowOf finds the row showing the task with id, falling back to a clamped cursor.
func (m Model) rowOf(id string) int {
	rows := m.rows()
	for i, r := range rows {
		if r.task.ID == id {
			return i
		}
	}
	return clampCursor(m.cursor, len(rows))
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("To-Do List [%s]", m.mgr.Filter())))
	b.WriteString("\n\n")

	rows := m.rows()
	deletedView := m.mgr.Filter() == tasks.FilterDeleted
	switch {
	case len(rows) == 0 && deletedView:
		b.WriteString("No deleted tasks.\n")
	case len(rows) == 0:
		b.WriteString(fmt.Sprintf("No tasks yet. Press '%s' to add one.\n", m.cfg.Keys.Add))
	case deletedView:
		b.WriteString(m.renderDeletedList(rows))
	default:
		b.WriteString(m.renderTaskList(rows))
	}

	if deletedView && len(m.mgr.Selected()) > 0 {
		b.WriteString("\n")
		b.WriteString(selectedStyle.Render(fmt.Sprintf("%s: delete %d selected", m.cfg.Keys.Purge, len(m.mgr.Selected()))))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.mode == modeAdd {
		b.WriteString("Add Task: ")
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
	}

	b.WriteString(statusStyle.Render(m.status))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(renderHelp(m.cfg.Keys, deletedView)))

	return b.String()
}

func (m Model) renderTaskList(rows []row) string {
	var b strings.Builder
	for i, r := range rows {
		cursor := " "
		if m.cursor == i && m.mode == modeList {
			cursor = ">"
		}

		checkbox := "[ ]"
		text := r.task.Text
		if r.task.Completed {
			checkbox = "[x]"
			text = doneStyle.Render(text)
		}

		b.WriteString(fmt.Sprintf("%s %s %s\n", cursor, checkbox, text))
	}
	return b.String()
}

func (m Model) renderDeletedList(rows []row) string {
	var b strings.Builder
	for i, r := range rows {
		cursor := " "
		if m.cursor == i && m.mode == modeList {
			cursor = ">"
		}

		checkbox := "[ ]"
		if m.mgr.IsSelected(r.index) {
			checkbox = "[*]"
		}

		b.WriteString(fmt.Sprintf("%s %s %s\n", cursor, checkbox, deletedStyle.Render(r.task.Text)))
	}
	return b.String()
}

func renderHelp(k config.Keymap, deletedView bool) string {
	if deletedView {
		return fmt.Sprintf("%s/%s move • %s select • %s restore • %s delete selected • %s filter • %s quit",
			k.Up, k.Down, k.Select, k.Restore, k.Purge, k.NextFilter, k.Quit)
	}
	return fmt.Sprintf("%s/%s move • %s add • %q toggle • %s delete • %s filter • 1-4 all/completed/incomplete/deleted • %s quit",
		k.Up, k.Down, k.Add, k.Toggle, k.Delete, k.NextFilter, k.Quit)
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
