// Package tui is the interactive todo widget.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/idilsaglam/errika/internal/model"
	"github.com/idilsaglam/errika/internal/order"
	"github.com/idilsaglam/errika/internal/store"
	"github.com/idilsaglam/errika/internal/ui"
)

// Todos is what the widget needs from the store.
type Todos interface {
	Add(text string, p model.Priority) (*model.Item, error)
	Toggle(id int, completed bool) error
	Edit(id int, text string) (bool, error)
	Delete(id int) (bool, error)
	Get(id int) (model.Item, bool)
	List() []*model.Item
	Stats() store.Stats
}

type mode int

const (
	browsing mode = iota
	adding
	editing
	confirming // delete y/n
)

// listItem adapts a todo to bubbles/list.Item
type listItem struct {
	*model.Item
}

func (i listItem) Title() string       { return i.Text }
func (i listItem) Description() string { return "" }
func (i listItem) FilterValue() string { return i.Text }

// Custom delegate to control how items render (single line)
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	box := mutedStyle.Render(boxUnchecked)
	text := it.Text
	if it.Completed {
		box = successStyle.Render(boxChecked)
		text = doneStyle.Render(text)
	}
	meta := mutedStyle.Render(fmt.Sprintf("📌 %s · %s", it.Priority, it.Created.Format("Jan 02 15:04")))

	line := fmt.Sprintf("%s %s %s  %s", priorityStyle(it.Priority).Render(stripe), box, text, meta)
	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprintln(w, prefix+line)
}

type keyMap struct {
	add, edit, toggle, remove, quit key.Binding
}

var keys = keyMap{
	add:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
	edit:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
	toggle: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "done")),
	remove: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

// Model is the Bubble Tea model of the widget.
type Model struct {
	todos Todos
	log   zerolog.Logger

	list list.Model
	ti   textinput.Model // shared by add and edit
	mode mode

	prio     model.Priority // priority for the next add
	targetID int            // todo being edited or deleted
	status   string         // last error or notice, shown under the list

	width, height int
}

// New builds the widget over todos.
func New(todos Todos, log zerolog.Logger) Model {
	l := list.New(nil, itemDelegate{}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.SetStatusBarItemName("todo", "todos")

	extra := func() []key.Binding {
		return []key.Binding{keys.add, keys.edit, keys.toggle, keys.remove}
	}
	l.AdditionalShortHelpKeys = extra
	l.AdditionalFullHelpKeys = extra

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 200

	m := Model{
		todos:  todos,
		log:    log,
		list:   l,
		ti:     ti,
		prio:   model.DefaultPriority,
		width:  80,
		height: 24,
	}
	m.resize()
	m.refresh()
	return m
}

// Run starts the widget and blocks until the user quits.
func Run(todos Todos, log zerolog.Logger) error {
	p := tea.NewProgram(New(todos, log), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return errors.Wrap(err, "run widget")
	}
	return nil
}

// refresh rebuilds the list from the store in display order.
func (m *Model) refresh() {
	sel := m.selectedID()
	sorted := order.Display(m.todos.List())
	items := make([]list.Item, 0, len(sorted))
	for _, it := range sorted {
		items = append(items, listItem{it})
	}
	m.list.SetItems(items)
	m.selectID(sel)

	st := m.todos.Stats()
	m.list.Title = fmt.Sprintf("✨ Errika Todo  %s",
		mutedStyle.Render(ui.ProgressBar(st.Completed, st.Total, 16)))
}

func (m Model) selectedID() int {
	if it, ok := m.list.SelectedItem().(listItem); ok {
		return it.ID
	}
	return -1
}

func (m *Model) selectID(id int) {
	for i, li := range m.list.Items() {
		if it, ok := li.(listItem); ok && it.ID == id {
			m.list.Select(i)
			return
		}
	}
}

// report turns a store error into a status line and a log entry.
func (m *Model) report(op string, err error) {
	if err == nil {
		return
	}
	var we *store.WriteError
	if errors.As(err, &we) {
		m.status = "not saved: " + we.Err.Error()
	} else {
		m.status = op + ": " + err.Error()
	}
	m.log.Warn().Err(err).Str("op", op).Msg("widget action failed")
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	next.resize()
	return next, cmd
}

// resize fits the list into the window, leaving room for the input box.
func (m *Model) resize() {
	h := m.height - 6
	if m.mode != browsing {
		h -= 4
	}
	if h < 3 {
		h = 3
	}
	w := m.width - 4
	if w < 20 {
		w = 20
	}
	m.list.SetSize(w, h)
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = ws.Width, ws.Height
		return m, nil
	}
	if km, ok := msg.(tea.KeyMsg); ok && km.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch m.mode {
	case adding, editing:
		return m.updateInput(msg)
	case confirming:
		return m.updateConfirm(msg)
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(km, keys.quit):
		return m, tea.Quit

	case key.Matches(km, keys.toggle):
		if it, ok := m.list.SelectedItem().(listItem); ok {
			m.status = ""
			m.report("toggle", m.todos.Toggle(it.ID, !it.Completed))
			m.refresh()
		}
		return m, nil

	case key.Matches(km, keys.add):
		m.mode = adding
		m.status = ""
		m.ti.SetValue("")
		m.ti.Placeholder = "What needs doing?"
		cmd := m.ti.Focus()
		return m, cmd

	case key.Matches(km, keys.edit):
		it, ok := m.list.SelectedItem().(listItem)
		if !ok {
			return m, nil
		}
		m.mode = editing
		m.status = ""
		m.targetID = it.ID
		m.ti.SetValue(it.Text)
		m.ti.CursorEnd()
		m.ti.Placeholder = "Edit todo text..."
		cmd := m.ti.Focus()
		return m, cmd

	case key.Matches(km, keys.remove):
		it, ok := m.list.SelectedItem().(listItem)
		if !ok {
			return m, nil
		}
		m.mode = confirming
		m.targetID = it.ID
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateInput(msg tea.Msg) (Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "enter":
			text := strings.TrimSpace(m.ti.Value())
			if text == "" {
				m.status = "Todo text cannot be empty"
				return m, nil
			}
			if m.mode == adding {
				it, err := m.todos.Add(text, m.prio)
				m.report("add", err)
				m.refresh()
				if it != nil {
					m.selectID(it.ID)
				}
			} else {
				_, err := m.todos.Edit(m.targetID, text)
				m.report("edit", err)
				m.refresh()
			}
			return m.closeInput(), nil
		case "tab":
			if m.mode == adding {
				m.prio = m.prio.Next()
			}
			return m, nil
		case "esc":
			return m.closeInput(), nil
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m Model) closeInput() Model {
	m.mode = browsing
	m.ti.SetValue("")
	m.ti.Blur()
	return m
}

func (m Model) updateConfirm(msg tea.Msg) (Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch km.String() {
	case "y", "Y":
		_, err := m.todos.Delete(m.targetID)
		m.report("delete", err)
		m.refresh()
		m.mode = browsing
	case "n", "N", "esc":
		m.mode = browsing
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	if len(m.list.Items()) == 0 {
		b.WriteString(titleStyle.Render("✨ Errika Todo") + "\n\n")
		b.WriteString(mutedStyle.Render("Nothing to do. Press a to add a todo."))
	} else {
		b.WriteString(m.list.View())
	}

	switch m.mode {
	case adding, editing:
		bar := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")).Padding(0, 1)
		title := "Edit todo"
		if m.mode == adding {
			title = "Add todo  " + priorityStyle(m.prio).Render("📌 "+string(m.prio)) + mutedStyle.Render("  (tab: priority)")
		}
		b.WriteString("\n" + bar.Render(title+"\n"+m.ti.View()))
	case confirming:
		text := ""
		if it, ok := m.todos.Get(m.targetID); ok {
			text = it.Text
		}
		b.WriteString("\n" + errorStyle.Render(fmt.Sprintf("Delete %q? (y/n)", text)))
	}

	if m.status != "" {
		b.WriteString("\n" + errorStyle.Render(m.status))
	}
	b.WriteString("\n" + m.footer())
	return panelString(b.String())
}

func (m Model) footer() string {
	st := m.todos.Stats()
	return fmt.Sprintf("%s %d %s %s %d %s %s %d",
		accentStyle.Render("Total:"), st.Total, mutedStyle.Render("|"),
		successStyle.Render("Completed:"), st.Completed, mutedStyle.Render("|"),
		pendingStyle.Render("Pending:"), st.Pending)
}
