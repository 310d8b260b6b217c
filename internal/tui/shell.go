package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rulekit-labs/rulekit/internal/linker"
	"github.com/rulekit-labs/rulekit/internal/registry"
)

// Deps wires the shell to its collaborators. The catalog is scanned once
// before the shell starts and treated as read-only for the session.
type Deps struct {
	Catalog     *registry.Catalog
	ProjectPath string
	Method      linker.LinkMethod
}

type screen int

const (
	screenMenu screen = iota
	screenModules
	screenCollections
	screenUnlink
)

var statusStyle = lipgloss.NewStyle().Faint(true)

type model struct {
	deps     Deps
	screen   screen
	menu     list.Model
	picker   list.Model
	selected map[string]bool
	status   string
	quitting bool
}

func newModel(deps Deps) model {
	items := []list.Item{
		menuItem{title: "Link modules", desc: "Pick modules to link into this project", choice: choiceLinkModules},
		menuItem{title: "Link collection", desc: "Link every module of a collection", choice: choiceLinkCollection},
		menuItem{title: "Search modules", desc: "Filter the registry, then select and link", choice: choiceSearch},
		menuItem{title: "Unlink modules", desc: "Remove linked modules from this project", choice: choiceUnlink},
		menuItem{title: "Quit", desc: "Leave the interactive shell", choice: choiceQuit},
	}

	menu := list.New(items, list.NewDefaultDelegate(), 0, 0)
	menu.Title = "rulekit"
	menu.SetShowStatusBar(false)
	menu.SetFilteringEnabled(false)

	return model{
		deps:     deps,
		screen:   screenMenu,
		menu:     menu,
		selected: make(map[string]bool),
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.menu.SetSize(msg.Width, msg.Height-2)
		m.picker.SetSize(msg.Width, msg.Height-2)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		if m.screen == screenMenu {
			return m.updateMenu(msg)
		}
		return m.updatePicker(msg)
	}

	return m, nil
}

func (m model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		m.quitting = true
		return m, tea.Quit
	case "enter":
		item, ok := m.menu.SelectedItem().(menuItem)
		if !ok {
			return m, nil
		}
		return m.openScreen(item.choice)
	}

	var cmd tea.Cmd
	m.menu, cmd = m.menu.Update(msg)
	return m, cmd
}

func (m model) openScreen(choice menuChoice) (tea.Model, tea.Cmd) {
	m.selected = make(map[string]bool)

	switch choice {
	case choiceQuit:
		m.quitting = true
		return m, tea.Quit

	case choiceLinkModules:
		m.picker = newPicker("Link modules (space to select, enter to link, / to filter)",
			moduleItems(m.deps.Catalog.Modules(), m.selected))
		m.screen = screenModules

	case choiceSearch:
		m.picker = newPicker("Search modules (type to filter, space to select, enter to link)",
			moduleItems(m.deps.Catalog.Modules(), m.selected))
		m.screen = screenModules
		// Drop straight into the filter input.
		return m, func() tea.Msg {
			return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}}
		}

	case choiceLinkCollection:
		m.picker = newPicker("Link collection (enter to link, / to filter)",
			collectionItems(m.deps.Catalog.Collections()))
		m.screen = screenCollections

	case choiceUnlink:
		manifest, err := linker.LoadManifest(m.deps.ProjectPath)
		if err != nil {
			m.status = "error: " + err.Error()
			return m, nil
		}
		if len(manifest.Links) == 0 {
			m.status = "Nothing is linked in this project."
			return m, nil
		}
		m.picker = newPicker("Unlink modules (space to select, enter to unlink)",
			linkedItems(m.deps.Catalog, manifest.IDs(), m.selected))
		m.screen = screenUnlink
	}

	return m, nil
}

func (m model) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While the list is filtering, every key belongs to the filter input.
	if m.picker.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q", "esc":
		m.screen = screenMenu
		return m, nil

	case " ":
		if m.screen == screenCollections {
			break
		}
		if item, ok := m.picker.SelectedItem().(moduleItem); ok {
			m.selected[item.id] = !m.selected[item.id]
		}
		return m, nil

	case "enter":
		return m.confirmPicker()
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	return m, cmd
}

func (m model) confirmPicker() (tea.Model, tea.Cmd) {
	switch m.screen {
	case screenModules:
		m.status = m.linkSelected()
	case screenCollections:
		if item, ok := m.picker.SelectedItem().(collectionItem); ok {
			m.status = m.linkCollection(item.id)
		}
	case screenUnlink:
		m.status = m.unlinkSelected()
	}

	m.screen = screenMenu
	return m, nil
}

// linkSelected resolves each selected module's dependency closure and links
// every resolved ID in order.
func (m model) linkSelected() string {
	ids := selectedIDs(m.selected)
	if len(ids) == 0 {
		return "No modules selected."
	}

	linked := 0
	for _, id := range ids {
		closure, err := m.deps.Catalog.ResolveModule(id)
		if err != nil {
			return "error: " + err.Error()
		}
		for _, dep := range closure {
			created, err := linker.Link(m.deps.Catalog, dep, m.deps.ProjectPath, linker.Options{Method: m.deps.Method})
			if err != nil {
				return "error: " + err.Error()
			}
			if created {
				linked++
			}
		}
	}
	return fmt.Sprintf("Linked %d module(s).", linked)
}

func (m model) linkCollection(id string) string {
	closure, err := m.deps.Catalog.ResolveCollection(id)
	if err != nil {
		return "error: " + err.Error()
	}

	linked := 0
	for _, dep := range closure {
		created, err := linker.Link(m.deps.Catalog, dep, m.deps.ProjectPath, linker.Options{Method: m.deps.Method})
		if err != nil {
			return "error: " + err.Error()
		}
		if created {
			linked++
		}
	}
	return fmt.Sprintf("Linked collection %s (%d new module(s)).", id, linked)
}

func (m model) unlinkSelected() string {
	ids := selectedIDs(m.selected)
	if len(ids) == 0 {
		return "No modules selected."
	}

	var conflicts []string
	unlinked := 0
	for _, id := range ids {
		err := linker.Unlink(m.deps.Catalog, id, m.deps.ProjectPath, false)
		if err != nil {
			if conflict, ok := err.(*linker.DependencyConflict); ok {
				conflicts = append(conflicts, conflict.Error())
				continue
			}
			return "error: " + err.Error()
		}
		unlinked++
	}

	msg := fmt.Sprintf("Unlinked %d module(s).", unlinked)
	if len(conflicts) > 0 {
		msg += " Skipped: " + strings.Join(conflicts, "; ")
	}
	return msg
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	if m.screen == screenMenu {
		body = m.menu.View()
	} else {
		body = m.picker.View()
	}

	if m.status != "" {
		body += "\n" + statusStyle.Render(m.status)
	}
	return body
}

// Run starts the interactive shell and blocks until the user quits.
func Run(deps Deps) error {
	p := tea.NewProgram(newModel(deps), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func newPicker(title string, items []list.Item) list.Model {
	picker := list.New(items, list.NewDefaultDelegate(), 0, 0)
	picker.Title = title
	picker.SetShowStatusBar(false)
	picker.SetFilteringEnabled(true)
	return picker
}

// selectedIDs returns the checked IDs in deterministic order.
func selectedIDs(selected map[string]bool) []string {
	var ids []string
	for id, on := range selected {
		if on {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}
