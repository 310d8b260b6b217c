package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/rulekit-labs/rulekit/internal/registry"
)

// menuChoice identifies a main-menu action.
type menuChoice int

const (
	choiceLinkModules menuChoice = iota
	choiceLinkCollection
	choiceSearch
	choiceUnlink
	choiceQuit
)

// menuItem is a main-menu entry.
type menuItem struct {
	title  string
	desc   string
	choice menuChoice
}

func (i menuItem) Title() string       { return i.title }
func (i menuItem) Description() string { return i.desc }
func (i menuItem) FilterValue() string { return i.title }

// moduleItem is a selectable module in the picker lists. selected points at
// the shared selection set so the delegate can render checkbox state.
type moduleItem struct {
	id       string
	name     string
	desc     string
	selected map[string]bool
}

func (i moduleItem) Title() string {
	mark := "[ ]"
	if i.selected[i.id] {
		mark = "[x]"
	}
	return fmt.Sprintf("%s %s", mark, i.id)
}

func (i moduleItem) Description() string {
	if i.name != "" && i.desc != "" {
		return i.name + " - " + i.desc
	}
	if i.desc != "" {
		return i.desc
	}
	return i.name
}

func (i moduleItem) FilterValue() string { return i.id + " " + i.name + " " + i.desc }

// collectionItem is a collection in the browser list.
type collectionItem struct {
	id      string
	desc    string
	members int
}

func (i collectionItem) Title() string { return i.id }

func (i collectionItem) Description() string {
	if i.desc != "" {
		return fmt.Sprintf("%s (%d modules)", i.desc, i.members)
	}
	return fmt.Sprintf("%d modules", i.members)
}

func (i collectionItem) FilterValue() string { return i.id + " " + i.desc }

// moduleItems builds picker items for the given catalog modules.
func moduleItems(modules []*registry.ModuleEntry, selected map[string]bool) []list.Item {
	items := make([]list.Item, len(modules))
	for i, m := range modules {
		items[i] = moduleItem{
			id:       m.ID,
			name:     m.Descriptor.Name,
			desc:     m.Descriptor.Description,
			selected: selected,
		}
	}
	return items
}

// linkedItems builds picker items for currently linked module IDs.
func linkedItems(catalog *registry.Catalog, ids []string, selected map[string]bool) []list.Item {
	items := make([]list.Item, len(ids))
	for i, id := range ids {
		item := moduleItem{id: id, selected: selected}
		if entry, ok := catalog.Module(id); ok {
			item.name = entry.Descriptor.Name
			item.desc = entry.Descriptor.Description
		}
		items[i] = item
	}
	return items
}

// collectionItems builds browser items for the catalog's collections.
func collectionItems(collections []*registry.CollectionEntry) []list.Item {
	items := make([]list.Item, len(collections))
	for i, col := range collections {
		items[i] = collectionItem{
			id:      col.ID,
			desc:    col.Descriptor.Description,
			members: len(col.Descriptor.Modules),
		}
	}
	return items
}
