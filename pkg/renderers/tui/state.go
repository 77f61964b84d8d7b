package tui

import (
	"github.com/goliatone/go-formblob/pkg/editor"
	"github.com/goliatone/go-formblob/pkg/layout"
)

type menuKind int

const (
	menuEdit menuKind = iota
	menuAdd
	menuRemove
	menuClearItems
	menuGenerate
	menuParse
	menuPaste
	menuClearOutput
	menuShow
	menuDone
)

type menuEntry struct {
	kind   menuKind
	itemID int
	label  string
}

// buildMenu lists one edit entry per item followed by the session commands.
// Entries that cannot act on the current state are left out.
func buildMenu(state editor.State, l layout.Layout) []menuEntry {
	entries := make([]menuEntry, 0, len(state.Items)+9)
	for _, item := range state.Items {
		entries = append(entries, menuEntry{kind: menuEdit, itemID: item.ID, label: l.Heading(item.ID)})
	}

	entries = append(entries, menuEntry{kind: menuAdd, label: l.ActionLabel(editor.ActionAdd)})
	if len(state.Items) > 0 {
		entries = append(entries,
			menuEntry{kind: menuRemove, label: l.ActionLabel(editor.ActionRemove)},
			menuEntry{kind: menuClearItems, label: l.ActionLabel(editor.ActionClearItems)},
		)
	}
	entries = append(entries,
		menuEntry{kind: menuGenerate, label: l.ActionLabel(editor.ActionGenerate)},
		menuEntry{kind: menuPaste, label: "paste"},
	)
	if state.Output != "" {
		entries = append(entries,
			menuEntry{kind: menuParse, label: l.ActionLabel(editor.ActionParse)},
			menuEntry{kind: menuClearOutput, label: l.ActionLabel(editor.ActionClearOutput)},
			menuEntry{kind: menuShow, label: "show"},
		)
	}
	entries = append(entries, menuEntry{kind: menuDone, label: "done"})
	return entries
}

func menuLabels(entries []menuEntry) []string {
	out := make([]string, len(entries))
	for i, entry := range entries {
		out[i] = entry.label
	}
	return out
}

// itemLabels lists item headings for the removal multi-select.
func itemLabels(state editor.State, l layout.Layout) []string {
	out := make([]string, len(state.Items))
	for i, item := range state.Items {
		out[i] = l.Heading(item.ID)
	}
	return out
}
