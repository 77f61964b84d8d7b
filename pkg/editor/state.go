// Package editor implements the form builder's presentation state as
// immutable snapshots. Every user action (a field edit, an add/remove/clear
// click, generating or parsing the blob) is an Action whose Apply returns a
// new State, leaving the previous snapshot untouched so callers can swap it in
// atomically.
package editor

import (
	"github.com/goliatone/go-formblob/pkg/codec"
	"github.com/goliatone/go-formblob/pkg/model"
)

// State is one snapshot of the editor: the item list and the text bound to the
// blob area.
type State struct {
	Items  model.FormItemList `json:"items" yaml:"items"`
	Output string             `json:"output" yaml:"output"`
}

// Initial returns the startup snapshot: a single empty item with ID 1.
func Initial() State {
	return State{Items: model.FormItemList{model.NewFormItem(1)}}
}

// FromBlob seeds a snapshot from a blob, falling back to Initial when the blob
// parses to nothing. The blob is kept as the output text either way.
func FromBlob(blob string) State {
	state := Initial()
	state.Output = blob
	return Parse{}.Apply(state)
}

// Clone deep copies the snapshot.
func (s State) Clone() State {
	return State{Items: s.Items.Clone(), Output: s.Output}
}

// Action is a discrete user interaction applied to a snapshot.
type Action interface {
	Apply(State) State
}

// Apply folds actions over state left to right.
func Apply(state State, actions ...Action) State {
	for _, action := range actions {
		if action == nil {
			continue
		}
		state = action.Apply(state)
	}
	return state
}

// SetField edits one slot of one item.
type SetField struct {
	ItemID int
	Slot   model.Slot
	Value  string
}

func (a SetField) Apply(s State) State {
	idx := s.Items.Index(a.ItemID)
	if idx < 0 || !a.Slot.Valid() {
		return s
	}
	out := s.Clone()
	out.Items[idx] = out.Items[idx].With(a.Slot, a.Value)
	return out
}

// AddItem appends an empty item numbered max(ID)+1.
type AddItem struct{}

func (AddItem) Apply(s State) State {
	out := s.Clone()
	out.Items = append(out.Items, model.NewFormItem(s.Items.NextID()))
	return out
}

// RemoveItem drops the item with the given ID.
type RemoveItem struct {
	ID int
}

func (a RemoveItem) Apply(s State) State {
	out := State{Output: s.Output, Items: make(model.FormItemList, 0, len(s.Items))}
	for _, item := range s.Items {
		if item.ID == a.ID {
			continue
		}
		out.Items = append(out.Items, item.Clone())
	}
	return out
}

// ClearItems empties the list.
type ClearItems struct{}

func (ClearItems) Apply(s State) State {
	return State{Items: model.FormItemList{}, Output: s.Output}
}

// SetOutput replaces the text bound to the blob area.
type SetOutput struct {
	Text string
}

func (a SetOutput) Apply(s State) State {
	out := s.Clone()
	out.Output = a.Text
	return out
}

// Generate serializes the items into the output text.
type Generate struct{}

func (Generate) Apply(s State) State {
	out := s.Clone()
	out.Output = codec.Serialize(s.Items)
	return out
}

// Parse replaces the items with the parsed output text. Blank or empty blobs
// leave the items as they are.
type Parse struct{}

func (Parse) Apply(s State) State {
	items, ok := codec.Deserialize(s.Output)
	if !ok {
		return s
	}
	return State{Items: items, Output: s.Output}
}

// ClearOutput empties the blob area.
type ClearOutput struct{}

func (ClearOutput) Apply(s State) State {
	out := s.Clone()
	out.Output = ""
	return out
}
