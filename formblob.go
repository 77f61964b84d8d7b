// Package formblob edits repeated sets of 13 text fields ("form items") and
// converts them to and from a single delimited blob. The root package
// re-exports the pieces most callers need; the subpackages hold the details.
package formblob

import (
	"github.com/goliatone/go-formblob/pkg/codec"
	"github.com/goliatone/go-formblob/pkg/editor"
	"github.com/goliatone/go-formblob/pkg/layout"
	"github.com/goliatone/go-formblob/pkg/model"
	"github.com/goliatone/go-formblob/pkg/render"
)

type (
	// Slot addresses one of the 13 fields of an item (1..13).
	Slot = model.Slot
	// FormItem is one set of 13 field values.
	FormItem = model.FormItem
	// FormItemList is an ordered list of items.
	FormItemList = model.FormItemList
	// State is an editor snapshot: the items plus the blob text region.
	State = editor.State
	// Action transforms one State into the next.
	Action = editor.Action
	// Layout supplies the prose and labels around each field.
	Layout = layout.Layout
	// RenderOptions describes per-request renderer inputs.
	RenderOptions = render.RenderOptions
)

// Serialize renders items as a blob.
func Serialize(items FormItemList) string {
	return codec.Serialize(items)
}

// Deserialize parses a blob. ok is false when the blob holds no items, in
// which case callers should leave their current list alone.
func Deserialize(blob string) (FormItemList, bool) {
	return codec.Deserialize(blob)
}

// NewEditor returns the initial editor state, or the state parsed from blob
// when it is non-empty.
func NewEditor(blob string) State {
	if blob == "" {
		return editor.Initial()
	}
	return editor.FromBlob(blob)
}

// Apply runs actions over state in order.
func Apply(state State, actions ...Action) State {
	return editor.Apply(state, actions...)
}

// LoadLayout resolves a layout from dir (may be empty) and the bundled set.
func LoadLayout(dir, name string) (Layout, error) {
	return layout.LoadDir(dir, name)
}
