package layout

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formblob/pkg/model"
)

// DefaultWidth is the input width (in CSS pixels) used when a segment omits it.
const DefaultWidth = 80

// Layout describes how one form item reads on screen: the prose placed before
// and after each of the 13 inputs plus the chrome labels around the editor.
type Layout struct {
	Name              string            `json:"name" yaml:"name"`
	Title             string            `json:"title,omitempty" yaml:"title,omitempty"`
	ItemTitle         string            `json:"itemTitle,omitempty" yaml:"itemTitle,omitempty"`
	OutputLabel       string            `json:"outputLabel,omitempty" yaml:"outputLabel,omitempty"`
	OutputPlaceholder string            `json:"outputPlaceholder,omitempty" yaml:"outputPlaceholder,omitempty"`
	Actions           map[string]string `json:"actions,omitempty" yaml:"actions,omitempty"`
	Segments          []Segment         `json:"segments" yaml:"segments"`
	Source            string            `json:"-" yaml:"-"`
}

// Segment binds one slot to its surrounding prose. Before and After may carry
// a small amount of inline markup which is sanitised on load.
type Segment struct {
	Slot        model.Slot `json:"slot" yaml:"slot"`
	Before      string     `json:"before,omitempty" yaml:"before,omitempty"`
	After       string     `json:"after,omitempty" yaml:"after,omitempty"`
	Placeholder string     `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Width       int        `json:"width,omitempty" yaml:"width,omitempty"`
}

// Segment returns the segment bound to slot.
func (l Layout) Segment(slot model.Slot) (Segment, bool) {
	for _, seg := range l.Segments {
		if seg.Slot == slot {
			return seg, true
		}
	}
	return Segment{}, false
}

// Label returns a plain-text prompt for slot built from the prose leading up
// to its input (the previous segment's After plus this segment's Before).
// Slots without leading prose fall back to "Field <n>".
func (l Layout) Label(slot model.Slot) string {
	var lead string
	for idx, seg := range l.Segments {
		if seg.Slot != slot {
			continue
		}
		if idx > 0 {
			lead = l.Segments[idx-1].After
		}
		lead += seg.Before
		break
	}
	label := strings.Trim(stripMarkup(lead), " ,，")
	if label == "" {
		return fmt.Sprintf("Field %d", slot)
	}
	return label
}

// ActionLabel returns the display label for an editor action, defaulting to
// the action name.
func (l Layout) ActionLabel(action string) string {
	if label := strings.TrimSpace(l.Actions[action]); label != "" {
		return label
	}
	return action
}

// Heading returns the item title for the given ID.
func (l Layout) Heading(id int) string {
	title := strings.TrimSpace(l.ItemTitle)
	if title == "" {
		title = "Item"
	}
	return fmt.Sprintf("%s %d", title, id)
}

func (l Layout) validate() error {
	if len(l.Segments) != model.SlotCount {
		return fmt.Errorf("expected %d segments, got %d", model.SlotCount, len(l.Segments))
	}
	seen := make(map[model.Slot]struct{}, model.SlotCount)
	for idx, seg := range l.Segments {
		if !seg.Slot.Valid() {
			return fmt.Errorf("segment %d has invalid slot %d", idx, seg.Slot)
		}
		if _, dup := seen[seg.Slot]; dup {
			return fmt.Errorf("slot %d appears more than once", seg.Slot)
		}
		seen[seg.Slot] = struct{}{}
	}
	return nil
}
