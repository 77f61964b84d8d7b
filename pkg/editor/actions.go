package editor

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Wire names used by the HTTP form and the terminal menu.
const (
	ActionAdd         = "add"
	ActionClearItems  = "clear-items"
	ActionRemove      = "remove"
	ActionGenerate    = "generate"
	ActionParse       = "parse"
	ActionClearOutput = "clear-output"
)

// ErrUnknownAction is returned by ParseAction for unrecognised names.
var ErrUnknownAction = errors.New("editor: unknown action")

// ParseAction maps a wire name plus optional argument onto an Action. The
// remove action takes the item ID as its argument; the compact "remove:<id>"
// form used by HTML buttons is accepted as the name too.
func ParseAction(name, arg string) (Action, error) {
	name = strings.TrimSpace(name)
	if head, tail, ok := strings.Cut(name, ":"); ok {
		name, arg = head, tail
	}

	switch strings.ToLower(name) {
	case ActionAdd:
		return AddItem{}, nil
	case ActionClearItems:
		return ClearItems{}, nil
	case ActionGenerate:
		return Generate{}, nil
	case ActionParse:
		return Parse{}, nil
	case ActionClearOutput:
		return ClearOutput{}, nil
	case ActionRemove:
		id, err := strconv.Atoi(strings.TrimSpace(arg))
		if err != nil {
			return nil, fmt.Errorf("editor: remove expects an item id, got %q", arg)
		}
		return RemoveItem{ID: id}, nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownAction, name)
	}
}
