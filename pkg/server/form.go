package server

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/goliatone/go-formblob/pkg/editor"
	"github.com/goliatone/go-formblob/pkg/model"
	"github.com/goliatone/go-formblob/pkg/renderers/vanilla"
)

// stateFromForm rebuilds the editor snapshot a browser posted back. Items
// follow the hidden "order" inputs; slot values come from item.<id>.<slot>
// fields and the blob from "output".
func stateFromForm(form url.Values) editor.State {
	state := editor.State{Output: form.Get("output")}

	index := make(map[int]int)
	for _, raw := range form["order"] {
		id, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || id <= 0 {
			continue
		}
		if _, dup := index[id]; dup {
			continue
		}
		index[id] = len(state.Items)
		state.Items = append(state.Items, model.NewFormItem(id))
	}

	for name, values := range form {
		id, slot, ok := vanilla.ParseFieldName(name)
		if !ok || len(values) == 0 {
			continue
		}
		pos, known := index[id]
		if !known {
			continue
		}
		state.Items[pos] = state.Items[pos].With(slot, values[0])
	}
	return state
}

// actionFromForm resolves the submit button value. An empty value is a plain
// save of the posted fields.
func actionFromForm(form url.Values) (string, editor.Action, error) {
	raw := strings.TrimSpace(form.Get("action"))
	if raw == "" {
		return "", nil, nil
	}
	action, err := editor.ParseAction(raw, form.Get("id"))
	if err != nil {
		return raw, nil, err
	}
	name, _, _ := strings.Cut(raw, ":")
	return strings.ToLower(name), action, nil
}
