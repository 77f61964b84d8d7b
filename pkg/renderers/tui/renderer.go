// Package tui edits form items interactively in a terminal. A menu loop offers
// one entry per item plus the editor commands; editing an item prompts its 13
// fields in layout order with the current values as defaults.
package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/goliatone/go-formblob/pkg/codec"
	"github.com/goliatone/go-formblob/pkg/editor"
	"github.com/goliatone/go-formblob/pkg/layout"
	"github.com/goliatone/go-formblob/pkg/render"
	"github.com/goliatone/go-formblob/pkg/renderers/text"
)

const menuPageSize = 12

// Renderer implements render.Renderer for terminal-driven sessions.
type Renderer struct {
	driver       PromptDriver
	outputFormat OutputFormat
	out          io.Writer
	theme        Theme
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, blob output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{outputFormat: OutputFormatBlob}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	if r.driver == nil {
		r.driver = newSurveyDriver(r.out)
	}

	switch r.outputFormat {
	case OutputFormatBlob, OutputFormatJSON, OutputFormatPrettyText:
	default:
		return nil, fmt.Errorf("tui: unsupported output format %q", r.outputFormat)
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	if r.outputFormat == OutputFormatJSON {
		return "application/json"
	}
	return "text/plain; charset=utf-8"
}

// Render runs an editing session seeded with state and returns the result in
// the configured output format.
func (r *Renderer) Render(ctx context.Context, state editor.State, opts render.RenderOptions) ([]byte, error) {
	final, err := r.Edit(ctx, state, opts)
	if err != nil {
		return nil, err
	}
	return r.serialize(ctx, final, opts)
}

// Edit runs the menu loop until the user picks "done" and returns the final
// state with its output regenerated from the items.
func (r *Renderer) Edit(ctx context.Context, state editor.State, opts render.RenderOptions) (editor.State, error) {
	if ctx == nil {
		return editor.State{}, errors.New("tui: context is required")
	}
	if r.driver == nil {
		return editor.State{}, ErrNoDriver
	}
	l := opts.ResolvedLayout()
	state = state.Clone()

	if opts.Notice != "" {
		if err := r.info(ctx, opts.Notice); err != nil {
			return state, err
		}
	}

	for {
		if err := ctx.Err(); err != nil {
			return state, err
		}

		entries := buildMenu(state, l)
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:  menuTitle(l, state),
			Options:  menuLabels(entries),
			PageSize: menuPageSize,
		})
		if err != nil {
			return state, fmt.Errorf("tui: menu: %w", err)
		}
		if idx < 0 || idx >= len(entries) {
			return state, fmt.Errorf("tui: menu selection %d out of range", idx)
		}

		entry := entries[idx]
		if entry.kind == menuDone {
			return editor.Apply(state, editor.Generate{}), nil
		}
		if state, err = r.apply(ctx, state, l, entry); err != nil {
			return state, err
		}
	}
}

func (r *Renderer) apply(ctx context.Context, state editor.State, l layout.Layout, entry menuEntry) (editor.State, error) {
	switch entry.kind {
	case menuEdit:
		return r.editItem(ctx, state, l, entry.itemID)

	case menuAdd:
		next := editor.Apply(state, editor.AddItem{})
		return r.editItem(ctx, next, l, next.Items[len(next.Items)-1].ID)

	case menuRemove:
		picked, err := r.driver.MultiSelect(ctx, SelectConfig{
			Message:  l.ActionLabel(editor.ActionRemove),
			Options:  itemLabels(state, l),
			PageSize: menuPageSize,
		})
		if err != nil {
			return state, fmt.Errorf("tui: remove: %w", err)
		}
		actions := make([]editor.Action, 0, len(picked))
		for _, i := range picked {
			if i >= 0 && i < len(state.Items) {
				actions = append(actions, editor.RemoveItem{ID: state.Items[i].ID})
			}
		}
		return editor.Apply(state, actions...), nil

	case menuClearItems:
		ok, err := r.driver.Confirm(ctx, ConfirmConfig{Message: l.ActionLabel(editor.ActionClearItems) + "?"})
		if err != nil {
			return state, fmt.Errorf("tui: clear items: %w", err)
		}
		if !ok {
			return state, nil
		}
		return editor.Apply(state, editor.ClearItems{}), nil

	case menuGenerate:
		state = editor.Apply(state, editor.Generate{})
		return state, r.info(ctx, state.Output)

	case menuParse:
		if _, ok := codec.Deserialize(state.Output); !ok {
			return state, r.errorf(ctx, "%s: nothing to parse", l.ActionLabel(editor.ActionParse))
		}
		state = editor.Apply(state, editor.Parse{})
		return state, r.info(ctx, fmt.Sprintf("%s: %d", l.ActionLabel(editor.ActionParse), len(state.Items)))

	case menuPaste:
		blob, err := r.driver.TextArea(ctx, TextAreaConfig{
			Message: strings.TrimSpace(l.OutputLabel),
			Default: state.Output,
			Help:    l.OutputPlaceholder,
		})
		if err != nil {
			return state, fmt.Errorf("tui: paste: %w", err)
		}
		return editor.Apply(state, editor.SetOutput{Text: blob}), nil

	case menuClearOutput:
		return editor.Apply(state, editor.ClearOutput{}), nil

	case menuShow:
		return state, r.info(ctx, state.Output)
	}
	return state, nil
}

// editItem prompts every slot of one item. Answers are applied together so an
// aborted edit leaves the item untouched.
func (r *Renderer) editItem(ctx context.Context, state editor.State, l layout.Layout, id int) (editor.State, error) {
	idx := state.Items.Index(id)
	if idx < 0 {
		return state, nil
	}
	item := state.Items[idx]
	heading := l.Heading(id)

	actions := make([]editor.Action, 0, len(l.Segments))
	for _, seg := range l.Segments {
		value, err := r.driver.Input(ctx, InputConfig{
			Message: l.Label(seg.Slot),
			Default: item.Value(seg.Slot),
			Help:    fmt.Sprintf("%s, field %d", heading, seg.Slot),
		})
		if err != nil {
			return state, fmt.Errorf("tui: edit %s: %w", heading, err)
		}
		actions = append(actions, editor.SetField{ItemID: id, Slot: seg.Slot, Value: value})
	}
	return editor.Apply(state, actions...), nil
}

func (r *Renderer) serialize(ctx context.Context, state editor.State, opts render.RenderOptions) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatJSON:
		data, err := json.MarshalIndent(state.Items, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("tui: encode json: %w", err)
		}
		return data, nil
	case OutputFormatPrettyText:
		opts.Notice = ""
		return text.New().Render(ctx, state, opts)
	default:
		return []byte(state.Output), nil
	}
}

func (r *Renderer) info(ctx context.Context, msg string) error {
	return r.driver.Info(ctx, r.theme.InfoPrefix+msg)
}

func (r *Renderer) errorf(ctx context.Context, format string, args ...any) error {
	return r.driver.Info(ctx, r.theme.ErrorPrefix+fmt.Sprintf(format, args...))
}

func menuTitle(l layout.Layout, state editor.State) string {
	title := strings.TrimSpace(l.Title)
	if title == "" {
		title = "formblob"
	}
	return fmt.Sprintf("%s (%d)", title, len(state.Items))
}
