package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-kit/log/level"

	"github.com/goliatone/go-formblob/pkg/codec"
	"github.com/goliatone/go-formblob/pkg/editor"
	"github.com/goliatone/go-formblob/pkg/model"
	"github.com/goliatone/go-formblob/pkg/render"
)

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

type itemsPayload struct {
	Items model.FormItemList `json:"items"`
}

type deserializeResponse struct {
	Items    model.FormItemList `json:"items"`
	Replaced bool               `json:"replaced"`
}

type blobPayload struct {
	Blob string `json:"blob"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	var actionName, notice string
	var state editor.State

	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		state = stateFromForm(r.PostForm)

		name, action, err := actionFromForm(r.PostForm)
		switch {
		case err != nil:
			status = http.StatusBadRequest
			notice = err.Error()
		case action != nil:
			if _, isParse := action.(editor.Parse); isParse {
				if _, ok := codec.Deserialize(state.Output); !ok {
					notice = fmt.Sprintf("%s: nothing to parse", s.opts.Layout.ActionLabel(editor.ActionParse))
				}
			}
			state = editor.Apply(state, action)
		}
		actionName = name
		s.opts.Session.Replace(state)
	} else {
		state = s.opts.Session.Snapshot()
	}

	renderer, err := s.opts.Registry.Get(r.URL.Query().Get("format"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	body, err := renderer.Render(r.Context(), state, render.RenderOptions{
		Layout:      s.opts.Layout,
		Theme:       s.resolveTheme(r),
		Action:      actionName,
		Notice:      notice,
		AssetPrefix: s.opts.AssetPrefix,
	})
	if err != nil {
		level.Error(s.opts.Logger).Log("msg", "render editor", "renderer", renderer.Name(), "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", renderer.ContentType())
	w.WriteHeader(status)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(body)
}

func (s *Server) resolveTheme(r *http.Request) *render.ThemeConfig {
	variant := s.opts.ThemeVariant
	if v := strings.TrimSpace(r.URL.Query().Get("variant")); v != "" {
		variant = v
	}
	cfg, err := render.ResolveTheme(s.opts.Selector, s.opts.ThemeName, variant)
	if err != nil {
		level.Warn(s.opts.Logger).Log("msg", "resolve theme", "variant", variant, "err", err)
		return nil
	}
	return cfg
}

func (s *Server) handleSerialize(w http.ResponseWriter, r *http.Request) {
	var req itemsPayload
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, err)
		return
	}
	if err := checkSlots(req.Items); err != nil {
		writeJSONError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, blobPayload{Blob: codec.Serialize(req.Items)})
}

func (s *Server) handleDeserialize(w http.ResponseWriter, r *http.Request) {
	var req blobPayload
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, err)
		return
	}
	items, ok := codec.Deserialize(req.Blob)
	if items == nil {
		items = model.FormItemList{}
	}
	writeJSON(w, http.StatusOK, deserializeResponse{Items: items, Replaced: ok})
}

func checkSlots(items model.FormItemList) error {
	for _, item := range items {
		for slot := range item.Values {
			if !slot.Valid() {
				return StatusError{Code: http.StatusBadRequest, Err: fmt.Errorf("item %d: slot %d out of range", item.ID, slot)}
			}
		}
	}
	return nil
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return StatusError{Code: http.StatusBadRequest, Err: fmt.Errorf("decode request: %w", err)}
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(payload)
}

func writeJSONError(w http.ResponseWriter, status int, err error) {
	var httpErr StatusError
	if errors.As(err, &httpErr) {
		status = httpErr.StatusCode()
	}
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Error: msg})
}
