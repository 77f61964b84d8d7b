package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-kit/log"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formblob/pkg/codec"
	"github.com/goliatone/go-formblob/pkg/editor"
	"github.com/goliatone/go-formblob/pkg/model"
)

func newTestServer(t *testing.T, fns ...OptionFn) (*Server, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	fns = append([]OptionFn{WithLogger(log.NewLogfmtLogger(&logs))}, fns...)
	srv, err := New(context.Background(), fns...)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return srv, &logs
}

func do(t *testing.T, h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func postJSON(path, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestSerializeEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := do(t, srv.Handler(), postJSON("/api/serialize", `{"items":[{"id":1,"values":{"1":"7","4":"x"}}]}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var got blobPayload
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	item := model.NewFormItem(1).With(1, "7").With(4, "x")
	if diff := cmp.Diff(codec.Serialize(model.FormItemList{item}), got.Blob); diff != "" {
		t.Fatalf("blob mismatch (-want +got):\n%s", diff)
	}
}

func TestSerializeEndpoint_Validation(t *testing.T) {
	srv, _ := newTestServer(t)

	cases := map[string]string{
		"missing items":  `{}`,
		"id below one":   `{"items":[{"id":0,"values":{}}]}`,
		"non string":     `{"items":[{"id":1,"values":{"1":5}}]}`,
		"slot too large": `{"items":[{"id":1,"values":{"14":"x"}}]}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			rec := do(t, srv.Handler(), postJSON("/api/serialize", body))
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
			var got errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil || got.Error == "" {
				t.Fatalf("expected json error body, got %q", rec.Body.String())
			}
		})
	}
}

func TestDeserializeEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := do(t, srv.Handler(), postJSON("/api/deserialize", `{"blob":"a，b|c"}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var got deserializeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !got.Replaced {
		t.Fatalf("expected replaced=true")
	}
	if diff := cmp.Diff(codec.Decode("a，b|c"), got.Items); diff != "" {
		t.Fatalf("items mismatch (-want +got):\n%s", diff)
	}

	rec = do(t, srv.Handler(), postJSON("/api/deserialize", `{"blob":" | "}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"replaced":false`) || !strings.Contains(rec.Body.String(), `"items":[]`) {
		t.Fatalf("unexpected no-op body %s", rec.Body.String())
	}
}

func TestDeserializeEndpoint_RequiresBlob(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := do(t, srv.Handler(), postJSON("/api/deserialize", `{"text":"a"}`))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestPage_GetRendersSession(t *testing.T) {
	session := editor.NewSession(editor.FromBlob("alpha|beta"))
	srv, logs := newTestServer(t, WithSession(session))

	rec := do(t, srv.Handler(), httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{`name="item.2.1"`, `value="beta"`, `href="/assets/formblob.css"`, "--fb-accent"} {
		if !strings.Contains(body, want) {
			t.Errorf("expected page to contain %q", want)
		}
	}
	if !strings.Contains(logs.String(), "status=200") || !strings.Contains(logs.String(), "method=GET") {
		t.Fatalf("expected request log line, got %q", logs.String())
	}
}

func TestPage_PostAppliesAction(t *testing.T) {
	session := editor.NewSession(editor.Initial())
	srv, _ := newTestServer(t, WithSession(session))

	form := url.Values{}
	form.Add("order", "1")
	form.Add("order", "3")
	form.Set("item.1.1", "7")
	form.Set("item.3.2", "x")
	form.Set("item.9.1", "ignored")
	form.Set("action", "generate")

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := do(t, srv.Handler(), req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	snap := session.Snapshot()
	if diff := cmp.Diff([]int{1, 3}, snap.Items.IDs()); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}
	if snap.Output != codec.Serialize(snap.Items) {
		t.Fatalf("expected generated output, got %q", snap.Output)
	}
	if !strings.Contains(rec.Body.String(), "fb-output--active") {
		t.Fatalf("expected output highlighted after generate")
	}

	form = url.Values{}
	form.Add("order", "1")
	form.Add("order", "3")
	form.Set("action", "remove:1")
	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	do(t, srv.Handler(), req)

	if diff := cmp.Diff([]int{3}, session.Snapshot().Items.IDs()); diff != "" {
		t.Fatalf("ids after remove mismatch (-want +got):\n%s", diff)
	}
}

func TestPage_ParseNoopAndBadAction(t *testing.T) {
	session := editor.NewSession(editor.Initial())
	srv, _ := newTestServer(t, WithSession(session))

	form := url.Values{"order": {"1"}, "item.1.5": {"keep"}, "output": {"｜"}, "action": {"parse"}}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := do(t, srv.Handler(), req)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "nothing to parse") {
		t.Fatalf("expected notice for empty parse, got %d", rec.Code)
	}
	if session.Snapshot().Items[0].Value(5) != "keep" {
		t.Fatalf("expected items kept after no-op parse")
	}

	form = url.Values{"order": {"1"}, "action": {"explode"}}
	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec = do(t, srv.Handler(), req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown action, got %d", rec.Code)
	}
}

func TestPage_TextFormatAndVariant(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := do(t, srv.Handler(), httptest.NewRequest(http.MethodGet, "/?format=text", nil))
	if !strings.HasPrefix(rec.Header().Get("Content-Type"), "text/plain") {
		t.Fatalf("expected text renderer, got %q", rec.Header().Get("Content-Type"))
	}

	rec = do(t, srv.Handler(), httptest.NewRequest(http.MethodGet, "/?variant=dark", nil))
	if !strings.Contains(rec.Body.String(), "fb-theme-dark") || !strings.Contains(rec.Body.String(), "#141414") {
		t.Fatalf("expected dark variant tokens")
	}

	rec = do(t, srv.Handler(), httptest.NewRequest(http.MethodGet, "/?format=pdf", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown format, got %d", rec.Code)
	}
}

func TestAssetsAndOpenAPI(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := do(t, srv.Handler(), httptest.NewRequest(http.MethodGet, "/assets/formblob.css", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "--fb-accent") {
		t.Fatalf("expected stylesheet, got %d", rec.Code)
	}

	rec = do(t, srv.Handler(), httptest.NewRequest(http.MethodGet, "/openapi.yaml", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "/api/serialize") {
		t.Fatalf("expected openapi document, got %d", rec.Code)
	}

	rec = do(t, srv.Handler(), httptest.NewRequest(http.MethodGet, "/missing", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestRootAssetPrefixFallsBack(t *testing.T) {
	srv, _ := newTestServer(t, WithAssetPrefix("/"))

	rec := do(t, srv.Handler(), httptest.NewRequest(http.MethodGet, "/missing", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown route, got %d", rec.Code)
	}
	rec = do(t, srv.Handler(), httptest.NewRequest(http.MethodGet, "/assets/formblob.css", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected stylesheet under default prefix, got %d", rec.Code)
	}
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	srv, _ := newTestServer(t)
	ln := httptest.NewUnstartedServer(nil).Listener
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/openapi.yaml")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("serve: %v", err)
	}
}
