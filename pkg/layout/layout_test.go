package layout

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formblob/pkg/model"
)

func TestDefaultLayout(t *testing.T) {
	l := Default()
	if l.Name != DefaultName {
		t.Fatalf("expected default layout, got %q", l.Name)
	}
	if len(l.Segments) != model.SlotCount {
		t.Fatalf("expected %d segments, got %d", model.SlotCount, len(l.Segments))
	}

	first, ok := l.Segment(1)
	if !ok {
		t.Fatalf("slot 1 missing")
	}
	if first.Before != "第 " || first.After != " 回合,场上存活人数为 " {
		t.Fatalf("unexpected slot 1 prose: %+v", first)
	}
	if first.Width != DefaultWidth {
		t.Fatalf("expected default width, got %d", first.Width)
	}

	if got := l.Label(1); got != "第" {
		t.Fatalf("label 1: got %q", got)
	}
	if got := l.Label(2); got != "回合,场上存活人数为" {
		t.Fatalf("label 2: got %q", got)
	}
	if got := l.Label(6); got != "Field 6" {
		t.Fatalf("label 6 should fall back, got %q", got)
	}
	if got := l.ActionLabel("generate"); got != "生成总内容" {
		t.Fatalf("generate label: got %q", got)
	}
	if got := l.ActionLabel("unknown"); got != "unknown" {
		t.Fatalf("fallback action label: got %q", got)
	}
	if got := l.Heading(3); got != "表单项 3" {
		t.Fatalf("heading: got %q", got)
	}
}

func segmentsYAML(slots ...int) string {
	var b strings.Builder
	for _, slot := range slots {
		b.WriteString("      - slot: " + strconv.Itoa(slot) + "\n")
	}
	return b.String()
}

func TestLoadFS(t *testing.T) {
	doc := "layouts:\n  - name: plain\n    segments:\n" + segmentsYAML(13, 12, 11, 10, 9, 8, 7, 6, 5, 4, 3, 2, 1)
	jsonDoc := `{"layouts":[{"name":"json","segments":[` +
		`{"slot":1,"before":"<b>Round</b> <script>alert(1)</script>"},{"slot":2},{"slot":3},{"slot":4},{"slot":5},{"slot":6},` +
		`{"slot":7},{"slot":8},{"slot":9},{"slot":10},{"slot":11},{"slot":12},{"slot":13}]}]}`

	fsys := fstest.MapFS{
		"plain.yaml":    {Data: []byte(doc)},
		"nested/a.json": {Data: []byte(jsonDoc)},
		"README.md":     {Data: []byte("ignored")},
	}

	store, err := LoadFS(fsys)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff([]string{"json", "plain"}, store.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}

	plain, _ := store.Layout("plain")
	if plain.Segments[0].Slot != 13 || plain.Source != "plain.yaml" {
		t.Fatalf("segment order or source not preserved: %+v", plain.Segments[0])
	}

	js, _ := store.Layout("json")
	seg, _ := js.Segment(1)
	if strings.Contains(seg.Before, "script") {
		t.Fatalf("script not stripped: %q", seg.Before)
	}
	if !strings.Contains(seg.Before, "<b>Round</b>") {
		t.Fatalf("allowed markup dropped: %q", seg.Before)
	}
	if got := js.Label(1); got != "Round" {
		t.Fatalf("label should be plain text, got %q", got)
	}
}

func TestLoadFSErrors(t *testing.T) {
	tests := map[string]string{
		"missing slot":  "layouts:\n  - name: short\n    segments:\n" + segmentsYAML(1, 2, 3),
		"duplicate":     "layouts:\n  - name: dup\n    segments:\n" + segmentsYAML(1, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12),
		"out of range":  "layouts:\n  - name: range\n    segments:\n" + segmentsYAML(0, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13),
		"missing name":  "layouts:\n  - segments:\n" + segmentsYAML(1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13),
		"empty file":    "   ",
		"no layouts":    "other: true\n",
		"invalid input": "layouts: [",
	}

	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadFS(fstest.MapFS{"layout.yaml": {Data: []byte(doc)}})
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.HasPrefix(err.Error(), "layout:") {
				t.Fatalf("expected package prefix, got %v", err)
			}
		})
	}
}

func TestLoadFSDuplicateAcrossFiles(t *testing.T) {
	doc := []byte("layouts:\n  - name: same\n    segments:\n" + segmentsYAML(1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13))
	_, err := LoadFS(fstest.MapFS{
		"a.yaml": {Data: doc},
		"b.yaml": {Data: doc},
	})
	if err == nil || !strings.Contains(err.Error(), "duplicate layout") {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}

func TestResolveAndMerge(t *testing.T) {
	doc := []byte("layouts:\n  - name: custom\n    title: Custom\n    segments:\n" + segmentsYAML(1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13))
	store, err := LoadFS(fstest.MapFS{"c.yml": {Data: doc}})
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if got := Resolve(store, "custom"); got.Title != "Custom" {
		t.Fatalf("expected custom layout, got %q", got.Name)
	}
	if got := Resolve(store, ""); got.Name != DefaultName {
		t.Fatalf("empty name should resolve default, got %q", got.Name)
	}
	if got := Resolve(nil, "missing"); got.Name != DefaultName {
		t.Fatalf("missing layout should resolve default, got %q", got.Name)
	}

	store.Merge(Defaults())
	if diff := cmp.Diff([]string{"custom", "default"}, store.Names()); diff != "" {
		t.Fatalf("merge mismatch (-want +got):\n%s", diff)
	}

	empty, _ := LoadFS(nil)
	if !empty.Empty() {
		t.Fatalf("nil fs should yield empty store")
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	doc := "layouts:\n  - name: default\n    title: Override\n    segments:\n" + segmentsYAML(1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13)
	if err := os.WriteFile(filepath.Join(dir, "layouts.yaml"), []byte(doc), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := LoadDir(dir, "")
	if err != nil {
		t.Fatalf("load dir: %v", err)
	}
	if got.Title != "Override" {
		t.Fatalf("expected directory layout to shadow the bundled one, got %q", got.Title)
	}

	bundled, err := LoadDir("", DefaultName)
	if err != nil {
		t.Fatalf("load bundled: %v", err)
	}
	if bundled.Title != Default().Title {
		t.Fatalf("expected bundled default, got %q", bundled.Title)
	}

	if _, err := LoadDir(dir, "missing"); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected not found error, got %v", err)
	}
	if _, err := LoadDir(filepath.Join(dir, "absent"), ""); err == nil {
		t.Fatalf("expected error for missing directory")
	}
}
