package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formblob/pkg/codec"
	"github.com/goliatone/go-formblob/pkg/model"
	"github.com/goliatone/go-formblob/pkg/renderers/tui"
)

func testOptions(stdin string) (*globalOptions, *bytes.Buffer) {
	var out bytes.Buffer
	return &globalOptions{
		LogLevel: "none",
		stdin:    strings.NewReader(stdin),
		stdout:   &out,
		stderr:   &bytes.Buffer{},
	}, &out
}

func TestGenerate_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.yaml")
	data := "items:\n  - id: 1\n    values:\n      1: \"7\"\n      4: x\n  - id: 2\n    values:\n      13: tail\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	opts, out := testOptions("")
	if err := (&generateCmd{File: path}).Run(opts); err != nil {
		t.Fatalf("generate: %v", err)
	}

	want := codec.Serialize(model.FormItemList{
		model.NewFormItem(1).With(1, "7").With(4, "x"),
		model.NewFormItem(2).With(13, "tail"),
	}) + "\n"
	if diff := cmp.Diff(want, out.String()); diff != "" {
		t.Fatalf("blob mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerate_JSONStdin(t *testing.T) {
	opts, out := testOptions(`[{"id":1,"values":{"2":"b"}}]`)
	if err := (&generateCmd{File: "-"}).Run(opts); err != nil {
		t.Fatalf("generate: %v", err)
	}
	want := codec.Serialize(model.FormItemList{model.NewFormItem(1).With(2, "b")}) + "\n"
	if diff := cmp.Diff(want, out.String()); diff != "" {
		t.Fatalf("blob mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeItems_Errors(t *testing.T) {
	cases := map[string]string{
		"empty":       "  ",
		"bad json":    `[{"id":`,
		"slot range":  `[{"id":1,"values":{"14":"x"}}]`,
		"yaml scalar": "items: nope",
		"yaml slot 0": "- id: 1\n  values:\n    0: x\n",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := decodeItems([]byte(data)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestParse_Formats(t *testing.T) {
	blob := "a，b|c"

	opts, out := testOptions("")
	if err := (&parseCmd{Blob: blob, Format: "json"}).Run(opts); err != nil {
		t.Fatalf("parse json: %v", err)
	}
	var items model.FormItemList
	if err := json.Unmarshal(out.Bytes(), &items); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := cmp.Diff(codec.Decode(blob), items); diff != "" {
		t.Fatalf("items mismatch (-want +got):\n%s", diff)
	}

	opts, out = testOptions(blob + "\n")
	if err := (&parseCmd{Format: "yaml"}).Run(opts); err != nil {
		t.Fatalf("parse yaml: %v", err)
	}
	if !strings.Contains(out.String(), "id: 2") || !strings.Contains(out.String(), "1: c") {
		t.Fatalf("unexpected yaml output:\n%s", out.String())
	}

	opts, out = testOptions("")
	if err := (&parseCmd{Blob: blob, Format: "table"}).Run(opts); err != nil {
		t.Fatalf("parse table: %v", err)
	}
	if !strings.Contains(out.String(), "回合,场上存活人数为") || strings.Contains(out.String(), blob) {
		t.Fatalf("unexpected table output:\n%s", out.String())
	}
}

func TestParse_NothingToParse(t *testing.T) {
	opts, _ := testOptions("")
	if err := (&parseCmd{Blob: " | ", Format: "json"}).Run(opts); err == nil {
		t.Fatalf("expected error for empty blob")
	}
}

type scriptedDriver struct {
	selects []int
}

func (d *scriptedDriver) Input(context.Context, tui.InputConfig) (string, error) { return "", nil }
func (d *scriptedDriver) Confirm(context.Context, tui.ConfirmConfig) (bool, error) {
	return false, nil
}
func (d *scriptedDriver) MultiSelect(context.Context, tui.SelectConfig) ([]int, error) {
	return nil, nil
}
func (d *scriptedDriver) TextArea(context.Context, tui.TextAreaConfig) (string, error) {
	return "", nil
}
func (d *scriptedDriver) Info(context.Context, string) error { return nil }

func (d *scriptedDriver) Select(_ context.Context, cfg tui.SelectConfig) (int, error) {
	if len(d.selects) == 0 {
		return 0, tui.ErrAborted
	}
	next := d.selects[0]
	d.selects = d.selects[1:]
	if next < 0 {
		return len(cfg.Options) - 1, nil
	}
	return next, nil
}

func TestEdit_DoneReturnsBlob(t *testing.T) {
	opts, out := testOptions("")
	cmd := &editCmd{Blob: "a|b", Format: "blob", driver: &scriptedDriver{selects: []int{-1}}}
	if err := cmd.Run(opts); err != nil {
		t.Fatalf("edit: %v", err)
	}
	want := codec.Serialize(codec.Decode("a|b")) + "\n"
	if diff := cmp.Diff(want, out.String()); diff != "" {
		t.Fatalf("blob mismatch (-want +got):\n%s", diff)
	}
}

func TestEdit_AbortIsNotAnError(t *testing.T) {
	opts, out := testOptions("")
	cmd := &editCmd{Format: "blob", driver: &scriptedDriver{}}
	if err := cmd.Run(opts); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no output after abort, got %q", out.String())
	}
}

func TestSetup_UnknownLayout(t *testing.T) {
	opts, _ := testOptions("")
	opts.Layout = "missing"
	if _, err := opts.setup(); err == nil {
		t.Fatalf("expected error for unknown layout")
	}
}
