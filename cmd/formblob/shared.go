package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-kit/log"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formblob/internal/config"
	"github.com/goliatone/go-formblob/internal/logging"
	"github.com/goliatone/go-formblob/pkg/layout"
	"github.com/goliatone/go-formblob/pkg/model"
)

type environment struct {
	cfg    config.Config
	logger log.Logger
	layout layout.Layout
}

// setup loads config, applies flag overrides and resolves the layout.
func (g *globalOptions) setup() (environment, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return environment{}, err
	}
	if g.LayoutDir != "" {
		cfg.Layout.Dir = g.LayoutDir
	}
	if g.Layout != "" {
		cfg.Layout.Name = g.Layout
	}
	if g.LogLevel != "" {
		cfg.LogLevel = g.LogLevel
	}

	logger, err := logging.New(g.errWriter(), cfg.LogFormat, cfg.LogLevel)
	if err != nil {
		return environment{}, err
	}
	l, err := layout.LoadDir(cfg.Layout.Dir, cfg.Layout.Name)
	if err != nil {
		return environment{}, err
	}
	return environment{cfg: cfg, logger: logger, layout: l}, nil
}

func (g *globalOptions) in() io.Reader {
	if g.stdin == nil {
		return os.Stdin
	}
	return g.stdin
}

func (g *globalOptions) out() io.Writer {
	if g.stdout == nil {
		return os.Stdout
	}
	return g.stdout
}

func (g *globalOptions) errWriter() io.Writer {
	if g.stderr == nil {
		return os.Stderr
	}
	return g.stderr
}

// readInput reads path, or stdin when path is "-".
func (g *globalOptions) readInput(path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(g.in())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

type itemsDocument struct {
	Items model.FormItemList `json:"items" yaml:"items"`
}

// decodeItems accepts a bare list of items or an {items: [...]} document in
// JSON or YAML. Slots outside 1..13 are rejected.
func decodeItems(data []byte) (model.FormItemList, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("item file is empty")
	}

	var items model.FormItemList
	switch trimmed[0] {
	case '[':
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("decode items: %w", err)
		}
	case '{':
		var doc itemsDocument
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, fmt.Errorf("decode items: %w", err)
		}
		items = doc.Items
	default:
		var node yaml.Node
		if err := yaml.Unmarshal(trimmed, &node); err != nil {
			return nil, fmt.Errorf("decode items: %w", err)
		}
		if len(node.Content) > 0 && node.Content[0].Kind == yaml.SequenceNode {
			if err := node.Decode(&items); err != nil {
				return nil, fmt.Errorf("decode items: %w", err)
			}
		} else {
			var doc itemsDocument
			if err := node.Decode(&doc); err != nil {
				return nil, fmt.Errorf("decode items: %w", err)
			}
			items = doc.Items
		}
	}

	for i, item := range items {
		for slot := range item.Values {
			if !slot.Valid() {
				return nil, fmt.Errorf("item %d: slot %d out of range", i+1, slot)
			}
		}
	}
	return items, nil
}

func writeLine(w io.Writer, s string) error {
	if !strings.HasSuffix(s, "\n") {
		s += "\n"
	}
	_, err := io.WriteString(w, s)
	return err
}
