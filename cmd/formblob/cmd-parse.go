package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/go-kit/log/level"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formblob/pkg/codec"
	"github.com/goliatone/go-formblob/pkg/editor"
	"github.com/goliatone/go-formblob/pkg/render"
	"github.com/goliatone/go-formblob/pkg/renderers/text"
)

type parseCmd struct {
	Blob   string `arg:"" optional:"" help:"Blob text; read from stdin when omitted."`
	Format string `enum:"json,yaml,table" default:"table" help:"Output format (json | yaml | table)."`
}

func (cmd *parseCmd) Run(opts *globalOptions) error {
	env, err := opts.setup()
	if err != nil {
		return err
	}

	blob := cmd.Blob
	if blob == "" {
		data, err := io.ReadAll(opts.in())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		blob = strings.TrimRight(string(data), "\r\n")
	}

	items, ok := codec.Deserialize(blob)
	if !ok {
		level.Warn(env.logger).Log("msg", "blob holds no items")
		return fmt.Errorf("nothing to parse")
	}

	switch cmd.Format {
	case "json":
		data, err := json.MarshalIndent(items, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return writeLine(opts.out(), string(data))
	case "yaml":
		data, err := yaml.Marshal(items)
		if err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return writeLine(opts.out(), string(data))
	default:
		state := editor.State{Items: items, Output: blob}
		out, err := text.New(text.WithoutOutput()).Render(context.Background(), state, render.RenderOptions{Layout: env.layout})
		if err != nil {
			return err
		}
		_, err = opts.out().Write(out)
		return err
	}
}
