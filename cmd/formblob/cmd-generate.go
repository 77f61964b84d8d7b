package main

import (
	"github.com/go-kit/log/level"

	"github.com/goliatone/go-formblob/pkg/codec"
)

type generateCmd struct {
	File string `arg:"" help:"YAML or JSON item file, or - for stdin." default:"-"`
}

func (cmd *generateCmd) Run(opts *globalOptions) error {
	env, err := opts.setup()
	if err != nil {
		return err
	}

	data, err := opts.readInput(cmd.File)
	if err != nil {
		return err
	}
	items, err := decodeItems(data)
	if err != nil {
		return err
	}

	level.Debug(env.logger).Log("msg", "generating blob", "items", len(items))
	return writeLine(opts.out(), codec.Serialize(items))
}
