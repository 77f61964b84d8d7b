package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/go-kit/log/level"

	"github.com/goliatone/go-formblob/pkg/editor"
	"github.com/goliatone/go-formblob/pkg/render"
	"github.com/goliatone/go-formblob/pkg/renderers/tui"
)

type editCmd struct {
	Blob   string `help:"Start from this blob instead of a single empty item."`
	Format string `enum:"blob,json,pretty" default:"blob" help:"Output format once editing is done (blob | json | pretty)."`

	driver tui.PromptDriver `kong:"-"`
}

func (cmd *editCmd) Run(opts *globalOptions) error {
	env, err := opts.setup()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	state := editor.Initial()
	if cmd.Blob != "" {
		state = editor.FromBlob(cmd.Blob)
	}

	r, err := tui.New(
		tui.WithPromptDriver(cmd.driver),
		tui.WithOutput(opts.errWriter()),
		tui.WithOutputFormat(tui.OutputFormat(cmd.Format)),
	)
	if err != nil {
		return err
	}

	out, err := r.Render(ctx, state, render.RenderOptions{Layout: env.layout})
	if errors.Is(err, tui.ErrAborted) {
		level.Info(env.logger).Log("msg", "edit aborted")
		return nil
	}
	if err != nil {
		return err
	}
	return writeLine(opts.out(), string(out))
}
