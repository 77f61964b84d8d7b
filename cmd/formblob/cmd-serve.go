package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/go-kit/log/level"

	"github.com/goliatone/go-formblob/pkg/editor"
	"github.com/goliatone/go-formblob/pkg/render"
	"github.com/goliatone/go-formblob/pkg/server"
)

type serveCmd struct {
	Addr    string `help:"Listen address; overrides the config file."`
	Variant string `help:"Theme variant, e.g. dark."`
	Blob    string `help:"Seed the shared editor session from this blob."`
}

func (cmd *serveCmd) Run(opts *globalOptions) error {
	env, err := opts.setup()
	if err != nil {
		return err
	}
	if cmd.Addr != "" {
		env.cfg.Addr = cmd.Addr
	}
	if cmd.Variant != "" {
		env.cfg.Theme.Variant = cmd.Variant
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	state := editor.Initial()
	if cmd.Blob != "" {
		state = editor.FromBlob(cmd.Blob)
	}

	srv, err := server.New(ctx,
		server.WithAddr(env.cfg.Addr),
		server.WithAssetPrefix(env.cfg.AssetPrefix),
		server.WithShutdownGrace(env.cfg.ShutdownGrace),
		server.WithLogger(env.logger),
		server.WithLayout(env.layout),
		server.WithSession(editor.NewSession(state)),
		server.WithTheme(render.NewStaticSelector(render.DefaultManifest()), env.cfg.Theme.Name, env.cfg.Theme.Variant),
	)
	if err != nil {
		return err
	}

	level.Info(env.logger).Log("msg", "starting formblob", "addr", env.cfg.Addr, "layout", env.layout.Name)
	defer level.Info(env.logger).Log("msg", "formblob stopped")
	return srv.Run(ctx)
}
