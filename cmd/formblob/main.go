package main

import (
	"io"
	"os"

	"github.com/alecthomas/kong"
)

type globalOptions struct {
	Config    string `help:"Path to a YAML config file." type:"path" env:"FORMBLOB_CONFIG"`
	LayoutDir string `help:"Directory of extra layout files." type:"path"`
	Layout    string `help:"Layout name to use."`
	LogLevel  string `help:"Log level (debug, info, warn, error, none)."`

	stdin  io.Reader `kong:"-"`
	stdout io.Writer `kong:"-"`
	stderr io.Writer `kong:"-"`
}

var cli struct {
	globalOptions

	Generate generateCmd `cmd:"" help:"Generate a blob from a YAML or JSON item file."`
	Parse    parseCmd    `cmd:"" help:"Parse a blob into items."`
	Edit     editCmd     `cmd:"" help:"Edit items interactively in the terminal."`
	Serve    serveCmd    `cmd:"" help:"Serve the browser editor and JSON API."`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("formblob"),
		kong.Description("Build form items and convert them to and from blob text."),
		kong.UsageOnError(),
	)

	cli.globalOptions.stdin = os.Stdin
	cli.globalOptions.stdout = os.Stdout
	cli.globalOptions.stderr = os.Stderr

	err := ctx.Run(&cli.globalOptions)
	ctx.FatalIfErrorf(err)
}
