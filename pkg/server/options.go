package server

import (
	"strings"
	"time"

	"github.com/go-kit/log"
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formblob/pkg/editor"
	"github.com/goliatone/go-formblob/pkg/layout"
	"github.com/goliatone/go-formblob/pkg/render"
)

type Options struct {
	Addr          string
	AssetPrefix   string
	ShutdownGrace time.Duration

	Logger   log.Logger
	Layout   layout.Layout
	Session  *editor.Session
	Registry *render.Registry

	Selector     theme.ThemeSelector
	ThemeName    string
	ThemeVariant string
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		Addr:          ":8080",
		AssetPrefix:   "/assets",
		ShutdownGrace: 10 * time.Second,
	}
}

// NewOptions applies fns over DefaultOptions and fills in anything left
// unset: a nop logger, the default layout, a fresh session and the bundled
// theme.
func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.Addr == "" {
		opts.Addr = ":8080"
	}
	if strings.TrimRight(opts.AssetPrefix, "/") == "" {
		opts.AssetPrefix = "/assets"
	}
	if opts.ShutdownGrace <= 0 {
		opts.ShutdownGrace = 10 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = log.NewNopLogger()
	}
	if len(opts.Layout.Segments) == 0 {
		opts.Layout = layout.Default()
	}
	if opts.Session == nil {
		opts.Session = editor.NewSession(editor.Initial())
	}
	if opts.Selector == nil {
		opts.Selector = render.NewStaticSelector(render.DefaultManifest())
	}
	return opts
}

func WithAddr(addr string) OptionFn {
	return func(o *Options) {
		o.Addr = addr
	}
}

func WithAssetPrefix(prefix string) OptionFn {
	return func(o *Options) {
		o.AssetPrefix = prefix
	}
}

func WithShutdownGrace(d time.Duration) OptionFn {
	return func(o *Options) {
		o.ShutdownGrace = d
	}
}

func WithLogger(logger log.Logger) OptionFn {
	return func(o *Options) {
		o.Logger = logger
	}
}

func WithLayout(l layout.Layout) OptionFn {
	return func(o *Options) {
		o.Layout = l
	}
}

// WithSession shares an existing editor session, e.g. one seeded from a blob.
func WithSession(session *editor.Session) OptionFn {
	return func(o *Options) {
		o.Session = session
	}
}

// WithRegistry overrides the renderers offered through ?format=. The default
// registry serves vanilla HTML with a text fallback.
func WithRegistry(registry *render.Registry) OptionFn {
	return func(o *Options) {
		o.Registry = registry
	}
}

func WithTheme(selector theme.ThemeSelector, name, variant string) OptionFn {
	return func(o *Options) {
		o.Selector = selector
		o.ThemeName = name
		o.ThemeVariant = variant
	}
}
