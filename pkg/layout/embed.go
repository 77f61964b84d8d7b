// Package layout loads the prose layouts that frame the 13 inputs of a form
// item. Layout documents are JSON or YAML; inline markup in prose is passed
// through a bluemonday allow-list on load. A default layout is embedded.
package layout

import (
	"embed"
	"io/fs"
	"sync"
)

//go:embed defaults/*.yaml
var embeddedDefaults embed.FS

var (
	defaultsOnce  sync.Once
	defaultsStore *Store
)

// EmbeddedFS returns the bundled layout documents.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedDefaults, "defaults")
	if err != nil {
		panic(err)
	}
	return sub
}

// Defaults returns the store built from the embedded documents.
func Defaults() *Store {
	defaultsOnce.Do(func() {
		store, err := LoadFS(EmbeddedFS())
		if err != nil {
			panic("layout: embedded defaults: " + err.Error())
		}
		defaultsStore = store
	})
	return defaultsStore
}

// Default returns the bundled default layout.
func Default() Layout {
	l, _ := Defaults().Layout(DefaultName)
	return l
}

// Resolve returns the named layout from store, then from the defaults, and
// finally the default layout itself.
func Resolve(store *Store, name string) Layout {
	if name == "" {
		name = DefaultName
	}
	if l, ok := store.Layout(name); ok {
		return l
	}
	if l, ok := Defaults().Layout(name); ok {
		return l
	}
	return Default()
}
