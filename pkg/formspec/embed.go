package formspec

import (
	"embed"
	"io/fs"
	"sync"
)

//go:embed forms/*
var embeddedForms embed.FS

var (
	defaultOnce  sync.Once
	defaultStore *Store
	defaultErr   error
)

// EmbeddedFS returns the bundled form definitions.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedForms, "forms")
	if err != nil {
		// The embed directive guarantees the subpath exists.
		panic(err)
	}
	return sub
}

// Default loads the embedded definitions once and returns the shared store.
func Default() (*Store, error) {
	defaultOnce.Do(func() {
		defaultStore, defaultErr = LoadFS(EmbeddedFS())
	})
	return defaultStore, defaultErr
}
