//go:build js && wasm

// Command siteforms-wasm mounts the form validators and page features in
// the browser. Build with GOOS=js GOARCH=wasm and load it beside
// wasm_exec.js on the rendered page.
package main

import (
	"go.uber.org/zap"

	siteforms "github.com/goliatone/go-siteforms"
	"github.com/goliatone/go-siteforms/pkg/dom/jsdom"
)

func main() {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	logger, err := cfg.Build()
	if err != nil {
		logger = zap.NewNop()
	}
	defer logger.Sync()

	doc := jsdom.Global()
	mounted, err := siteforms.Mount(doc, doc, doc,
		siteforms.WithLogger(logger),
		siteforms.WithObserver(jsdom.NewObserver(0.1, "0px 0px -50px 0px")),
	)
	if err != nil {
		logger.Error("mount failed", zap.Error(err))
		return
	}
	logger.Info("ready", zap.Int("forms", len(mounted.Validators)))

	select {}
}
