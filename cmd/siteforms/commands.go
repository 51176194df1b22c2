package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-siteforms/pkg/orchestrator"
	"github.com/goliatone/go-siteforms/pkg/render"
	"github.com/goliatone/go-siteforms/pkg/renderers/tui"
	"github.com/goliatone/go-siteforms/pkg/renderers/vanilla"
	"github.com/goliatone/go-siteforms/pkg/validation"
)

// errInvalid is returned by validate when the values fail; main exits 1
// without printing it again.
var errInvalid = errors.New("form is invalid")

// app holds the flag values and the collaborators tests replace.
type app struct {
	debug      bool
	formsDir   string
	preset     string
	fillFormat string
	debounce   time.Duration

	clock  func() time.Time
	driver tui.PromptDriver
	logger *zap.Logger
	orch   *orchestrator.Orchestrator
}

func (a *app) now() time.Time {
	if a.clock != nil {
		return a.clock()
	}
	return time.Now()
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "siteforms",
		Short:         "Render, validate and fill the restaurant site's forms",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable development logging")
	root.PersistentFlags().StringVar(&a.formsDir, "forms-dir", "", "load form definitions from this directory instead of the embedded set")
	root.PersistentFlags().StringVar(&a.preset, "preset", "", "YAML or JSON file with copy overrides")

	root.AddCommand(newRenderCmd(a), newValidateCmd(a), newFillCmd(a), newListCmd(a))
	return root
}

func (a *app) setup() error {
	if a.logger == nil {
		cfg := zap.NewProductionConfig()
		if a.debug {
			cfg = zap.NewDevelopmentConfig()
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err := cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		a.logger = logger
	}
	return a.buildOrchestrator()
}

// buildOrchestrator loads the forms and preset and registers the
// renderers. It runs again on every change in watch mode.
func (a *app) buildOrchestrator() error {
	format := tui.OutputFormat(strings.ToLower(a.fillFormat))
	switch format {
	case "", tui.OutputFormatJSON, tui.OutputFormatFormURLEncoded, tui.OutputFormatPrettyText:
	default:
		return fmt.Errorf("unknown output format %q", a.fillFormat)
	}

	registry := render.NewRegistry()
	html, err := vanilla.New()
	if err != nil {
		return err
	}
	terminal, err := tui.New(
		tui.WithPromptDriver(a.driver),
		tui.WithOutputFormat(format),
		tui.WithClock(a.now),
		tui.WithLogger(a.logger),
	)
	if err != nil {
		return err
	}
	if err := registry.Register(html); err != nil {
		return err
	}
	if err := registry.Register(terminal); err != nil {
		return err
	}

	opts := []orchestrator.Option{
		orchestrator.WithRegistry(registry),
		orchestrator.WithLogger(a.logger),
	}
	if a.formsDir != "" {
		opts = append(opts, orchestrator.WithFormsFS(os.DirFS(a.formsDir)))
	}
	if a.preset != "" {
		data, err := os.ReadFile(a.preset)
		if err != nil {
			return fmt.Errorf("read preset: %w", err)
		}
		preset, err := orchestrator.NewPresetTransformer(data)
		if err != nil {
			return err
		}
		opts = append(opts, orchestrator.WithTransformer(preset))
	}
	a.orch = orchestrator.New(opts...)
	_, err = a.orch.Store()
	return err
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available form ids",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.orch.Store()
			if err != nil {
				return err
			}
			for _, id := range store.IDs() {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}
}

func newRenderCmd(a *app) *cobra.Command {
	var (
		output string
		page   bool
		title  string
		script string
		watch  bool
	)
	cmd := &cobra.Command{
		Use:   "render [form...]",
		Short: "Render forms to HTML (every form when none are named)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			renderOnce := func(ctx context.Context) error {
				opts := render.RenderOptions{MinDate: validation.MinDate(a.now())}
				var (
					out []byte
					err error
				)
				if page {
					out, err = a.renderPage(ctx, args, opts, vanilla.Page{Title: title, Script: script})
				} else {
					out, err = a.orch.Generate(ctx, orchestrator.Request{Forms: args, Renderer: "vanilla", RenderOptions: opts})
				}
				if err != nil {
					return err
				}

				if output == "" {
					_, err = cmd.OutOrStdout().Write(out)
					return err
				}
				if err := os.WriteFile(output, out, 0o644); err != nil {
					return fmt.Errorf("write output: %w", err)
				}
				a.logger.Info("forms written", zap.String("path", output), zap.Int("bytes", len(out)))
				return nil
			}

			if !watch {
				return renderOnce(ctx)
			}
			if output == "" {
				return errors.New("--watch requires --output")
			}
			var paths []string
			if a.formsDir != "" {
				paths = append(paths, a.formsDir)
			}
			if a.preset != "" {
				paths = append(paths, a.preset)
			}
			if len(paths) == 0 {
				return errors.New("--watch requires --forms-dir or --preset")
			}
			return a.watch(ctx, paths, renderOnce)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&page, "page", false, "wrap the forms in a standalone HTML document")
	cmd.Flags().StringVar(&title, "title", "", "page title when --page is set")
	cmd.Flags().StringVar(&script, "script", "", "script to include when --page is set")
	cmd.Flags().BoolVar(&watch, "watch", false, "re-render whenever --forms-dir or --preset changes")
	return cmd
}

func (a *app) renderPage(ctx context.Context, ids []string, opts render.RenderOptions, page vanilla.Page) ([]byte, error) {
	forms, err := a.orch.Forms(ctx, ids)
	if err != nil {
		return nil, err
	}
	renderer, err := vanilla.New()
	if err != nil {
		return nil, err
	}
	return renderer.RenderPage(ctx, page, forms, opts)
}

// validateReport is what validate prints.
type validateReport struct {
	Form string `json:"form"`
	validation.FormResult
}

func newValidateCmd(a *app) *cobra.Command {
	var valuesPath string
	cmd := &cobra.Command{
		Use:   "validate <form>",
		Short: "Validate a YAML map of field values against a form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			forms, err := a.orch.Forms(ctx, args[:1])
			if err != nil {
				return err
			}
			form := forms[0]

			values, err := readValues(valuesPath)
			if err != nil {
				return err
			}
			for id := range values {
				if _, ok := form.Field(id); !ok {
					a.logger.Warn("value for unknown field ignored", zap.String("form", form.ID), zap.String("field", id))
				}
			}

			fields := make([]validation.FieldValue, 0, len(form.Fields))
			for _, field := range form.Fields {
				fields = append(fields, validation.FieldValue{Spec: field, Value: values[field.ID]})
			}
			result := validation.ValidateForm(fields, a.now())
			a.logger.Debug("values checked",
				zap.String("form", form.ID),
				zap.Bool("valid", result.Valid),
				zap.Int("failed", len(result.Failed())),
			)

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(validateReport{Form: form.ID, FormResult: result}); err != nil {
				return err
			}
			if !result.Valid {
				return errInvalid
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&valuesPath, "values", "", "YAML file mapping field ids to values (stdin when -)")
	_ = cmd.MarkFlagRequired("values")
	return cmd
}

func readValues(path string) (map[string]string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read values: %w", err)
	}

	raw := map[string]any{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse values: %w", err)
	}
	values := make(map[string]string, len(raw))
	for key, value := range raw {
		switch v := value.(type) {
		case nil:
			values[key] = ""
		case string:
			values[key] = v
		case time.Time:
			values[key] = v.Format(validation.DateLayout)
		default:
			values[key] = fmt.Sprint(v)
		}
	}
	return values, nil
}

func newFillCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fill <form>",
		Short: "Fill a form interactively in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			out, err := a.orch.Generate(ctx, orchestrator.Request{Forms: args[:1], Renderer: "tui"})
			if err != nil {
				return err
			}
			if _, err := cmd.OutOrStdout().Write(out); err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout())
			return err
		},
	}
	cmd.Flags().StringVar(&a.fillFormat, "format", string(tui.OutputFormatJSON), "output format: json, form or pretty")
	return cmd
}
