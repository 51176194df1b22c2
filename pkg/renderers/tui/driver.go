package tui

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// InputConfig configures a single-line text prompt.
type InputConfig struct {
	Message   string
	Default   string
	Help      string
	Validator func(string) error
}

// SelectConfig configures a single-choice prompt.
type SelectConfig struct {
	Message      string
	Options      []string
	DefaultIndex int
	Help         string
	PageSize     int
}

// TextAreaConfig configures a multi-line text prompt.
type TextAreaConfig struct {
	Message   string
	Default   string
	Help      string
	Validator func(string) error
}

// PromptDriver abstracts the terminal so sessions can be tested without one
// and callers can swap implementations.
type PromptDriver interface {
	Input(ctx context.Context, cfg InputConfig) (string, error)
	Select(ctx context.Context, cfg SelectConfig) (int, error)
	TextArea(ctx context.Context, cfg TextAreaConfig) (string, error)
	Info(ctx context.Context, msg string) error
}

type surveyDriver struct {
	stdio terminal.Stdio
}

// NewSurveyDriver returns the terminal driver built on survey. Prompts and
// Info lines use the process stdio.
func NewSurveyDriver() PromptDriver {
	return NewSurveyDriverWithStdio(terminal.Stdio{In: os.Stdin, Out: os.Stdout, Err: os.Stderr})
}

// NewSurveyDriverWithStdio returns a survey driver bound to stdio.
func NewSurveyDriverWithStdio(stdio terminal.Stdio) PromptDriver {
	return &surveyDriver{stdio: stdio}
}

func (d *surveyDriver) Input(ctx context.Context, cfg InputConfig) (string, error) {
	var answer string
	err := d.ask(ctx, &survey.Input{Message: cfg.Message, Help: cfg.Help, Default: cfg.Default}, &answer, cfg.Validator)
	return answer, err
}

func (d *surveyDriver) TextArea(ctx context.Context, cfg TextAreaConfig) (string, error) {
	var answer string
	err := d.ask(ctx, &survey.Multiline{Message: cfg.Message, Help: cfg.Help, Default: cfg.Default}, &answer, cfg.Validator)
	return answer, err
}

// Select answers with the chosen index, or -1 when the answer is not one of
// the options.
func (d *surveyDriver) Select(ctx context.Context, cfg SelectConfig) (int, error) {
	prompt := &survey.Select{Message: cfg.Message, Options: cfg.Options, Help: cfg.Help, PageSize: cfg.PageSize}
	if cfg.DefaultIndex >= 0 && cfg.DefaultIndex < len(cfg.Options) {
		prompt.Default = cfg.Options[cfg.DefaultIndex]
	}
	var answer string
	if err := d.ask(ctx, prompt, &answer, nil); err != nil {
		return -1, err
	}
	for i, option := range cfg.Options {
		if option == answer {
			return i, nil
		}
	}
	return -1, nil
}

func (d *surveyDriver) Info(ctx context.Context, msg string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(d.stdio.Out, msg)
	return err
}

func (d *surveyDriver) ask(ctx context.Context, prompt survey.Prompt, answer any, check func(string) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	opts := []survey.AskOpt{
		survey.WithStdio(d.stdio.In, d.stdio.Out, d.stdio.Err),
		survey.WithIcons(func(icons *survey.IconSet) {
			icons.Error.Text = "!"
		}),
	}
	if check != nil {
		opts = append(opts, survey.WithValidator(func(ans interface{}) error {
			text, _ := ans.(string)
			return check(text)
		}))
	}
	err := survey.AskOne(prompt, answer, opts...)
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}
