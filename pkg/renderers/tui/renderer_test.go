package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-siteforms/pkg/model"
	"github.com/goliatone/go-siteforms/pkg/render"
	"github.com/goliatone/go-siteforms/pkg/testsupport"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	textAreas    []string
	infoMessages []string
	inputCfgs    []InputConfig
	selectCfgs   []SelectConfig
	inputErr     error
	inputPos     int
	selectPos    int
	textPos      int
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	s.inputCfgs = append(s.inputCfgs, cfg)
	if s.inputErr != nil {
		return "", s.inputErr
	}
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.selectCfgs = append(s.selectCfgs, cfg)
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, _ TextAreaConfig) (string, error) {
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no textarea scripted")
	}
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

var fixedClock = testsupport.Clock(10)

func TestRender_ContactForm(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Ada", "ada@example.com"},
		selectIdx: []int{0},
		textAreas: []string{"Table for two please"},
	}
	r, err := New(WithPromptDriver(driver), WithClock(fixedClock))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	out, err := r.Render(context.Background(), []model.FormSpec{testsupport.Form(t, "contactForm")}, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := `{"contactEmail":"ada@example.com","contactName":"Ada","message":"Table for two please","subject":"general"}`
	if string(out) != want {
		t.Fatalf("output mismatch\nwant: %s\n got: %s", want, out)
	}
	wantInfo := []string{
		"Message Sent!",
		"Thank you for contacting us. We will get back to you within 24 hours.",
	}
	if diff := cmp.Diff(wantInfo, driver.infoMessages); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}
	if r.ContentType() != "application/json" {
		t.Fatalf("unexpected content type %q", r.ContentType())
	}
}

func TestSession_RepromptsFailingFields(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"A", "bad", "Ada", "ada@example.com"},
		selectIdx: []int{1},
		textAreas: []string{"short", "long enough message"},
	}
	session, err := NewSession(testsupport.Form(t, "contactForm"), WithPromptDriver(driver), WithClock(fixedClock))
	if err != nil {
		t.Fatalf("new session: %v", err)
	}

	values, err := session.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	wantInfo := []string{
		"! Your Name: Name must be at least 2 characters",
		"! Email Address: Please enter a valid email address",
		"! Message: Message must be at least 10 characters",
		"Message Sent!",
		"Thank you for contacting us. We will get back to you within 24 hours.",
	}
	if diff := cmp.Diff(wantInfo, driver.infoMessages); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}
	if driver.selectPos != 1 {
		t.Fatalf("passing select should not be asked again, asked %d times", driver.selectPos)
	}
	if got := driver.inputCfgs[2].Default; got != "A" {
		t.Fatalf("reprompt should default to the previous answer, got %q", got)
	}
	if values["subject"] != "reservation" || values["contactName"] != "Ada" {
		t.Fatalf("unexpected values %v", values)
	}
	if session.Document().Node("contactSuccessMessage").Visible() != true {
		t.Fatalf("success panel should be shown once the form passes")
	}
}

func TestSession_PromptValidatorMatchesBlur(t *testing.T) {
	driver := &stubDriver{inputErr: ErrAborted}
	session, err := NewSession(testsupport.Form(t, "reservationForm"), WithPromptDriver(driver), WithClock(fixedClock))
	if err != nil {
		t.Fatalf("new session: %v", err)
	}

	if _, err := session.Run(context.Background()); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
	cfg := driver.inputCfgs[0]
	if cfg.Message != "First Name" {
		t.Fatalf("unexpected prompt %q", cfg.Message)
	}
	if err := cfg.Validator(""); err == nil || err.Error() != "First name is required" {
		t.Fatalf("expected required message, got %v", err)
	}
	if err := cfg.Validator("Jo"); err != nil {
		t.Fatalf("expected pass, got %v", err)
	}
}

func TestSession_DateHelpAndPrefill(t *testing.T) {
	form := testsupport.Form(t, "reservationForm")
	driver := &stubDriver{inputErr: ErrAborted}
	session, err := NewSession(form, WithPromptDriver(driver), WithClock(fixedClock), WithTheme(Theme{ErrorPrefix: "x "}))
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	session.Prefill(
		map[string]string{"firstName": "Jo", "unknown": "ignored"},
		map[string][]string{"firstName": {"First name is required"}},
	)

	_, _ = session.Run(context.Background())

	if got := driver.inputCfgs[0].Default; got != "Jo" {
		t.Fatalf("expected prefilled default, got %q", got)
	}
	if diff := cmp.Diff([]string{"x First Name: First name is required"}, driver.infoMessages); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}

	date, _ := form.Field("date")
	if got := session.help(date); !strings.Contains(got, "on or after 2026-10-16") {
		t.Fatalf("unexpected date help %q", got)
	}
}

func TestRender_RequiresSingleForm(t *testing.T) {
	r, err := New(WithPromptDriver(&stubDriver{}))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	_, err = r.Render(context.Background(), nil, render.RenderOptions{})
	if !errors.Is(err, ErrFormCount) {
		t.Fatalf("expected ErrFormCount, got %v", err)
	}
}

func TestRender_SubmitTransformer(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Ada", "ada@example.com"},
		selectIdx: []int{2},
		textAreas: []string{"Catering for forty"},
	}
	r, err := New(
		WithPromptDriver(driver),
		WithClock(fixedClock),
		WithOutputFormat(OutputFormatPrettyText),
		WithSubmitTransformer(func(values map[string]string) (map[string]string, error) {
			values["contactName"] = strings.ToUpper(values["contactName"])
			return values, nil
		}),
	)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	out, err := r.Render(context.Background(), []model.FormSpec{testsupport.Form(t, "contactForm")}, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := "contactName=ADA\ncontactEmail=ada@example.com\nsubject=catering\nmessage=Catering for forty\n"
	if string(out) != want {
		t.Fatalf("output mismatch\nwant: %q\n got: %q", want, out)
	}
}

func TestSerialize_FormEncoded(t *testing.T) {
	out, err := Serialize(OutputFormatFormURLEncoded, model.FormSpec{}, map[string]string{"b": "x y", "a": "1"})
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if string(out) != "a=1&b=x+y" {
		t.Fatalf("unexpected encoding %q", out)
	}
}

func TestPromptSelect_OptionalAddsSkip(t *testing.T) {
	form := model.FormSpec{
		ID:        "f",
		SuccessID: "s",
		ResetID:   "r",
		Fields: []model.FieldSpec{{
			ID:      "seating",
			Kind:    model.FieldKindSelect,
			Options: []model.Option{{Value: "patio", Label: "Patio"}},
		}},
	}
	driver := &stubDriver{selectIdx: []int{0}}
	session, err := NewSession(form, WithPromptDriver(driver), WithClock(fixedClock))
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	values, err := session.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if diff := cmp.Diff([]string{skipOption, "Patio"}, driver.selectCfgs[0].Options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
	if values["seating"] != "" {
		t.Fatalf("skip should submit an empty value, got %q", values["seating"])
	}
}
