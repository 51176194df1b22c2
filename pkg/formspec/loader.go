package formspec

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-siteforms/pkg/model"
)

// ErrUnknownForm is returned when a form id is not present in the store.
var ErrUnknownForm = errors.New("formspec: unknown form")

// Store holds loaded form definitions keyed by form id.
type Store struct {
	forms map[string]model.FormSpec
	order []string
}

type documentFile struct {
	Forms []model.FormSpec `json:"forms" yaml:"forms"`
}

// LoadFS walks fsys and parses every JSON/YAML definition file. When fsys is
// nil or holds no definitions the returned store is empty.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{forms: make(map[string]model.FormSpec)}
	if fsys == nil {
		return store, nil
	}

	validate := validator.New()

	var paths []string
	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isDefinitionFile(path) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	for _, path := range paths {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("formspec: read %s: %w", path, err)
		}

		doc, err := parseDocument(data, path)
		if err != nil {
			return nil, err
		}

		for _, form := range doc.Forms {
			form, err := normaliseForm(form, path, validate)
			if err != nil {
				return nil, err
			}
			if _, exists := store.forms[form.ID]; exists {
				return nil, fmt.Errorf("formspec: duplicate form %q (file %s)", form.ID, path)
			}
			store.forms[form.ID] = form
			store.order = append(store.order, form.ID)
		}
	}

	return store, nil
}

// Form returns the definition registered under id.
func (s *Store) Form(id string) (model.FormSpec, error) {
	if s != nil {
		if form, ok := s.forms[strings.TrimSpace(id)]; ok {
			return cloneForm(form), nil
		}
	}
	return model.FormSpec{}, fmt.Errorf("%w: %q", ErrUnknownForm, id)
}

// IDs lists form ids in load order.
func (s *Store) IDs() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.order...)
}

// Forms returns every definition in load order.
func (s *Store) Forms() []model.FormSpec {
	if s == nil {
		return nil
	}
	out := make([]model.FormSpec, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, cloneForm(s.forms[id]))
	}
	return out
}

// Empty reports whether the store holds any forms.
func (s *Store) Empty() bool {
	return s == nil || len(s.forms) == 0
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("formspec: file %s is empty", source)
	}

	if strings.EqualFold(filepath.Ext(source), ".json") {
		if err := json.Unmarshal(data, &doc); err != nil {
			return documentFile{}, fmt.Errorf("formspec: parse %s: %w", source, err)
		}
		return doc, nil
	}

	if err := yaml.Unmarshal(data, &doc); err != nil {
		return documentFile{}, fmt.Errorf("formspec: parse %s: %w", source, err)
	}
	return doc, nil
}

func normaliseForm(form model.FormSpec, source string, validate *validator.Validate) (model.FormSpec, error) {
	form.ID = strings.TrimSpace(form.ID)
	form.SuccessID = strings.TrimSpace(form.SuccessID)
	form.ResetID = strings.TrimSpace(form.ResetID)
	form.Source = source
	for i := range form.Fields {
		form.Fields[i].ID = strings.TrimSpace(form.Fields[i].ID)
		form.Fields[i].Kind = model.FieldKind(strings.ToLower(strings.TrimSpace(string(form.Fields[i].Kind))))
	}

	if err := validate.Struct(form); err != nil {
		return model.FormSpec{}, describeValidation(err, form.ID, source)
	}

	seen := make(map[string]struct{}, len(form.Fields))
	for _, field := range form.Fields {
		if _, exists := seen[field.ID]; exists {
			return model.FormSpec{}, fmt.Errorf("formspec: form %q (file %s) defines duplicate field %q", form.ID, source, field.ID)
		}
		seen[field.ID] = struct{}{}
		if field.Kind == model.FieldKindSelect && len(field.Options) == 0 {
			return model.FormSpec{}, fmt.Errorf("formspec: form %q (file %s) select field %q has no options", form.ID, source, field.ID)
		}
	}

	sanitizeForm(&form)
	return form, nil
}

func describeValidation(err error, formID, source string) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("formspec: form %q (file %s): %w", formID, source, err)
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s: %s", strings.TrimPrefix(fe.Namespace(), "FormSpec."), fe.Tag()))
	}
	return fmt.Errorf("formspec: %s: %s", source, strings.Join(parts, "; "))
}

func cloneForm(form model.FormSpec) model.FormSpec {
	out := form
	out.Fields = make([]model.FieldSpec, len(form.Fields))
	for i, field := range form.Fields {
		cloned := field
		cloned.Options = append([]model.Option(nil), field.Options...)
		out.Fields[i] = cloned
	}
	return out
}

func isDefinitionFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
