package validation

import (
	"time"

	"github.com/goliatone/go-siteforms/pkg/model"
)

// FieldValue pairs a field declaration with the raw value read from its
// input element.
type FieldValue struct {
	Spec  model.FieldSpec
	Value string
}

// FormResult aggregates the per-field outcomes of one validation pass.
type FormResult struct {
	Valid   bool                     `json:"valid"`
	Results []model.ValidationResult `json:"results"`
}

// Failed returns only the failing results, preserving field order.
func (r FormResult) Failed() []model.ValidationResult {
	var out []model.ValidationResult
	for _, res := range r.Results {
		if !res.Valid {
			out = append(out, res)
		}
	}
	return out
}

// Messages returns the failure messages keyed by field id. The map is nil
// when every field passed.
func (r FormResult) Messages() map[string][]string {
	var out map[string][]string
	for _, res := range r.Results {
		if res.Valid {
			continue
		}
		if out == nil {
			out = make(map[string][]string)
		}
		out[res.FieldID] = append(out[res.FieldID], res.Message)
	}
	return out
}

// ValidateField applies the required check and then the kind-specific rule
// to value. Surrounding whitespace is ignored. An empty optional field is
// valid regardless of kind.
func ValidateField(spec model.FieldSpec, value string, now time.Time) model.ValidationResult {
	result := model.ValidationResult{FieldID: spec.ID, Valid: true}
	trimmed := trimValue(value)

	if trimmed == "" {
		if spec.Required {
			result.Valid = false
			result.Message = spec.RequiredMessage()
		}
		return result
	}

	if msg := checkKind(spec, trimmed, now); msg != "" {
		result.Valid = false
		result.Message = msg
	}
	return result
}

func checkKind(spec model.FieldSpec, value string, now time.Time) string {
	switch spec.Kind {
	case model.FieldKindEmail:
		if !IsValidEmail(value) {
			return spec.InvalidMessage()
		}
	case model.FieldKindTel:
		if !IsValidPhone(value) {
			return spec.InvalidMessage()
		}
	case model.FieldKindDate:
		if !IsOnOrAfterDay(value, now) {
			return spec.InvalidMessage()
		}
	}

	if spec.MinLength > 0 && RuneLength(value) < spec.MinLength {
		return spec.MinLengthMessage()
	}
	return ""
}

// ValidateForm evaluates every field independently and ANDs the outcomes.
// Evaluation never short-circuits, so each field gets a result in input
// order.
func ValidateForm(fields []FieldValue, now time.Time) FormResult {
	out := FormResult{
		Valid:   true,
		Results: make([]model.ValidationResult, 0, len(fields)),
	}
	for _, fv := range fields {
		res := ValidateField(fv.Spec, fv.Value, now)
		if !res.Valid {
			out.Valid = false
		}
		out.Results = append(out.Results, res)
	}
	return out
}
