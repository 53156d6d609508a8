package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is a singleton validator instance
var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
}

// checkAnswerRequest is the body of POST /api/check-answer. A missing
// question is not a validation error here; the evaluator answers it with
// its own fixed response.
type checkAnswerRequest struct {
	Question string  `json:"question" validate:"max=4000"`
	Answer   string  `json:"answer" validate:"max=4000"`
	Context  string  `json:"context" validate:"max=8000"`
	Attempt  Attempt `json:"attempt"`
	Topic    *string `json:"topic" validate:"omitempty,max=64"`
}

// checkAnswerResponse is the body of every check-answer reply.
type checkAnswerResponse struct {
	Feedback string `json:"feedback"`
	Reaction string `json:"reaction,omitempty"`
}

// mcqRequest is the body of POST /api/lessons/{id}/mcq/{stepID}.
type mcqRequest struct {
	OptionID string `json:"optionId" validate:"required,max=64"`
}

type mcqResponse struct {
	Correct     bool   `json:"correct"`
	Explanation string `json:"explanation"`
}

// Attempt is a 1-based attempt counter. It accepts a JSON number or a
// numeric string; fractional values are truncated. Null, an empty string or
// any other value leaves it unset.
type Attempt struct {
	Value int
	Set   bool
}

func (a *Attempt) UnmarshalJSON(b []byte) error {
	*a = Attempt{}

	b = bytes.TrimSpace(b)
	var raw string
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		return nil
	case b[0] == '"':
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
		raw = strings.TrimSpace(raw)
	default:
		raw = string(b)
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	if f > math.MaxInt32 {
		f = math.MaxInt32
	}
	if f < math.MinInt32 {
		f = math.MinInt32
	}
	*a = Attempt{Value: int(f), Set: true}
	return nil
}

// Ptr returns the attempt as an optional int.
func (a Attempt) Ptr() *int {
	if !a.Set {
		return nil
	}
	v := a.Value
	return &v
}

var errEmptyBody = errors.New("empty request body")

// decodeJSON reads a single JSON value from data into v.
func decodeJSON(data []byte, v any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return errEmptyBody
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}

// mistypedField reports a well-formed body with a field of the wrong JSON
// type. The question field is left to the missing question rule.
func mistypedField(err error) (string, bool) {
	var typeErr *json.UnmarshalTypeError
	if !errors.As(err, &typeErr) || typeErr.Field == "" || typeErr.Field == "question" {
		return "", false
	}
	return fmt.Sprintf("%s: must be a %s, got %s", typeErr.Field, typeErr.Type.Kind(), typeErr.Value), true
}

// formatValidationError returns the first validation error in a
// user-friendly format.
func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	for _, e := range validationErrs {
		field := e.Field()
		switch e.Tag() {
		case "required":
			return fmt.Errorf("%s: field is required", field)
		case "max":
			return fmt.Errorf("%s: must not exceed %s characters", field, e.Param())
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, e.Tag())
		}
	}
	return err
}
