// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package formmodel

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/danielhkuo/formbuilder/models"
)

var validate = validator.New()

// typeRules maps input types to the validator tag a non-empty string value
// must satisfy. Numbers are checked with isFloat.
var typeRules = map[string]string{
	models.InputEmail: "email",
	models.InputDate:  "datetime=2006-01-02",
}

// Normalize fills defaults on a document received from a client. User text
// is stored as given; pages escape it on output.
func Normalize(f *models.Form) {
	if strings.TrimSpace(f.Title) == "" {
		f.Title = models.DefaultFormTitle
	}
	if f.Inputs == nil {
		f.Inputs = []models.Input{}
	}
	if f.Sections == nil {
		f.Sections = []models.Section{}
	}

	for i := range f.Sections {
		s := &f.Sections[i]
		if s.ID == "" {
			s.ID = uuid.NewString()
		}
	}
	for i := range f.Inputs {
		in := &f.Inputs[i]
		if in.ID == "" {
			in.ID = uuid.NewString()
		}
		if in.Section == "" {
			in.Section = models.DefaultSectionID
		}
	}
}

// Validate checks a whole document before it is created or updated.
func Validate(f *models.Form) error {
	if strings.TrimSpace(f.Title) == "" {
		return newValidationError("title", "title is required")
	}
	if len(f.Inputs) > models.MaxInputs {
		return newValidationError("inputs", "Maximum %d inputs allowed", models.MaxInputs)
	}

	sections := make(map[string]bool, len(f.Sections))
	for _, s := range f.Sections {
		if s.ID == "" {
			return newValidationError("sections", "section id is required")
		}
		if sections[s.ID] {
			return newValidationError("sections", "duplicate section id %q", s.ID)
		}
		if strings.TrimSpace(s.Title) == "" {
			return newValidationError("sections", "section %q needs a title", s.ID)
		}
		sections[s.ID] = true
	}

	seen := make(map[string]bool, len(f.Inputs))
	for _, in := range f.Inputs {
		if in.ID == "" {
			return newValidationError("inputs", "input id is required")
		}
		if seen[in.ID] {
			return newValidationError("inputs", "duplicate input id %q", in.ID)
		}
		seen[in.ID] = true
		if strings.TrimSpace(in.Title) == "" {
			return newValidationError("inputs", "input %q needs a title", in.ID)
		}
		if !IsInputType(in.Type) {
			return newValidationError("inputs", "input %q has unsupported type %q", in.ID, in.Type)
		}
		if !sections[in.Section] {
			return newValidationError("inputs", "input %q references unknown section %q", in.ID, in.Section)
		}
	}
	return nil
}

// SubmissionErrors checks posted values against the form and returns a
// message per offending key. Keys that are not input ids are reported too.
func SubmissionErrors(f *models.Form, data map[string]any) map[string]string {
	errs := make(map[string]string)
	known := make(map[string]bool, len(f.Inputs))

	for _, in := range f.Inputs {
		known[in.ID] = true
		v, present := data[in.ID]
		if present && !isScalar(v) {
			errs[in.ID] = "must be a single value"
			continue
		}
		s := scalarString(v)
		if s == "" {
			if in.Required {
				errs[in.ID] = in.Title + " is required"
			}
			continue
		}
		if msg := checkType(in, v, s); msg != "" {
			errs[in.ID] = msg
		}
	}

	for key := range data {
		if !known[key] {
			errs[key] = "unknown field"
		}
	}
	return errs
}

// ValidateSubmission returns the first problem SubmissionErrors finds, in
// form input order, as a *ValidationError.
func ValidateSubmission(f *models.Form, data map[string]any) error {
	errs := SubmissionErrors(f, data)
	if len(errs) == 0 {
		return nil
	}
	for _, in := range f.Inputs {
		if msg, ok := errs[in.ID]; ok {
			return newValidationError(in.ID, "%s", msg)
		}
	}
	keys := make([]string, 0, len(errs))
	for k := range errs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return newValidationError(keys[0], "%s", errs[keys[0]])
}

func checkType(in models.Input, v any, s string) string {
	if in.Type == models.InputNumber {
		switch v.(type) {
		case float64, float32, int, int64, json.Number:
			return ""
		case bool:
			return "must be a number"
		}
		if !isFloat(s) {
			return "must be a number"
		}
		return ""
	}
	rule, ok := typeRules[in.Type]
	if !ok {
		return ""
	}
	if err := validate.Var(s, rule); err != nil {
		switch in.Type {
		case models.InputEmail:
			return "must be a valid email address"
		case models.InputDate:
			return "must be a date (YYYY-MM-DD)"
		}
	}
	return ""
}

// isFloat accepts signs, exponents and leading dots. NaN and infinities are
// rejected.
func isFloat(s string) bool {
	f, err := strconv.ParseFloat(s, 64)
	return err == nil && !math.IsNaN(f) && !math.IsInf(f, 0)
}

func isScalar(v any) bool {
	switch v.(type) {
	case nil, string, bool, float64, float32, int, int64, json.Number:
		return true
	}
	return false
}

func scalarString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	default:
		return fmt.Sprint(t)
	}
}
