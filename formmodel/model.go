// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package formmodel

import (
	"slices"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/danielhkuo/formbuilder/models"
)

// InputSpec describes an input to be added to a form.
type InputSpec struct {
	Title       string
	Type        string
	Placeholder string
	Section     string
	Required    bool
}

// NewForm returns an unsaved form with the default section.
func NewForm(title string) models.Form {
	if strings.TrimSpace(title) == "" {
		title = models.DefaultFormTitle
	}
	return models.Form{
		Title:  title,
		Inputs: []models.Input{},
		Sections: []models.Section{
			{ID: models.DefaultSectionID, Title: models.DefaultSectionTitle, Order: 0},
		},
	}
}

// AddInput appends an input to the end of its section.
// The form is left untouched when validation fails.
func AddInput(f *models.Form, spec InputSpec) (models.Input, error) {
	title := strings.TrimSpace(spec.Title)
	if title == "" {
		return models.Input{}, newValidationError("title", "Please provide a title for the input")
	}
	if len(f.Inputs) >= models.MaxInputs {
		return models.Input{}, newValidationError("inputs", "Maximum %d inputs allowed", models.MaxInputs)
	}
	if spec.Section == "" {
		return models.Input{}, newValidationError("section", "Please select a section")
	}
	if _, ok := FindSection(f, spec.Section); !ok {
		return models.Input{}, newValidationError("section", "section %q does not exist", spec.Section)
	}
	inputType := spec.Type
	if inputType == "" {
		inputType = models.InputText
	}
	if !IsInputType(inputType) {
		return models.Input{}, newValidationError("type", "unsupported input type %q", spec.Type)
	}

	input := models.Input{
		ID:          uuid.NewString(),
		Type:        inputType,
		Title:       title,
		Placeholder: spec.Placeholder,
		Section:     spec.Section,
		Order:       countInSection(f.Inputs, spec.Section),
		Required:    spec.Required,
	}
	f.Inputs = append(f.Inputs, input)
	return input, nil
}

// DeleteInput removes an input and reports whether it existed.
// Remaining orders are not renumbered; the next Reorder closes the gap.
func DeleteInput(f *models.Form, inputID string) bool {
	idx := indexOfInput(f.Inputs, inputID)
	if idx == -1 {
		return false
	}
	f.Inputs = slices.Delete(slices.Clone(f.Inputs), idx, idx+1)
	return true
}

// AddSection appends a section after the existing ones.
func AddSection(f *models.Form, title string) (models.Section, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Section{}, newValidationError("title", "Section title cannot be empty")
	}
	section := models.Section{
		ID:    uuid.NewString(),
		Title: title,
		Order: len(f.Sections),
	}
	f.Sections = append(f.Sections, section)
	return section, nil
}

// RenameSection replaces a section title in place. Ordering is unaffected.
func RenameSection(f *models.Form, sectionID, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return newValidationError("title", "Section title cannot be empty")
	}
	for i := range f.Sections {
		if f.Sections[i].ID == sectionID {
			f.Sections[i].Title = title
			return nil
		}
	}
	return newValidationError("section", "section %q does not exist", sectionID)
}

// FindSection looks up a section by id.
func FindSection(f *models.Form, sectionID string) (models.Section, bool) {
	for _, s := range f.Sections {
		if s.ID == sectionID {
			return s, true
		}
	}
	return models.Section{}, false
}

// FindInput looks up an input by id.
func FindInput(f *models.Form, inputID string) (models.Input, bool) {
	if idx := indexOfInput(f.Inputs, inputID); idx != -1 {
		return f.Inputs[idx], true
	}
	return models.Input{}, false
}

// OrderedSections returns the sections sorted by order.
func OrderedSections(f *models.Form) []models.Section {
	sections := slices.Clone(f.Sections)
	sort.SliceStable(sections, func(i, j int) bool {
		return sections[i].Order < sections[j].Order
	})
	return sections
}

// SectionInputs returns the inputs of one section in display order.
func SectionInputs(f *models.Form, sectionID string) []models.Input {
	var inputs []models.Input
	for _, in := range f.Inputs {
		if in.Section == sectionID {
			inputs = append(inputs, in)
		}
	}
	sort.SliceStable(inputs, func(i, j int) bool {
		return inputs[i].Order < inputs[j].Order
	})
	return inputs
}

// Canonicalize rewrites the input sequence so that it matches display order:
// grouped by section order, then by input order. Orders themselves are kept.
// Inputs whose section does not exist go last, in their current sequence.
func Canonicalize(f *models.Form) {
	rank := make(map[string]int, len(f.Sections))
	for i, s := range OrderedSections(f) {
		rank[s.ID] = i
	}
	sectionRank := func(in models.Input) int {
		if r, ok := rank[in.Section]; ok {
			return r
		}
		return len(rank)
	}

	inputs := slices.Clone(f.Inputs)
	sort.SliceStable(inputs, func(i, j int) bool {
		ri, rj := sectionRank(inputs[i]), sectionRank(inputs[j])
		if ri != rj {
			return ri < rj
		}
		if ri == len(rank) {
			return false
		}
		return inputs[i].Order < inputs[j].Order
	})
	f.Inputs = inputs
}

// IsInputType reports whether t is one of the supported input types.
func IsInputType(t string) bool {
	return slices.Contains(models.InputTypes, t)
}

func countInSection(inputs []models.Input, sectionID string) int {
	n := 0
	for _, in := range inputs {
		if in.Section == sectionID {
			n++
		}
	}
	return n
}

func indexOfInput(inputs []models.Input, inputID string) int {
	return slices.IndexFunc(inputs, func(in models.Input) bool {
		return in.ID == inputID
	})
}
