// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package builder

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/danielhkuo/formbuilder/formmodel"
	"github.com/danielhkuo/formbuilder/models"
	"github.com/danielhkuo/formbuilder/store"
)

// Controller holds one form being edited along with the builder's local
// state. Edits stay in memory until Save.
type Controller struct {
	store    store.Store
	form     models.Form
	selected string
	dirty    bool
}

// New starts an unsaved form with the default section selected.
func New(s store.Store) *Controller {
	return &Controller{
		store:    s,
		form:     formmodel.NewForm(models.DefaultFormTitle),
		selected: models.DefaultSectionID,
	}
}

// Load fetches a stored form for editing. The input sequence is rewritten
// to display order and the first section is selected.
func Load(ctx context.Context, s store.Store, id string) (*Controller, error) {
	form, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	c := &Controller{store: s, form: *form}
	formmodel.Canonicalize(&c.form)
	if sections := formmodel.OrderedSections(&c.form); len(sections) > 0 {
		c.selected = sections[0].ID
	}
	return c, nil
}

// Form returns a copy of the form in its current state.
func (c *Controller) Form() models.Form {
	f := c.form
	f.Inputs = slices.Clone(c.form.Inputs)
	f.Sections = slices.Clone(c.form.Sections)
	return f
}

// Selected returns the id of the section new inputs go into.
func (c *Controller) Selected() string {
	return c.selected
}

// Dirty reports whether there are edits that have not been saved.
func (c *Controller) Dirty() bool {
	return c.dirty
}

func (c *Controller) SetTitle(title string) {
	title = strings.TrimSpace(title)
	if title == "" {
		title = models.DefaultFormTitle
	}
	if title != c.form.Title {
		c.form.Title = title
		c.dirty = true
	}
}

func (c *Controller) SelectSection(sectionID string) error {
	if _, ok := formmodel.FindSection(&c.form, sectionID); !ok {
		return &formmodel.ValidationError{Field: "section", Message: fmt.Sprintf("section %q does not exist", sectionID)}
	}
	c.selected = sectionID
	return nil
}

// AddInput adds an input to the selected section, or to spec.Section when
// one is given.
func (c *Controller) AddInput(spec formmodel.InputSpec) (models.Input, error) {
	if spec.Section == "" {
		spec.Section = c.selected
	}
	input, err := formmodel.AddInput(&c.form, spec)
	if err != nil {
		return models.Input{}, err
	}
	c.dirty = true
	return input, nil
}

func (c *Controller) DeleteInput(inputID string) bool {
	if !formmodel.DeleteInput(&c.form, inputID) {
		return false
	}
	c.dirty = true
	return true
}

// AddSection appends a section and selects it.
func (c *Controller) AddSection(title string) (models.Section, error) {
	section, err := formmodel.AddSection(&c.form, title)
	if err != nil {
		return models.Section{}, err
	}
	c.selected = section.ID
	c.dirty = true
	return section, nil
}

func (c *Controller) RenameSection(sectionID, title string) error {
	if err := formmodel.RenameSection(&c.form, sectionID, title); err != nil {
		return err
	}
	c.dirty = true
	return nil
}

// Reorder applies a drop of activeID onto overID.
func (c *Controller) Reorder(activeID, overID string) {
	next := formmodel.Reorder(c.form.Inputs, activeID, overID)
	if slices.Equal(next, c.form.Inputs) {
		return
	}
	c.form.Inputs = next
	c.dirty = true
}

// Save validates the form and writes it to the store, creating it on the
// first save. The controller then holds the stored copy.
func (c *Controller) Save(ctx context.Context) (*models.Form, error) {
	form := c.Form()
	formmodel.Normalize(&form)
	if err := formmodel.Validate(&form); err != nil {
		return nil, err
	}

	var (
		saved *models.Form
		err   error
	)
	if form.ID == "" {
		saved, err = c.store.Create(ctx, &form)
	} else {
		saved, err = c.store.Update(ctx, form.ID, &form)
	}
	if err != nil {
		return nil, err
	}

	c.form = *saved
	formmodel.Canonicalize(&c.form)
	if _, ok := formmodel.FindSection(&c.form, c.selected); !ok {
		c.selected = ""
		if sections := formmodel.OrderedSections(&c.form); len(sections) > 0 {
			c.selected = sections[0].ID
		}
	}
	c.dirty = false

	out := c.Form()
	return &out, nil
}
