// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package formmodel holds the form definition operations shared by the create
and edit flows.

# Editing

Every operation takes a *models.Form and either applies the change or
returns a *ValidationError and leaves the form untouched:

	input, err := formmodel.AddInput(&form, formmodel.InputSpec{
		Title:   "Name",
		Type:    models.InputText,
		Section: models.DefaultSectionID,
	})

  - AddInput: appends to the end of its section (order = inputs already there)
  - DeleteInput: removes, leaving a gap in the section order
  - AddSection: appends a section (order = section count)
  - RenameSection: replaces the title only

A form holds at most models.MaxInputs inputs.

# Ordering

Display order is derived per section by filtering on Input.Section and
sorting by Input.Order. Reorder implements a drag-end gesture as a pure
function over the full input sequence:

	form.Inputs = formmodel.Reorder(form.Inputs, activeID, overID)

Dropping onto an input of another section moves the dragged input into that
section. After Reorder every section is numbered 0..k-1.

# Documents

Normalize and Validate are applied to whole documents received over the API.
SubmissionErrors and ValidateSubmission check fill-in values against the
required flag and the input type.
*/
package formmodel
