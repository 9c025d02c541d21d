// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Domain Types

Documents persisted by the store:

  - Form: title, inputs, sections, createdAt, updatedAt
  - Input: typed field belonging to one section, ordered within it
  - Section: titled group of inputs, ordered within the form
  - Submission: input_id -> scalar value map for one fill-in
  - FormSummary: a Form plus its submission count (list endpoint)

# Request Types

  - Form: body of POST /api/forms (id and timestamps ignored)
  - UpdateFormRequest: partial body of PUT /api/forms/{id}
  - map[string]any: body of POST /api/forms/{id}/submit

# Response Types

  - DeleteFormResponse: message
  - SubmitFormResponse: message, submission
  - ErrorResponse: error

# Constants

Input types:

	InputText     = "text"
	InputEmail    = "email"
	InputPassword = "password"
	InputNumber   = "number"
	InputDate     = "date"

Defaults:

	DefaultFormTitle    = "Untitled Form"
	DefaultSectionID    = "default"
	DefaultSectionTitle = "Default Section"
	MaxInputs           = 20

JSON field names are camelCase to match the browser client.
*/
package models
