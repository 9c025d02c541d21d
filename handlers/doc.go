// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the form builder.

# Handler Types

Each handler is a struct holding a store.Store:

  - FormHandler: the JSON API over forms and submissions
  - PageHandler: server-rendered home, builder and fill pages

	formHandler := handlers.NewFormHandler(s)
	pageHandler := handlers.NewPageHandler(s, renderer)

# JSON API

	GET    /api/forms                  → ListForms (newest update first)
	GET    /api/forms/{id}             → GetForm
	POST   /api/forms                  → CreateForm (201)
	PUT    /api/forms/{id}             → UpdateForm (absent fields are kept)
	DELETE /api/forms/{id}             → DeleteForm
	POST   /api/forms/{id}/submit      → SubmitForm (201)
	GET    /api/forms/{id}/submissions → ListSubmissions (newest first)

Documents are normalised and validated before they reach the store.
Submissions are checked against the form: required values, scalar values,
known input ids and the email, number and date formats.

# Error Responses

All errors return {"error": message}:

  - 400: invalid JSON, rejected document or submission
  - 404: unknown form id
  - 500: store failure (logged, generic message)

# Builder Pages

Builder actions are plain HTML form posts. Each one loads the form into a
builder.Controller, applies a single edit, saves, and redirects back to the
builder with 303. A rejected edit re-renders the builder with status 400.

	POST /forms/{id}/builder/inputs                   → AddInput
	POST /forms/{id}/builder/inputs/{inputID}/delete  → DeleteInput
	POST /forms/{id}/builder/sections                 → AddSection
	POST /forms/{id}/builder/sections/{sectionID}     → RenameSection
	POST /forms/{id}/builder/reorder                  → Reorder (active, over)
	POST /forms/{id}/builder/title                    → SetTitle
*/
package handlers
