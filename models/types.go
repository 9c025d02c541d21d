// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Input type constants
const (
	InputText     = "text"
	InputEmail    = "email"
	InputPassword = "password"
	InputNumber   = "number"
	InputDate     = "date"
)

// InputTypes lists the supported input types in the order the builder offers them.
var InputTypes = []string{InputText, InputEmail, InputPassword, InputNumber, InputDate}

// Form defaults
const (
	DefaultFormTitle    = "Untitled Form"
	DefaultSectionID    = "default"
	DefaultSectionTitle = "Default Section"
	MaxInputs           = 20
)

// Domain types

type Form struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Inputs    []Input   `json:"inputs"`
	Sections  []Section `json:"sections"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Input struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Placeholder string `json:"placeholder"`
	Section     string `json:"section"`
	Order       int    `json:"order"`
	Required    bool   `json:"required,omitempty"`
}

type Section struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Order int    `json:"order"`
}

// FormSummary is a form as returned by the list endpoint.
// It serialises as a Form with one extra field.
type FormSummary struct {
	Form
	SubmissionCount int `json:"submissionCount"`
}

// input_id -> scalar value (string, number, bool or null)
type Submission struct {
	ID          string         `json:"id"`
	FormID      string         `json:"formId"`
	Data        map[string]any `json:"data"`
	SubmittedAt time.Time      `json:"submittedAt"`
}

// Request types

// UpdateFormRequest is the body of PUT /api/forms/{id}.
// Absent fields keep their stored value.
type UpdateFormRequest struct {
	Title    *string    `json:"title,omitempty"`
	Inputs   *[]Input   `json:"inputs,omitempty"`
	Sections *[]Section `json:"sections,omitempty"`
}

// Response types

type DeleteFormResponse struct {
	Message string `json:"message"`
}

type SubmitFormResponse struct {
	Message    string     `json:"message"`
	Submission Submission `json:"submission"`
}

// Error response

type ErrorResponse struct {
	Error string `json:"error"`
}
