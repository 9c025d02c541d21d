// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/formbuilder/formmodel"
	"github.com/danielhkuo/formbuilder/middleware"
	"github.com/danielhkuo/formbuilder/models"
	"github.com/danielhkuo/formbuilder/store"
)

type FormHandler struct {
	store store.Store
}

func NewFormHandler(s store.Store) *FormHandler {
	return &FormHandler{store: s}
}

// ListForms handles GET /api/forms
func (h *FormHandler) ListForms(w http.ResponseWriter, r *http.Request) {
	forms, err := h.store.List(r.Context())
	if err != nil {
		writeStoreError(w, err, "Error fetching forms")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, forms)
}

// GetForm handles GET /api/forms/{id}
func (h *FormHandler) GetForm(w http.ResponseWriter, r *http.Request) {
	form, err := h.store.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeStoreError(w, err, "Error fetching form")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, form)
}

// CreateForm handles POST /api/forms
func (h *FormHandler) CreateForm(w http.ResponseWriter, r *http.Request) {
	var form models.Form
	if err := middleware.ParseJSONBody(r, &form); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// A body without sections gets the default one
	if form.Sections == nil {
		form.Sections = formmodel.NewForm("").Sections
	}
	formmodel.Normalize(&form)
	if err := formmodel.Validate(&form); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.store.Create(r.Context(), &form)
	if err != nil {
		writeStoreError(w, err, "Error creating form")
		return
	}

	slog.Info("form created", "form_id", created.ID, "inputs", len(created.Inputs))
	middleware.JSONResponse(w, http.StatusCreated, created)
}

// UpdateForm handles PUT /api/forms/{id}. Fields absent from the body keep
// their stored value.
func (h *FormHandler) UpdateForm(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req models.UpdateFormRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	form, err := h.store.Get(r.Context(), id)
	if err != nil {
		writeStoreError(w, err, "Error updating form")
		return
	}

	if req.Title != nil {
		form.Title = *req.Title
	}
	if req.Inputs != nil {
		form.Inputs = *req.Inputs
	}
	if req.Sections != nil {
		form.Sections = *req.Sections
	}
	formmodel.Normalize(form)
	if err := formmodel.Validate(form); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.store.Update(r.Context(), id, form)
	if err != nil {
		writeStoreError(w, err, "Error updating form")
		return
	}

	slog.Info("form updated", "form_id", id)
	middleware.JSONResponse(w, http.StatusOK, updated)
}

// DeleteForm handles DELETE /api/forms/{id}
func (h *FormHandler) DeleteForm(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.store.Delete(r.Context(), id); err != nil {
		writeStoreError(w, err, "Error deleting form")
		return
	}

	slog.Info("form deleted", "form_id", id)
	middleware.JSONResponse(w, http.StatusOK, models.DeleteFormResponse{
		Message: "Form deleted successfully",
	})
}

// SubmitForm handles POST /api/forms/{id}/submit. The body is the data map
// keyed by input id.
func (h *FormHandler) SubmitForm(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var data map[string]any
	if err := middleware.ParseJSONBody(r, &data); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if data == nil {
		data = map[string]any{}
	}

	form, err := h.store.Get(r.Context(), id)
	if err != nil {
		writeStoreError(w, err, "Error submitting form")
		return
	}
	if err := formmodel.ValidateSubmission(form, data); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	sub, err := h.store.Submit(r.Context(), id, data)
	if err != nil {
		writeStoreError(w, err, "Error submitting form")
		return
	}

	slog.Info("form submitted", "form_id", id, "submission_id", sub.ID)
	middleware.JSONResponse(w, http.StatusCreated, models.SubmitFormResponse{
		Message:    "Form submitted successfully",
		Submission: *sub,
	})
}

// ListSubmissions handles GET /api/forms/{id}/submissions
func (h *FormHandler) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	subs, err := h.store.ListSubmissions(r.Context(), r.PathValue("id"))
	if err != nil {
		writeStoreError(w, err, "Error fetching submissions")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, subs)
}

// writeStoreError maps err onto the JSON error contract. Anything other than
// a validation or not-found error is logged and reported as 500 with msg.
func writeStoreError(w http.ResponseWriter, err error, msg string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Form not found")
	case formmodel.IsValidation(err):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error(msg, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, msg)
	}
}
