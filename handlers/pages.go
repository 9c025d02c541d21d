// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/danielhkuo/formbuilder/builder"
	"github.com/danielhkuo/formbuilder/formmodel"
	"github.com/danielhkuo/formbuilder/render"
	"github.com/danielhkuo/formbuilder/store"
)

// PageHandler serves the HTML builder and fill pages. Every builder action
// loads the form, applies one edit through a builder.Controller and saves.
type PageHandler struct {
	store    store.Store
	renderer *render.Renderer
}

func NewPageHandler(s store.Store, renderer *render.Renderer) *PageHandler {
	return &PageHandler{store: s, renderer: renderer}
}

// Home handles GET /
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	forms, err := h.store.List(r.Context())
	if err != nil {
		h.fail(w, err, "Error fetching forms")
		return
	}
	h.html(w, http.StatusOK, func() error {
		return h.renderer.Home(w, render.HomeView{Forms: forms})
	})
}

// CreateForm handles POST /forms
func (h *PageHandler) CreateForm(w http.ResponseWriter, r *http.Request) {
	c := builder.New(h.store)
	form, err := c.Save(r.Context())
	if err != nil {
		h.fail(w, err, "Error creating form")
		return
	}
	http.Redirect(w, r, "/forms/"+form.ID+"/builder", http.StatusSeeOther)
}

// DeleteForm handles POST /forms/{id}/delete
func (h *PageHandler) DeleteForm(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Delete(r.Context(), r.PathValue("id")); err != nil {
		h.fail(w, err, "Error deleting form")
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// FillForm handles GET /forms/{id}
func (h *PageHandler) FillForm(w http.ResponseWriter, r *http.Request) {
	form, err := h.store.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		h.fail(w, err, "Error fetching form")
		return
	}
	h.html(w, http.StatusOK, func() error {
		return h.renderer.Fill(w, render.FillView{
			Form:      *form,
			Submitted: r.URL.Query().Get("submitted") != "",
		})
	})
}

// SubmitForm handles POST /forms/{id}. Invalid values re-render the page
// with the user's input and a message per field.
func (h *PageHandler) SubmitForm(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	form, err := h.store.Get(r.Context(), id)
	if err != nil {
		h.fail(w, err, "Error fetching form")
		return
	}

	data := render.CollectValues(form, r.PostForm)
	if errs := formmodel.SubmissionErrors(form, data); len(errs) > 0 {
		h.html(w, http.StatusBadRequest, func() error {
			return h.renderer.Fill(w, render.FillView{
				Form:   *form,
				Values: render.StringValues(data),
				Errors: errs,
				Error:  "Please fix the highlighted fields.",
			})
		})
		return
	}

	if _, err := h.store.Submit(r.Context(), id, data); err != nil {
		h.fail(w, err, "Error submitting form")
		return
	}
	http.Redirect(w, r, "/forms/"+id+"?submitted=1", http.StatusSeeOther)
}

// Builder handles GET /forms/{id}/builder
func (h *PageHandler) Builder(w http.ResponseWriter, r *http.Request) {
	c, err := builder.Load(r.Context(), h.store, r.PathValue("id"))
	if err != nil {
		h.fail(w, err, "Error fetching form")
		return
	}
	if section := r.URL.Query().Get("section"); section != "" {
		_ = c.SelectSection(section)
	}
	h.renderBuilder(w, http.StatusOK, c, "")
}

// SetTitle handles POST /forms/{id}/builder/title
func (h *PageHandler) SetTitle(w http.ResponseWriter, r *http.Request) {
	h.edit(w, r, func(c *builder.Controller) error {
		c.SetTitle(r.PostFormValue("title"))
		return nil
	})
}

// AddInput handles POST /forms/{id}/builder/inputs
func (h *PageHandler) AddInput(w http.ResponseWriter, r *http.Request) {
	h.edit(w, r, func(c *builder.Controller) error {
		if section := r.PostFormValue("section"); section != "" {
			if err := c.SelectSection(section); err != nil {
				return err
			}
		}
		_, err := c.AddInput(formmodel.InputSpec{
			Title:       r.PostFormValue("title"),
			Type:        r.PostFormValue("type"),
			Placeholder: r.PostFormValue("placeholder"),
			Required:    r.PostFormValue("required") != "",
		})
		return err
	})
}

// DeleteInput handles POST /forms/{id}/builder/inputs/{inputID}/delete
func (h *PageHandler) DeleteInput(w http.ResponseWriter, r *http.Request) {
	h.edit(w, r, func(c *builder.Controller) error {
		c.DeleteInput(r.PathValue("inputID"))
		return nil
	})
}

// AddSection handles POST /forms/{id}/builder/sections
func (h *PageHandler) AddSection(w http.ResponseWriter, r *http.Request) {
	h.edit(w, r, func(c *builder.Controller) error {
		_, err := c.AddSection(r.PostFormValue("title"))
		return err
	})
}

// RenameSection handles POST /forms/{id}/builder/sections/{sectionID}
func (h *PageHandler) RenameSection(w http.ResponseWriter, r *http.Request) {
	h.edit(w, r, func(c *builder.Controller) error {
		sectionID := r.PathValue("sectionID")
		if err := c.RenameSection(sectionID, r.PostFormValue("title")); err != nil {
			return err
		}
		return c.SelectSection(sectionID)
	})
}

// Reorder handles POST /forms/{id}/builder/reorder, the drop of one input
// onto another.
func (h *PageHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	h.edit(w, r, func(c *builder.Controller) error {
		c.Reorder(r.PostFormValue("active"), r.PostFormValue("over"))
		return nil
	})
}

// edit runs one builder action and saves. A rejected edit re-renders the
// builder with the message and status 400; success redirects back to it.
func (h *PageHandler) edit(w http.ResponseWriter, r *http.Request, apply func(*builder.Controller) error) {
	id := r.PathValue("id")
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	c, err := builder.Load(r.Context(), h.store, id)
	if err != nil {
		h.fail(w, err, "Error fetching form")
		return
	}

	if err := apply(c); err != nil {
		if formmodel.IsValidation(err) {
			h.renderBuilder(w, http.StatusBadRequest, c, validationMessage(err))
			return
		}
		h.fail(w, err, "Error updating form")
		return
	}

	if c.Dirty() {
		if _, err := c.Save(r.Context()); err != nil {
			h.fail(w, err, "Error updating form")
			return
		}
	}

	target := "/forms/" + id + "/builder"
	if sel := c.Selected(); sel != "" {
		target += "?section=" + url.QueryEscape(sel)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (h *PageHandler) renderBuilder(w http.ResponseWriter, status int, c *builder.Controller, msg string) {
	h.html(w, status, func() error {
		return h.renderer.Builder(w, render.BuilderView{
			Form:     c.Form(),
			Selected: c.Selected(),
			Error:    msg,
		})
	})
}

func (h *PageHandler) html(w http.ResponseWriter, status int, write func() error) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := write(); err != nil {
		slog.Error("failed to render page", "error", err)
	}
}

func (h *PageHandler) fail(w http.ResponseWriter, err error, msg string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		http.Error(w, "Form not found", http.StatusNotFound)
	case formmodel.IsValidation(err):
		http.Error(w, validationMessage(err), http.StatusBadRequest)
	default:
		slog.Error(msg, "error", err)
		http.Error(w, msg, http.StatusInternalServerError)
	}
}

func validationMessage(err error) string {
	var ve *formmodel.ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	return err.Error()
}
