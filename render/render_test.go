// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package render

import (
	"bytes"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/formbuilder/formmodel"
	"github.com/danielhkuo/formbuilder/models"
)

func surveyForm(t *testing.T) (models.Form, models.Input, models.Input) {
	t.Helper()
	form := formmodel.NewForm("Survey")
	form.ID = "f1"
	demo, err := formmodel.AddSection(&form, "Demographics")
	require.NoError(t, err)
	name, err := formmodel.AddInput(&form, formmodel.InputSpec{Title: "Name", Section: models.DefaultSectionID, Required: true})
	require.NoError(t, err)
	email, err := formmodel.AddInput(&form, formmodel.InputSpec{Title: "Email", Type: models.InputEmail, Section: demo.ID, Placeholder: "you@example.com"})
	require.NoError(t, err)
	return form, name, email
}

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := New()
	require.NoError(t, err)
	return r
}

func TestBuilder(t *testing.T) {
	r := newRenderer(t)
	form, name, email := surveyForm(t)

	var buf bytes.Buffer
	require.NoError(t, r.Builder(&buf, BuilderView{Form: form, Selected: models.DefaultSectionID}))
	html := buf.String()

	assert.Contains(t, html, "(2/20)")
	assert.Contains(t, html, "Default Section")
	assert.Contains(t, html, "Demographics")
	assert.Contains(t, html, `/forms/f1/builder/inputs/`+name.ID+`/delete`)
	assert.Contains(t, html, `placeholder="you@example.com"`)
	assert.Contains(t, html, `/forms/f1/builder/reorder`)
	assert.NotContains(t, html, "No sections")
	assert.Less(t, strings.Index(html, "Default Section</h3>"), strings.Index(html, "Demographics</h3>"))
	assert.Less(t, strings.Index(html, name.ID+"/delete"), strings.Index(html, email.ID+"/delete"))
}

func TestBuilder_NoSections(t *testing.T) {
	r := newRenderer(t)
	form := models.Form{ID: "f1", Title: "Empty"}

	var buf bytes.Buffer
	require.NoError(t, r.Builder(&buf, BuilderView{Form: form}))
	assert.Contains(t, buf.String(), "No sections")
	assert.Contains(t, buf.String(), "(0/20)")
}

func TestBuilder_DisabledAtLimit(t *testing.T) {
	r := newRenderer(t)
	form := formmodel.NewForm("Full")
	for i := 0; i < models.MaxInputs; i++ {
		_, err := formmodel.AddInput(&form, formmodel.InputSpec{Title: "Q", Section: models.DefaultSectionID})
		require.NoError(t, err)
	}

	var buf bytes.Buffer
	require.NoError(t, r.Builder(&buf, BuilderView{Form: form}))
	assert.Contains(t, buf.String(), "(20/20)")
	assert.Contains(t, buf.String(), "<fieldset disabled>")
}

func TestBuilder_EscapesText(t *testing.T) {
	r := newRenderer(t)
	form := formmodel.NewForm("<script>alert(1)</script>")

	var buf bytes.Buffer
	require.NoError(t, r.Builder(&buf, BuilderView{Form: form}))
	assert.NotContains(t, buf.String(), "<script>alert(1)</script>")
}

func TestFill(t *testing.T) {
	r := newRenderer(t)
	form, name, email := surveyForm(t)

	var buf bytes.Buffer
	err := r.Fill(&buf, FillView{
		Form:   form,
		Values: map[string]string{email.ID: "not-an-email"},
		Errors: map[string]string{email.ID: "must be a valid email address", name.ID: "Name is required"},
	})
	require.NoError(t, err)
	html := buf.String()

	assert.Contains(t, html, `name="`+name.ID+`"`)
	assert.Contains(t, html, `type="email"`)
	assert.Contains(t, html, `value="not-an-email"`)
	assert.Contains(t, html, "must be a valid email address")
	assert.Contains(t, html, "Name is required")
	assert.Equal(t, 1, strings.Count(html, " required>"))
}

func TestFill_PasswordNotEchoed(t *testing.T) {
	r := newRenderer(t)
	form := formmodel.NewForm("Login")
	pw, err := formmodel.AddInput(&form, formmodel.InputSpec{Title: "Password", Type: models.InputPassword, Section: models.DefaultSectionID})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Fill(&buf, FillView{Form: form, Values: map[string]string{pw.ID: "hunter2"}}))
	assert.NotContains(t, buf.String(), "hunter2")
}

func TestFill_NoSectionsListsInputs(t *testing.T) {
	r := newRenderer(t)
	form := models.Form{
		ID:     "f1",
		Title:  "Flat",
		Inputs: []models.Input{{ID: "i1", Type: "text", Title: "Loose", Section: "gone"}},
	}

	var buf bytes.Buffer
	require.NoError(t, r.Fill(&buf, FillView{Form: form}))
	assert.Contains(t, buf.String(), `name="i1"`)
}

func TestHome(t *testing.T) {
	r := newRenderer(t)
	form, _, _ := surveyForm(t)
	form.CreatedAt = time.Now().Add(-2 * time.Hour)

	var buf bytes.Buffer
	require.NoError(t, r.Home(&buf, HomeView{Forms: []models.FormSummary{{Form: form, SubmissionCount: 3}}}))
	html := buf.String()
	assert.Contains(t, html, "Survey")
	assert.Contains(t, html, "2 inputs, 3 submissions")
	assert.Contains(t, html, "2 hours ago")

	buf.Reset()
	require.NoError(t, r.Home(&buf, HomeView{}))
	assert.Contains(t, buf.String(), "No forms created yet")
}

func TestCollectValues(t *testing.T) {
	form, name, email := surveyForm(t)

	got := CollectValues(&form, url.Values{
		name.ID:  {"  Ann "},
		email.ID: {""},
		"extra":  {"ignored"},
	})

	assert.Equal(t, map[string]any{name.ID: "Ann"}, got)
}

func TestStringValues(t *testing.T) {
	got := StringValues(map[string]any{"a": "x", "b": 4.5, "c": nil, "d": true})
	assert.Equal(t, map[string]string{"a": "x", "b": "4.5", "d": "true"}, got)
}
