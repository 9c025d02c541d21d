// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/formbuilder/models"
	"github.com/danielhkuo/formbuilder/store"
	"github.com/danielhkuo/formbuilder/testutil"
)

func TestCreateForm(t *testing.T) {
	s := testutil.SetupTestStore(t)
	handler := NewFormHandler(s)

	t.Run("defaults", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/api/forms", map[string]any{}, nil)
		w := httptest.NewRecorder()
		handler.CreateForm(w, req)

		testutil.AssertStatus(t, w, http.StatusCreated)
		var form models.Form
		testutil.AssertJSON(t, w, &form)
		assert.NotEmpty(t, form.ID)
		assert.Equal(t, models.DefaultFormTitle, form.Title)
		require.Len(t, form.Sections, 1)
		assert.Equal(t, models.DefaultSectionID, form.Sections[0].ID)
		assert.NotNil(t, form.Inputs)
	})

	t.Run("input section defaults", func(t *testing.T) {
		body := map[string]any{
			"title":  "Contact",
			"inputs": []map[string]any{{"id": "i1", "type": "email", "title": "Email", "order": 0}},
		}
		w := httptest.NewRecorder()
		handler.CreateForm(w, testutil.MakeRequest("POST", "/api/forms", body, nil))

		testutil.AssertStatus(t, w, http.StatusCreated)
		var form models.Form
		testutil.AssertJSON(t, w, &form)
		require.Len(t, form.Inputs, 1)
		assert.Equal(t, models.DefaultSectionID, form.Inputs[0].Section)
		assert.Equal(t, "", form.Inputs[0].Placeholder)
	})

	t.Run("explicit empty sections", func(t *testing.T) {
		body := map[string]any{"title": "Blank", "sections": []any{}}
		w := httptest.NewRecorder()
		handler.CreateForm(w, testutil.MakeRequest("POST", "/api/forms", body, nil))

		testutil.AssertStatus(t, w, http.StatusCreated)
		var form models.Form
		testutil.AssertJSON(t, w, &form)
		assert.Empty(t, form.Sections)
	})

	invalid := []struct {
		name string
		body map[string]any
	}{
		{"bad type", map[string]any{"inputs": []map[string]any{{"id": "i1", "type": "color", "title": "Fav"}}}},
		{"missing input title", map[string]any{"inputs": []map[string]any{{"id": "i1", "type": "text"}}}},
		{"unknown section", map[string]any{"inputs": []map[string]any{{"id": "i1", "type": "text", "title": "Q", "section": "nope"}}}},
		{"too many inputs", map[string]any{"inputs": manyInputs(models.MaxInputs + 1)}},
	}
	for _, tc := range invalid {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.CreateForm(w, testutil.MakeRequest("POST", "/api/forms", tc.body, nil))

			testutil.AssertStatus(t, w, http.StatusBadRequest)
			var resp models.ErrorResponse
			testutil.AssertJSON(t, w, &resp)
			assert.NotEmpty(t, resp.Error)
		})
	}

	t.Run("invalid JSON", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/forms", strings.NewReader("{nope"))
		w := httptest.NewRecorder()
		handler.CreateForm(w, req)
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})
}

func manyInputs(n int) []map[string]any {
	inputs := make([]map[string]any, n)
	for i := range inputs {
		inputs[i] = map[string]any{"type": "text", "title": "Q", "order": i}
	}
	return inputs
}

func TestGetForm(t *testing.T) {
	s := testutil.SetupTestStore(t)
	handler := NewFormHandler(s)
	survey := testutil.CreateTestForm(t, s)

	req := testutil.MakeRequest("GET", "/api/forms/"+survey.Form.ID, nil, nil)
	req.SetPathValue("id", survey.Form.ID)
	w := httptest.NewRecorder()
	handler.GetForm(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	var form models.Form
	testutil.AssertJSON(t, w, &form)
	assert.Equal(t, survey.Form.ID, form.ID)
	assert.Equal(t, survey.Form.Inputs, form.Inputs)

	req = testutil.MakeRequest("GET", "/api/forms/nonexistent", nil, nil)
	req.SetPathValue("id", "nonexistent")
	w = httptest.NewRecorder()
	handler.GetForm(w, req)

	testutil.AssertStatus(t, w, http.StatusNotFound)
	var resp models.ErrorResponse
	testutil.AssertJSON(t, w, &resp)
	assert.Equal(t, "Form not found", resp.Error)
}

func TestCreateForm_TextRoundTrip(t *testing.T) {
	s := testutil.SetupTestStore(t)
	handler := NewFormHandler(s)

	const (
		title        = "Tom &amp; Jerry <b>quiz</b> x<y>z & co"
		sectionTitle = "Is a <b> ok?"
		inputTitle   = "Pick x<y>z"
		placeholder  = "<script>x()</script> & more"
	)
	body := map[string]any{
		"title":    title,
		"sections": []map[string]any{{"id": "default", "title": sectionTitle, "order": 0}},
		"inputs": []map[string]any{
			{"id": "pick", "type": "text", "title": inputTitle, "placeholder": placeholder, "section": "default", "order": 0},
		},
	}

	w := httptest.NewRecorder()
	handler.CreateForm(w, testutil.MakeRequest("POST", "/api/forms", body, nil))
	testutil.AssertStatus(t, w, http.StatusCreated)
	var created models.Form
	testutil.AssertJSON(t, w, &created)

	req := testutil.MakeRequest("GET", "/api/forms/"+created.ID, nil, nil)
	req.SetPathValue("id", created.ID)
	w = httptest.NewRecorder()
	handler.GetForm(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	var fetched models.Form
	testutil.AssertJSON(t, w, &fetched)
	assert.Equal(t, title, fetched.Title)
	require.Len(t, fetched.Sections, 1)
	assert.Equal(t, sectionTitle, fetched.Sections[0].Title)
	require.Len(t, fetched.Inputs, 1)
	assert.Equal(t, inputTitle, fetched.Inputs[0].Title)
	assert.Equal(t, placeholder, fetched.Inputs[0].Placeholder)

	// Updates keep text as given too
	req = testutil.MakeRequest("PUT", "/api/forms/"+created.ID, map[string]any{"title": "<i>v2</i> &lt;"}, nil)
	req.SetPathValue("id", created.ID)
	w = httptest.NewRecorder()
	handler.UpdateForm(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	var updated models.Form
	testutil.AssertJSON(t, w, &updated)
	assert.Equal(t, "<i>v2</i> &lt;", updated.Title)
	assert.Equal(t, fetched.Inputs, updated.Inputs)
}

func TestListForms(t *testing.T) {
	s := testutil.SetupTestStore(t)
	handler := NewFormHandler(s)

	w := httptest.NewRecorder()
	handler.ListForms(w, testutil.MakeRequest("GET", "/api/forms", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))

	survey := testutil.CreateTestForm(t, s)
	_, err := s.Submit(context.Background(), survey.Form.ID, map[string]any{survey.NameID: "Ann"})
	require.NoError(t, err)

	w = httptest.NewRecorder()
	handler.ListForms(w, testutil.MakeRequest("GET", "/api/forms", nil, nil))
	var forms []models.FormSummary
	testutil.AssertJSON(t, w, &forms)
	require.Len(t, forms, 1)
	assert.Equal(t, "Survey", forms[0].Title)
	assert.Len(t, forms[0].Inputs, 2)
	assert.Equal(t, 1, forms[0].SubmissionCount)
}

func TestUpdateForm_Partial(t *testing.T) {
	s := testutil.SetupTestStore(t)
	handler := NewFormHandler(s)
	survey := testutil.CreateTestForm(t, s)
	id := survey.Form.ID

	req := testutil.MakeRequest("PUT", "/api/forms/"+id, map[string]any{"title": "Survey v2"}, nil)
	req.SetPathValue("id", id)
	w := httptest.NewRecorder()
	handler.UpdateForm(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	var form models.Form
	testutil.AssertJSON(t, w, &form)
	assert.Equal(t, "Survey v2", form.Title)
	assert.Equal(t, survey.Form.Inputs, form.Inputs, "absent inputs are kept")
	assert.Equal(t, survey.Form.Sections, form.Sections, "absent sections are kept")
	assert.False(t, form.UpdatedAt.Before(survey.Form.UpdatedAt))

	// Replace inputs only
	req = testutil.MakeRequest("PUT", "/api/forms/"+id, map[string]any{"inputs": []any{}}, nil)
	req.SetPathValue("id", id)
	w = httptest.NewRecorder()
	handler.UpdateForm(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	form = models.Form{}
	testutil.AssertJSON(t, w, &form)
	assert.Equal(t, "Survey v2", form.Title)
	assert.Empty(t, form.Inputs)
	assert.Len(t, form.Sections, 2)
}

func TestUpdateForm_Errors(t *testing.T) {
	s := testutil.SetupTestStore(t)
	handler := NewFormHandler(s)
	survey := testutil.CreateTestForm(t, s)

	tests := []struct {
		name   string
		id     string
		body   any
		status int
	}{
		{"unknown id", "nonexistent", map[string]any{"title": "x"}, http.StatusNotFound},
		{"dangling section", survey.Form.ID, map[string]any{"sections": []any{}}, http.StatusBadRequest},
		{"bad input type", survey.Form.ID, map[string]any{"inputs": []map[string]any{{"id": "i", "type": "file", "title": "Upload", "section": "default"}}}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("PUT", "/api/forms/"+tt.id, tt.body, nil)
			req.SetPathValue("id", tt.id)
			w := httptest.NewRecorder()
			handler.UpdateForm(w, req)
			testutil.AssertStatus(t, w, tt.status)
		})
	}

	// Rejected updates leave the stored form alone
	stored, err := s.Get(context.Background(), survey.Form.ID)
	require.NoError(t, err)
	assert.Equal(t, survey.Form.Inputs, stored.Inputs)
}

func TestDeleteForm(t *testing.T) {
	s := testutil.SetupTestStore(t)
	handler := NewFormHandler(s)
	survey := testutil.CreateTestForm(t, s)

	req := testutil.MakeRequest("DELETE", "/api/forms/"+survey.Form.ID, nil, nil)
	req.SetPathValue("id", survey.Form.ID)
	w := httptest.NewRecorder()
	handler.DeleteForm(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	var resp models.DeleteFormResponse
	testutil.AssertJSON(t, w, &resp)
	assert.Equal(t, "Form deleted successfully", resp.Message)

	w = httptest.NewRecorder()
	handler.DeleteForm(w, req)
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestSubmitForm(t *testing.T) {
	s := testutil.SetupTestStore(t)
	handler := NewFormHandler(s)
	survey := testutil.CreateTestForm(t, s)

	submit := func(id string, body any) *httptest.ResponseRecorder {
		req := testutil.MakeRequest("POST", "/api/forms/"+id+"/submit", body, nil)
		req.SetPathValue("id", id)
		w := httptest.NewRecorder()
		handler.SubmitForm(w, req)
		return w
	}

	t.Run("accepted", func(t *testing.T) {
		data := map[string]any{survey.NameID: "Ann", survey.EmailID: "a@b.com"}
		w := submit(survey.Form.ID, data)

		testutil.AssertStatus(t, w, http.StatusCreated)
		var resp models.SubmitFormResponse
		testutil.AssertJSON(t, w, &resp)
		assert.Equal(t, "Form submitted successfully", resp.Message)
		assert.Equal(t, survey.Form.ID, resp.Submission.FormID)
		assert.Equal(t, data, resp.Submission.Data)
	})

	rejected := []struct {
		name string
		body map[string]any
	}{
		{"missing required", map[string]any{survey.EmailID: "a@b.com"}},
		{"blank required", map[string]any{survey.NameID: "  "}},
		{"bad email", map[string]any{survey.NameID: "Ann", survey.EmailID: "not-an-email"}},
		{"non-scalar", map[string]any{survey.NameID: []string{"Ann", "Bob"}}},
		{"unknown key", map[string]any{survey.NameID: "Ann", "favourite": "blue"}},
	}
	for _, tc := range rejected {
		t.Run(tc.name, func(t *testing.T) {
			w := submit(survey.Form.ID, tc.body)
			testutil.AssertStatus(t, w, http.StatusBadRequest)
			var resp models.ErrorResponse
			testutil.AssertJSON(t, w, &resp)
			assert.NotEmpty(t, resp.Error)
		})
	}

	t.Run("unknown form", func(t *testing.T) {
		w := submit("nonexistent", map[string]any{})
		testutil.AssertStatus(t, w, http.StatusNotFound)
	})

	subs, err := s.ListSubmissions(context.Background(), survey.Form.ID)
	require.NoError(t, err)
	assert.Len(t, subs, 1, "only the accepted submission is stored")
}

func TestListSubmissions(t *testing.T) {
	s := testutil.SetupTestStore(t)
	handler := NewFormHandler(s)
	survey := testutil.CreateTestForm(t, s)
	_, err := s.Submit(context.Background(), survey.Form.ID, map[string]any{survey.NameID: "Ann"})
	require.NoError(t, err)

	req := testutil.MakeRequest("GET", "/api/forms/"+survey.Form.ID+"/submissions", nil, nil)
	req.SetPathValue("id", survey.Form.ID)
	w := httptest.NewRecorder()
	handler.ListSubmissions(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	var subs []models.Submission
	testutil.AssertJSON(t, w, &subs)
	require.Len(t, subs, 1)
	assert.Equal(t, "Ann", subs[0].Data[survey.NameID])
}

// failingStore returns err from every call.
type failingStore struct {
	store.Store
	err error
}

func (f failingStore) List(context.Context) ([]models.FormSummary, error) { return nil, f.err }
func (f failingStore) Get(context.Context, string) (*models.Form, error)  { return nil, f.err }
func (f failingStore) Delete(context.Context, string) error               { return f.err }

func TestFormHandler_PersistenceErrorIs500(t *testing.T) {
	handler := NewFormHandler(failingStore{err: errors.New("disk on fire")})

	w := httptest.NewRecorder()
	handler.ListForms(w, testutil.MakeRequest("GET", "/api/forms", nil, nil))
	testutil.AssertStatus(t, w, http.StatusInternalServerError)
	var resp models.ErrorResponse
	testutil.AssertJSON(t, w, &resp)
	assert.Equal(t, "Error fetching forms", resp.Error)

	req := testutil.MakeRequest("DELETE", "/api/forms/x", nil, nil)
	req.SetPathValue("id", "x")
	w = httptest.NewRecorder()
	handler.DeleteForm(w, req)
	testutil.AssertStatus(t, w, http.StatusInternalServerError)
}
