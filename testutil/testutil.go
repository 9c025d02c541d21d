// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/formbuilder/cliparse"
	"github.com/danielhkuo/formbuilder/db"
	"github.com/danielhkuo/formbuilder/formmodel"
	"github.com/danielhkuo/formbuilder/models"
	"github.com/danielhkuo/formbuilder/store"
)

// SetupTestStore creates a fresh SQLite store in a temp directory with the
// full schema. It is closed when the test ends.
func SetupTestStore(t *testing.T) *store.SQLStore {
	t.Helper()

	path := filepath.Join(t.TempDir(), "forms.db")
	conn, err := db.Open(context.Background(), db.TypeSQLite, path)
	require.NoError(t, err, "open test database")

	s := store.NewSQLStore(conn)
	t.Cleanup(func() { s.Close() })
	return s
}

// GetTestConfig returns a standard test configuration
func GetTestConfig(t *testing.T) cliparse.Config {
	return cliparse.Config{
		Port:         5000,
		DatabaseType: db.TypeSQLite,
		DatabaseURL:  filepath.Join(t.TempDir(), "forms.db"),
		CORSOrigin:   "*",
		LogLevel:     "info",
	}
}

// SurveyForm is the form built by CreateTestForm.
type SurveyForm struct {
	Form         *models.Form
	Demographics string
	NameID       string
	EmailID      string
}

// CreateTestForm stores a "Survey" form with a default section holding a
// required text input "Name" and a "Demographics" section holding an email
// input "Email".
func CreateTestForm(t *testing.T, s store.Store) SurveyForm {
	t.Helper()

	form := formmodel.NewForm("Survey")
	demo, err := formmodel.AddSection(&form, "Demographics")
	require.NoError(t, err)
	name, err := formmodel.AddInput(&form, formmodel.InputSpec{
		Title: "Name", Type: models.InputText, Section: models.DefaultSectionID, Required: true,
	})
	require.NoError(t, err)
	email, err := formmodel.AddInput(&form, formmodel.InputSpec{
		Title: "Email", Type: models.InputEmail, Section: demo.ID, Placeholder: "you@example.com",
	})
	require.NoError(t, err)

	created, err := s.Create(context.Background(), &form)
	require.NoError(t, err, "create test form")

	return SurveyForm{Form: created, Demographics: demo.ID, NameID: name.ID, EmailID: email.ID}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
