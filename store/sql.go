// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/danielhkuo/formbuilder/models"
)

// timeLayout is fixed width so lexical order equals time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLStore implements Store on SQLite or PostgreSQL. Form documents are kept
// in one row with inputs and sections as JSON text.
type SQLStore struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewSQLStore creates a new SQLStore on an open, migrated connection.
func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db, now: now}
}

type formRow struct {
	ID              string `db:"id"`
	Title           string `db:"title"`
	Inputs          string `db:"inputs"`
	Sections        string `db:"sections"`
	CreatedAt       string `db:"created_at"`
	UpdatedAt       string `db:"updated_at"`
	SubmissionCount int    `db:"submission_count"`
}

type submissionRow struct {
	ID          string `db:"id"`
	FormID      string `db:"form_id"`
	Data        string `db:"data"`
	SubmittedAt string `db:"submitted_at"`
}

func (s *SQLStore) List(ctx context.Context) ([]models.FormSummary, error) {
	query := `SELECT f.id, f.title, f.inputs, f.sections, f.created_at, f.updated_at,
		(SELECT COUNT(*) FROM submissions sub WHERE sub.form_id = f.id) AS submission_count
		FROM forms f ORDER BY f.updated_at DESC`

	var rows []formRow
	if err := s.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, persistenceError("listing forms", err)
	}

	summaries := make([]models.FormSummary, 0, len(rows))
	for _, row := range rows {
		form, err := row.toForm()
		if err != nil {
			return nil, persistenceError("decoding form", err)
		}
		summaries = append(summaries, models.FormSummary{Form: *form, SubmissionCount: row.SubmissionCount})
	}
	return summaries, nil
}

func (s *SQLStore) Get(ctx context.Context, id string) (*models.Form, error) {
	query := s.db.Rebind(`SELECT id, title, inputs, sections, created_at, updated_at
		FROM forms WHERE id = ?`)

	var row formRow
	err := s.db.GetContext(ctx, &row, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, persistenceError("querying form", err)
	}

	form, err := row.toForm()
	if err != nil {
		return nil, persistenceError("decoding form", err)
	}
	return form, nil
}

func (s *SQLStore) Create(ctx context.Context, form *models.Form) (*models.Form, error) {
	created := *form
	created.ID = uuid.NewString()
	created.CreatedAt = s.now()
	created.UpdatedAt = created.CreatedAt

	inputs, sections, err := encodeDocument(&created)
	if err != nil {
		return nil, persistenceError("encoding form", err)
	}

	query := s.db.Rebind(`INSERT INTO forms (id, title, inputs, sections, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`)
	_, err = s.db.ExecContext(ctx, query,
		created.ID,
		created.Title,
		inputs,
		sections,
		formatTime(created.CreatedAt),
		formatTime(created.UpdatedAt),
	)
	if err != nil {
		return nil, persistenceError("inserting form", err)
	}
	return &created, nil
}

func (s *SQLStore) Update(ctx context.Context, id string, form *models.Form) (*models.Form, error) {
	inputs, sections, err := encodeDocument(form)
	if err != nil {
		return nil, persistenceError("encoding form", err)
	}

	query := s.db.Rebind(`UPDATE forms SET title = ?, inputs = ?, sections = ?, updated_at = ?
		WHERE id = ?`)
	res, err := s.db.ExecContext(ctx, query, form.Title, inputs, sections, formatTime(s.now()), id)
	if err != nil {
		return nil, persistenceError("updating form", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, persistenceError("updating form", err)
	} else if n == 0 {
		return nil, ErrNotFound
	}

	return s.Get(ctx, id)
}

func (s *SQLStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM forms WHERE id = ?`), id)
	if err != nil {
		return persistenceError("deleting form", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return persistenceError("deleting form", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLStore) Submit(ctx context.Context, formID string, data map[string]any) (*models.Submission, error) {
	var exists int
	err := s.db.GetContext(ctx, &exists, s.db.Rebind(`SELECT 1 FROM forms WHERE id = ?`), formID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, persistenceError("querying form", err)
	}

	sub := models.Submission{
		ID:          uuid.NewString(),
		FormID:      formID,
		Data:        cloneData(data),
		SubmittedAt: s.now(),
	}
	payload, err := json.Marshal(sub.Data)
	if err != nil {
		return nil, persistenceError("encoding submission", err)
	}

	query := s.db.Rebind(`INSERT INTO submissions (id, form_id, data, submitted_at)
		VALUES (?, ?, ?, ?)`)
	if _, err := s.db.ExecContext(ctx, query, sub.ID, sub.FormID, string(payload), formatTime(sub.SubmittedAt)); err != nil {
		return nil, persistenceError("inserting submission", err)
	}
	return &sub, nil
}

func (s *SQLStore) ListSubmissions(ctx context.Context, formID string) ([]models.Submission, error) {
	query := s.db.Rebind(`SELECT id, form_id, data, submitted_at
		FROM submissions WHERE form_id = ? ORDER BY submitted_at DESC`)

	var rows []submissionRow
	if err := s.db.SelectContext(ctx, &rows, query, formID); err != nil {
		return nil, persistenceError("listing submissions", err)
	}

	subs := make([]models.Submission, 0, len(rows))
	for _, row := range rows {
		sub := models.Submission{ID: row.ID, FormID: row.FormID}
		if err := json.Unmarshal([]byte(row.Data), &sub.Data); err != nil {
			return nil, persistenceError("decoding submission", err)
		}
		t, err := time.Parse(timeLayout, row.SubmittedAt)
		if err != nil {
			return nil, persistenceError("decoding submission", err)
		}
		sub.SubmittedAt = t
		subs = append(subs, sub)
	}
	return subs, nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

func (r formRow) toForm() (*models.Form, error) {
	form := models.Form{ID: r.ID, Title: r.Title}
	if err := json.Unmarshal([]byte(r.Inputs), &form.Inputs); err != nil {
		return nil, fmt.Errorf("inputs: %w", err)
	}
	if err := json.Unmarshal([]byte(r.Sections), &form.Sections); err != nil {
		return nil, fmt.Errorf("sections: %w", err)
	}
	if form.Inputs == nil {
		form.Inputs = []models.Input{}
	}
	if form.Sections == nil {
		form.Sections = []models.Section{}
	}

	var err error
	if form.CreatedAt, err = time.Parse(timeLayout, r.CreatedAt); err != nil {
		return nil, fmt.Errorf("created_at: %w", err)
	}
	if form.UpdatedAt, err = time.Parse(timeLayout, r.UpdatedAt); err != nil {
		return nil, fmt.Errorf("updated_at: %w", err)
	}
	return &form, nil
}

func encodeDocument(form *models.Form) (inputs, sections string, err error) {
	in := form.Inputs
	if in == nil {
		in = []models.Input{}
	}
	sec := form.Sections
	if sec == nil {
		sec = []models.Section{}
	}

	b, err := json.Marshal(in)
	if err != nil {
		return "", "", err
	}
	c, err := json.Marshal(sec)
	if err != nil {
		return "", "", err
	}
	return string(b), string(c), nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}
