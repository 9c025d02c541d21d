// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/danielhkuo/formbuilder/cliparse"
	"github.com/danielhkuo/formbuilder/db"
	"github.com/danielhkuo/formbuilder/models"
)

// ErrNotFound is returned when a form id does not resolve.
var ErrNotFound = errors.New("form not found")

// PersistenceError wraps a backend failure other than a missing form.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func persistenceError(op string, err error) error {
	return &PersistenceError{Op: op, Err: err}
}

// Store persists forms and their submissions.
//
// Update replaces title, inputs and sections; concurrent updates of the
// same form are last-write-wins.
type Store interface {
	List(ctx context.Context) ([]models.FormSummary, error)
	Get(ctx context.Context, id string) (*models.Form, error)
	Create(ctx context.Context, form *models.Form) (*models.Form, error)
	Update(ctx context.Context, id string, form *models.Form) (*models.Form, error)
	Delete(ctx context.Context, id string) error
	Submit(ctx context.Context, formID string, data map[string]any) (*models.Submission, error)
	ListSubmissions(ctx context.Context, formID string) ([]models.Submission, error)
	Close() error
}

// Database type for the MongoDB backend
const TypeMongo = "mongo"

// Open connects the backend selected by cfg.DatabaseType.
func Open(ctx context.Context, cfg cliparse.Config) (Store, error) {
	switch cfg.DatabaseType {
	case TypeMongo:
		return OpenMongo(ctx, cfg.DatabaseURL, cfg.MongoDatabase)
	case db.TypeSQLite, db.TypePostgres:
		conn, err := db.Open(ctx, cfg.DatabaseType, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return NewSQLStore(conn), nil
	default:
		return nil, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}
}

// now truncates to milliseconds, the precision every backend can hold.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

func cloneData(data map[string]any) map[string]any {
	out := make(map[string]any, len(data))
	for k, v := range data {
		out[k] = v
	}
	return out
}
