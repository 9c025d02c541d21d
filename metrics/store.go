// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"context"

	"github.com/danielhkuo/formbuilder/models"
	"github.com/danielhkuo/formbuilder/store"
)

type instrumentedStore struct {
	store.Store
}

// InstrumentStore counts successful writes made through s.
func InstrumentStore(s store.Store) store.Store {
	return instrumentedStore{Store: s}
}

func (s instrumentedStore) Create(ctx context.Context, form *models.Form) (*models.Form, error) {
	created, err := s.Store.Create(ctx, form)
	if err == nil {
		RecordFormSaved("create")
	}
	return created, err
}

func (s instrumentedStore) Update(ctx context.Context, id string, form *models.Form) (*models.Form, error) {
	updated, err := s.Store.Update(ctx, id, form)
	if err == nil {
		RecordFormSaved("update")
	}
	return updated, err
}

func (s instrumentedStore) Delete(ctx context.Context, id string) error {
	err := s.Store.Delete(ctx, id)
	if err == nil {
		RecordFormSaved("delete")
	}
	return err
}

func (s instrumentedStore) Submit(ctx context.Context, formID string, data map[string]any) (*models.Submission, error) {
	sub, err := s.Store.Submit(ctx, formID, data)
	if err == nil {
		RecordSubmission()
	}
	return sub, err
}
