// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store persists form documents and submissions.

# Backends

  - SQLStore: SQLite or PostgreSQL through sqlx; one row per form with
    inputs and sections as JSON text
  - MongoStore: MongoDB "forms" and "submissions" collections

Open picks the backend from the configured database type:

	s, err := store.Open(ctx, cfg)

# Errors

  - ErrNotFound: the form id does not resolve (Get, Update, Delete, Submit)
  - *PersistenceError: any other backend failure, wrapping the cause

The store does not validate documents; callers run formmodel.Validate
first. Ids and timestamps are assigned here.
*/
package store
