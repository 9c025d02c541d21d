// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens SQL connections and manages the schema.

# Drivers

Two database types are supported:

  - sqlite: modernc.org/sqlite (pure Go), the default
  - postgres: github.com/lib/pq

	conn, err := db.Open(ctx, "sqlite", "formbuilder.db")

SQLite connections get a busy timeout, WAL journaling and a single open
connection.

# Migrations

Migrations are embedded SQL files run by goose. Open applies them; Migrate
can be called again safely.

# Tables

	forms        form documents; inputs and sections are JSON text columns
	submissions  append-only fill-ins; data is JSON text

Timestamps are stored as fixed-width UTC strings so that ordering by the
column orders by time on both drivers. There is no foreign key from
submissions to forms: deleting a form keeps its submissions.
*/
package db
