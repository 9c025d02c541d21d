// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the form builder server.

The server stores forms made of typed inputs grouped into ordered sections,
serves a builder and a fill page for each form, and records submissions.

# Starting the Server

With no configuration the server listens on port 5000 and keeps its data in
a SQLite file next to the binary:

	go run .

Postgres or MongoDB instead:

	DATABASE_URL=postgres://... go run . -t postgres
	MONGODB_URI=mongodb://localhost:27017 go run . -t mongo

# Configuration

Flags override environment variables, which override a .env file:

  - PORT (-p): Server port (default: 5000)
  - DATABASE_TYPE (-t): sqlite, postgres or mongo (default: sqlite)
  - DATABASE_URL (-d): SQLite path or Postgres connection string
  - MONGODB_URI, MONGODB_DATABASE: MongoDB connection (--mongo-database)
  - CORS_ORIGIN (--cors-origin): Allowed origin, "*" reflects the caller
  - LOG_LEVEL (--log-level): debug, info, warn or error

# Architecture

  - formmodel: Form operations, input reordering and validation
  - store: Persistence (SQL via sqlx, MongoDB)
  - builder: Editing session over one form with an explicit save
  - render: HTML builder and fill pages
  - handlers: JSON API and page handlers
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - metrics: Prometheus instrumentation
  - client, cmd/formctl: HTTP client and command-line builder
  - db: Connections and migrations
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
