// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 5000)
  - DatabaseType: sqlite, postgres or mongo (default: sqlite)
  - DatabaseURL: SQLite path, PostgreSQL DSN or MongoDB URI
  - MongoDatabase: MongoDB database name (default: formbuilder)
  - CORSOrigin: Access-Control-Allow-Origin value (default: *)
  - LogLevel: slog level name (default: info)

# CLI Flags

	-p, --port            Server port
	-d, --database-url    Database URL
	-t, --database-type   sqlite, postgres or mongo
	--mongo-database      MongoDB database name
	--cors-origin         Allowed CORS origin
	--env-file            .env file to load (default: .env)
	--log-level           debug, info, warn or error

# Environment Variables

Flags fall back to environment variables, after the .env file is loaded:

	PORT              → -p
	DATABASE_URL      → -d (sqlite, postgres)
	MONGODB_URI       → -d (mongo)
	DATABASE_TYPE     → -t
	MONGODB_DATABASE  → --mongo-database
	CORS_ORIGIN       → --cors-origin
	LOG_LEVEL         → --log-level

CLI flags take precedence over environment variables, and variables already
set in the environment take precedence over the .env file.

# Validation

ParseFlags returns an error when:

  - postgres is selected without a database URL
  - the database type or log level is unknown
  - the port is not a number in 1-65535
  - an --env-file given explicitly cannot be read
*/
package cliparse
