// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the form builder.

# Route Registration

NewRouter returns the whole HTTP surface, already wrapped with CORS and
Prometheus instrumentation:

	handler, err := router.NewRouter(s, cfg)

# Endpoints

Health and metrics:

	GET /health
	GET /metrics

JSON API:

	GET    /api/forms                  - List forms
	POST   /api/forms                  - Create form
	GET    /api/forms/{id}             - Get form
	PUT    /api/forms/{id}             - Update form (partial)
	DELETE /api/forms/{id}             - Delete form
	POST   /api/forms/{id}/submit      - Submit data
	GET    /api/forms/{id}/submissions - List submissions

Pages:

	GET  /                   - Form list
	POST /forms              - New form, redirects to its builder
	POST /forms/{id}/delete  - Delete form
	GET  /forms/{id}         - Fill form
	POST /forms/{id}         - Submit fill form
	GET  /forms/{id}/builder - Builder (plus the builder actions under it)

All API and page routes are wrapped with middleware.WithLogging.
*/
package router
