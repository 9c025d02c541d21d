// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start at debug level (method, path, client IP) and completion
(status, duration_ms). 5xx completions are logged at error level.

# CORS Middleware

Enable cross-origin requests for a browser front end:

	server := http.Server{
		Handler: middleware.CORS(cfg.CORSOrigin)(mux),
	}

"*" reflects the request's Origin; any other value is sent as is.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusNotFound, "Form not found")

Errors are always written as {"error": message}.

	var form models.Form
	if err := middleware.ParseJSONBody(r, &form); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

Bodies larger than 1 MiB are rejected.
*/
package middleware
