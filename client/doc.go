// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package client is an HTTP client for the form builder's JSON API.
// Client satisfies store.Store, mapping 404 responses to store.ErrNotFound
// and 400 responses to *formmodel.ValidationError.
package client
