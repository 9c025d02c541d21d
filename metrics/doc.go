// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package metrics exposes Prometheus collectors for the HTTP surface and for
// form writes and submissions. InstrumentHandler wraps the router and
// InstrumentStore wraps the store; Handler serves /metrics.
package metrics
