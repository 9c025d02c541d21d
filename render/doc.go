// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package render draws forms as HTML from embedded templates: the builder
// page, the fill page and the home page listing. CollectValues turns a
// posted fill page back into submission data.
package render
