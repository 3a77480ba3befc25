// Package repository provides the durable storage layer: string-keyed JSON
// documents in MySQL and expiring session records in Redis, plus in-memory
// fallbacks used in tests and when the backing service is not configured.
// Sentinel errors let higher layers distinguish "absent" from "broken"
// without inspecting driver-specific failures.
package repository

import "errors"

// ErrNotFound is returned when a document or session record does not exist.
// Callers treat it as "fall back to defaults", never as a failure to surface.
var ErrNotFound = errors.New("not found")
