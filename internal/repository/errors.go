// Package repository implements data access over MySQL using database/sql.
// This file defines sentinel errors reused across repositories so that the
// service layer can distinguish failure scenarios without inspecting SQL
// error strings. ErrForbidden marks an ownership violation, ErrConflict an
// operation blocked by existing dependent state (e.g. inserting operating
// hours that overlap an existing span), and ErrNotFound a missing row.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own. Handlers translate this into HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an insert or update cannot proceed because
// of conflicting state, such as operating hours overlapping an existing
// record. Handlers translate this into HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrNotFound is returned when a requested row does not exist. It wraps
// the common case of sql.ErrNoRows into a storage-agnostic sentinel.
var ErrNotFound = errors.New("not found")
