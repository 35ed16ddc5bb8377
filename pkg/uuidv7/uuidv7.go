// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package uuidv7 wraps google/uuid to generate time-ordered identifiers.
//
// Movie Lens uses them as request correlation IDs: being time-sortable, log
// lines of consecutive requests sort in arrival order.
package uuidv7

import "github.com/google/uuid"

// New generates a new UUIDv7 string.
//
// When the OS random source fails, it falls back to a random v4 value
// instead of panicking: a correlation ID must never take a request down.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return id.String()
}
