// Copyright (c) 2026 DreamWeaver Studio. All rights reserved.

/*
Package uuid generates the identifiers used as primary keys for catalog records.

Version 7 values are time-ordered, which keeps B-tree indexes append-mostly and
gives list queries a natural tie-break when two rows share an updatedat.
*/
package uuid

import "github.com/google/uuid"

// New generates a new UUIDv7 string.
func New() string {
	id, err := uuid.NewV7()

	// entropy failure is an unrecoverable system-level error
	if err != nil {
		panic("uuid: failed to generate UUIDv7: " + err.Error())
	}

	return id.String()
}

// Valid reports whether s parses as a UUID of any version.
func Valid(s string) bool {
	return uuid.Validate(s) == nil
}
