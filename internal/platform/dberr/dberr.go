// Copyright (c) 2026 DreamWeaver Studio. All rights reserved.

// Package dberr translates low-level database errors into [apperr.AppError]
// values the HTTP layer knows how to render.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/platform/apperr"
)

// SQLSTATE codes inspected by [Wrap].
const (
	codeUniqueViolation = "23505"
	codeCheckViolation  = "23514"
)

// ErrNotFound is a standard error returned when a queried row doesn't exist.
var ErrNotFound = apperr.NotFound("Resource")

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
//
// # Mapping
//   - pgx.ErrNoRows: 404 NOT_FOUND
//   - 23505 unique_violation: 409 CONFLICT naming the constraint
//   - 23514 check_violation: 400 VALIDATION_ERROR
//   - anything else: 500 with the action recorded in the cause
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	if apperr.IsAppError(err) {
		return err
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	var pgError *pgconn.PgError
	if errors.As(err, &pgError) {
		switch pgError.Code {
		case codeUniqueViolation:
			conflict := apperr.Conflict("A record with this key already exists")
			conflict.Cause = fmt.Errorf("%s: %s: %w", action, pgError.ConstraintName, err)
			return conflict
		case codeCheckViolation:
			invalid := apperr.ValidationError("Value rejected by the database")
			invalid.Cause = fmt.Errorf("%s: %s: %w", action, pgError.ConstraintName, err)
			return invalid
		}
	}

	return apperr.Internal(fmt.Errorf("%s: %w", action, err))
}
