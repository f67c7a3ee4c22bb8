// Copyright (c) 2026 Movielog. All rights reserved.

package dberr_test

import (
	"errors"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kurgu/movielog/internal/platform/apperr"
	"github.com/kurgu/movielog/internal/platform/dberr"
)

/*
TestWrap_Classification verifies the mapping from driver errors to AppErrors.
*/
func TestWrap_Classification(t *testing.T) {
	tests := []struct {
		name     string
		input    error
		wantCode string
	}{
		{"no_rows", pgx.ErrNoRows, "NOT_FOUND"},
		{"unique_violation", &pgconn.PgError{Code: pgerrcode.UniqueViolation}, "CONFLICT"},
		{"fk_violation", &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}, "CONFLICT"},
		{"unknown", errors.New("connection reset"), "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := dberr.Wrap(tt.input, "test_action")
			require.Error(t, wrapped)

			ae := apperr.As(wrapped)
			require.NotNil(t, ae)
			assert.Equal(t, tt.wantCode, ae.Code)
		})
	}
}

/*
TestWrap_Nil verifies that a nil error passes through unchanged.
*/
func TestWrap_Nil(t *testing.T) {
	assert.NoError(t, dberr.Wrap(nil, "noop"))
}

/*
TestWrap_NotFoundSingleton verifies that not-found errors can be matched
with errors.Is against the package sentinel.
*/
func TestWrap_NotFoundSingleton(t *testing.T) {
	wrapped := dberr.Wrap(pgx.ErrNoRows, "get_movie")
	assert.True(t, errors.Is(wrapped, dberr.ErrNotFound))
}
