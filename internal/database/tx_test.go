package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestErrorClassification(t *testing.T) {
	unique := &pgconn.PgError{Code: PgCodeUniqueViolation, ConstraintName: "spin_records_idempotency_unique"}
	check := &pgconn.PgError{Code: PgCodeCheckViolation}
	serialization := &pgconn.PgError{Code: PgCodeSerializationFailure}
	deadlock := &pgconn.PgError{Code: PgCodeDeadlockDetected}

	tests := []struct {
		name      string
		err       error
		unique    bool
		check     bool
		retryable bool
		noRows    bool
	}{
		{"unique violation", unique, true, false, false, false},
		{"wrapped unique violation", fmt.Errorf("insert: %w", unique), true, false, false, false},
		{"check violation", check, false, true, false, false},
		{"serialization failure", serialization, false, false, true, false},
		{"deadlock", fmt.Errorf("lock: %w", deadlock), false, false, true, false},
		{"no rows", fmt.Errorf("get: %w", pgx.ErrNoRows), false, false, false, true},
		{"plain error", errors.New("boom"), false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.unique, IsUniqueViolation(tt.err, ""))
			assert.Equal(t, tt.check, IsCheckViolation(tt.err))
			assert.Equal(t, tt.retryable, IsRetryable(tt.err))
			assert.Equal(t, tt.noRows, IsNoRows(tt.err))
		})
	}
}

func TestIsUniqueViolation_Constraint(t *testing.T) {
	err := &pgconn.PgError{Code: PgCodeUniqueViolation, ConstraintName: "scan_sessions_replay_unique"}
	assert.True(t, IsUniqueViolation(err, "scan_sessions_replay_unique"))
	assert.False(t, IsUniqueViolation(err, "won_prizes_code_unique"))
}
