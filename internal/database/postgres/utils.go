package postgres

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/SpinVault_Go/internal/domain"
)

// psql builds dynamic audit queries with $n placeholders
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// base is embedded by every repository. It runs statements on the
// transaction stored in ctx by the transaction manager, or on the pool when
// there is none.
type base struct {
	db     *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func newBase(db *pgxpool.Pool) base {
	return base{db: db, getter: trmpgx.DefaultCtxGetter}
}

func (b base) conn(ctx context.Context) trmpgx.Tr {
	return b.getter.DefaultTrOrDB(ctx, b.db)
}

// checkID rejects ids that are not UUIDs before they reach the store.
func checkID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%s %q: %w", ErrContextInvalidID, id, domain.ErrInvalidInput)
	}
	return nil
}

// clampLimit applies the default and maximum page size.
func clampLimit(limit int) uint64 {
	switch {
	case limit <= 0:
		return DefaultListLimit
	case limit > MaxListLimit:
		return MaxListLimit
	default:
		return uint64(limit)
	}
}

// advisoryKey hashes player+action into a positive int64 for pg_advisory_xact_lock
func advisoryKey(playerID, action string) int64 {
	h := sha256.Sum256([]byte(playerID + ":" + action))
	return int64(binary.BigEndian.Uint64(h[:8]) & 0x7FFFFFFFFFFFFFFF)
}

func newID() string {
	return uuid.NewString()
}
