// Package draw selects an outcome from an odds table using a
// cryptographically secure random source.
package draw

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"github.com/osse101/SpinVault_Go/internal/domain"
	"github.com/osse101/SpinVault_Go/internal/odds"
)

// SeedBytes is the number of random bytes consumed per draw
const SeedBytes = 8

const (
	ErrMsgReadRandom  = "failed to read random source: %w"
	ErrMsgInvalidSeed = "invalid seed %q"
)

// ErrEmptyTable is returned for a table with no entries
var ErrEmptyTable = errors.New("odds table is empty")

// Result is one draw. Seed is the hex encoding of the random bytes so the
// outcome can be recomputed from the spin record.
type Result struct {
	Outcome   domain.Outcome
	PrizeID   string
	PrizeName string
	Seed      string
	Value     float64
}

// Engine draws outcomes. It holds no state between draws.
type Engine struct {
	rand io.Reader
}

// NewEngine returns an engine reading from r, or crypto/rand when r is nil.
func NewEngine(r io.Reader) *Engine {
	if r == nil {
		r = rand.Reader
	}
	return &Engine{rand: r}
}

// Draw picks one entry of table.
func (e *Engine) Draw(table odds.Table) (Result, error) {
	if len(table.Entries) == 0 {
		return Result{}, ErrEmptyTable
	}
	var buf [SeedBytes]byte
	if _, err := io.ReadFull(e.rand, buf[:]); err != nil {
		return Result{}, fmt.Errorf(ErrMsgReadRandom, err)
	}
	return resolve(table, buf[:]), nil
}

// Replay recomputes the draw that produced seed.
func Replay(table odds.Table, seed string) (Result, error) {
	if len(table.Entries) == 0 {
		return Result{}, ErrEmptyTable
	}
	raw, err := hex.DecodeString(seed)
	if err != nil || len(raw) != SeedBytes {
		return Result{}, fmt.Errorf(ErrMsgInvalidSeed, seed)
	}
	return resolve(table, raw), nil
}

func resolve(table odds.Table, seed []byte) Result {
	value := Uniform(seed)
	entry := table.Select(value)
	return Result{
		Outcome:   entry.Outcome,
		PrizeID:   entry.PrizeID,
		PrizeName: entry.PrizeName,
		Seed:      hex.EncodeToString(seed),
		Value:     value,
	}
}

// Uniform maps 8 bytes to a float64 in [0,1) using the top 53 bits, which
// a float64 mantissa represents exactly.
func Uniform(seed []byte) float64 {
	return float64(binary.BigEndian.Uint64(seed)>>11) / (1 << 53)
}
