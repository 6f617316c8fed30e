// Package odds turns configured win probabilities and live stock into the
// effective probability table a draw runs against.
package odds

import (
	"encoding/json"

	"github.com/osse101/SpinVault_Go/internal/domain"
)

// Tolerance is the allowed floating point error when checking that a table
// sums to one.
const Tolerance = 1e-9

// Entry is one row of the table. PrizeID is empty for the no-prize bucket.
type Entry struct {
	Outcome     domain.Outcome `json:"outcome"`
	PrizeID     string         `json:"prize_id,omitempty"`
	PrizeName   string         `json:"prize_name,omitempty"`
	Probability float64        `json:"probability"`
	Cumulative  float64        `json:"cumulative"`
}

// Table is an ordered list of outcomes with cumulative bounds. The last
// entry is always no-prize and its cumulative bound is exactly 1.
type Table struct {
	Entries []Entry `json:"entries"`
	// Scaled is true when configured probabilities summed above one
	Scaled bool `json:"scaled"`
}

// Calculate builds the effective odds table for prizes, in the given order.
// Inactive, depleted and zero-probability prizes are left out, so their mass
// falls to no-prize rather than to other prizes. If the remaining configured
// probabilities sum above one they are scaled down proportionally.
func Calculate(prizes []domain.Prize) Table {
	drawable := make([]domain.Prize, 0, len(prizes))
	var sum float64
	for _, p := range prizes {
		if !p.IsDrawable() || p.WinProbability <= 0 {
			continue
		}
		drawable = append(drawable, p)
		sum += p.WinProbability
	}

	scale := 1.0
	if sum > 1 {
		scale = 1 / sum
	}

	t := Table{
		Entries: make([]Entry, 0, len(drawable)+1),
		Scaled:  sum > 1,
	}
	var cumulative float64
	for _, p := range drawable {
		prob := p.WinProbability * scale
		cumulative += prob
		t.Entries = append(t.Entries, Entry{
			Outcome:     domain.OutcomePrize,
			PrizeID:     p.ID,
			PrizeName:   p.Name,
			Probability: prob,
			Cumulative:  cumulative,
		})
	}

	residual := 1 - cumulative
	if t.Scaled || residual < 0 {
		residual = 0
		// Absorb rounding so no sliver of [0,1) lands on no-prize
		if n := len(t.Entries); n > 0 {
			t.Entries[n-1].Cumulative = 1
		}
	}
	t.Entries = append(t.Entries, Entry{
		Outcome:     domain.OutcomeNoPrize,
		Probability: residual,
		Cumulative:  1,
	})
	return t
}

// Sum returns the total probability mass of the table.
func (t Table) Sum() float64 {
	var sum float64
	for _, e := range t.Entries {
		sum += e.Probability
	}
	return sum
}

// Select returns the first entry whose cumulative bound exceeds value.
// value must be in [0,1).
func (t Table) Select(value float64) Entry {
	for _, e := range t.Entries {
		if value < e.Cumulative {
			return e
		}
	}
	return t.Entries[len(t.Entries)-1]
}

// NoPrizeProbability is the mass of the no-prize bucket.
func (t Table) NoPrizeProbability() float64 {
	return t.Entries[len(t.Entries)-1].Probability
}

// WithoutPrizes returns a table with only the no-prize bucket.
func WithoutPrizes() Table {
	return Calculate(nil)
}

// Snapshot serializes the table for the spin record.
func (t Table) Snapshot() (json.RawMessage, error) {
	return json.Marshal(t)
}

// FromSnapshot restores a table written by Snapshot.
func FromSnapshot(raw json.RawMessage) (Table, error) {
	var t Table
	err := json.Unmarshal(raw, &t)
	return t, err
}
