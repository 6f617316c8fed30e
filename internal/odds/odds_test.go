package odds

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/SpinVault_Go/internal/domain"
)

func prize(id string, remaining int, prob float64) domain.Prize {
	return domain.Prize{ID: id, Name: id, RemainingQuantity: remaining, TotalQuantity: remaining, WinProbability: prob, IsActive: true}
}

func TestCalculate(t *testing.T) {
	inactive := prize("off", 5, 0.2)
	inactive.IsActive = false

	tests := []struct {
		name        string
		prizes      []domain.Prize
		wantPrizes  []string
		wantProbs   []float64
		wantNoPrize float64
		wantScaled  bool
	}{
		{
			name:        "no prizes is all no-prize",
			wantNoPrize: 1,
		},
		{
			name:        "residual goes to no-prize",
			prizes:      []domain.Prize{prize("a", 3, 0.1), prize("b", 1, 0.3)},
			wantPrizes:  []string{"a", "b"},
			wantProbs:   []float64{0.1, 0.3},
			wantNoPrize: 0.6,
		},
		{
			name:        "depleted and inactive mass shifts to no-prize",
			prizes:      []domain.Prize{prize("a", 0, 0.5), inactive, prize("c", 2, 0.25)},
			wantPrizes:  []string{"c"},
			wantProbs:   []float64{0.25},
			wantNoPrize: 0.75,
		},
		{
			name:        "over one scales proportionally",
			prizes:      []domain.Prize{prize("a", 1, 1.0), prize("b", 1, 1.0)},
			wantPrizes:  []string{"a", "b"},
			wantProbs:   []float64{0.5, 0.5},
			wantNoPrize: 0,
			wantScaled:  true,
		},
		{
			name:        "single certain prize",
			prizes:      []domain.Prize{prize("a", 1, 1.0)},
			wantPrizes:  []string{"a"},
			wantProbs:   []float64{1},
			wantNoPrize: 0,
		},
		{
			name:        "zero probability prize is left out",
			prizes:      []domain.Prize{prize("a", 1, 0), prize("b", 1, 0.5)},
			wantPrizes:  []string{"b"},
			wantProbs:   []float64{0.5},
			wantNoPrize: 0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := Calculate(tt.prizes)

			require.Len(t, table.Entries, len(tt.wantPrizes)+1)
			for i, id := range tt.wantPrizes {
				assert.Equal(t, id, table.Entries[i].PrizeID)
				assert.Equal(t, domain.OutcomePrize, table.Entries[i].Outcome)
				assert.InDelta(t, tt.wantProbs[i], table.Entries[i].Probability, Tolerance)
			}
			last := table.Entries[len(table.Entries)-1]
			assert.Equal(t, domain.OutcomeNoPrize, last.Outcome)
			assert.Equal(t, 1.0, last.Cumulative)
			assert.InDelta(t, tt.wantNoPrize, table.NoPrizeProbability(), Tolerance)
			assert.InDelta(t, 1.0, table.Sum(), Tolerance)
			assert.Equal(t, tt.wantScaled, table.Scaled)
		})
	}
}

func TestCalculate_AlwaysNormalized(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 1000; i++ {
		n := rng.Intn(8)
		prizes := make([]domain.Prize, n)
		for j := range prizes {
			prizes[j] = prize("p", rng.Intn(3), rng.Float64())
			prizes[j].IsActive = rng.Intn(4) != 0
		}

		table := Calculate(prizes)

		assert.InDelta(t, 1.0, table.Sum(), Tolerance)
		assert.GreaterOrEqual(t, table.NoPrizeProbability(), 0.0)
		prev := 0.0
		for _, e := range table.Entries {
			assert.GreaterOrEqual(t, e.Cumulative, prev)
			prev = e.Cumulative
		}
		assert.Equal(t, 1.0, prev)
	}
}

func TestCalculate_Deterministic(t *testing.T) {
	prizes := []domain.Prize{prize("a", 3, 0.1), prize("b", 1, 0.3)}
	assert.Equal(t, Calculate(prizes), Calculate(prizes))
}

func TestSelect(t *testing.T) {
	table := Calculate([]domain.Prize{prize("a", 1, 0.25), prize("b", 1, 0.25)})

	assert.Equal(t, "a", table.Select(0).PrizeID)
	assert.Equal(t, "a", table.Select(0.2499).PrizeID)
	assert.Equal(t, "b", table.Select(0.25).PrizeID)
	assert.Equal(t, domain.OutcomeNoPrize, table.Select(0.5).Outcome)
	assert.Equal(t, domain.OutcomeNoPrize, table.Select(math.Nextafter(1, 0)).Outcome)
}

func TestSelect_ScaledTableNeverFallsThrough(t *testing.T) {
	table := Calculate([]domain.Prize{prize("a", 1, 0.7), prize("b", 1, 0.7), prize("c", 1, 0.7)})
	assert.Equal(t, "c", table.Select(math.Nextafter(1, 0)).PrizeID)
}

func TestSnapshotRoundTrip(t *testing.T) {
	table := Calculate([]domain.Prize{prize("a", 1, 0.4)})
	raw, err := table.Snapshot()
	require.NoError(t, err)

	restored, err := FromSnapshot(raw)
	require.NoError(t, err)
	assert.Equal(t, table, restored)
}

func BenchmarkCalculate(b *testing.B) {
	prizes := make([]domain.Prize, 20)
	for i := range prizes {
		prizes[i] = prize("p", 10, 0.04)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Calculate(prizes)
	}
}
