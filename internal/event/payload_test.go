package event

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/SpinVault_Go/internal/domain"
)

func TestNewSpinCommittedEvent(t *testing.T) {
	prizeID := "prize-1"
	rec := domain.SpinRecord{
		ID:           "spin-1",
		PlayerID:     "player-1",
		CampaignID:   "campaign-1",
		Outcome:      domain.OutcomePrize,
		PrizeID:      &prizeID,
		TokensSpent:  5,
		BalanceAfter: 7,
		Attempts:     2,
		CreatedAt:    time.Unix(1700000000, 0),
	}

	evt := NewSpinCommittedEvent(rec)
	assert.Equal(t, SpinCommitted, evt.Type)
	assert.Equal(t, EventSchemaVersion, evt.Version)
	assert.Equal(t, "campaign-1", evt.GetMetadataValue(MetadataKeyCampaignID))

	payload, err := DecodePayload[SpinCommittedPayloadV1](evt.Payload)
	require.NoError(t, err)
	assert.Equal(t, "prize-1", payload.PrizeID)
	assert.Equal(t, int64(7), payload.NewBalance)
	assert.Equal(t, int64(1700000000), payload.Timestamp)
}

func TestDecodePayload_FromMap(t *testing.T) {
	raw := map[string]interface{}{"player_id": "p", "amount": 5, "new_balance": 12}
	payload, err := DecodePayload[TokensCreditedPayloadV1](raw)
	require.NoError(t, err)
	assert.Equal(t, "p", payload.PlayerID)
	assert.Equal(t, int64(5), payload.Amount)
	assert.Equal(t, int64(12), payload.NewBalance)
}
