package postgres_test

import (
	"context"
	"encoding/json"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/SpinVault_Go/internal/database"
	"github.com/osse101/SpinVault_Go/internal/database/postgres"
	"github.com/osse101/SpinVault_Go/internal/domain"
	"github.com/osse101/SpinVault_Go/internal/eventlog"
	"github.com/osse101/SpinVault_Go/internal/testing/pgtest"
)

func TestMain(m *testing.M) {
	code := m.Run()
	pgtest.Terminate()
	os.Exit(code)
}

func TestLedgerRepository_AppendEntry(t *testing.T) {
	pool := pgtest.Pool(t)
	ctx := context.Background()
	repo := postgres.NewLedgerRepository(pool)
	playerID := pgtest.CreatePlayer(t, pool, 10)

	t.Run("credit moves balance with entry", func(t *testing.T) {
		entry := &domain.LedgerEntry{PlayerID: playerID, Amount: 5, Type: domain.EntryTypeEarn, Description: "scan"}
		require.NoError(t, repo.AppendEntry(ctx, entry))
		assert.NotEmpty(t, entry.ID)
		assert.Equal(t, int64(15), entry.BalanceAfter)
	})

	t.Run("debit beyond balance is rejected without an entry", func(t *testing.T) {
		before := pgtest.Count(t, pool, `SELECT COUNT(*) FROM ledger_entries WHERE player_id = $1`, playerID)
		entry := &domain.LedgerEntry{PlayerID: playerID, Amount: -100, Type: domain.EntryTypeSpend}
		err := repo.AppendEntry(ctx, entry)
		assert.ErrorIs(t, err, domain.ErrInsufficientBalance)
		after := pgtest.Count(t, pool, `SELECT COUNT(*) FROM ledger_entries WHERE player_id = $1`, playerID)
		assert.Equal(t, before, after)
	})

	t.Run("unknown player", func(t *testing.T) {
		entry := &domain.LedgerEntry{PlayerID: "00000000-0000-0000-0000-000000000001", Amount: 1, Type: domain.EntryTypeEarn}
		assert.ErrorIs(t, repo.AppendEntry(ctx, entry), domain.ErrPlayerNotFound)
	})

	t.Run("malformed id", func(t *testing.T) {
		entry := &domain.LedgerEntry{PlayerID: "nope", Amount: 1, Type: domain.EntryTypeEarn}
		assert.ErrorIs(t, repo.AppendEntry(ctx, entry), domain.ErrInvalidInput)
	})

	balance, sum := pgtest.BalanceAndLedgerSum(t, pool, playerID)
	assert.Equal(t, balance, sum)

	rec, err := repo.Reconcile(ctx, playerID)
	require.NoError(t, err)
	assert.Zero(t, rec.Drift())
	assert.Equal(t, int64(2), rec.EntryCount)
}

func TestLedgerRepository_ConcurrentDebitsNeverOverdraw(t *testing.T) {
	pool := pgtest.Pool(t)
	ctx := context.Background()
	repo := postgres.NewLedgerRepository(pool)
	playerID := pgtest.CreatePlayer(t, pool, 20)

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := repo.AppendEntry(ctx, &domain.LedgerEntry{PlayerID: playerID, Amount: -5, Type: domain.EntryTypeSpend})
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 4, succeeded)
	balance, sum := pgtest.BalanceAndLedgerSum(t, pool, playerID)
	assert.Equal(t, int64(0), balance)
	assert.Equal(t, balance, sum)
}

func TestLedgerRepository_ListAndUsage(t *testing.T) {
	pool := pgtest.Pool(t)
	ctx := context.Background()
	repo := postgres.NewLedgerRepository(pool)
	playerID := pgtest.CreatePlayer(t, pool, 0)

	require.NoError(t, repo.AppendEntry(ctx, &domain.LedgerEntry{PlayerID: playerID, Amount: 8, Type: domain.EntryTypeEarn}))
	require.NoError(t, repo.AppendEntry(ctx, &domain.LedgerEntry{PlayerID: playerID, Amount: -3, Type: domain.EntryTypeSpend}))

	entries, err := repo.ListEntries(ctx, playerID, domain.LedgerFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 2)

	spends, err := repo.ListEntries(ctx, playerID, domain.LedgerFilter{Type: domain.EntryTypeSpend})
	require.NoError(t, err)
	require.Len(t, spends, 1)
	assert.Equal(t, int64(-3), spends[0].Amount)

	start := time.Now().Add(-time.Hour)
	usage, err := repo.Usage(ctx, playerID, start, start.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, domain.LedgerUsage{EarnedToday: 8, SpentToday: 3, EarnedThisWeek: 8, SpentThisWeek: 3}, usage)

	usage, err = repo.Usage(ctx, playerID, time.Now().Add(time.Hour), start)
	require.NoError(t, err)
	assert.Zero(t, usage.SpentToday)
	assert.Equal(t, int64(3), usage.SpentThisWeek)
}

func TestInventoryRepository_DecrementNeverBelowZero(t *testing.T) {
	pool := pgtest.Pool(t)
	ctx := context.Background()
	repo := postgres.NewInventoryRepository(pool)
	biz := pgtest.CreateBusiness(t, pool)
	campaignID := pgtest.CreateCampaign(t, pool, biz, pgtest.CampaignOpts{})
	prizeID := pgtest.CreatePrize(t, pool, campaignID, "mug", 5, 0.5)

	var wg sync.WaitGroup
	var mu sync.Mutex
	won := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := repo.DecrementPrize(ctx, prizeID)
			if err == nil && ok {
				mu.Lock()
				won++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, won)
	assert.Equal(t, 0, pgtest.Remaining(t, pool, prizeID))

	ok, err := repo.DecrementPrize(ctx, prizeID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestInventoryRepository_LocationStock(t *testing.T) {
	pool := pgtest.Pool(t)
	ctx := context.Background()
	repo := postgres.NewInventoryRepository(pool)
	biz := pgtest.CreateBusiness(t, pool)
	campaignID := pgtest.CreateCampaign(t, pool, biz, pgtest.CampaignOpts{})
	prizeID := pgtest.CreatePrize(t, pool, campaignID, "mug", 5, 0.5)
	pgtest.CreateLocationStock(t, pool, prizeID, "front", 1)

	tracked, ok, err := repo.DecrementLocationStock(ctx, prizeID, "front")
	require.NoError(t, err)
	assert.True(t, tracked)
	assert.True(t, ok)

	tracked, ok, err = repo.DecrementLocationStock(ctx, prizeID, "front")
	require.NoError(t, err)
	assert.True(t, tracked)
	assert.False(t, ok)

	tracked, _, err = repo.DecrementLocationStock(ctx, prizeID, "back")
	require.NoError(t, err)
	assert.False(t, tracked)

	stock, err := repo.ListLocationStock(ctx, prizeID)
	require.NoError(t, err)
	require.Len(t, stock, 1)
	assert.Equal(t, 0, stock[0].RemainingQuantity)

	atFront, err := repo.ListCampaignLocationStock(ctx, campaignID, "front")
	require.NoError(t, err)
	require.Len(t, atFront, 1)
	assert.Equal(t, prizeID, atFront[0].PrizeID)
}

func TestSessionRepository(t *testing.T) {
	pool := pgtest.Pool(t)
	ctx := context.Background()
	repo := postgres.NewSessionRepository(pool)
	playerID := pgtest.CreatePlayer(t, pool, 0)
	biz := pgtest.CreateBusiness(t, pool)
	now := time.Now().UTC().Truncate(time.Second)

	s := &domain.ScanSession{
		PlayerID:       playerID,
		BusinessID:     biz,
		Location:       "front",
		ScannedAt:      now,
		ReplayHash:     "aa00000000000000000000000000000000000000000000000000000000000000",
		TokensCredited: 5,
		ExpiresAt:      now.Add(10 * time.Minute),
	}
	require.NoError(t, repo.CreateSession(ctx, s))
	assert.NotEmpty(t, s.ID)

	seen, err := repo.ReplayExists(ctx, s.ReplayHash)
	require.NoError(t, err)
	assert.True(t, seen)

	dup := *s
	assert.ErrorIs(t, repo.CreateSession(ctx, &dup), domain.ErrReplayDetected)

	ok, err := repo.ConsumeSession(ctx, s.ID, 1)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = repo.ConsumeSession(ctx, s.ID, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := repo.GetSession(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.SpinsUsed)

	deleted, err := repo.DeleteExpiredSessions(ctx, now.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, err = repo.GetSession(ctx, s.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSpinRepository(t *testing.T) {
	pool := pgtest.Pool(t)
	ctx := context.Background()
	repo := postgres.NewSpinRepository(pool)
	playerID := pgtest.CreatePlayer(t, pool, 0)
	biz := pgtest.CreateBusiness(t, pool)
	campaignID := pgtest.CreateCampaign(t, pool, biz, pgtest.CampaignOpts{})
	prizeID := pgtest.CreatePrize(t, pool, campaignID, "mug", 5, 0.5)
	sessionID := pgtest.CreateSession(t, pool, playerID, biz, "front")

	rec := &domain.SpinRecord{
		PlayerID:       playerID,
		CampaignID:     campaignID,
		SessionID:      sessionID,
		IdempotencyKey: sessionID + ":0",
		Outcome:        domain.OutcomePrize,
		PrizeID:        &prizeID,
		TokensSpent:    5,
		Seed:           "00ff00ff00ff00ff",
		DrawValue:      0.25,
		OddsSnapshot:   json.RawMessage(`[]`),
		Attempts:       1,
	}
	require.NoError(t, repo.CreateSpinRecord(ctx, rec))
	assert.NotEmpty(t, rec.ID)

	dup := *rec
	dup.ID = ""
	assert.ErrorIs(t, repo.CreateSpinRecord(ctx, &dup), domain.ErrDuplicateSpin)

	got, err := repo.GetSpinByIdempotencyKey(ctx, rec.IdempotencyKey)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, domain.OutcomePrize, got.Outcome)

	_, err = repo.GetSpinByIdempotencyKey(ctx, sessionID+":1")
	assert.ErrorIs(t, err, domain.ErrSpinNotFound)

	n, err := repo.CountSpinsSince(ctx, playerID, campaignID, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	spins, err := repo.ListSpins(ctx, domain.SpinFilter{PlayerID: playerID, Outcome: domain.OutcomePrize})
	require.NoError(t, err)
	assert.Len(t, spins, 1)

	won := &domain.WonPrize{
		PlayerID:       playerID,
		PrizeID:        prizeID,
		SpinID:         rec.ID,
		PrizeName:      "mug",
		RedemptionCode: "ABCD-EFGH-JKLM",
		ExpiresAt:      time.Now().Add(-time.Minute),
	}
	require.NoError(t, repo.CreateWonPrize(ctx, won))

	other := *won
	other.SpinID = rec.ID
	assert.Error(t, repo.CreateWonPrize(ctx, &other))

	expired, err := repo.ExpireWonPrizes(ctx, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(1), expired)

	gotWon, err := repo.GetWonPrizeBySpin(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.WonPrizeStatusExpired, gotWon.Status)
}

func TestSpinRepository_RecordsAreImmutable(t *testing.T) {
	pool := pgtest.Pool(t)
	ctx := context.Background()
	repo := postgres.NewSpinRepository(pool)
	playerID := pgtest.CreatePlayer(t, pool, 0)
	biz := pgtest.CreateBusiness(t, pool)
	campaignID := pgtest.CreateCampaign(t, pool, biz, pgtest.CampaignOpts{})
	sessionID := pgtest.CreateSession(t, pool, playerID, biz, "")
	rec := &domain.SpinRecord{
		PlayerID: playerID, CampaignID: campaignID, SessionID: sessionID,
		IdempotencyKey: sessionID + ":0", Outcome: domain.OutcomeNoPrize,
		TokensSpent: 5, Seed: "00", OddsSnapshot: json.RawMessage(`[]`), Attempts: 1,
	}
	require.NoError(t, repo.CreateSpinRecord(ctx, rec))

	_, err := pool.Exec(ctx, `UPDATE spin_records SET tokens_spent = 0 WHERE spin_id = $1`, rec.ID)
	assert.Error(t, err)
	_, err = pool.Exec(ctx, `DELETE FROM spin_records WHERE spin_id = $1`, rec.ID)
	assert.Error(t, err)
}

func TestCooldownRepository(t *testing.T) {
	pool := pgtest.Pool(t)
	ctx := context.Background()
	repo := postgres.NewCooldownRepository(pool)
	playerID := pgtest.CreatePlayer(t, pool, 0)
	action := domain.ScanActionKey("biz")

	last, err := repo.GetLastUsed(ctx, playerID, action)
	require.NoError(t, err)
	assert.Nil(t, last)

	at := time.Now().UTC().Truncate(time.Microsecond)
	require.NoError(t, repo.UpsertLastUsed(ctx, playerID, action, at))
	require.NoError(t, repo.UpsertLastUsed(ctx, playerID, action, at.Add(time.Minute)))

	last, err = repo.GetLastUsed(ctx, playerID, action)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.True(t, last.Equal(at.Add(time.Minute)))

	require.NoError(t, repo.DeleteCooldown(ctx, playerID, action))
	last, err = repo.GetLastUsed(ctx, playerID, action)
	require.NoError(t, err)
	assert.Nil(t, last)
}

func TestCooldownRepository_LockActionSerializes(t *testing.T) {
	pool := pgtest.Pool(t)
	ctx := context.Background()
	repo := postgres.NewCooldownRepository(pool)
	trm, err := database.NewTxManager(pool)
	require.NoError(t, err)
	playerID := pgtest.CreatePlayer(t, pool, 0)
	action := domain.SpinActionKey("biz")

	// Each worker checks then sets inside the lock; only the first sees no row.
	var wg sync.WaitGroup
	var mu sync.Mutex
	firsts := 0
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = trm.Do(ctx, func(ctx context.Context) error {
				if err := repo.LockAction(ctx, playerID, action); err != nil {
					return err
				}
				last, err := repo.GetLastUsed(ctx, playerID, action)
				if err != nil {
					return err
				}
				if last == nil {
					mu.Lock()
					firsts++
					mu.Unlock()
				}
				return repo.UpsertLastUsed(ctx, playerID, action, time.Now())
			})
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, firsts)
}

func TestPlayerAndCampaignRepositories(t *testing.T) {
	pool := pgtest.Pool(t)
	ctx := context.Background()
	players := postgres.NewPlayerRepository(pool)
	campaigns := postgres.NewCampaignRepository(pool)

	id1 := pgtest.CreatePlayer(t, pool, 3)
	id2 := pgtest.CreatePlayer(t, pool, 0)

	p, err := players.GetPlayer(ctx, id1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), p.TokenBalance)
	assert.True(t, p.IsActive)

	ids, err := players.ListPlayerIDs(ctx, "", 10)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{id1, id2}, ids)

	page, err := players.ListPlayerIDs(ctx, ids[0], 10)
	require.NoError(t, err)
	assert.Equal(t, ids[1:], page)

	biz := pgtest.CreateBusiness(t, pool)
	live := pgtest.CreateCampaign(t, pool, biz, pgtest.CampaignOpts{TokenCost: 7})
	pgtest.CreateCampaign(t, pool, biz, pgtest.CampaignOpts{Inactive: true})
	pgtest.CreateCampaign(t, pool, biz, pgtest.CampaignOpts{
		StartsAt: time.Now().Add(time.Hour), EndsAt: time.Now().Add(2 * time.Hour),
	})

	c, err := campaigns.GetCampaign(ctx, live)
	require.NoError(t, err)
	assert.Equal(t, int64(7), c.TokenCost)

	listed, err := campaigns.ListLiveCampaigns(ctx, biz, time.Now())
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, live, listed[0].ID)

	_, err = campaigns.GetBusiness(ctx, "00000000-0000-0000-0000-000000000009")
	assert.ErrorIs(t, err, domain.ErrBusinessNotFound)
}

func TestEventLogRepository(t *testing.T) {
	pool := pgtest.Pool(t)
	ctx := context.Background()
	repo := postgres.NewEventLogRepository(pool)
	playerID := pgtest.CreatePlayer(t, pool, 0)

	payload, err := json.Marshal(map[string]any{"player_id": playerID, "tokens_spent": 5})
	require.NoError(t, err)
	require.NoError(t, repo.LogEvent(ctx, "spin.committed", &playerID, payload, nil))
	require.NoError(t, repo.LogEvent(ctx, "tokens.credited", &playerID, payload, []byte(`{"source":"test"}`)))
	require.NoError(t, repo.LogEvent(ctx, "sessions.expired", nil, []byte(`{"records_affected":2}`), nil))

	entries, err := repo.ListEvents(ctx, eventlog.Filter{PlayerID: playerID})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "tokens.credited", entries[0].EventType)
	assert.JSONEq(t, `{"source":"test"}`, string(entries[0].Metadata))
	assert.Nil(t, entries[1].Metadata)
	assert.JSONEq(t, string(payload), string(entries[1].Payload))

	typed, err := repo.ListEvents(ctx, eventlog.Filter{EventType: "sessions.expired"})
	require.NoError(t, err)
	require.NotEmpty(t, typed)
	assert.Nil(t, typed[0].PlayerID)

	deleted, err := repo.CleanupOldEvents(ctx, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, deleted, int64(3))
}
