package pgtest

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// CreatePlayer inserts a player whose balance is backed by a single bonus
// ledger entry, so balance and ledger agree from the start.
func CreatePlayer(t testing.TB, pool *pgxpool.Pool, balance int64) string {
	t.Helper()
	ctx := context.Background()

	var id string
	err := pool.QueryRow(ctx,
		`INSERT INTO players (display_name, token_balance) VALUES ('player', $1) RETURNING player_id`,
		balance,
	).Scan(&id)
	if err != nil {
		t.Fatalf("failed to create player: %v", err)
	}

	if balance > 0 {
		_, err = pool.Exec(ctx, `
			INSERT INTO ledger_entries (player_id, amount, entry_type, description, balance_after)
			VALUES ($1, $2, 'bonus', 'fixture', $2)`, id, balance)
		if err != nil {
			t.Fatalf("failed to seed ledger: %v", err)
		}
	}
	return id
}

// CreateBusiness inserts a business with no cooldown override.
func CreateBusiness(t testing.TB, pool *pgxpool.Pool) string {
	t.Helper()
	var id string
	err := pool.QueryRow(context.Background(),
		`INSERT INTO businesses (name) VALUES ('business') RETURNING business_id`,
	).Scan(&id)
	if err != nil {
		t.Fatalf("failed to create business: %v", err)
	}
	return id
}

// CampaignOpts configures CreateCampaign.
type CampaignOpts struct {
	TokenCost      int64
	MaxSpinsPerDay int
	StartsAt       time.Time
	EndsAt         time.Time
	Inactive       bool
}

// CreateCampaign inserts a campaign that is live now unless opts say otherwise.
func CreateCampaign(t testing.TB, pool *pgxpool.Pool, businessID string, opts CampaignOpts) string {
	t.Helper()
	if opts.TokenCost == 0 {
		opts.TokenCost = 5
	}
	if opts.MaxSpinsPerDay == 0 {
		opts.MaxSpinsPerDay = 100
	}
	if opts.StartsAt.IsZero() {
		opts.StartsAt = time.Now().Add(-time.Hour)
	}
	if opts.EndsAt.IsZero() {
		opts.EndsAt = time.Now().Add(24 * time.Hour)
	}

	var id string
	err := pool.QueryRow(context.Background(), `
		INSERT INTO campaigns (business_id, name, token_cost, max_spins_per_day, starts_at, ends_at, is_active)
		VALUES ($1, 'campaign', $2, $3, $4, $5, $6)
		RETURNING campaign_id`,
		businessID, opts.TokenCost, opts.MaxSpinsPerDay, opts.StartsAt, opts.EndsAt, !opts.Inactive,
	).Scan(&id)
	if err != nil {
		t.Fatalf("failed to create campaign: %v", err)
	}
	return id
}

// CreatePrize inserts an active prize with total == remaining.
func CreatePrize(t testing.TB, pool *pgxpool.Pool, campaignID, name string, remaining int, probability float64) string {
	t.Helper()
	var id string
	err := pool.QueryRow(context.Background(), `
		INSERT INTO prizes (campaign_id, name, total_quantity, remaining_quantity, win_probability)
		VALUES ($1, $2, $3, $3, $4)
		RETURNING prize_id`,
		campaignID, name, remaining, probability,
	).Scan(&id)
	if err != nil {
		t.Fatalf("failed to create prize: %v", err)
	}
	return id
}

// CreateLocationStock splits part of a prize's stock onto a location.
func CreateLocationStock(t testing.TB, pool *pgxpool.Pool, prizeID, locationID string, remaining int) {
	t.Helper()
	_, err := pool.Exec(context.Background(), `
		INSERT INTO prize_location_stock (prize_id, location_id, total_quantity, remaining_quantity)
		VALUES ($1, $2, $3, $3)`, prizeID, locationID, remaining)
	if err != nil {
		t.Fatalf("failed to create location stock: %v", err)
	}
}

// CreateSession inserts an unexpired scan session without crediting tokens.
func CreateSession(t testing.TB, pool *pgxpool.Pool, playerID, businessID, location string) string {
	t.Helper()
	now := time.Now()
	var id string
	err := pool.QueryRow(context.Background(), `
		INSERT INTO scan_sessions (player_id, business_id, location, scanned_at, replay_hash, tokens_credited, expires_at)
		VALUES ($1, $2, $3, $4, md5(random()::text) || md5(random()::text), 0, $5)
		RETURNING session_id`,
		playerID, businessID, location, now, now.Add(10*time.Minute),
	).Scan(&id)
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	return id
}

// Remaining reads a prize's remaining quantity.
func Remaining(t testing.TB, pool *pgxpool.Pool, prizeID string) int {
	t.Helper()
	var remaining int
	if err := pool.QueryRow(context.Background(),
		`SELECT remaining_quantity FROM prizes WHERE prize_id = $1`, prizeID).Scan(&remaining); err != nil {
		t.Fatalf("failed to read remaining: %v", err)
	}
	return remaining
}

// BalanceAndLedgerSum returns the cached balance and the ledger sum.
func BalanceAndLedgerSum(t testing.TB, pool *pgxpool.Pool, playerID string) (int64, int64) {
	t.Helper()
	var balance, sum int64
	err := pool.QueryRow(context.Background(), `
		SELECT p.token_balance, COALESCE((SELECT SUM(amount) FROM ledger_entries WHERE player_id = p.player_id), 0)
		FROM players p WHERE p.player_id = $1`, playerID).Scan(&balance, &sum)
	if err != nil {
		t.Fatalf("failed to read balance: %v", err)
	}
	return balance, sum
}

// Count runs a COUNT(*) query with args.
func Count(t testing.TB, pool *pgxpool.Pool, query string, args ...any) int {
	t.Helper()
	var n int
	if err := pool.QueryRow(context.Background(), query, args...).Scan(&n); err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	return n
}
