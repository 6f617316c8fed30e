package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/SpinVault_Go/internal/handler"
	"github.com/osse101/SpinVault_Go/internal/sse"
)

type stubPool struct{ err error }

func (p stubPool) Ping(context.Context) error { return p.err }
func (p stubPool) Close()                     {}

func newTestRouter() http.Handler {
	return NewRouter(Options{
		APIKey:         "k",
		AllowedOrigins: []string{"https://kiosk.example.com"},
	}, stubPool{}, Handlers{
		Spins:     handler.NewSpinHandler(nil),
		Scans:     handler.NewScanHandler(nil),
		Players:   handler.NewPlayerHandler(nil),
		Campaigns: handler.NewCampaignHandler(nil),
		Events:    handler.NewEventLogHandler(nil),
		Feed:      handler.NewFeedHandler(sse.NewHub()),
	})
}

func TestRouter_PublicAndProtected(t *testing.T) {
	r := newTestRouter()

	tests := []struct {
		name   string
		method string
		path   string
		key    string
		want   int
	}{
		{"healthz", http.MethodGet, "/healthz", "", http.StatusOK},
		{"readyz", http.MethodGet, "/readyz", "", http.StatusOK},
		{"version is public", http.MethodGet, "/version", "", http.StatusOK},
		{"api without key", http.MethodGet, "/api/v1/spins/abc", "", http.StatusUnauthorized},
		{"api with key reaches handler", http.MethodGet, "/api/v1/spins/not-a-uuid", "k", http.StatusBadRequest},
		{"unknown route", http.MethodGet, "/api/v1/nope", "k", http.StatusNotFound},
		{"wrong method", http.MethodDelete, "/api/v1/spins/x", "k", http.StatusMethodNotAllowed},
		{"admin events bad player", http.MethodGet, "/api/v1/admin/events?player_id=x", "k", http.StatusBadRequest},
		{"admin invalidate without key", http.MethodPost, "/api/v1/admin/campaigns/x/invalidate", "", http.StatusUnauthorized},
		{"feed without key", http.MethodGet, "/api/v1/feed", "", http.StatusUnauthorized},
		{"announce empty body", http.MethodPost, "/api/v1/admin/feed/announce", "k", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.key != "" {
				req.Header.Set(HeaderAPIKey, tt.key)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestRouter_RequestID(t *testing.T) {
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/spins/not-a-uuid", nil)
	req.Header.Set(HeaderAPIKey, "k")
	req.Header.Set(HeaderRequestID, "req-123")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, "req-123", rec.Header().Get(HeaderRequestID))

	req = httptest.NewRequest(http.MethodGet, "/api/v1/spins/not-a-uuid", nil)
	req.Header.Set(HeaderAPIKey, "k")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.NotEmpty(t, rec.Header().Get(HeaderRequestID))
}

func TestRouter_CORSPreflight(t *testing.T) {
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/spins", nil)
	req.Header.Set("Origin", "https://kiosk.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", HeaderAPIKey)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, "https://kiosk.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Less(t, rec.Code, 300)
}

func TestRouter_ReadyzUnavailable(t *testing.T) {
	r := NewRouter(Options{APIKey: "k"}, stubPool{err: assert.AnError}, Handlers{
		Spins:     handler.NewSpinHandler(nil),
		Scans:     handler.NewScanHandler(nil),
		Players:   handler.NewPlayerHandler(nil),
		Campaigns: handler.NewCampaignHandler(nil),
		Events:    handler.NewEventLogHandler(nil),
		Feed:      handler.NewFeedHandler(sse.NewHub()),
	})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
