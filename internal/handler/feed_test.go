package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/SpinVault_Go/internal/sse"
)

func TestFeedHandler_HandleAnnounce(t *testing.T) {
	hub := sse.NewHub()
	hub.Start()
	t.Cleanup(hub.Stop)

	client := hub.Register(nil, "")
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	h := NewFeedHandler(hub)

	tests := []struct {
		name      string
		body      string
		want      int
		broadcast bool
	}{
		{"valid", `{"message":"Double odds until noon"}`, http.StatusAccepted, true},
		{"missing message", `{}`, http.StatusBadRequest, false},
		{"bad campaign", `{"message":"hi","campaign_id":"nope"}`, http.StatusBadRequest, false},
		{"too long", `{"message":"` + strings.Repeat("x", 281) + `"}`, http.StatusBadRequest, false},
		{"unknown field", `{"message":"hi","extra":1}`, http.StatusBadRequest, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/feed/announce", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.HandleAnnounce(rec, req)
			assert.Equal(t, tt.want, rec.Code)

			if !tt.broadcast {
				return
			}
			select {
			case e := <-client.EventChannel:
				assert.Equal(t, sse.EventTypeAnnouncement, e.Type)
				assert.Equal(t, sse.AnnouncementPayload{Message: "Double odds until noon"}, e.Payload)
			case <-time.After(time.Second):
				t.Fatal("announcement not broadcast")
			}
		})
	}
}
