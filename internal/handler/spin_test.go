package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/SpinVault_Go/internal/domain"
)

const (
	testPlayerID   = "6f1c2a8e-9a51-4b0e-8a43-2d1f0c8b7e11"
	testCampaignID = "0b9e3a4c-1d2e-4f5a-9b8c-7d6e5f4a3b21"
	testSessionID  = "a1b2c3d4-e5f6-4a5b-8c7d-9e0f1a2b3c4d"
	testSpinID     = "c0ffee00-1111-4222-8333-444455556666"
	testBusinessID = "b0b0b0b0-1111-4222-8333-444455556666"
)

// serve routes a single request through chi so URL params resolve
func serve(method, pattern, target string, body io.Reader, h http.HandlerFunc) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Method(method, pattern, h)
	req := httptest.NewRequest(method, target, body)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func spinBody(attempt int) string {
	return fmt.Sprintf(`{"player_id":%q,"campaign_id":%q,"session_id":%q,"attempt":%d}`,
		testPlayerID, testCampaignID, testSessionID, attempt)
}

func TestHandleSpin(t *testing.T) {
	wantReq := domain.SpinRequest{PlayerID: testPlayerID, CampaignID: testCampaignID, SessionID: testSessionID}

	tests := []struct {
		name       string
		body       string
		setup      func(*mockSpinService)
		wantStatus int
		wantBody   string
	}{
		{
			name: "fresh spin",
			body: spinBody(0),
			setup: func(m *mockSpinService) {
				m.On("RequestSpin", mock.Anything, wantReq).Return(&domain.SpinResult{
					SpinID: testSpinID, Outcome: domain.OutcomeNoPrize, TokensSpent: 5, NewBalance: 7,
				}, nil)
			},
			wantStatus: http.StatusCreated,
			wantBody:   `"new_balance":7`,
		},
		{
			name: "replayed spin",
			body: spinBody(0),
			setup: func(m *mockSpinService) {
				m.On("RequestSpin", mock.Anything, wantReq).Return(&domain.SpinResult{
					SpinID: testSpinID, Outcome: domain.OutcomeNoPrize, Replayed: true,
				}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `"replayed":true`,
		},
		{
			name: "insufficient tokens",
			body: spinBody(0),
			setup: func(m *mockSpinService) {
				m.On("RequestSpin", mock.Anything, wantReq).
					Return(nil, domain.NewRejection(domain.ReasonInsufficientTokens, "balance 2, cost 5"))
			},
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   `"reason":"insufficient_tokens"`,
		},
		{
			name: "cooldown",
			body: spinBody(0),
			setup: func(m *mockSpinService) {
				m.On("RequestSpin", mock.Anything, wantReq).
					Return(nil, domain.NewRejection(domain.ReasonCooldownActive, ""))
			},
			wantStatus: http.StatusConflict,
			wantBody:   `"reason":"cooldown_active"`,
		},
		{
			name: "inventory conflict",
			body: spinBody(0),
			setup: func(m *mockSpinService) {
				m.On("RequestSpin", mock.Anything, wantReq).
					Return(nil, fmt.Errorf("after 3 attempts: %w", domain.ErrInventoryConflict))
			},
			wantStatus: http.StatusConflict,
			wantBody:   ErrMsgInventoryBusyError,
		},
		{
			name: "persistence failure",
			body: spinBody(0),
			setup: func(m *mockSpinService) {
				m.On("RequestSpin", mock.Anything, wantReq).
					Return(nil, fmt.Errorf("%w: connection reset", domain.ErrPersistenceFailure))
			},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   ErrMsgUnavailableError,
		},
		{
			name:       "bad uuid",
			body:       `{"player_id":"alice","campaign_id":"` + testCampaignID + `","session_id":"` + testSessionID + `"}`,
			setup:      func(*mockSpinService) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   `"playerid":"Must be a UUID"`,
		},
		{
			name:       "unknown field",
			body:       `{"player_id":"` + testPlayerID + `","bet":100}`,
			setup:      func(*mockSpinService) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   ErrMsgInvalidRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockSpinService)
			tt.setup(svc)
			h := NewSpinHandler(svc)

			w := serve(http.MethodPost, "/spins", "/spins", strings.NewReader(tt.body), h.HandleSpin)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
			svc.AssertExpectations(t)
		})
	}
}

func TestHandleGetSpin(t *testing.T) {
	svc := new(mockSpinService)
	svc.On("GetSpin", mock.Anything, testSpinID).Return(&domain.SpinRecord{ID: testSpinID, Outcome: domain.OutcomePrize}, nil)
	h := NewSpinHandler(svc)

	w := serve(http.MethodGet, "/spins/{spinID}", "/spins/"+testSpinID, nil, h.HandleGetSpin)
	require.Equal(t, http.StatusOK, w.Code)

	var rec domain.SpinRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rec))
	assert.Equal(t, testSpinID, rec.ID)
}

func TestHandleGetSpin_NotFound(t *testing.T) {
	svc := new(mockSpinService)
	svc.On("GetSpin", mock.Anything, testSpinID).Return(nil, domain.ErrSpinNotFound)
	h := NewSpinHandler(svc)

	w := serve(http.MethodGet, "/spins/{spinID}", "/spins/"+testSpinID, nil, h.HandleGetSpin)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleGetSpin_BadID(t *testing.T) {
	h := NewSpinHandler(new(mockSpinService))
	w := serve(http.MethodGet, "/spins/{spinID}", "/spins/not-a-uuid", nil, h.HandleGetSpin)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleVerifySpin(t *testing.T) {
	svc := new(mockSpinService)
	svc.On("VerifySpin", mock.Anything, testSpinID).Return(true, nil)
	h := NewSpinHandler(svc)

	w := serve(http.MethodGet, "/spins/{spinID}/verify", "/spins/"+testSpinID+"/verify", nil, h.HandleVerifySpin)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"spin_id":"`+testSpinID+`","verified":true}`, w.Body.String())
}

func TestHandleListPlayerSpins(t *testing.T) {
	svc := new(mockSpinService)
	svc.On("ListSpins", mock.Anything, domain.SpinFilter{
		PlayerID:   testPlayerID,
		CampaignID: testCampaignID,
		Limit:      MaxListLimit,
		Offset:     10,
	}).Return([]domain.SpinRecord{{ID: testSpinID}}, nil)
	h := NewSpinHandler(svc)

	target := "/players/" + testPlayerID + "/spins?campaign_id=" + testCampaignID + "&limit=1000&offset=10"
	w := serve(http.MethodGet, "/players/{playerID}/spins", target, nil, h.HandleListPlayerSpins)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"limit":200`)
	svc.AssertExpectations(t)
}

func TestHandleListPlayerSpins_BadPaging(t *testing.T) {
	h := NewSpinHandler(new(mockSpinService))
	for _, q := range []string{"limit=0", "limit=abc", "offset=-1", "since=yesterday"} {
		w := serve(http.MethodGet, "/players/{playerID}/spins", "/players/"+testPlayerID+"/spins?"+q, nil, h.HandleListPlayerSpins)
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
	}
}
