package handler

import (
	"net/http"

	"github.com/osse101/SpinVault_Go/internal/campaign"
)

// CampaignHandler serves campaign display data
type CampaignHandler struct {
	campaignSvc campaign.Service
}

// NewCampaignHandler creates a new campaign handler
func NewCampaignHandler(campaignSvc campaign.Service) *CampaignHandler {
	return &CampaignHandler{campaignSvc: campaignSvc}
}

// HandleGetCampaign returns a campaign
func (h *CampaignHandler) HandleGetCampaign(w http.ResponseWriter, r *http.Request) {
	campaignID, ok := pathUUID(w, r, "campaignID")
	if !ok {
		return
	}
	c, err := h.campaignSvc.GetCampaign(r.Context(), campaignID)
	if err != nil {
		respondServiceError(w, r, "Get campaign", err)
		return
	}
	respondJSON(w, http.StatusOK, c)
}

// HandleListPrizes returns prizes with live remaining counts
func (h *CampaignHandler) HandleListPrizes(w http.ResponseWriter, r *http.Request) {
	campaignID, ok := pathUUID(w, r, "campaignID")
	if !ok {
		return
	}
	prizes, err := h.campaignSvc.ListPrizes(r.Context(), campaignID)
	if err != nil {
		respondServiceError(w, r, "List prizes", err)
		return
	}
	respondJSON(w, http.StatusOK, prizes)
}

// HandleGetOdds returns the effective odds table, optionally at a location
func (h *CampaignHandler) HandleGetOdds(w http.ResponseWriter, r *http.Request) {
	campaignID, ok := pathUUID(w, r, "campaignID")
	if !ok {
		return
	}
	table, err := h.campaignSvc.EffectiveOdds(r.Context(), campaignID, GetOptionalQueryParam(r, "location", ""))
	if err != nil {
		respondServiceError(w, r, "Get odds", err)
		return
	}
	respondJSON(w, http.StatusOK, table)
}

// HandleListLive lists campaigns currently running at a business
func (h *CampaignHandler) HandleListLive(w http.ResponseWriter, r *http.Request) {
	businessID, ok := pathUUID(w, r, "businessID")
	if !ok {
		return
	}
	campaigns, err := h.campaignSvc.ListLive(r.Context(), businessID)
	if err != nil {
		respondServiceError(w, r, "List campaigns", err)
		return
	}
	respondJSON(w, http.StatusOK, campaigns)
}

// HandleInvalidateCampaign drops a campaign from the read cache so the next
// read sees a fresh row. Used after out-of-band campaign edits.
func (h *CampaignHandler) HandleInvalidateCampaign(w http.ResponseWriter, r *http.Request) {
	campaignID, ok := pathUUID(w, r, "campaignID")
	if !ok {
		return
	}
	h.campaignSvc.Invalidate(campaignID)
	w.WriteHeader(http.StatusNoContent)
}
