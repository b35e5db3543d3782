package handler

import (
	"net/http"

	"github.com/dangerclosesec/audiencelab/internal/domain"
	"github.com/dangerclosesec/audiencelab/internal/serializer"
	"github.com/dangerclosesec/audiencelab/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type CampaignHandler struct {
	campaigns *service.CampaignService
	rs        *Responder
}

func NewCampaignHandler(campaigns *service.CampaignService, rs *Responder) *CampaignHandler {
	return &CampaignHandler{campaigns: campaigns, rs: rs}
}

func (h *CampaignHandler) List(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		h.rs.Error(w, r, err, "")
		return
	}

	campaigns, err := h.campaigns.List(r.Context(), p)
	if err != nil {
		h.rs.Error(w, r, err, "Failed to fetch campaigns")
		return
	}

	out := make([]serializer.Campaign, 0, len(campaigns))
	for _, c := range campaigns {
		out = append(out, serializer.NewCampaignWithCount(c.Campaign, c.ContentCount))
	}
	h.rs.JSON(w, r, http.StatusOK, "", out)
}

func (h *CampaignHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		h.rs.Error(w, r, err, "")
		return
	}

	var input service.CreateCampaignInput
	if err := decodeJSON(r, &input); err != nil {
		h.rs.Error(w, r, err, "")
		return
	}

	campaign, err := h.campaigns.Create(r.Context(), p, input)
	if err != nil {
		h.rs.Error(w, r, err, "Failed to create campaign")
		return
	}

	h.rs.JSON(w, r, http.StatusCreated, "Campaign created successfully", serializer.NewCampaign(campaign))
}

func (h *CampaignHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		h.rs.Error(w, r, err, "")
		return
	}

	id, err := pathID(r)
	if err != nil {
		h.rs.Error(w, r, err, "")
		return
	}

	var input service.UpdateCampaignStatusInput
	if err := decodeJSON(r, &input); err != nil {
		h.rs.Error(w, r, err, "")
		return
	}

	campaign, err := h.campaigns.UpdateStatus(r.Context(), p, id, input)
	if err != nil {
		h.rs.Error(w, r, err, "Failed to update campaign")
		return
	}

	h.rs.JSON(w, r, http.StatusOK, "Campaign updated successfully", serializer.NewCampaign(campaign))
}

// pathID parses the {id} route parameter.
func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, domain.Errorf(domain.ErrInvalidInput, "Invalid id")
	}
	return id, nil
}
