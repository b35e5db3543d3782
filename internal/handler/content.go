package handler

import (
	"net/http"

	"github.com/dangerclosesec/audiencelab/internal/domain"
	"github.com/dangerclosesec/audiencelab/internal/serializer"
	"github.com/dangerclosesec/audiencelab/internal/service"
	"github.com/google/uuid"
)

type ContentHandler struct {
	contents *service.ContentService
	rs       *Responder
}

func NewContentHandler(contents *service.ContentService, rs *Responder) *ContentHandler {
	return &ContentHandler{contents: contents, rs: rs}
}

// List returns the organization's content, optionally narrowed by ?campaignId=.
func (h *ContentHandler) List(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		h.rs.Error(w, r, err, "")
		return
	}

	var campaignID *uuid.UUID
	if raw := r.URL.Query().Get("campaignId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.rs.Error(w, r, domain.Errorf(domain.ErrInvalidInput, "Invalid campaignId"), "")
			return
		}
		campaignID = &id
	}

	contents, err := h.contents.List(r.Context(), p, campaignID)
	if err != nil {
		h.rs.Error(w, r, err, "Failed to fetch content")
		return
	}

	h.rs.JSON(w, r, http.StatusOK, "", serializer.NewContents(contents))
}

func (h *ContentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
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

	var input service.UpdateContentStatusInput
	if err := decodeJSON(r, &input); err != nil {
		h.rs.Error(w, r, err, "")
		return
	}

	content, err := h.contents.UpdateStatus(r.Context(), p, id, input)
	if err != nil {
		h.rs.Error(w, r, err, "Failed to update content")
		return
	}

	h.rs.JSON(w, r, http.StatusOK, "Content updated successfully", serializer.NewContent(content))
}
