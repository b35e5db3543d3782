package handler

import (
	"net/http"
	"time"

	"github.com/dangerclosesec/audiencelab/internal/serializer"
	"github.com/dangerclosesec/audiencelab/internal/service"
)

type GenerationHandler struct {
	generation *service.GenerationService
	rs         *Responder
}

func NewGenerationHandler(generation *service.GenerationService, rs *Responder) *GenerationHandler {
	return &GenerationHandler{generation: generation, rs: rs}
}

func (h *GenerationHandler) Persona(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		h.rs.Error(w, r, err, "")
		return
	}

	var input service.GeneratePersonaInput
	if err := decodeJSON(r, &input); err != nil {
		h.rs.Error(w, r, err, "")
		return
	}

	persona, err := h.generation.GeneratePersona(r.Context(), p, input)
	if err != nil {
		h.rs.Error(w, r, err, "Failed to generate persona")
		return
	}

	h.rs.JSON(w, r, http.StatusCreated, "Persona generated successfully", serializer.NewPersona(persona))
}

func (h *GenerationHandler) Campaign(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		h.rs.Error(w, r, err, "")
		return
	}

	var input service.GenerateCampaignInput
	if err := decodeJSON(r, &input); err != nil {
		h.rs.Error(w, r, err, "")
		return
	}

	campaign, err := h.generation.GenerateCampaign(r.Context(), p, input)
	if err != nil {
		h.rs.Error(w, r, err, "Failed to generate campaign")
		return
	}

	h.rs.JSON(w, r, http.StatusCreated, "Campaign generated successfully", serializer.NewCampaign(campaign))
}

type generatedContentData struct {
	ContentCount int                         `json:"contentCount"`
	Platforms    []string                    `json:"platforms"`
	Content      []serializer.ContentSummary `json:"content"`
	GeneratedAt  time.Time                   `json:"generatedAt"`
}

func (h *GenerationHandler) Content(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		h.rs.Error(w, r, err, "")
		return
	}

	var input service.GenerateContentInput
	if err := decodeJSON(r, &input); err != nil {
		h.rs.Error(w, r, err, "")
		return
	}

	out, err := h.generation.GenerateContent(r.Context(), p, input)
	if err != nil {
		h.rs.Error(w, r, err, "Failed to generate content")
		return
	}

	data := generatedContentData{
		ContentCount: len(out.Content),
		Platforms:    out.Platforms,
		Content:      make([]serializer.ContentSummary, 0, len(out.Content)),
		GeneratedAt:  time.Now().UTC(),
	}
	for _, c := range out.Content {
		data.Content = append(data.Content, serializer.NewContentSummary(c))
	}
	h.rs.JSON(w, r, http.StatusCreated, "Content generated successfully", data)
}
