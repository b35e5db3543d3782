package handler

import (
	"net/http"

	"github.com/dangerclosesec/audiencelab/internal/serializer"
	"github.com/dangerclosesec/audiencelab/internal/service"
)

type PersonaHandler struct {
	personas *service.PersonaService
	rs       *Responder
}

func NewPersonaHandler(personas *service.PersonaService, rs *Responder) *PersonaHandler {
	return &PersonaHandler{personas: personas, rs: rs}
}

func (h *PersonaHandler) List(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		h.rs.Error(w, r, err, "")
		return
	}

	personas, err := h.personas.List(r.Context(), p)
	if err != nil {
		h.rs.Error(w, r, err, "Failed to fetch personas")
		return
	}

	out := make([]serializer.Persona, 0, len(personas))
	for _, persona := range personas {
		out = append(out, serializer.NewPersonaWithCount(persona.Persona, persona.CampaignCount))
	}
	h.rs.JSON(w, r, http.StatusOK, "", out)
}

func (h *PersonaHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		h.rs.Error(w, r, err, "")
		return
	}

	var input service.CreatePersonaInput
	if err := decodeJSON(r, &input); err != nil {
		h.rs.Error(w, r, err, "")
		return
	}

	persona, err := h.personas.Create(r.Context(), p, input)
	if err != nil {
		h.rs.Error(w, r, err, "Failed to create persona")
		return
	}

	h.rs.JSON(w, r, http.StatusCreated, "Persona created successfully", serializer.NewPersona(persona))
}
