package handler

import (
	"net/http"

	"github.com/dangerclosesec/audiencelab/internal/serializer"
	"github.com/dangerclosesec/audiencelab/internal/service"
)

type ApplicationHandler struct {
	apps *service.ApplicationService
	rs   *Responder
}

func NewApplicationHandler(apps *service.ApplicationService, rs *Responder) *ApplicationHandler {
	return &ApplicationHandler{apps: apps, rs: rs}
}

func (h *ApplicationHandler) List(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		h.rs.Error(w, r, err, "")
		return
	}

	apps, err := h.apps.List(r.Context(), p)
	if err != nil {
		h.rs.Error(w, r, err, "Failed to fetch applications")
		return
	}

	h.rs.JSON(w, r, http.StatusOK, "", serializer.NewApplications(apps))
}

func (h *ApplicationHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		h.rs.Error(w, r, err, "")
		return
	}

	var input service.CreateApplicationInput
	if err := decodeJSON(r, &input); err != nil {
		h.rs.Error(w, r, err, "")
		return
	}

	app, err := h.apps.Create(r.Context(), p, input)
	if err != nil {
		h.rs.Error(w, r, err, "Failed to create application")
		return
	}

	h.rs.JSON(w, r, http.StatusCreated, "Application created successfully", serializer.NewApplication(app))
}

// Authenticate confirms an application credential. The check itself happens
// in the application authentication middleware.
func (h *ApplicationHandler) Authenticate(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		h.rs.Error(w, r, err, "")
		return
	}

	h.rs.JSON(w, r, http.StatusOK, "Application authenticated successfully", map[string]string{
		"applicationId": p.ApplicationID,
	})
}

type platformUserRequest struct {
	service.PlatformUserInput
	ApplicationKey string `json:"applicationKey"`
}

func (h *ApplicationHandler) AddPlatformUser(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		h.rs.Error(w, r, err, "")
		return
	}

	var input platformUserRequest
	if err := decodeJSON(r, &input); err != nil {
		h.rs.Error(w, r, err, "")
		return
	}

	user, err := h.apps.AddPlatformUser(r.Context(), p, input.PlatformUserInput)
	if err != nil {
		h.rs.Error(w, r, err, "Failed to add platform user")
		return
	}

	h.rs.JSON(w, r, http.StatusCreated, "Platform user added successfully", user)
}
