package handler

import (
	"net/http"

	"github.com/dangerclosesec/audiencelab/internal/service"
)

type AnalyticsHandler struct {
	analytics *service.AnalyticsService
	rs        *Responder
}

func NewAnalyticsHandler(analytics *service.AnalyticsService, rs *Responder) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics, rs: rs}
}

// Application reports on the platform users of ?applicationId=.
func (h *AnalyticsHandler) Application(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		h.rs.Error(w, r, err, "")
		return
	}

	report, err := h.analytics.ApplicationReport(r.Context(), p, r.URL.Query().Get("applicationId"))
	if err != nil {
		h.rs.Error(w, r, err, "Failed to fetch analytics")
		return
	}

	h.rs.JSON(w, r, http.StatusOK, "", report)
}

func (h *AnalyticsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		h.rs.Error(w, r, err, "")
		return
	}

	overview, err := h.analytics.Overview(r.Context(), p)
	if err != nil {
		h.rs.Error(w, r, err, "Failed to fetch dashboard data")
		return
	}

	h.rs.JSON(w, r, http.StatusOK, "", overview)
}
