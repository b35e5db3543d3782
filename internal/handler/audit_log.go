package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dangerclosesec/audiencelab/internal/repository"
	"github.com/dangerclosesec/audiencelab/internal/service"
)

// AuditLogHandler serves the organization's access audit log to admins.
type AuditLogHandler struct {
	audit *service.AccessAuditService
	rs    *Responder
}

func NewAuditLogHandler(audit *service.AccessAuditService, rs *Responder) *AuditLogHandler {
	return &AuditLogHandler{audit: audit, rs: rs}
}

// List handles requests to retrieve audit logs with filtering
func (h *AuditLogHandler) List(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		h.rs.Error(w, r, err, "")
		return
	}

	page, err := h.audit.Query(r.Context(), p, parseAuditQuery(r))
	if err != nil {
		h.rs.Error(w, r, err, "Failed to retrieve audit logs")
		return
	}

	h.rs.JSON(w, r, http.StatusOK, "", page)
}

// parseAuditQuery reads filters from the query string. Malformed values are
// ignored rather than rejected.
func parseAuditQuery(r *http.Request) repository.QueryParams {
	q := r.URL.Query()
	params := repository.QueryParams{
		ActionType:  q.Get("action_type"),
		EntityType:  q.Get("entity_type"),
		EntityID:    q.Get("entity_id"),
		SubjectType: q.Get("subject_type"),
		SubjectID:   q.Get("subject_id"),
	}

	if resultStr := q.Get("result"); resultStr != "" {
		if result, err := strconv.ParseBool(resultStr); err == nil {
			params.Result = &result
		}
	}

	if startTimeStr := q.Get("start_time"); startTimeStr != "" {
		if startTime, err := time.Parse(time.RFC3339, startTimeStr); err == nil {
			params.StartTime = startTime
		}
	}

	if endTimeStr := q.Get("end_time"); endTimeStr != "" {
		if endTime, err := time.Parse(time.RFC3339, endTimeStr); err == nil {
			params.EndTime = endTime
		}
	}

	// Pagination
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil && limit > 0 {
		params.Limit = limit
	}
	if offset, err := strconv.Atoi(q.Get("offset")); err == nil && offset >= 0 {
		params.Offset = offset
	}

	return params
}
