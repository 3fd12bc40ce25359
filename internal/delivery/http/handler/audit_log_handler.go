package handler

import (
	"errors"
	"net/http"
	"strconv"

	"healthcare-portal/internal/delivery/dto"
	"healthcare-portal/internal/usecase"
	"healthcare-portal/pkg/response"

	"github.com/gorilla/mux"
)

type AuditLogHandler struct {
	auditLogUsecase usecase.AuditLogUsecase
}

func NewAuditLogHandler(auditLogUsecase usecase.AuditLogUsecase) *AuditLogHandler {
	return &AuditLogHandler{
		auditLogUsecase: auditLogUsecase,
	}
}

func (h *AuditLogHandler) GetAuditLog(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	auditLogID, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid audit log ID", nil)
		return
	}

	auditLog, err := h.auditLogUsecase.GetAuditLog(r.Context(), auditLogID)
	if err != nil {
		if errors.Is(err, usecase.ErrAuditLogNotFound) {
			response.NotFound(w, "Audit log not found")
			return
		}
		internalError(w, err, "Failed to get audit log")
		return
	}

	response.Success(w, http.StatusOK, "Audit log retrieved successfully", auditLog)
}

func (h *AuditLogHandler) GetAllAuditLogs(w http.ResponseWriter, r *http.Request) {
	req := dto.AuditLogListRequest{
		Action:    r.URL.Query().Get("action"),
		PageQuery: pageQuery(r, dto.DefaultPageLimit),
	}

	result, err := h.auditLogUsecase.GetAllAuditLogs(r.Context(), &req)
	if err != nil {
		internalError(w, err, "Failed to get audit logs")
		return
	}

	meta := response.NewMeta(req.Page, req.Limit, result.Total)
	response.SuccessWithMeta(w, http.StatusOK, "Audit logs retrieved successfully", result.Logs, meta)
}
