package job

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"taskforge/backend/internal/middleware"
	"taskforge/backend/internal/validation"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	correlationID := middleware.GetCorrelationID(ctx)

	slog.InfoContext(ctx, "listing jobs", "correlationId", correlationID)

	jobs, err := h.service.List(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list jobs", "error", err, "correlationId", correlationID)
		h.writeError(ctx, w, "INTERNAL_ERROR", "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if jobs == nil {
		jobs = []Job{}
	}
	h.writeJSON(ctx, w, http.StatusOK, jobs)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req Request
	if err := validation.DecodeJSON(w, r, &req); err != nil {
		h.writeError(ctx, w, "VALIDATION_ERROR", err.Error(), http.StatusBadRequest)
		return
	}

	j := req.toJob()
	if err := h.service.Create(ctx, j); err != nil {
		h.handleError(ctx, w, err)
		return
	}
	h.writeJSON(ctx, w, http.StatusOK, j)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := parseID(r)
	if err != nil {
		h.writeError(ctx, w, "BAD_REQUEST", err.Error(), http.StatusBadRequest)
		return
	}

	j, err := h.service.Get(ctx, id)
	if err != nil {
		h.handleError(ctx, w, err)
		return
	}
	h.writeJSON(ctx, w, http.StatusOK, j)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := parseID(r)
	if err != nil {
		h.writeError(ctx, w, "BAD_REQUEST", err.Error(), http.StatusBadRequest)
		return
	}

	var req Request
	if err := validation.DecodeJSON(w, r, &req); err != nil {
		h.writeError(ctx, w, "VALIDATION_ERROR", err.Error(), http.StatusBadRequest)
		return
	}

	j := req.toJob()
	j.ID = id
	if err := h.service.Update(ctx, j); err != nil {
		h.handleError(ctx, w, err)
		return
	}
	h.writeJSON(ctx, w, http.StatusOK, j)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := parseID(r)
	if err != nil {
		h.writeError(ctx, w, "BAD_REQUEST", err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(ctx, id); err != nil {
		h.handleError(ctx, w, err)
		return
	}

	h.writeJSON(ctx, w, http.StatusOK, map[string]interface{}{
		"ok":      true,
		"message": fmt.Sprintf("Deleted job %d", id),
	})
}

func parseID(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid job id %q", raw)
	}
	return id, nil
}

func (h *Handler) handleError(ctx context.Context, w http.ResponseWriter, err error) {
	correlationID := middleware.GetCorrelationID(ctx)
	if errors.Is(err, ErrNotFound) {
		slog.WarnContext(ctx, "job not found", "error", err, "correlationId", correlationID)
		h.writeError(ctx, w, "NOT_FOUND", err.Error(), http.StatusNotFound)
		return
	}
	slog.ErrorContext(ctx, "job operation failed", "error", err, "correlationId", correlationID)
	h.writeError(ctx, w, "INTERNAL_ERROR", "Internal Server Error", http.StatusInternalServerError)
}

func (h *Handler) writeJSON(ctx context.Context, w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(ctx context.Context, w http.ResponseWriter, code, message string, status int) {
	h.writeJSON(ctx, w, status, map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
		"correlationId": middleware.GetCorrelationID(ctx),
	})
}
