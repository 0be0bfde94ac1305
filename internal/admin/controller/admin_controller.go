package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"samsariya/internal/config"
	"samsariya/internal/domain"
	"samsariya/internal/dto"
	apperrors "samsariya/internal/errors"
	"samsariya/internal/notifier"
)

type AdminDirectory interface {
	FindAll(ctx context.Context) ([]domain.Admin, error)
}

type AdminController struct {
	directory AdminDirectory
	channel   notifier.Channel
	cfg       *config.Config
	logger    *zap.Logger
}

func NewAdminController(directory AdminDirectory, channel notifier.Channel, cfg *config.Config, logger *zap.Logger) *AdminController {
	return &AdminController{
		directory: directory,
		channel:   channel,
		cfg:       cfg,
		logger:    logger,
	}
}

// HandleConfig reports the operational settings an admin can see: work
// hours plus admins from both the environment and the directory.
func (c *AdminController) HandleConfig(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	admins, err := c.directory.FindAll(r.Context())
	if err != nil {
		logger.Error("listing admins failed", zap.Error(err))
		c.writeJSON(w, http.StatusInternalServerError, errorResponse{
			TraceID: traceID,
			Error:   "INTERNAL_ERROR",
			Message: "an unexpected error occurred",
		})
		return
	}

	names := make([]string, len(admins))
	for i, admin := range admins {
		names[i] = admin.Name
	}

	c.writeJSON(w, http.StatusOK, dto.ConfigResponse{
		TraceID:   traceID,
		WorkHours: c.cfg.WorkHours,
		AdminIDs:  c.cfg.Admins.IDs,
		Admins:    names,
	})
}

// HandleBroadcast sends a text to every configured admin. Per-recipient
// failures are counted, not fatal.
func (c *AdminController) HandleBroadcast(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var req dto.BroadcastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeValidationError(w, traceID, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}
	if req.Text == "" {
		c.writeValidationError(w, traceID, "invalid request", apperrors.ValidationDetail{
			Field:   "text",
			Message: "text is required",
		})
		return
	}

	sent, failed := 0, 0
	for _, adminID := range c.cfg.Admins.IDs {
		if _, err := c.channel.Send(r.Context(), adminID, req.Text); err != nil {
			logger.Warn("broadcast to admin failed", zap.Int64("adminId", adminID), zap.Error(err))
			failed++
			continue
		}
		sent++
	}

	c.writeJSON(w, http.StatusOK, dto.BroadcastResponse{
		TraceID: traceID,
		Sent:    sent,
		Failed:  failed,
	})
}

type errorResponse struct {
	TraceID string `json:"traceId"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

type validationErrorResponse struct {
	TraceID string                       `json:"traceId"`
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details"`
}

func (c *AdminController) writeValidationError(w http.ResponseWriter, traceID string, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		TraceID: traceID,
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

func (c *AdminController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
