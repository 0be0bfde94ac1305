package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"samsariya/internal/domain"
	"samsariya/internal/dto"
	apperrors "samsariya/internal/errors"
)

type AvailabilityUseCase interface {
	List(ctx context.Context) ([]dto.ItemAvailability, error)
	Set(ctx context.Context, key string, enabled bool) error
	Toggle(ctx context.Context, key string) (bool, error)
	Add(ctx context.Context, item *domain.InventoryItem) (string, error)
	Remove(ctx context.Context, key string) error
}

type InventoryController struct {
	useCase AvailabilityUseCase
	logger  *zap.Logger
}

func NewInventoryController(useCase AvailabilityUseCase, logger *zap.Logger) *InventoryController {
	return &InventoryController{
		useCase: useCase,
		logger:  logger,
	}
}

func (c *InventoryController) HandleList(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	items, err := c.useCase.List(r.Context())
	if err != nil {
		c.handleUseCaseError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, dto.InventoryListResponse{
		TraceID: traceID,
		Items:   items,
	})
}

func (c *InventoryController) HandleAdd(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var req dto.AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeValidationError(w, traceID, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	var details []apperrors.ValidationDetail
	if req.Key == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "key",
			Message: "key is required",
		})
	}
	if req.Price < 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "price",
			Message: "price must be non-negative",
		})
	}
	if len(details) > 0 {
		c.writeValidationError(w, traceID, "validation failed", details...)
		return
	}

	item := &domain.InventoryItem{
		Key:   req.Key,
		Name:  req.Name,
		Emoji: req.Emoji,
		Price: req.Price,
	}
	id, err := c.useCase.Add(r.Context(), item)
	if err != nil {
		c.handleUseCaseError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusCreated, dto.AddItemResponse{
		TraceID: traceID,
		ID:      id,
		Key:     req.Key,
	})
}

func (c *InventoryController) HandleRemove(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	key := chi.URLParam(r, "key")
	if err := c.useCase.Remove(r.Context(), key); err != nil {
		c.handleUseCaseError(w, traceID, err, logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (c *InventoryController) HandleSetAvailability(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	key := chi.URLParam(r, "key")

	var req dto.SetAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeValidationError(w, traceID, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}
	if req.Available == nil {
		c.writeValidationError(w, traceID, "invalid request", apperrors.ValidationDetail{
			Field:   "available",
			Message: "available is required",
		})
		return
	}

	if err := c.useCase.Set(r.Context(), key, *req.Available); err != nil {
		c.handleUseCaseError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, dto.AvailabilityResponse{
		TraceID:   traceID,
		Key:       key,
		Available: *req.Available,
	})
}

func (c *InventoryController) HandleToggle(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	key := chi.URLParam(r, "key")
	available, err := c.useCase.Toggle(r.Context(), key)
	if err != nil {
		c.handleUseCaseError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, dto.AvailabilityResponse{
		TraceID:   traceID,
		Key:       key,
		Available: available,
	})
}

func (c *InventoryController) handleUseCaseError(w http.ResponseWriter, traceID string, err error, logger *zap.Logger) {
	if _, ok := apperrors.IsNotFoundError(err); ok {
		c.writeErrorResponse(w, traceID, http.StatusNotFound, "NOT_FOUND", err.Error())
		return
	}

	if _, ok := apperrors.IsConflictError(err); ok {
		c.writeErrorResponse(w, traceID, http.StatusConflict, "CONFLICT", err.Error())
		return
	}

	logger.Error("unexpected error", zap.Error(err))
	c.writeErrorResponse(w, traceID, http.StatusInternalServerError, "INTERNAL_ERROR", "an unexpected error occurred")
}

type errorResponse struct {
	TraceID string `json:"traceId"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (c *InventoryController) writeErrorResponse(w http.ResponseWriter, traceID string, status int, code, message string) {
	c.writeJSON(w, status, errorResponse{
		TraceID: traceID,
		Error:   code,
		Message: message,
	})
}

type validationErrorResponse struct {
	TraceID string                       `json:"traceId"`
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details"`
}

func (c *InventoryController) writeValidationError(w http.ResponseWriter, traceID string, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		TraceID: traceID,
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

func (c *InventoryController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
