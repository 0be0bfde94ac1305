package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"samsariya/internal/domain"
	"samsariya/internal/dto"
	apperrors "samsariya/internal/errors"
)

type StatusUseCase interface {
	Transition(ctx context.Context, orderID string, target domain.Status) (*domain.Order, error)
	Get(ctx context.Context, orderID string) (*domain.Order, error)
	ListNew(ctx context.Context) ([]*domain.Order, error)
}

type OrderController struct {
	useCase StatusUseCase
	logger  *zap.Logger
}

func NewOrderController(useCase StatusUseCase, logger *zap.Logger) *OrderController {
	return &OrderController{
		useCase: useCase,
		logger:  logger,
	}
}

func (c *OrderController) HandleListNew(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	orders, err := c.useCase.ListNew(r.Context())
	if err != nil {
		c.handleUseCaseError(w, traceID, err, logger)
		return
	}

	dtos := make([]dto.OrderDTO, len(orders))
	for i, order := range orders {
		dtos[i] = dto.NewOrderDTO(order)
	}

	c.writeJSON(w, http.StatusOK, dto.OrderListResponse{
		TraceID: traceID,
		Orders:  dtos,
		Count:   len(dtos),
	})
}

func (c *OrderController) HandleGet(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	orderID := chi.URLParam(r, "orderID")
	if orderID == "" {
		c.writeValidationError(w, traceID, "invalid orderID", apperrors.ValidationDetail{
			Field:   "orderID",
			Message: "orderID is required",
		})
		return
	}

	order, err := c.useCase.Get(r.Context(), orderID)
	if err != nil {
		c.handleUseCaseError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, dto.OrderDetailResponse{
		TraceID: traceID,
		Order:   dto.NewOrderDTO(order),
		Actions: domain.ActionsFor(order),
	})
}

func (c *OrderController) HandleTransition(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	orderID := chi.URLParam(r, "orderID")
	if orderID == "" {
		c.writeValidationError(w, traceID, "invalid orderID", apperrors.ValidationDetail{
			Field:   "orderID",
			Message: "orderID is required",
		})
		return
	}

	var req dto.TransitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeValidationError(w, traceID, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	target, ok := domain.ParseStatus(req.Status)
	if !ok {
		c.writeValidationError(w, traceID, "invalid status", apperrors.ValidationDetail{
			Field:   "status",
			Message: "status must be one of: new, accepted, in_progress, ready, completed, cancelled, payment_failed",
		})
		return
	}

	order, err := c.useCase.Transition(r.Context(), orderID, target)
	if err != nil {
		c.handleUseCaseError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, dto.TransitionResponse{
		TraceID:   traceID,
		Order:     dto.NewOrderDTO(order),
		Timestamp: time.Now().UTC(),
	})
}

func (c *OrderController) handleUseCaseError(w http.ResponseWriter, traceID string, err error, logger *zap.Logger) {
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

func (c *OrderController) writeErrorResponse(w http.ResponseWriter, traceID string, status int, code, message string) {
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

func (c *OrderController) writeValidationError(w http.ResponseWriter, traceID string, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		TraceID: traceID,
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

func (c *OrderController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
