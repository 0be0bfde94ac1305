package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"samsariya/internal/dto"
	apperrors "samsariya/internal/errors"
)

const defaultPeriod = "week"

type AnalyticsUseCase interface {
	Summary(ctx context.Context, period string) (*dto.AnalyticsSummary, error)
	Earnings(ctx context.Context, period string) (int, error)
}

type AnalyticsController struct {
	useCase AnalyticsUseCase
	logger  *zap.Logger
}

func NewAnalyticsController(useCase AnalyticsUseCase, logger *zap.Logger) *AnalyticsController {
	return &AnalyticsController{
		useCase: useCase,
		logger:  logger,
	}
}

func (c *AnalyticsController) HandleSummary(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	period := r.URL.Query().Get("period")
	if period == "" {
		period = defaultPeriod
	}

	summary, err := c.useCase.Summary(r.Context(), period)
	if err != nil {
		c.handleUseCaseError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, dto.SummaryResponse{
		TraceID: traceID,
		Summary: *summary,
	})
}

func (c *AnalyticsController) HandleEarnings(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	period := r.URL.Query().Get("period")
	if period == "" {
		period = defaultPeriod
	}

	revenue, err := c.useCase.Earnings(r.Context(), period)
	if err != nil {
		c.handleUseCaseError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, dto.EarningsResponse{
		TraceID: traceID,
		Period:  period,
		Revenue: revenue,
	})
}

func (c *AnalyticsController) handleUseCaseError(w http.ResponseWriter, traceID string, err error, logger *zap.Logger) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
			TraceID: traceID,
			Error:   "VALIDATION_ERROR",
			Message: ve.Message,
			Details: ve.Details,
		})
		return
	}

	logger.Error("unexpected error", zap.Error(err))
	c.writeJSON(w, http.StatusInternalServerError, errorResponse{
		TraceID: traceID,
		Error:   "INTERNAL_ERROR",
		Message: "an unexpected error occurred",
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

func (c *AnalyticsController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
