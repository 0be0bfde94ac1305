package dto

import (
	"time"

	"samsariya/internal/domain"
)

type OrderDTO struct {
	ID                   string         `json:"id"`
	UserID               int64          `json:"userId"`
	Items                map[string]int `json:"items"`
	Total                int            `json:"total"`
	Contact              domain.Contact `json:"contact"`
	Delivery             string         `json:"delivery"`
	Time                 string         `json:"time"`
	Method               string         `json:"method"`
	Summary              string         `json:"summary,omitempty"`
	Status               string         `json:"status"`
	PaymentVerified      *bool          `json:"paymentVerified,omitempty"`
	PaymentAmount        *int           `json:"paymentAmount,omitempty"`
	RequiresPaymentCheck bool           `json:"requiresPaymentCheck"`
	SheetSynced          bool           `json:"sheetSynced"`
	CreatedAt            time.Time      `json:"createdAt"`
	UpdatedAt            time.Time      `json:"updatedAt"`
}

func NewOrderDTO(o *domain.Order) OrderDTO {
	return OrderDTO{
		ID:                   o.ID.Hex(),
		UserID:               o.UserID,
		Items:                o.Items,
		Total:                o.Total,
		Contact:              o.Contact,
		Delivery:             o.Delivery,
		Time:                 o.Time,
		Method:               o.Method,
		Summary:              o.Summary,
		Status:               string(o.Status),
		PaymentVerified:      o.PaymentVerified,
		PaymentAmount:        o.PaymentAmount,
		RequiresPaymentCheck: o.NeedsPaymentCheck,
		SheetSynced:          o.SheetIsSynced(),
		CreatedAt:            o.CreatedAt,
		UpdatedAt:            o.UpdatedAt,
	}
}

type OrderListResponse struct {
	TraceID string     `json:"traceId"`
	Orders  []OrderDTO `json:"orders"`
	Count   int        `json:"count"`
}

type OrderDetailResponse struct {
	TraceID string          `json:"traceId"`
	Order   OrderDTO        `json:"order"`
	Actions []domain.Action `json:"actions"`
}

type TransitionRequest struct {
	Status string `json:"status"`
}

type TransitionResponse struct {
	TraceID   string    `json:"traceId"`
	Order     OrderDTO  `json:"order"`
	Timestamp time.Time `json:"timestamp"`
}
