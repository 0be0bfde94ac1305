package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"samsariya/internal/config"
	"samsariya/internal/domain"
)

// Row is the flat record the bookkeeping webhook expects.
type Row struct {
	Timestamp        string `json:"timestamp"`
	OrderID          string `json:"order_id"`
	CustomerName     string `json:"customer_name"`
	CustomerPhone    string `json:"customer_phone"`
	CustomerAddress  string `json:"customer_address"`
	Total            string `json:"total"`
	PaymentMethod    string `json:"payment_method"`
	Status           string `json:"status"`
	SamsaDetails     string `json:"samsa_details"`
	PackagingDetails string `json:"packaging_details"`
}

// Client pushes order rows to an external spreadsheet webhook. Delivery is
// best effort: any failure is reported as false and the caller decides
// whether to retry on a later pass.
type Client struct {
	webhookURL string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(cfg config.SheetsConfig, logger *zap.Logger) *Client {
	return &Client{
		webhookURL: cfg.WebhookURL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

// Push posts a single order row. Returns true only on a 2xx response.
func (c *Client) Push(ctx context.Context, order *domain.Order) bool {
	if c.webhookURL == "" {
		c.logger.Debug("sheet webhook not configured, skipping push")
		return false
	}

	body, err := json.Marshal(BuildRow(order))
	if err != nil {
		c.logger.Error("encoding sheet row failed", zap.Error(err))
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(body))
	if err != nil {
		c.logger.Error("building sheet request failed", zap.Error(err))
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("sheet webhook request failed", zap.Error(err))
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("sheet webhook rejected row",
			zap.String("orderId", order.ID.Hex()),
			zap.Int("status", resp.StatusCode))
		return false
	}
	return true
}

// BuildRow flattens an order into the webhook's record shape.
func BuildRow(order *domain.Order) Row {
	samsa, packaging := splitItems(order.Items)
	return Row{
		Timestamp:        order.CreatedAt.Format(time.RFC3339),
		OrderID:          order.ID.Hex(),
		CustomerName:     order.Contact.Name,
		CustomerPhone:    order.Contact.Phone,
		CustomerAddress:  order.Contact.Address,
		Total:            fmt.Sprintf("%d", order.Total),
		PaymentMethod:    normalizeMethod(order.Method),
		Status:           string(order.Status),
		SamsaDetails:     samsa,
		PackagingDetails: packaging,
	}
}

// splitItems separates food positions from packaging positions. Packaging
// keys are the ones mentioning a bag or a box.
func splitItems(items map[string]int) (string, string) {
	var foodKeys, packKeys []string
	for key := range items {
		lower := strings.ToLower(key)
		if strings.Contains(lower, "пакет") || strings.Contains(lower, "короб") {
			packKeys = append(packKeys, key)
		} else {
			foodKeys = append(foodKeys, key)
		}
	}
	sort.Strings(foodKeys)
	sort.Strings(packKeys)

	return joinItems(foodKeys, items), joinItems(packKeys, items)
}

func joinItems(keys []string, items map[string]int) string {
	parts := make([]string, len(keys))
	for i, key := range keys {
		parts[i] = fmt.Sprintf("%s: %d шт", key, items[key])
	}
	return strings.Join(parts, ", ")
}

// normalizeMethod strips the payment emoji the client bot prepends.
func normalizeMethod(method string) string {
	method = strings.ReplaceAll(method, "💳", "")
	method = strings.ReplaceAll(method, "💵", "")
	return strings.TrimSpace(method)
}
