package dto

type ItemCount struct {
	Key      string `json:"key"`
	Quantity int    `json:"quantity"`
}

// AnalyticsSummary aggregates orders of one period. Cancelled orders are
// excluded from the totals; revenue counts completed orders only.
type AnalyticsSummary struct {
	Period            string      `json:"period"`
	OrdersTotal       int         `json:"ordersTotal"`
	OrdersCompleted   int         `json:"ordersCompleted"`
	RevenueCompleted  int         `json:"revenueCompleted"`
	AvgCheckCompleted int         `json:"avgCheckCompleted"`
	TopItems          []ItemCount `json:"topItems"`
}

type EarningsResponse struct {
	TraceID string `json:"traceId"`
	Period  string `json:"period"`
	Revenue int    `json:"revenue"`
}

type SummaryResponse struct {
	TraceID string           `json:"traceId"`
	Summary AnalyticsSummary `json:"summary"`
}
