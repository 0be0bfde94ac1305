package dto

type ItemAvailability struct {
	Key       string `json:"key"`
	Available bool   `json:"available"`
}

type InventoryListResponse struct {
	TraceID string             `json:"traceId"`
	Items   []ItemAvailability `json:"items"`
}

type AddItemRequest struct {
	Key   string `json:"key"`
	Name  string `json:"name,omitempty"`
	Emoji string `json:"emoji,omitempty"`
	Price int    `json:"price,omitempty"`
}

type AddItemResponse struct {
	TraceID string `json:"traceId"`
	ID      string `json:"id"`
	Key     string `json:"key"`
}

type SetAvailabilityRequest struct {
	Available *bool `json:"available"`
}

type AvailabilityResponse struct {
	TraceID   string `json:"traceId"`
	Key       string `json:"key"`
	Available bool   `json:"available"`
}
