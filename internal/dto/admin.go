package dto

type ConfigResponse struct {
	TraceID   string   `json:"traceId"`
	WorkHours string   `json:"workHours"`
	AdminIDs  []int64  `json:"adminIds"`
	Admins    []string `json:"admins"`
}

type BroadcastRequest struct {
	Text string `json:"text"`
}

type BroadcastResponse struct {
	TraceID string `json:"traceId"`
	Sent    int    `json:"sent"`
	Failed  int    `json:"failed"`
}
