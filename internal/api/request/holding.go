package request

// CreateHoldingRequest represents the request body for adding a holding
type CreateHoldingRequest struct {
	Symbol      string  `json:"symbol"`
	DisplayName string  `json:"displayName"`
	Quantity    float64 `json:"quantity"`
}

// UpdateHoldingRequest represents the request body for editing a holding's quantity
type UpdateHoldingRequest struct {
	Quantity *float64 `json:"quantity"`
}
