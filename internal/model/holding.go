package model

import "time"

// Holding represents one tracked security position owned by an account.
type Holding struct {
	ID          string    `json:"id"`
	AccountID   string    `json:"accountId"`
	Symbol      string    `json:"symbol"`
	DisplayName string    `json:"displayName"`
	Quantity    float64   `json:"quantity"`
	CreatedAt   time.Time `json:"createdAt"`
}
