package model

// Quote is a current market price for one symbol as reported by the quote
// gateway, together with the currency it is denominated in.
type Quote struct {
	Symbol   string  `json:"symbol"`
	Price    float64 `json:"price"`
	Currency string  `json:"currency"`
}
