package yahoo

// Response represents the raw JSON response structure from the Yahoo Finance
// chart API. Only the fields the application consumes are mapped: the chart
// metadata carries the symbol, its trading currency and the latest regular
// market price, which is all a valuation refresh needs.
type Response struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Currency           string  `json:"currency"`
				Symbol             string  `json:"symbol"`
				ExchangeName       string  `json:"exchangeName"`
				LongName           string  `json:"longName"`
				Shortname          string  `json:"shortName"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
			} `json:"meta"`
		} `json:"result"`
		Error *string `json:"error"`
	} `json:"chart"`
}
