package compare

// ComparisonMatch is one pair of records sharing the same identity key.
// Hotel, room and period come from the normalized key, not either raw input.
type ComparisonMatch struct {
	HotelName        string `json:"hotel_name"`
	RoomType         string `json:"room_type"`
	PeriodStart      Date   `json:"period_start"`
	PeriodEnd        Date   `json:"period_end"`
	PriceA           Amount `json:"price_a"`
	PriceB           Amount `json:"price_b"`
	Currency         string `json:"currency"`
	PriceDelta       Amount `json:"price_delta"`
	CurrencyMismatch bool   `json:"currency_mismatch,omitempty"`
}

// ComparisonSummary aggregates deltas over matched pairs. Pairs with
// mismatched currencies count as matches but are excluded from the delta
// statistics.
type ComparisonSummary struct {
	CountMatches int    `json:"count_matches"`
	AvgDelta     Amount `json:"avg_delta"`
	MedianDelta  Amount `json:"median_delta"`
}

// ComparisonResult partitions both input sequences into matched pairs and
// single-side leftovers. Every input record appears exactly once across
// matches and its only bucket; bucket order follows input order.
type ComparisonResult struct {
	ItemsA  []ContractItem    `json:"items_a"`
	ItemsB  []ContractItem    `json:"items_b"`
	Matches []ComparisonMatch `json:"matches"`
	OnlyInA []UnmatchedItem   `json:"only_in_a"`
	OnlyInB []UnmatchedItem   `json:"only_in_b"`
	Summary ComparisonSummary `json:"summary"`
}
