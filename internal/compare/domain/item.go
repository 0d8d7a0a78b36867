package compare

// ContractItem is one normalized pricing record as produced by extraction.
// Date fields stay textual until normalization so that unparsable values can
// be reported instead of rejected at decode time.
type ContractItem struct {
	HotelName   string `json:"hotel_name"`
	RoomType    string `json:"room_type"`
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
	Price       Amount `json:"price"`
	Currency    string `json:"currency"`
}

// UnmatchedItem is a record without a counterpart on the other side,
// optionally annotated with the reason it was excluded from matching.
type UnmatchedItem struct {
	ContractItem
	Diagnostic string `json:"diagnostic,omitempty"`
}
