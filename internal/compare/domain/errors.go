package compare

import "errors"

var (
	// ErrInvalidDate is returned when a date matches no accepted layout.
	ErrInvalidDate = errors.New("compare: invalid date")
)

// Diagnostic reasons attached to records excluded from matching.
const (
	DiagStartUnparsable = "period_start is not a parsable date"
	DiagEndUnparsable   = "period_end is not a parsable date"
	DiagPeriodInverted  = "period_start is after period_end"
	DiagPriceNotNumeric = "price is not numeric"
	DiagPriceNegative   = "price is negative"
)
