package compare

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount carries a monetary value as extracted from a document. Extraction
// output is not trusted to be numeric, so the raw text is preserved: an
// invalid amount still round-trips through JSON and is surfaced to the
// caller as a malformed-record diagnostic instead of being dropped.
type Amount struct {
	raw   string
	value decimal.Decimal
	valid bool
}

// NewAmount wraps an exact decimal value.
func NewAmount(value decimal.Decimal) Amount {
	return Amount{raw: value.String(), value: value, valid: true}
}

// AmountFromString parses a price cell or JSON fragment. Thousands
// separators and surrounding whitespace are tolerated.
func AmountFromString(raw string) Amount {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	value, err := decimal.NewFromString(cleaned)
	if err != nil {
		return Amount{raw: raw}
	}
	return Amount{raw: raw, value: value, valid: true}
}

// Valid reports whether the amount parsed as a number.
func (a Amount) Valid() bool { return a.valid }

// Value returns the parsed decimal value; zero when invalid.
func (a Amount) Value() decimal.Decimal { return a.value }

// Raw returns the original textual form.
func (a Amount) Raw() string { return a.raw }

// String returns the canonical decimal form, or the raw text when invalid.
func (a Amount) String() string {
	if a.valid {
		return a.value.String()
	}
	return a.raw
}

// MarshalJSON writes a plain JSON number; invalid amounts are written as the
// original string so no input value is silently lost.
func (a Amount) MarshalJSON() ([]byte, error) {
	if a.valid {
		return []byte(a.value.String()), nil
	}
	return json.Marshal(a.raw)
}

// UnmarshalJSON accepts either a JSON number or a string.
func (a *Amount) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		*a = AmountFromString(raw)
		return nil
	}
	if string(data) == "null" {
		*a = Amount{}
		return nil
	}
	*a = AmountFromString(string(data))
	return nil
}
