package compare

import (
	"strings"
	"unicode"
)

// Punctuation that commonly varies between renditions of the same name,
// e.g. "Sea-View" vs "Sea View" vs "Sea/View". Folded to a single space.
const foldedPunctuation = "-_/\\.,;:!?'\"`()[]{}&+*"

// NormalizeText canonicalizes a free-text key field: case-folded, common
// punctuation folded to spaces, internal whitespace collapsed, trimmed.
// Idempotent: normalizing an already normalized value is a no-op.
func NormalizeText(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	pendingSpace := false
	for _, r := range strings.ToLower(value) {
		if unicode.IsSpace(r) || strings.ContainsRune(foldedPunctuation, r) {
			pendingSpace = true
			continue
		}
		if pendingSpace && b.Len() > 0 {
			b.WriteByte(' ')
		}
		pendingSpace = false
		b.WriteRune(r)
	}
	return b.String()
}

// NormalizeCurrency uppercases and trims a currency code.
func NormalizeCurrency(value string) string {
	return strings.ToUpper(strings.TrimSpace(value))
}

// MatchKey identifies an offer after normalization. Two records describe the
// same offer if and only if their keys are equal.
type MatchKey struct {
	HotelName   string
	RoomType    string
	PeriodStart Date
	PeriodEnd   Date
}

// normalizeItem validates and canonicalizes one record for matching. The
// returned diagnostic is empty when the record is usable; otherwise the key
// is zero and the record must be routed to its only bucket.
func normalizeItem(item ContractItem) (MatchKey, string) {
	start, err := ParseDate(item.PeriodStart)
	if err != nil {
		return MatchKey{}, DiagStartUnparsable
	}
	end, err := ParseDate(item.PeriodEnd)
	if err != nil {
		return MatchKey{}, DiagEndUnparsable
	}
	if start.After(end) {
		return MatchKey{}, DiagPeriodInverted
	}
	if !item.Price.Valid() {
		return MatchKey{}, DiagPriceNotNumeric
	}
	if item.Price.Value().IsNegative() {
		return MatchKey{}, DiagPriceNegative
	}
	return MatchKey{
		HotelName:   NormalizeText(item.HotelName),
		RoomType:    NormalizeText(item.RoomType),
		PeriodStart: start,
		PeriodEnd:   end,
	}, ""
}
