package compare

import (
	"sort"

	"github.com/shopspring/decimal"
)

// summarize computes delta statistics over matched pairs. CountMatches
// counts every identity match; mean and median cover only pairs with equal
// currencies, since a cross-currency delta is meaningless. Statistics do not
// depend on input order.
func summarize(matches []ComparisonMatch) ComparisonSummary {
	summary := ComparisonSummary{
		CountMatches: len(matches),
		AvgDelta:     NewAmount(decimal.Zero),
		MedianDelta:  NewAmount(decimal.Zero),
	}

	deltas := make([]decimal.Decimal, 0, len(matches))
	for _, match := range matches {
		if match.CurrencyMismatch {
			continue
		}
		deltas = append(deltas, match.PriceDelta.Value())
	}
	if len(deltas) == 0 {
		return summary
	}

	sum := decimal.Zero
	for _, delta := range deltas {
		sum = sum.Add(delta)
	}
	count := decimal.NewFromInt(int64(len(deltas)))
	summary.AvgDelta = NewAmount(sum.Div(count))

	sort.Slice(deltas, func(i, j int) bool { return deltas[i].LessThan(deltas[j]) })
	mid := len(deltas) / 2
	if len(deltas)%2 == 1 {
		summary.MedianDelta = NewAmount(deltas[mid])
	} else {
		two := decimal.NewFromInt(2)
		summary.MedianDelta = NewAmount(deltas[mid-1].Add(deltas[mid]).Div(two))
	}
	return summary
}
