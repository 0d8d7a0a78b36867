package compare

// Compare runs the full pipeline over two record sequences: normalization,
// key matching, price deltas and summary statistics. It is a pure function;
// the result owns its slices and does not alias the inputs.
//
// Matching is exact equality on the normalized key. Records sharing a key
// are paired positionally (first unmatched in A with first unmatched in B),
// which keeps duplicate line items deterministic. Records that fail
// normalization never match and land in their only bucket with a diagnostic.
func Compare(itemsA, itemsB []ContractItem) ComparisonResult {
	normA := normalizeAll(itemsA)
	normB := normalizeAll(itemsB)

	// Unconsumed B indices per key, in input order.
	bucketsB := make(map[MatchKey][]int)
	for i, rec := range normB {
		if rec.diagnostic != "" {
			continue
		}
		bucketsB[rec.key] = append(bucketsB[rec.key], i)
	}

	pairedA := make([]bool, len(itemsA))
	pairedB := make([]bool, len(itemsB))
	matches := make([]ComparisonMatch, 0, min(len(itemsA), len(itemsB)))
	for i, rec := range normA {
		if rec.diagnostic != "" {
			continue
		}
		queue := bucketsB[rec.key]
		if len(queue) == 0 {
			continue
		}
		j := queue[0]
		bucketsB[rec.key] = queue[1:]
		pairedA[i] = true
		pairedB[j] = true
		matches = append(matches, pairMatch(rec.key, itemsA[i], itemsB[j]))
	}

	return ComparisonResult{
		ItemsA:  append([]ContractItem(nil), itemsA...),
		ItemsB:  append([]ContractItem(nil), itemsB...),
		Matches: matches,
		OnlyInA: collectUnmatched(itemsA, normA, pairedA),
		OnlyInB: collectUnmatched(itemsB, normB, pairedB),
		Summary: summarize(matches),
	}
}

type normalizedRecord struct {
	key        MatchKey
	diagnostic string
}

func normalizeAll(items []ContractItem) []normalizedRecord {
	records := make([]normalizedRecord, len(items))
	for i, item := range items {
		records[i].key, records[i].diagnostic = normalizeItem(item)
	}
	return records
}

// pairMatch builds the match for one A/B pair. The delta is exact decimal
// subtraction; when the currencies differ the pair is flagged and the delta
// must not be treated as comparable.
func pairMatch(key MatchKey, a, b ContractItem) ComparisonMatch {
	currencyA := NormalizeCurrency(a.Currency)
	currencyB := NormalizeCurrency(b.Currency)
	return ComparisonMatch{
		HotelName:        key.HotelName,
		RoomType:         key.RoomType,
		PeriodStart:      key.PeriodStart,
		PeriodEnd:        key.PeriodEnd,
		PriceA:           a.Price,
		PriceB:           b.Price,
		Currency:         currencyA,
		PriceDelta:       NewAmount(b.Price.Value().Sub(a.Price.Value())),
		CurrencyMismatch: currencyA != currencyB,
	}
}

func collectUnmatched(items []ContractItem, records []normalizedRecord, paired []bool) []UnmatchedItem {
	unmatched := make([]UnmatchedItem, 0)
	for i, item := range items {
		if paired[i] {
			continue
		}
		unmatched = append(unmatched, UnmatchedItem{
			ContractItem: item,
			Diagnostic:   records[i].diagnostic,
		})
	}
	return unmatched
}
