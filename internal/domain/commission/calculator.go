package commission

import "fmt"

// RateTable indexes service rates by category.
type RateTable map[string]ServiceRate

// NewRateTable builds a table from a list of rates.
func NewRateTable(rates []ServiceRate) RateTable {
	table := make(RateTable, len(rates))
	for _, r := range rates {
		table[r.ServiceCategory] = r
	}
	return table
}

// ComputeCommission snapshots the split configured for serviceCategory.
// The total is the sum of the three shares so the split always balances,
// even for rates saved without strict validation.
func ComputeCommission(serviceCategory string, rates RateTable) (Amounts, error) {
	rate, ok := rates[serviceCategory]
	if !ok {
		return Amounts{}, fmt.Errorf("%w: %q", ErrUnknownServiceCategory, serviceCategory)
	}
	if rate.SalesmanCommission < 0 || rate.OverrideCommission < 0 || rate.CorpCommission < 0 {
		return Amounts{}, fmt.Errorf("rate %q: %w", serviceCategory, ErrNegativeAmount)
	}

	return Amounts{
		Total:    rate.SplitTotal(),
		Salesman: rate.SalesmanCommission,
		Override: rate.OverrideCommission,
		Corp:     rate.CorpCommission,
	}, nil
}

// ValidateRate checks a rate before it is saved. With strict set the split
// must add up to the base cost exactly.
func ValidateRate(rate ServiceRate, strict bool) error {
	if rate.BaseCost < 0 || rate.SalesmanCommission < 0 || rate.OverrideCommission < 0 || rate.CorpCommission < 0 {
		return ErrNegativeAmount
	}
	if strict && rate.SplitTotal() != rate.BaseCost {
		return fmt.Errorf("%w: split %d, base cost %d", ErrUnbalancedRate, rate.SplitTotal(), rate.BaseCost)
	}
	return nil
}

// ValidateAmounts checks a split handed in by a caller before it is stored.
func ValidateAmounts(a Amounts) error {
	if a.Salesman < 0 || a.Override < 0 || a.Corp < 0 || a.Total < 0 {
		return ErrNegativeAmount
	}
	if !a.Balanced() {
		return ErrUnbalancedAmounts
	}
	return nil
}
