package fixtures

import (
	"testing"

	"github.com/AlexNeilson02/Global-Home-Solutions-Site-sub001/internal/domain/commission"
	"github.com/stretchr/testify/assert"
)

func TestGetDefaultServiceRates(t *testing.T) {
	rates := GetDefaultServiceRates()
	assert.Len(t, rates, 7)

	seen := map[string]bool{}
	for _, r := range rates {
		assert.False(t, seen[r.ServiceCategory], "duplicate category %s", r.ServiceCategory)
		seen[r.ServiceCategory] = true
		assert.NoError(t, commission.ValidateRate(r, true), r.ServiceCategory)
	}

	table := commission.NewRateTable(rates)
	amounts, err := commission.ComputeCommission("Roofing", table)
	assert.NoError(t, err)
	assert.Equal(t, commission.Amounts{Total: 100000, Salesman: 50000, Override: 10000, Corp: 40000}, amounts)
}
