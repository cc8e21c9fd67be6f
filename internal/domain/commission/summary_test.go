package commission

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildSummary_ZeroDenominators(t *testing.T) {
	s := BuildSummary(RecipientSalesperson, Totals{}, LeadStats{})

	assert.Equal(t, int64(0), s.TotalEarned)
	assert.Equal(t, int64(0), s.PendingCommissions)
	assert.Equal(t, int64(0), s.PaidCommissions)
	assert.Equal(t, int64(0), s.TotalRecords)
	assert.Equal(t, int64(0), s.AverageCommission)
	assert.True(t, s.ConversionRate.IsZero())
}

func TestBuildSummary(t *testing.T) {
	s := BuildSummary(RecipientSalesperson,
		Totals{Records: 3, Earned: 150000, Pending: 100000, Paid: 50000},
		LeadStats{BidRequests: 12, PageVisits: 40},
	)

	assert.Equal(t, int64(50000), s.AverageCommission)
	assert.Equal(t, "25.00", s.ConversionRate.StringFixed(2))
	assert.Equal(t, int64(40), s.PageVisits)
}

func TestSummaryResponse_FormatsCurrency(t *testing.T) {
	resp := ToSummaryResponse(BuildSummary(RecipientCorp, Totals{Records: 1, Earned: 45000, Paid: 45000}, LeadStats{}))

	assert.Equal(t, "corp", resp.Share)
	assert.Equal(t, "450.00", resp.TotalEarned.StringFixed(2))
	assert.Equal(t, "450.00", resp.PaidCommissions.StringFixed(2))
	assert.True(t, resp.PendingCommissions.IsZero())
}
