package commission

import (
	"github.com/AlexNeilson02/Global-Home-Solutions-Site-sub001/internal/pkg/money"
	"github.com/shopspring/decimal"
)

// Summary - dashboard totals for one salesperson, override manager or the platform.
type Summary struct {
	Share              RecipientType
	TotalEarned        int64
	PendingCommissions int64
	PaidCommissions    int64
	TotalRecords       int64
	AverageCommission  int64
	BidRequests        int64
	PageVisits         int64
	ConversionRate     decimal.Decimal
}

// BuildSummary derives the dashboard figures. Both ratios are zero when
// their denominator is zero.
func BuildSummary(share RecipientType, totals Totals, leads LeadStats) Summary {
	return Summary{
		Share:              share,
		TotalEarned:        totals.Earned,
		PendingCommissions: totals.Pending,
		PaidCommissions:    totals.Paid,
		TotalRecords:       totals.Records,
		AverageCommission:  money.AverageCents(totals.Earned, totals.Records),
		BidRequests:        leads.BidRequests,
		PageVisits:         leads.PageVisits,
		ConversionRate:     money.Percent(totals.Records, leads.BidRequests),
	}
}
