package fixtures

import "github.com/AlexNeilson02/Global-Home-Solutions-Site-sub001/internal/domain/commission"

// ==========================================
// DEFAULT SERVICE RATES
// ==========================================

// dollars converts whole dollars to cents
func dollars(d int64) int64 { return d * 100 }

// GetDefaultServiceRates returns the launch rate table. Each split adds up
// to its base cost, so the set passes strict rate validation.
func GetDefaultServiceRates() []commission.ServiceRate {
	return []commission.ServiceRate{
		{ServiceCategory: "Roofing", BaseCost: dollars(1000), SalesmanCommission: dollars(500), OverrideCommission: dollars(100), CorpCommission: dollars(400)},
		{ServiceCategory: "Plumbing", BaseCost: dollars(400), SalesmanCommission: dollars(200), OverrideCommission: dollars(40), CorpCommission: dollars(160)},
		{ServiceCategory: "Electrical", BaseCost: dollars(500), SalesmanCommission: dollars(250), OverrideCommission: dollars(50), CorpCommission: dollars(200)},
		{ServiceCategory: "HVAC", BaseCost: dollars(750), SalesmanCommission: dollars(375), OverrideCommission: dollars(75), CorpCommission: dollars(300)},
		{ServiceCategory: "Landscaping", BaseCost: dollars(300), SalesmanCommission: dollars(150), OverrideCommission: dollars(30), CorpCommission: dollars(120)},
		{ServiceCategory: "Painting", BaseCost: dollars(250), SalesmanCommission: dollars(125), OverrideCommission: dollars(25), CorpCommission: dollars(100)},
		{ServiceCategory: "Remodeling", BaseCost: dollars(1500), SalesmanCommission: dollars(750), OverrideCommission: dollars(150), CorpCommission: dollars(600)},
	}
}
