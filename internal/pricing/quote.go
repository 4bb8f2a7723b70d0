package pricing

import (
	"math"
	"strings"
)

// Quote holds the three priced line items.
type Quote struct {
	Delivery Result `json:"delivery"`
	Haul     Result `json:"haul"`
	Rent     Result `json:"rent"`
}

// Row is one labelled line item.
type Row struct {
	Label string
	Result
}

// Rows returns the line items in display order.
func (q Quote) Rows() []Row {
	return []Row{
		{Label: "Delivery", Result: q.Delivery},
		{Label: "Haul", Result: q.Haul},
		{Label: "Rent", Result: q.Rent},
	}
}

// Check rejects quotes whose cost or price overflowed to a non-finite value.
func (q Quote) Check() error {
	for _, row := range q.Rows() {
		if !isFinite(row.CTU) || !isFinite(row.PTC) {
			return &InputError{Field: strings.ToLower(row.Label), Reason: "is too large to price"}
		}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Compute prices in with the default rate card.
func Compute(in Input) Quote {
	return DefaultRateCard().Quote(in)
}

// Quote prices every line item of in.
func (rc RateCard) Quote(in Input) Quote {
	threshold := in.MinimumTons
	if in.Mode == Inclusion {
		threshold = in.IncludedTons
	}

	return Quote{
		Delivery: rc.ComputeDelivery(in.DeliveryCost, in.FuelPercent, in.TaxPercent, in.RateClass, in.Timing == Expedited),
		Haul:     rc.ComputeHaul(in.Mode, in.HaulCost, in.FuelPercent, in.TaxPercent, in.RateClass, in.ExpectedTons, threshold, in.TonnageCost),
		Rent:     rc.ComputeRent(in.RentCost, in.TaxPercent, in.RateClass),
	}
}
