// Package pricing computes the cost to us (CTU) and price to customer (PTC) for the
// delivery, haul and rent line items of a dumpster rental.
package pricing

import "math"

// Result is the output of every line-item formula.
type Result struct {
	// CTU is the fuel and tax loaded cost before markup.
	CTU float64 `json:"ctu"`
	// PTC is the rounded price charged to the customer.
	PTC float64 `json:"ptc"`
}

// RoundUp rounds value up to the nearest multiple. A non-positive multiple returns value unchanged.
func RoundUp(value, multiple float64) float64 {
	if !(multiple > 0) {
		return value
	}
	return math.Ceil(value/multiple) * multiple
}

// ComputeCTU loads cost with the fuel and tax surcharges, both given as percentages.
func ComputeCTU(cost, fuelPercent, taxPercent float64) float64 {
	return cost * (1 + fuelPercent/100) * (1 + taxPercent/100)
}

// ComputeDelivery prices delivery using the default rate card.
func ComputeDelivery(cost, fuelPercent, taxPercent float64, rateClass, expedited bool) Result {
	return DefaultRateCard().ComputeDelivery(cost, fuelPercent, taxPercent, rateClass, expedited)
}

// ComputeHaul prices the haul using the default rate card.
func ComputeHaul(mode HaulMode, cost, fuelPercent, taxPercent float64, rateClass bool, expectedTons, thresholdTons, tonnageCost float64) Result {
	return DefaultRateCard().ComputeHaul(mode, cost, fuelPercent, taxPercent, rateClass, expectedTons, thresholdTons, tonnageCost)
}

// ComputeRent prices rent using the default rate card.
func ComputeRent(cost, taxPercent float64, rateClass bool) Result {
	return DefaultRateCard().ComputeRent(cost, taxPercent, rateClass)
}

// ComputeDelivery prices delivery. Expedited delivery carries a flat fee regardless of rate
// class; the markup still follows the rate class.
func (rc RateCard) ComputeDelivery(cost, fuelPercent, taxPercent float64, rateClass, expedited bool) Result {
	fee := rc.DeliveryFee.For(rateClass)
	if expedited {
		fee = rc.ExpeditedDeliveryFee
	}
	return rc.markup(ComputeCTU(cost, fuelPercent, taxPercent), fee, rateClass)
}

// ComputeHaul prices the haul for mode. thresholdTons is the minimum tonnage for HaulPlus and
// the included tonnage for Inclusion; tonnage figures are ignored for FlatRate.
func (rc RateCard) ComputeHaul(mode HaulMode, cost, fuelPercent, taxPercent float64, rateClass bool, expectedTons, thresholdTons, tonnageCost float64) Result {
	base := cost
	switch mode {
	case FlatRate:
	case HaulPlus, Inclusion:
		if overage := overageTons(expectedTons, thresholdTons); overage > 0 {
			// Explicit conversion keeps the product from being fused into the addition.
			base = cost + float64(overage*tonnageCost)
		}
	default:
		return Result{}
	}
	return rc.markup(ComputeCTU(base, fuelPercent, taxPercent), rc.HaulFee.For(rateClass), rateClass)
}

// ComputeRent prices rent. Rent carries tax but no fuel surcharge and rounds to RentIncrement.
func (rc RateCard) ComputeRent(cost, taxPercent float64, rateClass bool) Result {
	ctu := cost * (1 + taxPercent/100)
	return Result{
		CTU: ctu,
		PTC: RoundUp(ctu*rc.Markup.For(rateClass), rc.RentIncrement),
	}
}

func (rc RateCard) markup(ctu, fee float64, rateClass bool) Result {
	return Result{
		CTU: ctu,
		PTC: RoundUp((ctu+fee)*rc.Markup.For(rateClass), rc.PriceIncrement),
	}
}

// overageTons is the tonnage above threshold, never negative.
func overageTons(expected, threshold float64) float64 {
	if expected > threshold {
		return expected - threshold
	}
	return 0
}
