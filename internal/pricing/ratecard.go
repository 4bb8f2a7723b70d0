package pricing

import (
	"errors"
	"fmt"
)

// Tiered holds one value per rate class.
type Tiered struct {
	RateClass float64 `json:"rateClass"`
	Standard  float64 `json:"standard"`
}

// For returns the value for the given rate class flag.
func (t Tiered) For(rateClass bool) float64 {
	if rateClass {
		return t.RateClass
	}
	return t.Standard
}

// RateCard contains the business constants applied on top of the loaded cost.
type RateCard struct {
	DeliveryFee          Tiered  `json:"deliveryFee"`
	ExpeditedDeliveryFee float64 `json:"expeditedDeliveryFee"`
	HaulFee              Tiered  `json:"haulFee"`
	Markup               Tiered  `json:"markup"`
	PriceIncrement       float64 `json:"priceIncrement"`
	RentIncrement        float64 `json:"rentIncrement"`
}

// DefaultRateCard returns the standard rate card.
func DefaultRateCard() RateCard {
	return RateCard{
		DeliveryFee:          Tiered{RateClass: 20, Standard: 25},
		ExpeditedDeliveryFee: 75,
		HaulFee:              Tiered{RateClass: 85, Standard: 125},
		Markup:               Tiered{RateClass: 1.03, Standard: 1.04},
		PriceIncrement:       5,
		RentIncrement:        1,
	}
}

// ErrInvalidRateCard is returned by Validate for unusable rate cards.
var ErrInvalidRateCard = errors.New("invalid rate card")

// Validate rejects negative fees, non-positive markups and non-positive rounding increments.
func (rc RateCard) Validate() error {
	fees := []struct {
		name  string
		value float64
	}{
		{"delivery_fee_rca", rc.DeliveryFee.RateClass},
		{"delivery_fee_standard", rc.DeliveryFee.Standard},
		{"expedited_delivery_fee", rc.ExpeditedDeliveryFee},
		{"haul_fee_rca", rc.HaulFee.RateClass},
		{"haul_fee_standard", rc.HaulFee.Standard},
	}
	for _, f := range fees {
		if !(f.value >= 0) {
			return fmt.Errorf("%w: %s must be greater than or equal to 0", ErrInvalidRateCard, f.name)
		}
	}

	positives := []struct {
		name  string
		value float64
	}{
		{"markup_rca", rc.Markup.RateClass},
		{"markup_standard", rc.Markup.Standard},
		{"price_increment", rc.PriceIncrement},
		{"rent_increment", rc.RentIncrement},
	}
	for _, p := range positives {
		if !(p.value > 0) {
			return fmt.Errorf("%w: %s must be greater than 0", ErrInvalidRateCard, p.name)
		}
	}

	return nil
}
