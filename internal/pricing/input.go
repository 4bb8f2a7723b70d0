package pricing

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/spf13/cast"
)

var numericPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// ErrInvalidInput matches every *InputError.
var ErrInvalidInput = errors.New("invalid input")

// InputError describes a rejected calculator field.
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func (e *InputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// ParseMode controls how malformed numeric text is treated.
type ParseMode int

const (
	// Strict rejects malformed, non-finite and out of range values.
	Strict ParseMode = iota
	// Lenient coerces malformed and non-finite text to zero and accepts any finite number.
	Lenient
)

// ParseParseMode parses "strict" or "lenient".
func ParseParseMode(s string) (ParseMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "strict":
		return Strict, nil
	case "lenient":
		return Lenient, nil
	default:
		return Strict, fmt.Errorf("unknown input mode %q", s)
	}
}

func (m ParseMode) String() string {
	if m == Lenient {
		return "lenient"
	}
	return "strict"
}

// Form field names shared by the calculator form and ParseInput.
const (
	FieldDeliveryCost = "delivery_cost"
	FieldHaulCost     = "haul_cost"
	FieldRentCost     = "rent_cost"
	FieldFuel         = "fuel"
	FieldTax          = "tax"
	FieldMode         = "mode"
	FieldExpectedTons = "expected_tons"
	FieldMinimumTons  = "minimum_tons"
	FieldIncludedTons = "included_tons"
	FieldTonnageCost  = "tonnage_cost"
	FieldRateClass    = "rca"
	FieldASAP         = "asap"
)

// Input is every value the calculator needs for one quote.
type Input struct {
	DeliveryCost float64
	HaulCost     float64
	RentCost     float64
	FuelPercent  float64
	TaxPercent   float64
	RateClass    bool
	Timing       ServiceTiming
	Mode         HaulMode
	ExpectedTons float64
	MinimumTons  float64
	IncludedTons float64
	TonnageCost  float64
}

// Validate applies the strict range checks to an already numeric Input.
func (in Input) Validate() error {
	amounts := []struct {
		field string
		value float64
	}{
		{FieldDeliveryCost, in.DeliveryCost},
		{FieldHaulCost, in.HaulCost},
		{FieldRentCost, in.RentCost},
		{FieldExpectedTons, in.ExpectedTons},
		{FieldMinimumTons, in.MinimumTons},
		{FieldIncludedTons, in.IncludedTons},
		{FieldTonnageCost, in.TonnageCost},
	}
	for _, a := range amounts {
		if err := checkAmount(a.value, a.field); err != nil {
			return err
		}
	}
	if err := checkPercent(in.FuelPercent, FieldFuel); err != nil {
		return err
	}
	if err := checkPercent(in.TaxPercent, FieldTax); err != nil {
		return err
	}

	switch in.Mode {
	case FlatRate, HaulPlus, Inclusion:
	default:
		return &InputError{Field: FieldMode, Reason: fmt.Sprintf("unknown haul mode %d", int(in.Mode))}
	}
	return nil
}

// Values is satisfied by url.Values.
type Values interface {
	Get(key string) string
}

// ParseInput reads the calculator fields from form values. Blank fields are zero.
func ParseInput(values Values, mode ParseMode) (Input, error) {
	var (
		in  Input
		err error
	)

	if in.Mode, err = ParseHaulMode(values.Get(FieldMode)); err != nil {
		return Input{}, err
	}
	in.RateClass = ParseCheckbox(values.Get(FieldRateClass))
	in.Timing = TimingFor(ParseCheckbox(values.Get(FieldASAP)))

	amounts := []struct {
		field string
		dst   *float64
	}{
		{FieldDeliveryCost, &in.DeliveryCost},
		{FieldHaulCost, &in.HaulCost},
		{FieldRentCost, &in.RentCost},
		{FieldExpectedTons, &in.ExpectedTons},
		{FieldMinimumTons, &in.MinimumTons},
		{FieldIncludedTons, &in.IncludedTons},
		{FieldTonnageCost, &in.TonnageCost},
	}
	for _, a := range amounts {
		if *a.dst, err = ParseAmount(values.Get(a.field), a.field, mode); err != nil {
			return Input{}, err
		}
	}
	if in.FuelPercent, err = ParsePercent(values.Get(FieldFuel), FieldFuel, mode); err != nil {
		return Input{}, err
	}
	if in.TaxPercent, err = ParsePercent(values.Get(FieldTax), FieldTax, mode); err != nil {
		return Input{}, err
	}

	return in, nil
}

// ParseAmount parses a money or tonnage field.
func ParseAmount(raw, field string, mode ParseMode) (float64, error) {
	value, err := parseNumber(raw, field, mode)
	if err != nil || mode == Lenient {
		return value, err
	}
	if err := checkAmount(value, field); err != nil {
		return 0, err
	}
	return value, nil
}

// ParsePercent parses a surcharge percentage.
func ParsePercent(raw, field string, mode ParseMode) (float64, error) {
	value, err := parseNumber(raw, field, mode)
	if err != nil || mode == Lenient {
		return value, err
	}
	if err := checkPercent(value, field); err != nil {
		return 0, err
	}
	return value, nil
}

func parseNumber(raw, field string, mode ParseMode) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}

	value, err := cast.ToFloat64E(raw)
	if err != nil && mode == Lenient {
		// Lenient input keeps a leading number and drops trailing text ("12abc" is 12).
		value, err = cast.ToFloat64E(numericPrefix.FindString(raw))
	}
	if err == nil && (math.IsNaN(value) || math.IsInf(value, 0)) {
		err = errors.New("not finite")
	}
	if err != nil {
		if mode == Lenient {
			return 0, nil
		}
		return 0, &InputError{Field: field, Reason: "must be numeric"}
	}
	return value, nil
}

func checkAmount(value float64, field string) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return &InputError{Field: field, Reason: "must be numeric"}
	}
	if value < 0 {
		return &InputError{Field: field, Reason: "must be greater than or equal to 0"}
	}
	return nil
}

// checkPercent has no upper bound; surcharges above 100% are valid.
func checkPercent(value float64, field string) error {
	return checkAmount(value, field)
}

// ParseCheckbox reports whether a checkbox value is checked.
func ParseCheckbox(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "on", "true", "yes":
		return true
	default:
		return false
	}
}
