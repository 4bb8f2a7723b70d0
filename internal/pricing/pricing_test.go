package pricing

import (
	"math"
	"testing"
)

func nearlyEqual(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("%s = %v, want %v", name, got, want)
	}
}

func TestRoundUp_MultipleOfFive(t *testing.T) {
	cases := []struct {
		value, multiple, want float64
	}{
		{130, 5, 130},
		{180.25, 5, 185},
		{377.104, 5, 380},
		{0, 5, 0},
		{0.01, 5, 5},
		{103.376, 1, 104},
		{104, 1, 104},
	}
	for _, tc := range cases {
		nearlyEqual(t, "RoundUp", RoundUp(tc.value, tc.multiple), tc.want)
	}
}

func TestRoundUp_Properties(t *testing.T) {
	for _, m := range []float64{1, 5, 10, 25} {
		for cents := 0; cents <= 250000; cents += 37 {
			x := float64(cents) / 100
			got := RoundUp(x, m)
			if math.Mod(got, m) != 0 {
				t.Fatalf("RoundUp(%v, %v) = %v, not a multiple", x, m, got)
			}
			if got < x {
				t.Fatalf("RoundUp(%v, %v) = %v, below value", x, m, got)
			}
			if got >= x+m {
				t.Fatalf("RoundUp(%v, %v) = %v, not the nearest multiple", x, m, got)
			}
		}
	}
}

func TestRoundUp_NonPositiveMultipleReturnsValue(t *testing.T) {
	for _, m := range []float64{0, -5, math.NaN()} {
		nearlyEqual(t, "RoundUp", RoundUp(12.34, m), 12.34)
	}
}

func TestComputeCTU_NoSurchargesIsCost(t *testing.T) {
	for _, cost := range []float64{0, 1, 99.4, 200, 1234.56} {
		nearlyEqual(t, "ctu", ComputeCTU(cost, 0, 0), cost)
	}
}

func TestComputeCTU_FuelAndTax(t *testing.T) {
	nearlyEqual(t, "ctu", ComputeCTU(200, 10, 8), 237.6)
}

func TestComputeDelivery_Standard(t *testing.T) {
	result := ComputeDelivery(100, 0, 0, false, false)

	nearlyEqual(t, "ctu", result.CTU, 100)
	nearlyEqual(t, "ptc", result.PTC, 130)
}

func TestComputeDelivery_StandardRateClass(t *testing.T) {
	// (100+20)*1.03 = 123.6
	result := ComputeDelivery(100, 0, 0, true, false)

	nearlyEqual(t, "ctu", result.CTU, 100)
	nearlyEqual(t, "ptc", result.PTC, 125)
}

func TestComputeDelivery_ExpeditedIgnoresRateClassFee(t *testing.T) {
	withRCA := ComputeDelivery(100, 0, 0, true, true)
	withoutRCA := ComputeDelivery(100, 0, 0, false, true)

	nearlyEqual(t, "rca ctu", withRCA.CTU, 100)
	nearlyEqual(t, "rca ptc", withRCA.PTC, 185)
	// (100+75)*1.04 = 182
	nearlyEqual(t, "standard ptc", withoutRCA.PTC, 185)
}

func TestComputeHaul_FlatRate(t *testing.T) {
	result := ComputeHaul(FlatRate, 200, 10, 8, false, 0, 0, 0)

	nearlyEqual(t, "ctu", result.CTU, 237.6)
	nearlyEqual(t, "ptc", result.PTC, 380)
}

func TestComputeHaul_FlatRateIgnoresTonnage(t *testing.T) {
	flat := ComputeHaul(FlatRate, 200, 10, 8, true, 9, 2, 50)
	nearlyEqual(t, "ctu", flat.CTU, 237.6)
	// (237.6+85)*1.03 = 332.278
	nearlyEqual(t, "ptc", flat.PTC, 335)
}

func TestComputeHaul_PlusWithoutOverageMatchesFlat(t *testing.T) {
	flat := ComputeHaul(FlatRate, 200, 10, 8, false, 0, 0, 0)
	for _, tons := range [][2]float64{{2, 3}, {3, 3}, {0, 0}} {
		plus := ComputeHaul(HaulPlus, 200, 10, 8, false, tons[0], tons[1], 65)
		if plus != flat {
			t.Fatalf("haul plus %v = %+v, want flat %+v", tons, plus, flat)
		}
	}
}

func TestComputeHaul_PlusOverage(t *testing.T) {
	// 2 tons over at 50 adds 100 before loading.
	result := ComputeHaul(HaulPlus, 200, 0, 0, false, 5, 3, 50)

	nearlyEqual(t, "ctu", result.CTU, 300)
	// (300+125)*1.04 = 442
	nearlyEqual(t, "ptc", result.PTC, 445)
}

func TestComputeHaul_InclusionOverage(t *testing.T) {
	result := ComputeHaul(Inclusion, 200, 10, 8, false, 4.5, 3, 40)

	nearlyEqual(t, "ctu", result.CTU, ComputeCTU(260, 10, 8))
	// (308.88+125)*1.04 = 451.2352
	nearlyEqual(t, "ptc", result.PTC, 455)
}

func TestComputeHaul_InclusionWithinIncludedTonnage(t *testing.T) {
	for _, tons := range [][2]float64{{2, 3}, {3, 3}} {
		result := ComputeHaul(Inclusion, 200, 10, 8, true, tons[0], tons[1], 40)
		nearlyEqual(t, "ctu", result.CTU, ComputeCTU(200, 10, 8))
	}
}

func TestComputeHaul_UnknownModeIsZero(t *testing.T) {
	if got := ComputeHaul(HaulMode(42), 200, 10, 8, false, 0, 0, 0); got != (Result{}) {
		t.Fatalf("unknown mode = %+v, want zero result", got)
	}
}

func TestComputeRent_RoundsToWholeUnit(t *testing.T) {
	result := ComputeRent(99.4, 0, false)

	nearlyEqual(t, "ctu", result.CTU, 99.4)
	nearlyEqual(t, "ptc", result.PTC, 104)
}

func TestComputeRent_TaxOnly(t *testing.T) {
	// No fuel surcharge on rent: 100*1.08 = 108, 108*1.03 = 111.24
	result := ComputeRent(100, 8, true)

	nearlyEqual(t, "ctu", result.CTU, 108)
	nearlyEqual(t, "ptc", result.PTC, 112)
}

func TestFormulas_AreDeterministic(t *testing.T) {
	in := Input{
		DeliveryCost: 137.5,
		HaulCost:     412.2,
		RentCost:     64.9,
		FuelPercent:  12.5,
		TaxPercent:   8.25,
		RateClass:    true,
		Timing:       Expedited,
		Mode:         Inclusion,
		ExpectedTons: 6.2,
		IncludedTons: 4,
		TonnageCost:  72,
	}

	first := Compute(in)
	for i := 0; i < 10; i++ {
		if got := Compute(in); got != first {
			t.Fatalf("iteration %d: %+v, want %+v", i, got, first)
		}
	}
}
