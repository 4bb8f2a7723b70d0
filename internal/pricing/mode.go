package pricing

import (
	"fmt"
	"strings"
)

// HaulMode selects the haul formula.
type HaulMode int

const (
	FlatRate HaulMode = iota
	HaulPlus
	Inclusion
)

// HaulModes lists every mode in display order.
var HaulModes = []HaulMode{FlatRate, HaulPlus, Inclusion}

func (m HaulMode) String() string {
	switch m {
	case FlatRate:
		return "flat_rate"
	case HaulPlus:
		return "haul_plus"
	case Inclusion:
		return "inclusion"
	default:
		return fmt.Sprintf("HaulMode(%d)", int(m))
	}
}

// Label is the human readable name of the mode.
func (m HaulMode) Label() string {
	switch m {
	case FlatRate:
		return "Flat Rate"
	case HaulPlus:
		return "Haul Plus Rate"
	case Inclusion:
		return "Inclusion Rate"
	default:
		return m.String()
	}
}

// UsesTonnage reports whether expected tonnage and tonnage cost affect the haul price.
func (m HaulMode) UsesTonnage() bool {
	return m == HaulPlus || m == Inclusion
}

// ParseHaulMode parses the text form of a mode. Blank input selects FlatRate.
func ParseHaulMode(s string) (HaulMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "flat_rate", "flat":
		return FlatRate, nil
	case "haul_plus", "plus":
		return HaulPlus, nil
	case "inclusion":
		return Inclusion, nil
	default:
		return FlatRate, &InputError{Field: FieldMode, Reason: fmt.Sprintf("unknown haul mode %q", s)}
	}
}

func (m HaulMode) MarshalText() ([]byte, error) {
	switch m {
	case FlatRate, HaulPlus, Inclusion:
		return []byte(m.String()), nil
	default:
		return nil, fmt.Errorf("unknown haul mode %d", int(m))
	}
}

func (m *HaulMode) UnmarshalText(text []byte) error {
	mode, err := ParseHaulMode(string(text))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// ServiceTiming selects between standard and expedited delivery.
type ServiceTiming int

const (
	Standard ServiceTiming = iota
	Expedited
)

// TimingFor maps the ASAP flag to a ServiceTiming.
func TimingFor(asap bool) ServiceTiming {
	if asap {
		return Expedited
	}
	return Standard
}

func (t ServiceTiming) String() string {
	if t == Expedited {
		return "expedited"
	}
	return "standard"
}
