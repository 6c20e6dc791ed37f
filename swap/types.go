// Package swap models vanilla fixed-for-floating interest-rate swaps and
// values them off a forward curve.
package swap

import (
	"strings"
	"time"

	"github.com/meenmo/curvecal/calendar"
	"github.com/meenmo/curvecal/daycount"
	"github.com/meenmo/curvecal/errs"
	"github.com/meenmo/curvecal/schedule"
)

// Direction describes the position on the fixed leg.
type Direction string

const (
	// Payer pays fixed and receives floating.
	Payer Direction = "PAYER"
	// Receiver receives fixed and pays floating.
	Receiver Direction = "RECEIVER"
)

// ParseDirection maps a swap-type name to its Direction.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "PAYER":
		return Payer, nil
	case "RECEIVER":
		return Receiver, nil
	default:
		return "", &errs.ConfigurationError{Setting: "swap type", Value: s}
	}
}

// Sign returns +1 for Payer (long floating) and -1 for Receiver.
func (d Direction) Sign() float64 {
	if d == Receiver {
		return -1.0
	}
	return 1.0
}

// Index enumerates supported floating benchmarks.
type Index string

const (
	USDLibor3M Index = "USDLIBOR3M"
	USDLibor6M Index = "USDLIBOR6M"
	Euribor3M  Index = "EURIBOR3M"
	Euribor6M  Index = "EURIBOR6M"
)

// ParseIndex maps an index name to its Index. Both the compact form
// ("USDLIBOR3M") and the dotted form ("USDLibor.3M") are accepted.
func ParseIndex(s string) (Index, error) {
	key := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), ".", ""))
	switch key {
	case "USDLIBOR3M":
		return USDLibor3M, nil
	case "USDLIBOR6M":
		return USDLibor6M, nil
	case "EURIBOR3M":
		return Euribor3M, nil
	case "EURIBOR6M":
		return Euribor6M, nil
	default:
		return "", &errs.ConfigurationError{Setting: "ibor index", Value: s}
	}
}

// TenorMonths returns the index's underlying deposit tenor.
func (ix Index) TenorMonths() int {
	switch ix {
	case USDLibor3M, Euribor3M:
		return 3
	case USDLibor6M, Euribor6M:
		return 6
	default:
		panic("swap: unknown index " + string(ix))
	}
}

// LegSpec captures one leg's static terms. It is immutable once
// constructed; FixedRate applies to fixed legs, Spread and Index to
// floating legs.
type LegSpec struct {
	Frequency  schedule.Frequency
	Calendar   calendar.ID
	Adjustment calendar.Adjustment
	Generation schedule.Direction
	DayCount   daycount.Convention
	EndOfMonth bool

	FixedRate float64
	Spread    float64
	Index     Index
}

// Spec describes one calibration/pricing swap.
type Spec struct {
	ID        string
	Direction Direction
	Notional  float64
	Effective time.Time
	Maturity  time.Time
	Fixed     LegSpec
	Floating  LegSpec
}

// PV contains present values for each leg and the signed net.
type PV struct {
	FixedPV    float64
	FloatingPV float64
	NPV        float64
}
