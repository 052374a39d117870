// Package estimate converts a cargo manifest into load points and a priced
// moving estimate: points -> vehicle class and tiered base price -> distance
// and time-band surcharges -> work options -> tax.
package estimate

import (
	"hakobu/internal/types"
)

// CargoItem is one line of a manifest. Points may be fractional; some item
// tables use half-point values.
type CargoItem struct {
	Name       string  `json:"name"`
	UnitPoints float64 `json:"unit_points"`
	Quantity   int     `json:"quantity"`
}

// BoxDescriptor is the optional box-count line of a manifest. Label selects a
// box tier ("10–20 boxes"); Count, when known, lets the open-ended top tier
// price per started block of ten boxes. Count == 0 means "not stated".
type BoxDescriptor struct {
	Label string `json:"label"`
	Count int    `json:"count,omitempty"`
}

type Manifest struct {
	Items []CargoItem    `json:"items"`
	Box   *BoxDescriptor `json:"box,omitempty"`
}

// PointTable maps item names to unit points. Free-text item names typed by
// admins are expected, so lookups never fail: unknown names fall back to
// Default.
type PointTable struct {
	Points  map[string]float64
	Default float64
}

// BoxTier prices a box-count bracket. Exactly one tier should be Open (the
// unbounded top bracket); for it, PerTen prices each started block of ten
// boxes when an explicit count is known, and Points is the flat fallback.
type BoxTier struct {
	Label  string
	Points float64
	Open   bool
	PerTen float64
}

// PricingTier selects a vehicle class and base price for a points range.
// MaxPoints == nil means unbounded. Tiers are matched in table order and are
// expected to be non-overlapping and exhaustive over [0, inf).
type PricingTier struct {
	MinPoints    float64
	MaxPoints    *float64
	VehicleClass string
	BasePrice    int64
}

// DistanceBand prices trip distance. Bands are ordered ascending by MaxKm;
// distance beyond the last band uses the last band's price.
type DistanceBand struct {
	MaxKm float64
	Price int64
}

type SurchargeKind string

const (
	SurchargeRate   SurchargeKind = "rate"   // multiplies the running subtotal
	SurchargeAmount SurchargeKind = "amount" // adds a flat amount
)

// TimeSurcharge adjusts the price for jobs whose time window touches
// [WindowStart, WindowEnd). Application order is significant: a rate
// multiplication does not commute with a flat addition, so the catalog
// order is preserved exactly.
type TimeSurcharge struct {
	Name        string
	WindowStart types.TimeOfDay
	WindowEnd   types.TimeOfDay
	Kind        SurchargeKind
	Value       float64
}

// OptionCharge is a flat work-service add-on (piano handling, AC removal...).
type OptionCharge struct {
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Selected bool   `json:"selected"`
}

// EstimateResult is the derived, read-only output of the pipeline.
// Subtotal carries any fraction left by rate surcharges; Total is rounded
// half-up to whole yen after tax.
type EstimateResult struct {
	TotalPoints       float64     `json:"total_points"`
	VehicleClass      string      `json:"vehicle_class"`
	BasePrice         int64       `json:"base_price"`
	DistanceSurcharge int64       `json:"distance_surcharge"`
	TimeSurchargeNet  float64     `json:"time_surcharge_net"`
	OptionsTotal      int64       `json:"options_total"`
	Subtotal          float64     `json:"subtotal"`
	TaxRate           float64     `json:"tax_rate"`
	Total             types.Money `json:"total"`
	// Clamped is set when a step drove the running subtotal negative and it
	// was pinned to zero instead of failing.
	Clamped bool `json:"clamped,omitempty"`
}

func (m Manifest) IsEmpty() bool {
	return len(m.Items) == 0 && m.Box == nil
}
