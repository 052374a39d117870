package estimate

import "math"

// boxBlockSize is the count granularity of the open-ended box tier: the
// per-ten price covers each full block of ten boxes.
const boxBlockSize = 10

// TotalPoints values a manifest against a point table and box tier table.
// It never fails: unknown item names contribute table.Default per unit, an
// unknown box label contributes nothing. The result is non-negative and
// non-decreasing in every quantity.
func TotalPoints(m Manifest, table PointTable, boxTiers []BoxTier) float64 {
	var total float64
	for _, item := range m.Items {
		qty := item.Quantity
		if qty < 1 {
			qty = 1
		}
		total += unitPoints(item, table) * float64(qty)
	}
	if m.Box != nil {
		total += boxPoints(*m.Box, boxTiers)
	}
	if total < 0 {
		return 0
	}
	return total
}

func unitPoints(item CargoItem, table PointTable) float64 {
	if p, ok := table.Points[item.Name]; ok {
		return p
	}
	if item.UnitPoints > 0 {
		return item.UnitPoints
	}
	return table.Default
}

func boxPoints(box BoxDescriptor, tiers []BoxTier) float64 {
	for _, tier := range tiers {
		if tier.Open {
			if box.Count > 0 && tier.Label == box.Label {
				return math.Floor(float64(box.Count)/boxBlockSize) * tier.PerTen
			}
			if tier.Label == box.Label {
				return tier.Points
			}
			continue
		}
		if tier.Label == box.Label {
			return tier.Points
		}
	}
	return 0
}
