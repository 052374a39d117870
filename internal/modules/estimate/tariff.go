package estimate

// Fallback ladder used when no pricing tier table is configured. The ladder
// price is a breakpoint base; a linear per-point term is added on top of it.
// The configured-tier path uses the tier price as-is with no linear term.
// That asymmetry is carried over from the legacy pricing screen on purpose;
// unifying the two paths would change quoted prices.
var defaultLadder = []PricingTier{
	{MinPoints: 0, MaxPoints: fptr(50), VehicleClass: "light", BasePrice: 20000},
	{MinPoints: 50, MaxPoints: fptr(75), VehicleClass: "1.5t", BasePrice: 30000},
	{MinPoints: 75, MaxPoints: fptr(100), VehicleClass: "2t", BasePrice: 40000},
	{MinPoints: 100, MaxPoints: nil, VehicleClass: "4t", BasePrice: 60000},
}

// defaultPerPointRate is the linear overage applied only on the fallback path.
const defaultPerPointRate = 150

func fptr(v float64) *float64 { return &v }

// ResolveVehicleClass picks the first tier in table order whose range
// contains totalPoints. With no configured tiers the fallback ladder is used.
func ResolveVehicleClass(totalPoints float64, tiers []PricingTier) string {
	if len(tiers) == 0 {
		tiers = defaultLadder
	}
	if t := matchTier(totalPoints, tiers); t != nil {
		return t.VehicleClass
	}
	// Exhaustive tables never reach here; be forgiving about gaps and fall
	// through to the largest class rather than failing a quote.
	return tiers[len(tiers)-1].VehicleClass
}

// ResolveBasePrice prices totalPoints. Configured tiers return the tier
// price as-is. The fallback ladder additionally accumulates a linear
// per-point surcharge on top of the breakpoint price.
func ResolveBasePrice(totalPoints float64, tiers []PricingTier) int64 {
	if len(tiers) == 0 {
		base := defaultLadder[len(defaultLadder)-1].BasePrice
		if t := matchTier(totalPoints, defaultLadder); t != nil {
			base = t.BasePrice
		}
		return base + int64(totalPoints*defaultPerPointRate)
	}
	if t := matchTier(totalPoints, tiers); t != nil {
		return t.BasePrice
	}
	return tiers[len(tiers)-1].BasePrice
}

func matchTier(points float64, tiers []PricingTier) *PricingTier {
	for i := range tiers {
		t := &tiers[i]
		if points < t.MinPoints {
			continue
		}
		if t.MaxPoints == nil || points <= *t.MaxPoints {
			return t
		}
	}
	return nil
}

// ResolveDistanceSurcharge picks the band covering distanceKm. Bands are
// ordered ascending by MaxKm and scanned from the farthest down: the first
// band the distance exceeds bounds the answer from below, so the band just
// above it applies. Distance beyond every band uses the open top band.
func ResolveDistanceSurcharge(distanceKm float64, bands []DistanceBand) int64 {
	if len(bands) == 0 {
		return 0
	}
	for i := len(bands) - 1; i >= 0; i-- {
		if distanceKm > bands[i].MaxKm {
			if i == len(bands)-1 {
				return bands[i].Price
			}
			return bands[i+1].Price
		}
	}
	return bands[0].Price
}
