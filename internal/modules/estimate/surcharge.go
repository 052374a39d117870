package estimate

import "hakobu/internal/types"

// ApplyEstimate runs the surcharge and tax stage of the pipeline.
//
// Subtotal starts at basePrice + distanceSurcharge + selected options. Time
// surcharges are then applied strictly in input order (the caller supplies
// catalog order); rate entries multiply, amount entries add. Tax rounds
// half-up to whole yen. A step that would drive the running subtotal
// negative clamps it to zero and marks the result instead of failing.
func ApplyEstimate(
	basePrice int64,
	distanceSurcharge int64,
	timeSurcharges []TimeSurcharge,
	options []OptionCharge,
	taxRate float64,
) EstimateResult {
	var optionsTotal int64
	for _, opt := range options {
		if opt.Selected {
			optionsTotal += opt.Price
		}
	}

	res := EstimateResult{
		BasePrice:         basePrice,
		DistanceSurcharge: distanceSurcharge,
		OptionsTotal:      optionsTotal,
		TaxRate:           taxRate,
	}

	subtotal := float64(basePrice + distanceSurcharge + optionsTotal)
	if subtotal < 0 {
		subtotal = 0
		res.Clamped = true
	}
	preSurcharge := subtotal

	for _, ts := range timeSurcharges {
		switch ts.Kind {
		case SurchargeRate:
			subtotal *= ts.Value
		case SurchargeAmount:
			subtotal += ts.Value
		}
		if subtotal < 0 {
			subtotal = 0
			res.Clamped = true
		}
	}
	res.TimeSurchargeNet = subtotal - preSurcharge
	res.Subtotal = subtotal

	total := types.RoundYen(subtotal * (1 + taxRate))
	if total < 0 {
		total = 0
		res.Clamped = true
	}
	res.Total = types.Yen(total)
	return res
}
