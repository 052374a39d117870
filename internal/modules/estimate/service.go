package estimate

import (
	"context"
	"errors"

	"hakobu/internal/types"
)

var ErrBadRequest = errors.New("bad estimate request")

// Catalog supplies the admin-edited rate tables. The pgx Store implements
// it in production; tests swap in a fixture.
type Catalog interface {
	PointTable(ctx context.Context) (PointTable, error)
	BoxTiers(ctx context.Context) ([]BoxTier, error)
	PricingTiers(ctx context.Context) ([]PricingTier, error)
	DistanceBands(ctx context.Context) ([]DistanceBand, error)
	TimeSurcharges(ctx context.Context) ([]TimeSurcharge, error)
	WorkOptions(ctx context.Context) ([]OptionCharge, error)
}

type Service struct {
	catalog Catalog
	taxRate float64
}

func NewService(catalog Catalog, taxRate float64) *Service {
	return &Service{catalog: catalog, taxRate: taxRate}
}

// Command is one estimation request: what is being moved, how far, and in
// which time window.
type Command struct {
	Manifest        Manifest
	DistanceKm      float64
	WindowStart     types.TimeOfDay
	WindowEnd       types.TimeOfDay
	SelectedOptions []string
}

// Estimate runs the full pipeline: manifest valuation, tier resolution,
// distance band, applicable time surcharges in catalog order, selected work
// options, tax. Pricing itself never fails; only malformed input or a
// catalog read error does.
func (s *Service) Estimate(ctx context.Context, cmd Command) (EstimateResult, error) {
	if cmd.DistanceKm < 0 || cmd.WindowEnd < cmd.WindowStart {
		return EstimateResult{}, ErrBadRequest
	}

	pointTable, err := s.catalog.PointTable(ctx)
	if err != nil {
		return EstimateResult{}, err
	}
	boxTiers, err := s.catalog.BoxTiers(ctx)
	if err != nil {
		return EstimateResult{}, err
	}
	tiers, err := s.catalog.PricingTiers(ctx)
	if err != nil {
		return EstimateResult{}, err
	}
	bands, err := s.catalog.DistanceBands(ctx)
	if err != nil {
		return EstimateResult{}, err
	}
	surcharges, err := s.catalog.TimeSurcharges(ctx)
	if err != nil {
		return EstimateResult{}, err
	}
	options, err := s.catalog.WorkOptions(ctx)
	if err != nil {
		return EstimateResult{}, err
	}

	points := TotalPoints(cmd.Manifest, pointTable, boxTiers)
	basePrice := ResolveBasePrice(points, tiers)
	distanceSurcharge := ResolveDistanceSurcharge(cmd.DistanceKm, bands)

	applicable := applicableSurcharges(surcharges, cmd.WindowStart, cmd.WindowEnd)
	selected := selectOptions(options, cmd.SelectedOptions)

	res := ApplyEstimate(basePrice, distanceSurcharge, applicable, selected, s.taxRate)
	res.TotalPoints = points
	res.VehicleClass = ResolveVehicleClass(points, tiers)
	return res, nil
}

// applicableSurcharges keeps catalog order; it only filters out entries whose
// window does not touch the job window (half-open on both sides).
func applicableSurcharges(all []TimeSurcharge, start, end types.TimeOfDay) []TimeSurcharge {
	var out []TimeSurcharge
	for _, ts := range all {
		if ts.WindowStart < end && start < ts.WindowEnd {
			out = append(out, ts)
		}
	}
	return out
}

func selectOptions(catalog []OptionCharge, names []string) []OptionCharge {
	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = true
	}
	out := make([]OptionCharge, 0, len(catalog))
	for _, opt := range catalog {
		opt.Selected = wanted[opt.Name]
		out = append(out, opt)
	}
	return out
}
