// Rate catalog store backed by PostgreSQL. Row order columns ("ord")
// preserve admin-defined table order, which is semantic for tier matching
// and time-surcharge application.
package estimate

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"hakobu/internal/types"
)

type Store struct {
	db *pgxpool.Pool
	// defaultItemPoints is the fallback for cargo names absent from the
	// point table. Configured, not stored, so a wiped table still prices.
	defaultItemPoints float64
}

func NewStore(db *pgxpool.Pool, defaultItemPoints float64) *Store {
	return &Store{db: db, defaultItemPoints: defaultItemPoints}
}

func (s *Store) PointTable(ctx context.Context) (PointTable, error) {
	rows, err := s.db.Query(ctx, `SELECT name, points FROM cargo_points`)
	if err != nil {
		return PointTable{}, fmt.Errorf("load point table: %w", err)
	}
	defer rows.Close()

	table := PointTable{Points: map[string]float64{}, Default: s.defaultItemPoints}
	for rows.Next() {
		var name string
		var points float64
		if err := rows.Scan(&name, &points); err != nil {
			return PointTable{}, fmt.Errorf("load point table: %w", err)
		}
		table.Points[name] = points
	}
	return table, rows.Err()
}

func (s *Store) BoxTiers(ctx context.Context) ([]BoxTier, error) {
	rows, err := s.db.Query(ctx, `
		SELECT label, points, is_open, per_ten
		FROM box_tiers
		ORDER BY ord`)
	if err != nil {
		return nil, fmt.Errorf("load box tiers: %w", err)
	}
	defer rows.Close()

	var tiers []BoxTier
	for rows.Next() {
		var t BoxTier
		if err := rows.Scan(&t.Label, &t.Points, &t.Open, &t.PerTen); err != nil {
			return nil, fmt.Errorf("load box tiers: %w", err)
		}
		tiers = append(tiers, t)
	}
	return tiers, rows.Err()
}

func (s *Store) PricingTiers(ctx context.Context) ([]PricingTier, error) {
	rows, err := s.db.Query(ctx, `
		SELECT min_points, max_points, vehicle_class, base_price
		FROM pricing_tiers
		ORDER BY ord`)
	if err != nil {
		return nil, fmt.Errorf("load pricing tiers: %w", err)
	}
	defer rows.Close()

	var tiers []PricingTier
	for rows.Next() {
		var t PricingTier
		if err := rows.Scan(&t.MinPoints, &t.MaxPoints, &t.VehicleClass, &t.BasePrice); err != nil {
			return nil, fmt.Errorf("load pricing tiers: %w", err)
		}
		tiers = append(tiers, t)
	}
	return tiers, rows.Err()
}

func (s *Store) DistanceBands(ctx context.Context) ([]DistanceBand, error) {
	rows, err := s.db.Query(ctx, `
		SELECT max_km, price
		FROM distance_bands
		ORDER BY max_km`)
	if err != nil {
		return nil, fmt.Errorf("load distance bands: %w", err)
	}
	defer rows.Close()

	var bands []DistanceBand
	for rows.Next() {
		var b DistanceBand
		if err := rows.Scan(&b.MaxKm, &b.Price); err != nil {
			return nil, fmt.Errorf("load distance bands: %w", err)
		}
		bands = append(bands, b)
	}
	return bands, rows.Err()
}

func (s *Store) TimeSurcharges(ctx context.Context) ([]TimeSurcharge, error) {
	rows, err := s.db.Query(ctx, `
		SELECT name, window_start, window_end, kind, value
		FROM time_surcharges
		ORDER BY ord`)
	if err != nil {
		return nil, fmt.Errorf("load time surcharges: %w", err)
	}
	defer rows.Close()

	var out []TimeSurcharge
	for rows.Next() {
		var ts TimeSurcharge
		var start, end string
		if err := rows.Scan(&ts.Name, &start, &end, &ts.Kind, &ts.Value); err != nil {
			return nil, fmt.Errorf("load time surcharges: %w", err)
		}
		if ts.WindowStart, err = types.ParseTimeOfDay(start); err != nil {
			return nil, fmt.Errorf("load time surcharges: %w", err)
		}
		if ts.WindowEnd, err = types.ParseTimeOfDay(end); err != nil {
			return nil, fmt.Errorf("load time surcharges: %w", err)
		}
		out = append(out, ts)
	}
	return out, rows.Err()
}

func (s *Store) WorkOptions(ctx context.Context) ([]OptionCharge, error) {
	rows, err := s.db.Query(ctx, `SELECT name, price FROM work_options ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("load work options: %w", err)
	}
	defer rows.Close()

	var out []OptionCharge
	for rows.Next() {
		var o OptionCharge
		if err := rows.Scan(&o.Name, &o.Price); err != nil {
			return nil, fmt.Errorf("load work options: %w", err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}
