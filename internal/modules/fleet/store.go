package fleet

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"hakobu/internal/types"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, t *Truck) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO trucks (id, name, capacity_kg, vehicle_class, status)
		VALUES ($1, $2, $3, $4, $5)`,
		string(t.ID), t.Name, t.CapacityKg, t.VehicleClass, string(t.Status),
	)
	if err != nil {
		return fmt.Errorf("create truck: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, id types.ID) (Truck, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, name, capacity_kg, vehicle_class, status
		FROM trucks
		WHERE id = $1`, string(id),
	)
	var t Truck
	err := row.Scan(&t.ID, &t.Name, &t.CapacityKg, &t.VehicleClass, &t.Status)
	if errors.Is(err, pgx.ErrNoRows) {
		return Truck{}, ErrNotFound
	}
	if err != nil {
		return Truck{}, fmt.Errorf("get truck: %w", err)
	}
	return t, nil
}

func (s *Store) List(ctx context.Context) ([]Truck, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, capacity_kg, vehicle_class, status
		FROM trucks
		ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list trucks: %w", err)
	}
	defer rows.Close()

	var out []Truck
	for rows.Next() {
		var t Truck
		if err := rows.Scan(&t.ID, &t.Name, &t.CapacityKg, &t.VehicleClass, &t.Status); err != nil {
			return nil, fmt.Errorf("list trucks: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *Store) SetStatus(ctx context.Context, id types.ID, status Status) error {
	tag, err := s.db.Exec(ctx, `UPDATE trucks SET status = $1 WHERE id = $2`,
		string(status), string(id))
	if err != nil {
		return fmt.Errorf("set truck status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
