package dispatch

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"hakobu/internal/types"
)

// Store persists schedule entries in PostgreSQL. seq preserves insertion
// order; conflict reporting depends on schedule order being stable.
type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) ListByTruck(ctx context.Context, truckID types.ID) ([]ScheduleEntry, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, truck_id, date, start_time, end_time,
		       contract_status, assigned_capacity_kg, work_type, customer_ref
		FROM schedule_entries
		WHERE truck_id = $1
		ORDER BY seq`, string(truckID),
	)
	if err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	defer rows.Close()

	var out []ScheduleEntry
	for rows.Next() {
		var e ScheduleEntry
		var date, start, end string
		if err := rows.Scan(&e.ID, &e.TruckID, &date, &start, &end,
			&e.ContractStatus, &e.AssignedCapacityKg, &e.WorkType, &e.CustomerRef); err != nil {
			return nil, fmt.Errorf("list schedules: %w", err)
		}
		if e.Date, err = types.ParseDate(date); err != nil {
			return nil, fmt.Errorf("list schedules: %w", err)
		}
		if e.StartTime, err = types.ParseTimeOfDay(start); err != nil {
			return nil, fmt.Errorf("list schedules: %w", err)
		}
		if e.EndTime, err = types.ParseTimeOfDay(end); err != nil {
			return nil, fmt.Errorf("list schedules: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) Insert(ctx context.Context, e ScheduleEntry) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO schedule_entries (
			id, truck_id, date, start_time, end_time,
			contract_status, assigned_capacity_kg, work_type, customer_ref
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		string(e.ID), string(e.TruckID), e.Date.String(),
		e.StartTime.String(), e.EndTime.String(),
		string(e.ContractStatus), e.AssignedCapacityKg, e.WorkType, e.CustomerRef,
	)
	if err != nil {
		return fmt.Errorf("insert schedule entry: %w", err)
	}
	return nil
}

// Delete removes an entry if present. Zero rows affected is success:
// unassign is idempotent.
func (s *Store) Delete(ctx context.Context, truckID, entryID types.ID) error {
	_, err := s.db.Exec(ctx, `
		DELETE FROM schedule_entries WHERE truck_id = $1 AND id = $2`,
		string(truckID), string(entryID),
	)
	if err != nil {
		return fmt.Errorf("delete schedule entry: %w", err)
	}
	return nil
}
