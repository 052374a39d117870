package quote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"hakobu/internal/modules/estimate"
	"hakobu/internal/types"
)

// Store persists quotes in PostgreSQL. The manifest, option selection, and
// estimate snapshot go into jsonb columns; they are document-shaped and the
// database never queries inside them.
type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// quoteDoc is the versioned jsonb payload. Fields added later bump Version
// so old rows can be migrated instead of silently misread.
type quoteDoc struct {
	Version         int                      `json:"version"`
	Manifest        estimate.Manifest        `json:"manifest"`
	SelectedOptions []string                 `json:"selected_options,omitempty"`
	Estimate        *estimate.EstimateResult `json:"estimate,omitempty"`
}

const quoteDocVersion = 1

func (s *Store) Create(ctx context.Context, q *Quote) error {
	doc, err := marshalDoc(q)
	if err != nil {
		return fmt.Errorf("create quote: %w", err)
	}
	_, err = s.db.Exec(ctx, `
		INSERT INTO quotes (
			id, customer_ref, status, move_date, window_start, window_end,
			origin_address, dest_address, distance_km, doc, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		string(q.ID), q.CustomerRef, string(q.Status), q.MoveDate.String(),
		q.WindowStart.String(), q.WindowEnd.String(),
		q.OriginAddress, q.DestAddress, q.DistanceKm, doc, q.CreatedAt, q.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create quote: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, id types.ID) (Quote, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, customer_ref, status, move_date, window_start, window_end,
		       origin_address, dest_address, distance_km, doc, created_at, updated_at
		FROM quotes
		WHERE id = $1`, string(id),
	)
	q, err := scanQuote(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Quote{}, ErrNotFound
	}
	if err != nil {
		return Quote{}, fmt.Errorf("get quote: %w", err)
	}
	return q, nil
}

func (s *Store) List(ctx context.Context) ([]Quote, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, customer_ref, status, move_date, window_start, window_end,
		       origin_address, dest_address, distance_km, doc, created_at, updated_at
		FROM quotes
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}
	defer rows.Close()

	var out []Quote
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, fmt.Errorf("list quotes: %w", err)
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func (s *Store) Update(ctx context.Context, q *Quote) error {
	doc, err := marshalDoc(q)
	if err != nil {
		return fmt.Errorf("update quote: %w", err)
	}
	tag, err := s.db.Exec(ctx, `
		UPDATE quotes
		SET status = $1, distance_km = $2, doc = $3, updated_at = $4
		WHERE id = $5`,
		string(q.Status), q.DistanceKm, doc, q.UpdatedAt, string(q.ID),
	)
	if err != nil {
		return fmt.Errorf("update quote: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func marshalDoc(q *Quote) ([]byte, error) {
	return json.Marshal(quoteDoc{
		Version:         quoteDocVersion,
		Manifest:        q.Manifest,
		SelectedOptions: q.SelectedOptions,
		Estimate:        q.Estimate,
	})
}

func scanQuote(row pgx.Row) (Quote, error) {
	var q Quote
	var status, moveDate, winStart, winEnd string
	var doc []byte
	var createdAt, updatedAt time.Time

	err := row.Scan(&q.ID, &q.CustomerRef, &status, &moveDate, &winStart, &winEnd,
		&q.OriginAddress, &q.DestAddress, &q.DistanceKm, &doc, &createdAt, &updatedAt)
	if err != nil {
		return Quote{}, err
	}

	q.Status = Status(status)
	if q.MoveDate, err = types.ParseDate(moveDate); err != nil {
		return Quote{}, err
	}
	if q.WindowStart, err = types.ParseTimeOfDay(winStart); err != nil {
		return Quote{}, err
	}
	if q.WindowEnd, err = types.ParseTimeOfDay(winEnd); err != nil {
		return Quote{}, err
	}

	var d quoteDoc
	if err := json.Unmarshal(doc, &d); err != nil {
		return Quote{}, fmt.Errorf("decode quote doc: %w", err)
	}
	if d.Version != quoteDocVersion {
		return Quote{}, fmt.Errorf("decode quote doc: unsupported version %d", d.Version)
	}
	q.Manifest = d.Manifest
	q.SelectedOptions = d.SelectedOptions
	q.Estimate = d.Estimate
	q.CreatedAt = createdAt
	q.UpdatedAt = updatedAt
	return q, nil
}
