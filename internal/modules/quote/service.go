package quote

import (
	"context"
	"errors"
	"time"

	"hakobu/internal/modules/estimate"
	"hakobu/internal/types"
)

var (
	ErrNotFound     = errors.New("quote not found")
	ErrBadRequest   = errors.New("bad quote request")
	ErrInvalidState = errors.New("invalid quote state transition")
)

// Estimator prices a case. estimate.Service satisfies it.
type Estimator interface {
	Estimate(ctx context.Context, cmd estimate.Command) (estimate.EstimateResult, error)
}

// DistanceResolver turns an address pair into a driving distance. The maps
// adapter implements it; nil disables auto-resolution.
type DistanceResolver interface {
	DrivingDistanceKm(ctx context.Context, origin, destination string) (float64, error)
}

type QuoteStore interface {
	Create(ctx context.Context, q *Quote) error
	Get(ctx context.Context, id types.ID) (Quote, error)
	List(ctx context.Context) ([]Quote, error)
	Update(ctx context.Context, q *Quote) error
}

type Service struct {
	store     QuoteStore
	estimator Estimator
	distance  DistanceResolver
}

func NewService(store QuoteStore, estimator Estimator, distance DistanceResolver) *Service {
	return &Service{store: store, estimator: estimator, distance: distance}
}

type CreateCommand struct {
	CustomerRef     string
	MoveDate        types.Date
	WindowStart     types.TimeOfDay
	WindowEnd       types.TimeOfDay
	OriginAddress   string
	DestAddress     string
	DistanceKm      float64 // 0 = resolve from addresses when possible
	Manifest        estimate.Manifest
	SelectedOptions []string
}

// Create registers a case and prices it. A distance of zero is resolved
// from the address pair when a resolver is wired; resolver failures fall
// back to zero distance rather than blocking the quote.
func (s *Service) Create(ctx context.Context, cmd CreateCommand) (Quote, error) {
	if cmd.CustomerRef == "" || cmd.MoveDate == "" || cmd.WindowEnd <= cmd.WindowStart {
		return Quote{}, ErrBadRequest
	}

	distance := cmd.DistanceKm
	if distance == 0 && s.distance != nil && cmd.OriginAddress != "" && cmd.DestAddress != "" {
		if km, err := s.distance.DrivingDistanceKm(ctx, cmd.OriginAddress, cmd.DestAddress); err == nil {
			distance = km
		}
	}

	now := time.Now()
	q := Quote{
		ID:              types.NewID(),
		CustomerRef:     cmd.CustomerRef,
		Status:          StatusEstimate,
		MoveDate:        cmd.MoveDate,
		WindowStart:     cmd.WindowStart,
		WindowEnd:       cmd.WindowEnd,
		OriginAddress:   cmd.OriginAddress,
		DestAddress:     cmd.DestAddress,
		DistanceKm:      distance,
		Manifest:        cmd.Manifest,
		SelectedOptions: cmd.SelectedOptions,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.price(ctx, &q); err != nil {
		return Quote{}, err
	}
	if err := s.store.Create(ctx, &q); err != nil {
		return Quote{}, err
	}
	return q, nil
}

type ReviseCommand struct {
	QuoteID         types.ID
	Manifest        estimate.Manifest
	SelectedOptions []string
}

// Revise replaces the manifest and option selection and reprices the case.
func (s *Service) Revise(ctx context.Context, cmd ReviseCommand) (Quote, error) {
	q, err := s.store.Get(ctx, cmd.QuoteID)
	if err != nil {
		return Quote{}, err
	}
	if q.Status == StatusCancelled {
		return Quote{}, ErrInvalidState
	}
	q.Manifest = cmd.Manifest
	q.SelectedOptions = cmd.SelectedOptions
	q.UpdatedAt = time.Now()
	if err := s.price(ctx, &q); err != nil {
		return Quote{}, err
	}
	if err := s.store.Update(ctx, &q); err != nil {
		return Quote{}, err
	}
	return q, nil
}

// Contract moves a quote to confirmed. Schedule entries created for it from
// then on count as hard bookings.
func (s *Service) Contract(ctx context.Context, id types.ID) (Quote, error) {
	return s.transition(ctx, id, StatusConfirmed)
}

func (s *Service) Cancel(ctx context.Context, id types.ID) (Quote, error) {
	return s.transition(ctx, id, StatusCancelled)
}

func (s *Service) Get(ctx context.Context, id types.ID) (Quote, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Quote, error) {
	return s.store.List(ctx)
}

func (s *Service) transition(ctx context.Context, id types.ID, to Status) (Quote, error) {
	q, err := s.store.Get(ctx, id)
	if err != nil {
		return Quote{}, err
	}
	if !CanTransition(q.Status, to) {
		return Quote{}, ErrInvalidState
	}
	q.Status = to
	q.UpdatedAt = time.Now()
	if err := s.store.Update(ctx, &q); err != nil {
		return Quote{}, err
	}
	return q, nil
}

func (s *Service) price(ctx context.Context, q *Quote) error {
	res, err := s.estimator.Estimate(ctx, estimate.Command{
		Manifest:        q.Manifest,
		DistanceKm:      q.DistanceKm,
		WindowStart:     q.WindowStart,
		WindowEnd:       q.WindowEnd,
		SelectedOptions: q.SelectedOptions,
	})
	if err != nil {
		return err
	}
	q.Estimate = &res
	return nil
}
