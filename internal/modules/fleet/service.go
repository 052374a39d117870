package fleet

import (
	"context"
	"errors"

	"hakobu/internal/types"
)

var (
	ErrNotFound   = errors.New("truck not found")
	ErrBadRequest = errors.New("bad truck request")
)

// Registry is the persistence contract the service runs on. *Store is the
// production implementation; tests use an in-memory one.
type Registry interface {
	Create(ctx context.Context, t *Truck) error
	Get(ctx context.Context, id types.ID) (Truck, error)
	List(ctx context.Context) ([]Truck, error)
	SetStatus(ctx context.Context, id types.ID, status Status) error
}

type Service struct {
	store Registry
}

func NewService(store Registry) *Service {
	return &Service{store: store}
}

type CreateCommand struct {
	Name         string
	CapacityKg   int
	VehicleClass string
}

func (s *Service) Create(ctx context.Context, cmd CreateCommand) (Truck, error) {
	if cmd.Name == "" || cmd.CapacityKg <= 0 || cmd.VehicleClass == "" {
		return Truck{}, ErrBadRequest
	}
	t := Truck{
		ID:           types.NewID(),
		Name:         cmd.Name,
		CapacityKg:   cmd.CapacityKg,
		VehicleClass: cmd.VehicleClass,
		Status:       StatusAvailable,
	}
	if err := s.store.Create(ctx, &t); err != nil {
		return Truck{}, err
	}
	return t, nil
}

func (s *Service) Get(ctx context.Context, id types.ID) (Truck, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Truck, error) {
	return s.store.List(ctx)
}

func (s *Service) SetStatus(ctx context.Context, id types.ID, status Status) error {
	if !ValidStatus(status) {
		return ErrBadRequest
	}
	return s.store.SetStatus(ctx, id, status)
}
