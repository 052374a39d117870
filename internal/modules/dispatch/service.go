package dispatch

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"hakobu/internal/modules/fleet"
	"hakobu/internal/types"
)

// TruckSource yields truck snapshots. fleet.Service satisfies it.
type TruckSource interface {
	Get(ctx context.Context, id types.ID) (fleet.Truck, error)
}

// ScheduleStore persists schedule entries. Delete on a missing entry must be
// a no-op, not an error.
type ScheduleStore interface {
	ListByTruck(ctx context.Context, truckID types.ID) ([]ScheduleEntry, error)
	Insert(ctx context.Context, entry ScheduleEntry) error
	Delete(ctx context.Context, truckID, entryID types.ID) error
}

// TokenStore holds pending soft-conflict confirmations between the warn and
// the confirm call. Get consumes the token.
type TokenStore interface {
	Put(ctx context.Context, token string, req AssignmentRequest) error
	Take(ctx context.Context, token string) (AssignmentRequest, error)
}

// Service is the assignment coordinator. Assignment and removal for a given
// truck are serialized through a per-truck lock so two requests cannot both
// validate against the same snapshot and both commit.
type Service struct {
	trucks    TruckSource
	schedules ScheduleStore
	tokens    TokenStore

	mu    sync.Mutex
	locks map[types.ID]*sync.Mutex
}

func NewService(trucks TruckSource, schedules ScheduleStore, tokens TokenStore) *Service {
	return &Service{
		trucks:    trucks,
		schedules: schedules,
		tokens:    tokens,
		locks:     map[types.ID]*sync.Mutex{},
	}
}

func (s *Service) truckLock(id types.ID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	return l
}

// Validate runs the conflict check without mutating anything. A returned
// warning means the caller may still proceed via Assign/ConfirmAssign.
func (s *Service) Validate(ctx context.Context, req AssignmentRequest) (*Warning, error) {
	truck, schedules, err := s.snapshot(ctx, req.TruckID)
	if err != nil {
		return nil, err
	}
	return validate(req, truck, schedules)
}

// Assign validates and commits in one step when the slot is clean. On a
// tentative conflict nothing is written; the warning comes back with a
// confirmation token and the caller decides. Hard conflicts are errors.
func (s *Service) Assign(ctx context.Context, req AssignmentRequest) (ScheduleEntry, *Warning, error) {
	lock := s.truckLock(req.TruckID)
	lock.Lock()
	defer lock.Unlock()

	truck, schedules, err := s.snapshot(ctx, req.TruckID)
	if err != nil {
		return ScheduleEntry{}, nil, err
	}
	warning, err := validate(req, truck, schedules)
	if err != nil {
		return ScheduleEntry{}, nil, err
	}
	if warning != nil {
		warning.Token = uuid.NewString()
		if err := s.tokens.Put(ctx, warning.Token, req); err != nil {
			return ScheduleEntry{}, nil, err
		}
		return ScheduleEntry{}, warning, nil
	}

	entry, err := s.commit(ctx, req)
	return entry, nil, err
}

// ConfirmAssign commits a previously warned request. The request is
// re-validated against current state: an acknowledged tentative conflict no
// longer blocks, but a confirmed booking that appeared in the meantime still
// rejects.
func (s *Service) ConfirmAssign(ctx context.Context, token string) (ScheduleEntry, error) {
	req, err := s.tokens.Take(ctx, token)
	if err != nil {
		return ScheduleEntry{}, err
	}

	lock := s.truckLock(req.TruckID)
	lock.Lock()
	defer lock.Unlock()

	truck, schedules, err := s.snapshot(ctx, req.TruckID)
	if err != nil {
		return ScheduleEntry{}, err
	}
	if _, err := validate(req, truck, schedules); err != nil {
		return ScheduleEntry{}, err
	}
	return s.commit(ctx, req)
}

// Unassign removes a schedule entry. Removing an entry that does not exist
// is a successful no-op.
func (s *Service) Unassign(ctx context.Context, truckID, entryID types.ID) error {
	lock := s.truckLock(truckID)
	lock.Lock()
	defer lock.Unlock()
	return s.schedules.Delete(ctx, truckID, entryID)
}

// Schedules lists a truck's current bookings in schedule order.
func (s *Service) Schedules(ctx context.Context, truckID types.ID) ([]ScheduleEntry, error) {
	if _, err := s.trucks.Get(ctx, truckID); err != nil {
		return nil, err
	}
	return s.schedules.ListByTruck(ctx, truckID)
}

func (s *Service) snapshot(ctx context.Context, truckID types.ID) (fleet.Truck, []ScheduleEntry, error) {
	truck, err := s.trucks.Get(ctx, truckID)
	if err != nil {
		return fleet.Truck{}, nil, err
	}
	schedules, err := s.schedules.ListByTruck(ctx, truckID)
	if err != nil {
		return fleet.Truck{}, nil, err
	}
	return truck, schedules, nil
}

func (s *Service) commit(ctx context.Context, req AssignmentRequest) (ScheduleEntry, error) {
	entry := ScheduleEntry{
		ID:                 types.NewID(),
		TruckID:            req.TruckID,
		Date:               req.Date,
		StartTime:          req.StartTime,
		EndTime:            req.EndTime,
		ContractStatus:     req.ContractStatus,
		AssignedCapacityKg: req.RequestedCapacityKg,
		WorkType:           req.WorkType,
		CustomerRef:        req.CustomerRef,
	}
	if err := s.schedules.Insert(ctx, entry); err != nil {
		return ScheduleEntry{}, err
	}
	return entry, nil
}
