package dispatch

import (
	"errors"
	"fmt"

	"hakobu/internal/modules/fleet"
)

var (
	ErrBadRequest       = errors.New("bad assignment request")
	ErrTruckUnavailable = errors.New("truck not available")
	ErrCapacityExceeded = errors.New("requested capacity exceeds truck capacity")
	ErrNotFound         = errors.New("not found")
	ErrTokenExpired     = errors.New("confirmation token expired or unknown")
)

// ConfirmedConflictError is the hard-reject case: the proposal overlaps a
// confirmed booking. It carries the conflicting entry so the caller can show
// which job is in the way.
type ConfirmedConflictError struct {
	Entry ScheduleEntry
}

func (e *ConfirmedConflictError) Error() string {
	return fmt.Sprintf("conflicts with confirmed booking %s (%s %s-%s)",
		e.Entry.ID, e.Entry.Date, e.Entry.StartTime, e.Entry.EndTime)
}

// validate checks one proposal against one truck snapshot. It returns a
// non-nil *Warning when the only finding is an overlap with a tentative
// booking; hard failures come back as errors and imply no mutation.
//
// Check order is fixed: truck status, capacity, confirmed overlap, tentative
// overlap. Overlap uses half-open [start, end) semantics, so back-to-back
// bookings that touch at a boundary do not conflict. When several entries
// overlap, the first in schedule order is reported, deliberately not the
// earliest by clock time.
func validate(req AssignmentRequest, truck fleet.Truck, schedules []ScheduleEntry) (*Warning, error) {
	if req.Date == "" || req.EndTime <= req.StartTime || req.RequestedCapacityKg <= 0 ||
		!ValidContractStatus(req.ContractStatus) {
		return nil, ErrBadRequest
	}
	if truck.Status != fleet.StatusAvailable {
		return nil, ErrTruckUnavailable
	}
	if req.RequestedCapacityKg > truck.CapacityKg {
		return nil, ErrCapacityExceeded
	}

	for _, entry := range schedules {
		if entry.ContractStatus == ContractConfirmed && overlaps(req, entry) {
			return nil, &ConfirmedConflictError{Entry: entry}
		}
	}
	for _, entry := range schedules {
		if entry.ContractStatus == ContractEstimate && overlaps(req, entry) {
			return &Warning{Conflict: entry}, nil
		}
	}
	return nil, nil
}

// overlaps reports whether the request and entry intersect on the same date.
// [s1,e1) and [s2,e2) overlap iff s1 < e2 and s2 < e1.
func overlaps(req AssignmentRequest, entry ScheduleEntry) bool {
	if req.Date != entry.Date {
		return false
	}
	return req.StartTime < entry.EndTime && entry.StartTime < req.EndTime
}
