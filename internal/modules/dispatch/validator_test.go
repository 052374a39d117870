package dispatch

import (
	"errors"
	"testing"

	"hakobu/internal/modules/fleet"
	"hakobu/internal/types"
)

func tod(h, m int) types.TimeOfDay { return types.NewTimeOfDay(h, m) }

var testTruck = fleet.Truck{
	ID:           "t1",
	Name:         "No.1",
	CapacityKg:   1000,
	VehicleClass: "2t",
	Status:       fleet.StatusAvailable,
}

func request(date string, start, end types.TimeOfDay) AssignmentRequest {
	return AssignmentRequest{
		TruckID:             "t1",
		Date:                types.Date(date),
		StartTime:           start,
		EndTime:             end,
		RequestedCapacityKg: 500,
		ContractStatus:      ContractEstimate,
	}
}

func confirmedEntry(id, date string, start, end types.TimeOfDay) ScheduleEntry {
	return ScheduleEntry{
		ID: types.ID(id), TruckID: "t1", Date: types.Date(date),
		StartTime: start, EndTime: end, ContractStatus: ContractConfirmed,
		AssignedCapacityKg: 400,
	}
}

func tentativeEntry(id, date string, start, end types.TimeOfDay) ScheduleEntry {
	e := confirmedEntry(id, date, start, end)
	e.ContractStatus = ContractEstimate
	return e
}

func TestValidateTruckStatus(t *testing.T) {
	for _, status := range []fleet.Status{fleet.StatusMaintenance, fleet.StatusInactive} {
		truck := testTruck
		truck.Status = status
		_, err := validate(request("2026-09-01", tod(9, 0), tod(11, 0)), truck, nil)
		if !errors.Is(err, ErrTruckUnavailable) {
			t.Errorf("status %s: err = %v, want ErrTruckUnavailable", status, err)
		}
	}
}

func TestValidateCapacity(t *testing.T) {
	req := request("2026-09-01", tod(9, 0), tod(11, 0))
	req.RequestedCapacityKg = 1200
	if _, err := validate(req, testTruck, nil); !errors.Is(err, ErrCapacityExceeded) {
		t.Errorf("1200kg on 1000kg truck: err = %v, want ErrCapacityExceeded", err)
	}

	// Exactly at capacity is not a capacity rejection.
	req.RequestedCapacityKg = 1000
	if warning, err := validate(req, testTruck, nil); err != nil || warning != nil {
		t.Errorf("1000kg on 1000kg truck: warning=%v err=%v, want clean accept", warning, err)
	}
}

func TestValidateConfirmedOverlap(t *testing.T) {
	schedules := []ScheduleEntry{confirmedEntry("e1", "2026-09-01", tod(9, 0), tod(11, 0))}

	cases := []struct {
		name     string
		req      AssignmentRequest
		conflict bool
	}{
		{"overlapping window rejects", request("2026-09-01", tod(10, 0), tod(12, 0)), true},
		{"contained window rejects", request("2026-09-01", tod(9, 30), tod(10, 30)), true},
		{"touching boundary is not overlap", request("2026-09-01", tod(11, 0), tod(13, 0)), false},
		{"ends at their start is not overlap", request("2026-09-01", tod(7, 0), tod(9, 0)), false},
		{"same slot on another date accepts", request("2026-09-02", tod(9, 0), tod(11, 0)), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			warning, err := validate(tc.req, testTruck, schedules)
			if tc.conflict {
				var cce *ConfirmedConflictError
				if !errors.As(err, &cce) {
					t.Fatalf("err = %v, want ConfirmedConflictError", err)
				}
				if cce.Entry.ID != "e1" {
					t.Fatalf("conflicting entry = %s, want e1", cce.Entry.ID)
				}
				return
			}
			if err != nil || warning != nil {
				t.Fatalf("warning=%v err=%v, want clean accept", warning, err)
			}
		})
	}
}

func TestValidateTentativeOverlapWarns(t *testing.T) {
	schedules := []ScheduleEntry{tentativeEntry("e2", "2026-09-01", tod(13, 0), tod(15, 0))}
	warning, err := validate(request("2026-09-01", tod(14, 0), tod(16, 0)), testTruck, schedules)
	if err != nil {
		t.Fatalf("err = %v, want warning instead", err)
	}
	if warning == nil || warning.Conflict.ID != "e2" {
		t.Fatalf("warning = %+v, want conflict with e2", warning)
	}
}

// Hard conflicts are checked before soft ones, and within each class the
// first entry in schedule order wins, not the earliest by clock time.
func TestValidateConflictPrecedenceAndTieBreak(t *testing.T) {
	schedules := []ScheduleEntry{
		tentativeEntry("soft1", "2026-09-01", tod(9, 0), tod(12, 0)),
		confirmedEntry("hard1", "2026-09-01", tod(10, 0), tod(12, 0)),
	}
	_, err := validate(request("2026-09-01", tod(10, 30), tod(11, 30)), testTruck, schedules)
	var cce *ConfirmedConflictError
	if !errors.As(err, &cce) || cce.Entry.ID != "hard1" {
		t.Fatalf("err = %v, want confirmed conflict with hard1", err)
	}

	schedules = []ScheduleEntry{
		tentativeEntry("soft-late", "2026-09-01", tod(12, 0), tod(14, 0)),
		tentativeEntry("soft-early", "2026-09-01", tod(8, 0), tod(14, 0)),
	}
	warning, err := validate(request("2026-09-01", tod(12, 30), tod(13, 0)), testTruck, schedules)
	if err != nil || warning == nil {
		t.Fatalf("warning=%v err=%v, want warning", warning, err)
	}
	if warning.Conflict.ID != "soft-late" {
		t.Fatalf("reported conflict = %s, want soft-late (schedule order)", warning.Conflict.ID)
	}
}

func TestValidateBadRequest(t *testing.T) {
	cases := []AssignmentRequest{
		request("", tod(9, 0), tod(11, 0)),
		request("2026-09-01", tod(11, 0), tod(9, 0)),
		request("2026-09-01", tod(9, 0), tod(9, 0)),
		{TruckID: "t1", Date: "2026-09-01", StartTime: tod(9, 0), EndTime: tod(11, 0),
			RequestedCapacityKg: 500, ContractStatus: "maybe"},
	}
	for i, req := range cases {
		if _, err := validate(req, testTruck, nil); !errors.Is(err, ErrBadRequest) {
			t.Errorf("case %d: err = %v, want ErrBadRequest", i, err)
		}
	}
}
