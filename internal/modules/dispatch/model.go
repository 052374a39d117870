// Package dispatch assigns trucks to move jobs. It owns schedule entries,
// the conflict validator, and the two-phase assignment coordinator.
package dispatch

import (
	"hakobu/internal/types"
)

type ContractStatus string

const (
	// ContractConfirmed marks a contracted job; it blocks conflicting
	// assignments outright.
	ContractConfirmed ContractStatus = "confirmed"
	// ContractEstimate marks a quoted-but-unconfirmed job; conflicts with
	// it only warn.
	ContractEstimate ContractStatus = "estimate"
)

func ValidContractStatus(s ContractStatus) bool {
	return s == ContractConfirmed || s == ContractEstimate
}

// ScheduleEntry is one booked slot on one truck. Entries are created only by
// the coordinator and never mutated in place; cancellation removes them.
type ScheduleEntry struct {
	ID                 types.ID        `json:"id"`
	TruckID            types.ID        `json:"truck_id"`
	Date               types.Date      `json:"date"`
	StartTime          types.TimeOfDay `json:"start_time"`
	EndTime            types.TimeOfDay `json:"end_time"`
	ContractStatus     ContractStatus  `json:"contract_status"`
	AssignedCapacityKg int             `json:"assigned_capacity_kg"`
	WorkType           string          `json:"work_type"`
	CustomerRef        string          `json:"customer_ref"`
}

// AssignmentRequest is the transient input to validation and assignment.
// It is never persisted as-is; a successful assignment materializes it into
// a ScheduleEntry.
type AssignmentRequest struct {
	TruckID             types.ID        `json:"truck_id"`
	Date                types.Date      `json:"date"`
	StartTime           types.TimeOfDay `json:"start_time"`
	EndTime             types.TimeOfDay `json:"end_time"`
	RequestedCapacityKg int             `json:"requested_capacity_kg"`
	ContractStatus      ContractStatus  `json:"contract_status"`
	WorkType            string          `json:"work_type"`
	CustomerRef         string          `json:"customer_ref"`
}

// Warning is the soft-conflict payload: the proposal overlaps a tentative
// booking. Token lets the caller explicitly confirm and proceed.
type Warning struct {
	Conflict ScheduleEntry `json:"conflict"`
	Token    string        `json:"token,omitempty"`
}
