// Package quote manages move cases: who is moving, when, how far, what
// cargo, and the running estimate. A quote starts tentative and becomes a
// contract when the customer signs.
package quote

import (
	"time"

	"hakobu/internal/modules/estimate"
	"hakobu/internal/types"
)

type Status string

const (
	StatusEstimate  Status = "estimate"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// AllowedTransitions represents the case lifecycle as code.
var AllowedTransitions = map[Status][]Status{
	StatusEstimate:  {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCancelled},
}

func CanTransition(from, to Status) bool {
	for _, s := range AllowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

type Quote struct {
	ID              types.ID
	CustomerRef     string
	Status          Status
	MoveDate        types.Date
	WindowStart     types.TimeOfDay
	WindowEnd       types.TimeOfDay
	OriginAddress   string
	DestAddress     string
	DistanceKm      float64
	Manifest        estimate.Manifest
	SelectedOptions []string
	// Estimate is the latest priced result; recomputed whenever the
	// manifest or options change.
	Estimate  *estimate.EstimateResult
	CreatedAt time.Time
	UpdatedAt time.Time
}
