// Package fleet is the truck registry: identity, capacity, vehicle class,
// and operational status. Schedules live in the dispatch module; fleet only
// answers "what is this truck".
package fleet

import "hakobu/internal/types"

type Status string

const (
	StatusAvailable   Status = "available"
	StatusMaintenance Status = "maintenance"
	StatusInactive    Status = "inactive"
)

func ValidStatus(s Status) bool {
	switch s {
	case StatusAvailable, StatusMaintenance, StatusInactive:
		return true
	}
	return false
}

type Truck struct {
	ID           types.ID
	Name         string
	CapacityKg   int
	VehicleClass string
	Status       Status
}
