package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"hakobu/internal/modules/fleet"
	"hakobu/internal/types"
)

type FleetService interface {
	Create(ctx context.Context, cmd fleet.CreateCommand) (fleet.Truck, error)
	Get(ctx context.Context, id types.ID) (fleet.Truck, error)
	List(ctx context.Context) ([]fleet.Truck, error)
	SetStatus(ctx context.Context, id types.ID, status fleet.Status) error
}

type FleetHandler struct {
	fleet FleetService
}

func NewFleetHandler(svc FleetService) *FleetHandler {
	return &FleetHandler{fleet: svc}
}

type createTruckReq struct {
	Name         string `json:"name"`
	CapacityKg   int    `json:"capacity_kg"`
	VehicleClass string `json:"vehicle_class"`
}

func (h *FleetHandler) Create(c *gin.Context) {
	var body createTruckReq
	if err := c.ShouldBindJSON(&body); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	truck, err := h.fleet.Create(c.Request.Context(), fleet.CreateCommand{
		Name:         body.Name,
		CapacityKg:   body.CapacityKg,
		VehicleClass: body.VehicleClass,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, truck)
}

func (h *FleetHandler) Get(c *gin.Context) {
	truck, err := h.fleet.Get(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, truck)
}

func (h *FleetHandler) List(c *gin.Context) {
	trucks, err := h.fleet.List(c.Request.Context())
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trucks": trucks})
}

type setStatusReq struct {
	Status string `json:"status"`
}

func (h *FleetHandler) SetStatus(c *gin.Context) {
	var body setStatusReq
	if err := c.ShouldBindJSON(&body); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	err := h.fleet.SetStatus(c.Request.Context(),
		types.ID(c.Param("id")), fleet.Status(body.Status))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
