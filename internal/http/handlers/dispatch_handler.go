package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"hakobu/internal/modules/dispatch"
	"hakobu/internal/types"
)

// DispatchService is the slice of dispatch.Service the handler needs.
type DispatchService interface {
	Validate(ctx context.Context, req dispatch.AssignmentRequest) (*dispatch.Warning, error)
	Assign(ctx context.Context, req dispatch.AssignmentRequest) (dispatch.ScheduleEntry, *dispatch.Warning, error)
	ConfirmAssign(ctx context.Context, token string) (dispatch.ScheduleEntry, error)
	Unassign(ctx context.Context, truckID, entryID types.ID) error
	Schedules(ctx context.Context, truckID types.ID) ([]dispatch.ScheduleEntry, error)
}

type DispatchHandler struct {
	dispatch DispatchService
}

func NewDispatchHandler(svc DispatchService) *DispatchHandler {
	return &DispatchHandler{dispatch: svc}
}

type assignmentReq struct {
	Date                string `json:"date"`
	StartTime           string `json:"start_time"`
	EndTime             string `json:"end_time"`
	RequestedCapacityKg int    `json:"requested_capacity_kg"`
	ContractStatus      string `json:"contract_status"`
	WorkType            string `json:"work_type"`
	CustomerRef         string `json:"customer_ref"`
}

func (r assignmentReq) toDomain(truckID string) (dispatch.AssignmentRequest, error) {
	date, err := types.ParseDate(r.Date)
	if err != nil {
		return dispatch.AssignmentRequest{}, err
	}
	start, err := types.ParseTimeOfDay(r.StartTime)
	if err != nil {
		return dispatch.AssignmentRequest{}, err
	}
	end, err := types.ParseTimeOfDay(r.EndTime)
	if err != nil {
		return dispatch.AssignmentRequest{}, err
	}
	return dispatch.AssignmentRequest{
		TruckID:             types.ID(truckID),
		Date:                date,
		StartTime:           start,
		EndTime:             end,
		RequestedCapacityKg: r.RequestedCapacityKg,
		ContractStatus:      dispatch.ContractStatus(r.ContractStatus),
		WorkType:            r.WorkType,
		CustomerRef:         r.CustomerRef,
	}, nil
}

func (h *DispatchHandler) bindRequest(c *gin.Context) (dispatch.AssignmentRequest, bool) {
	var body assignmentReq
	if err := c.ShouldBindJSON(&body); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return dispatch.AssignmentRequest{}, false
	}
	req, err := body.toDomain(c.Param("id"))
	if err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return dispatch.AssignmentRequest{}, false
	}
	return req, true
}

// Validate runs conflict checking without committing anything.
func (h *DispatchHandler) Validate(c *gin.Context) {
	req, ok := h.bindRequest(c)
	if !ok {
		return
	}
	warning, err := h.dispatch.Validate(c.Request.Context(), req)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	if warning != nil {
		c.JSON(http.StatusOK, gin.H{"result": "warning", "warning": warning})
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": "ok"})
}

// Assign commits a clean slot, or answers with a confirmation token when the
// slot overlaps a tentative booking.
func (h *DispatchHandler) Assign(c *gin.Context) {
	req, ok := h.bindRequest(c)
	if !ok {
		return
	}
	entry, warning, err := h.dispatch.Assign(c.Request.Context(), req)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	if warning != nil {
		c.JSON(http.StatusConflict, gin.H{"result": "warning", "warning": warning})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"result": "assigned", "entry": entry})
}

type confirmReq struct {
	Token string `json:"token"`
}

func (h *DispatchHandler) Confirm(c *gin.Context) {
	var body confirmReq
	if err := c.ShouldBindJSON(&body); err != nil || body.Token == "" {
		writeError(c, http.StatusBadRequest, "missing token")
		return
	}
	entry, err := h.dispatch.ConfirmAssign(c.Request.Context(), body.Token)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"result": "assigned", "entry": entry})
}

func (h *DispatchHandler) Unassign(c *gin.Context) {
	err := h.dispatch.Unassign(c.Request.Context(),
		types.ID(c.Param("id")), types.ID(c.Param("entryID")))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *DispatchHandler) List(c *gin.Context) {
	entries, err := h.dispatch.Schedules(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}
