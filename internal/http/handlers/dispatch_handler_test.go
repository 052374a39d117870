// Tests for the assignment endpoints: status codes and error mapping.
package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"hakobu/internal/http/handlers"
	"hakobu/internal/modules/dispatch"
	"hakobu/internal/types"
)

// stubDispatch is a test double for handlers.DispatchService. Each field, when
// set, is returned verbatim by the corresponding method.
type stubDispatch struct {
	warning *dispatch.Warning
	entry   dispatch.ScheduleEntry
	err     error
}

func (s *stubDispatch) Validate(context.Context, dispatch.AssignmentRequest) (*dispatch.Warning, error) {
	return s.warning, s.err
}

func (s *stubDispatch) Assign(context.Context, dispatch.AssignmentRequest) (dispatch.ScheduleEntry, *dispatch.Warning, error) {
	return s.entry, s.warning, s.err
}

func (s *stubDispatch) ConfirmAssign(context.Context, string) (dispatch.ScheduleEntry, error) {
	return s.entry, s.err
}

func (s *stubDispatch) Unassign(context.Context, types.ID, types.ID) error {
	return s.err
}

func (s *stubDispatch) Schedules(context.Context, types.ID) ([]dispatch.ScheduleEntry, error) {
	return []dispatch.ScheduleEntry{s.entry}, s.err
}

func buildDispatchRouter(svc handlers.DispatchService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handlers.NewDispatchHandler(svc)
	r.POST("/api/trucks/:id/assignments/validate", h.Validate)
	r.POST("/api/trucks/:id/assignments", h.Assign)
	r.DELETE("/api/trucks/:id/assignments/:entryID", h.Unassign)
	r.POST("/api/assignments/confirm", h.Confirm)
	return r
}

func doJSON(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func validAssignmentBody() map[string]interface{} {
	return map[string]interface{}{
		"date":                  "2025-04-01",
		"start_time":            "10:00",
		"end_time":              "12:00",
		"requested_capacity_kg": 500,
		"contract_status":       "confirmed",
		"work_type":             "household move",
	}
}

func TestAssignCleanSlot(t *testing.T) {
	entry := dispatch.ScheduleEntry{ID: "e1", TruckID: "t1"}
	r := buildDispatchRouter(&stubDispatch{entry: entry})

	w := doJSON(r, http.MethodPost, "/api/trucks/t1/assignments", validAssignmentBody())
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body %s", w.Code, w.Body.String())
	}
	var resp struct {
		Result string                 `json:"result"`
		Entry  dispatch.ScheduleEntry `json:"entry"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Result != "assigned" || resp.Entry.ID != "e1" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestAssignSoftConflictReturnsToken(t *testing.T) {
	warning := &dispatch.Warning{
		Conflict: dispatch.ScheduleEntry{ID: "e9", ContractStatus: dispatch.ContractEstimate},
		Token:    "tok-123",
	}
	r := buildDispatchRouter(&stubDispatch{warning: warning})

	w := doJSON(r, http.MethodPost, "/api/trucks/t1/assignments", validAssignmentBody())
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409; body %s", w.Code, w.Body.String())
	}
	var resp struct {
		Result  string           `json:"result"`
		Warning dispatch.Warning `json:"warning"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Result != "warning" || resp.Warning.Token != "tok-123" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestAssignConfirmedConflictCarriesEntry(t *testing.T) {
	blocker := dispatch.ScheduleEntry{ID: "e5", ContractStatus: dispatch.ContractConfirmed}
	r := buildDispatchRouter(&stubDispatch{err: &dispatch.ConfirmedConflictError{Entry: blocker}})

	w := doJSON(r, http.MethodPost, "/api/trucks/t1/assignments", validAssignmentBody())
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409; body %s", w.Code, w.Body.String())
	}
	var resp struct {
		Error    string                  `json:"error"`
		Conflict *dispatch.ScheduleEntry `json:"conflict"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Conflict == nil || resp.Conflict.ID != "e5" {
		t.Errorf("conflict entry not surfaced: %+v", resp)
	}
}

func TestValidateReportsWarningWithoutToken(t *testing.T) {
	warning := &dispatch.Warning{Conflict: dispatch.ScheduleEntry{ID: "e2"}}
	r := buildDispatchRouter(&stubDispatch{warning: warning})

	w := doJSON(r, http.MethodPost, "/api/trucks/t1/assignments/validate", validAssignmentBody())
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", w.Code, w.Body.String())
	}
	var resp struct {
		Result string `json:"result"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Result != "warning" {
		t.Errorf("result = %q, want warning", resp.Result)
	}
}

func TestAssignRejectsMalformedTime(t *testing.T) {
	r := buildDispatchRouter(&stubDispatch{})
	body := validAssignmentBody()
	body["start_time"] = "10am"

	w := doJSON(r, http.MethodPost, "/api/trucks/t1/assignments", body)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestConfirmExpiredTokenIsGone(t *testing.T) {
	r := buildDispatchRouter(&stubDispatch{err: dispatch.ErrTokenExpired})

	w := doJSON(r, http.MethodPost, "/api/assignments/confirm", map[string]string{"token": "stale"})
	if w.Code != http.StatusGone {
		t.Errorf("status = %d, want 410; body %s", w.Code, w.Body.String())
	}
}

func TestConfirmMissingTokenBadRequest(t *testing.T) {
	r := buildDispatchRouter(&stubDispatch{})

	w := doJSON(r, http.MethodPost, "/api/assignments/confirm", map[string]string{})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestUnassignNoContent(t *testing.T) {
	r := buildDispatchRouter(&stubDispatch{})

	w := doJSON(r, http.MethodDelete, "/api/trucks/t1/assignments/e1", nil)
	if w.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", w.Code)
	}
}
