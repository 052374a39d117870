package quote

import (
	"context"
	"errors"
	"testing"

	"hakobu/internal/modules/estimate"
	"hakobu/internal/types"
)

type memQuotes struct {
	quotes map[types.ID]Quote
}

func (m *memQuotes) Create(_ context.Context, q *Quote) error {
	m.quotes[q.ID] = *q
	return nil
}

func (m *memQuotes) Get(_ context.Context, id types.ID) (Quote, error) {
	q, ok := m.quotes[id]
	if !ok {
		return Quote{}, ErrNotFound
	}
	return q, nil
}

func (m *memQuotes) List(_ context.Context) ([]Quote, error) {
	out := make([]Quote, 0, len(m.quotes))
	for _, q := range m.quotes {
		out = append(out, q)
	}
	return out, nil
}

func (m *memQuotes) Update(_ context.Context, q *Quote) error {
	if _, ok := m.quotes[q.ID]; !ok {
		return ErrNotFound
	}
	m.quotes[q.ID] = *q
	return nil
}

// stubEstimator prices every case at 1000 yen per item for test visibility.
type stubEstimator struct {
	calls int
}

func (s *stubEstimator) Estimate(_ context.Context, cmd estimate.Command) (estimate.EstimateResult, error) {
	s.calls++
	total := int64(len(cmd.Manifest.Items)) * 1000
	return estimate.EstimateResult{
		TotalPoints: float64(len(cmd.Manifest.Items)),
		Subtotal:    float64(total),
		Total:       types.Yen(total),
	}, nil
}

type stubDistance struct {
	km  float64
	err error
}

func (s *stubDistance) DrivingDistanceKm(context.Context, string, string) (float64, error) {
	return s.km, s.err
}

func createCmd() CreateCommand {
	return CreateCommand{
		CustomerRef:   "case-7",
		MoveDate:      types.Date("2026-09-01"),
		WindowStart:   types.NewTimeOfDay(9, 0),
		WindowEnd:     types.NewTimeOfDay(12, 0),
		OriginAddress: "Setagaya",
		DestAddress:   "Kawasaki",
		Manifest: estimate.Manifest{Items: []estimate.CargoItem{
			{Name: "sofa", Quantity: 1},
		}},
	}
}

func TestCreatePricesAndResolvesDistance(t *testing.T) {
	store := &memQuotes{quotes: map[types.ID]Quote{}}
	est := &stubEstimator{}
	svc := NewService(store, est, &stubDistance{km: 14.2})

	q, err := svc.Create(context.Background(), createCmd())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if q.Status != StatusEstimate {
		t.Errorf("status = %q, want estimate", q.Status)
	}
	if q.DistanceKm != 14.2 {
		t.Errorf("distance = %v, want resolved 14.2", q.DistanceKm)
	}
	if q.Estimate == nil || q.Estimate.Total.Amount != 1000 {
		t.Errorf("estimate = %+v", q.Estimate)
	}
	if est.calls != 1 {
		t.Errorf("estimator calls = %d, want 1", est.calls)
	}
}

func TestCreateExplicitDistanceWins(t *testing.T) {
	svc := NewService(&memQuotes{quotes: map[types.ID]Quote{}}, &stubEstimator{}, &stubDistance{km: 99})
	cmd := createCmd()
	cmd.DistanceKm = 8
	q, err := svc.Create(context.Background(), cmd)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if q.DistanceKm != 8 {
		t.Errorf("distance = %v, want explicit 8", q.DistanceKm)
	}
}

func TestCreateResolverFailureDoesNotBlock(t *testing.T) {
	svc := NewService(&memQuotes{quotes: map[types.ID]Quote{}}, &stubEstimator{},
		&stubDistance{err: errors.New("maps down")})
	q, err := svc.Create(context.Background(), createCmd())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if q.DistanceKm != 0 {
		t.Errorf("distance = %v, want 0 fallback", q.DistanceKm)
	}
}

func TestReviseReprices(t *testing.T) {
	store := &memQuotes{quotes: map[types.ID]Quote{}}
	est := &stubEstimator{}
	svc := NewService(store, est, nil)

	q, _ := svc.Create(context.Background(), createCmd())
	revised, err := svc.Revise(context.Background(), ReviseCommand{
		QuoteID: q.ID,
		Manifest: estimate.Manifest{Items: []estimate.CargoItem{
			{Name: "sofa", Quantity: 1},
			{Name: "bed", Quantity: 1},
			{Name: "desk", Quantity: 1},
		}},
	})
	if err != nil {
		t.Fatalf("revise: %v", err)
	}
	if revised.Estimate.Total.Amount != 3000 {
		t.Errorf("revised total = %d, want 3000", revised.Estimate.Total.Amount)
	}
	if est.calls != 2 {
		t.Errorf("estimator calls = %d, want 2", est.calls)
	}
}

func TestLifecycle(t *testing.T) {
	svc := NewService(&memQuotes{quotes: map[types.ID]Quote{}}, &stubEstimator{}, nil)
	ctx := context.Background()

	q, _ := svc.Create(ctx, createCmd())

	contracted, err := svc.Contract(ctx, q.ID)
	if err != nil {
		t.Fatalf("contract: %v", err)
	}
	if contracted.Status != StatusConfirmed {
		t.Errorf("status = %q, want confirmed", contracted.Status)
	}

	// Contracting twice is an invalid transition.
	if _, err := svc.Contract(ctx, q.ID); !errors.Is(err, ErrInvalidState) {
		t.Errorf("double contract err = %v, want ErrInvalidState", err)
	}

	cancelled, err := svc.Cancel(ctx, q.ID)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.Status != StatusCancelled {
		t.Errorf("status = %q, want cancelled", cancelled.Status)
	}

	// Cancelled quotes cannot be revised.
	if _, err := svc.Revise(ctx, ReviseCommand{QuoteID: q.ID}); !errors.Is(err, ErrInvalidState) {
		t.Errorf("revise cancelled err = %v, want ErrInvalidState", err)
	}
}

func TestCreateValidation(t *testing.T) {
	svc := NewService(&memQuotes{quotes: map[types.ID]Quote{}}, &stubEstimator{}, nil)
	bad := createCmd()
	bad.CustomerRef = ""
	if _, err := svc.Create(context.Background(), bad); !errors.Is(err, ErrBadRequest) {
		t.Errorf("missing customer err = %v, want ErrBadRequest", err)
	}
	bad = createCmd()
	bad.WindowEnd = bad.WindowStart
	if _, err := svc.Create(context.Background(), bad); !errors.Is(err, ErrBadRequest) {
		t.Errorf("empty window err = %v, want ErrBadRequest", err)
	}
}
