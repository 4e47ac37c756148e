package billableservice

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

type mockRepo struct {
	items  map[uuid.UUID]*BillableService
	prices map[uuid.UUID][]ServicePrice
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		items:  make(map[uuid.UUID]*BillableService),
		prices: make(map[uuid.UUID][]ServicePrice),
	}
}

func (m *mockRepo) Create(_ context.Context, s *BillableService) error {
	s.ID = uuid.New()
	s.CreatedAt = time.Now()
	s.UpdatedAt = time.Now()
	stored := *s
	stored.Prices = nil
	m.items[s.ID] = &stored
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*BillableService, error) {
	s, ok := m.items[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	cp := *s
	return &cp, nil
}

func (m *mockRepo) GetByName(_ context.Context, name string) (*BillableService, error) {
	for _, s := range m.items {
		if strings.EqualFold(s.Name, name) {
			cp := *s
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("not found")
}

func (m *mockRepo) Update(_ context.Context, s *BillableService) error {
	stored, ok := m.items[s.ID]
	if !ok {
		return fmt.Errorf("not found")
	}
	*stored = *s
	stored.Prices = nil
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.items, id)
	delete(m.prices, id)
	return nil
}

func (m *mockRepo) List(_ context.Context, nameQuery, status string, limit, offset int) ([]*BillableService, int, error) {
	var result []*BillableService
	for _, s := range m.items {
		if nameQuery != "" && !strings.Contains(strings.ToLower(s.Name), strings.ToLower(nameQuery)) {
			continue
		}
		if status != "" && s.ServiceStatus != status {
			continue
		}
		cp := *s
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, len(result), nil
}

func (m *mockRepo) ReplacePrices(_ context.Context, serviceID uuid.UUID, prices []ServicePrice) error {
	stored := make([]ServicePrice, len(prices))
	for i, p := range prices {
		p.ID = uuid.New()
		p.ServiceID = serviceID
		stored[i] = p
	}
	m.prices[serviceID] = stored
	return nil
}

func (m *mockRepo) GetPrices(_ context.Context, serviceID uuid.UUID) ([]ServicePrice, error) {
	return m.prices[serviceID], nil
}

type mockModeChecker struct {
	known map[uuid.UUID]bool
}

func (m *mockModeChecker) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	return m.known[id], nil
}

func newTestService(repo Repository, modeIDs ...uuid.UUID) *Service {
	known := make(map[uuid.UUID]bool)
	for _, id := range modeIDs {
		known[id] = true
	}
	return NewService(repo, &mockModeChecker{known: known}, nil)
}

func validService(modeID uuid.UUID) *BillableService {
	return &BillableService{
		Name:      "Consultation",
		ShortName: "CONS",
		Prices: []ServicePrice{
			{Name: "Cash", Price: 500, PaymentModeID: modeID},
		},
	}
}

func TestCreate(t *testing.T) {
	modeID := uuid.New()
	svc := newTestService(newMockRepo(), modeID)
	ctx := context.Background()

	bs := validService(modeID)
	if err := svc.Create(ctx, bs); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if bs.ServiceStatus != StatusEnabled {
		t.Errorf("ServiceStatus = %q, want default %q", bs.ServiceStatus, StatusEnabled)
	}

	got, err := svc.Get(ctx, bs.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(got.Prices) != 1 || got.Prices[0].Price != 500 {
		t.Errorf("Prices = %+v", got.Prices)
	}
}

func TestCreate_Validation(t *testing.T) {
	modeID := uuid.New()
	svc := newTestService(newMockRepo(), modeID)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*BillableService)
	}{
		{name: "missing name", mutate: func(bs *BillableService) { bs.Name = "" }},
		{name: "missing short name", mutate: func(bs *BillableService) { bs.ShortName = "" }},
		{name: "no prices", mutate: func(bs *BillableService) { bs.Prices = nil }},
		{name: "negative price", mutate: func(bs *BillableService) { bs.Prices[0].Price = -1 }},
		{name: "unknown payment mode", mutate: func(bs *BillableService) { bs.Prices[0].PaymentModeID = uuid.New() }},
		{name: "bad status", mutate: func(bs *BillableService) { bs.ServiceStatus = "ACTIVE" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bs := validService(modeID)
			tt.mutate(bs)
			if err := svc.Create(ctx, bs); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}

func TestUpdate_MergesPartialPayload(t *testing.T) {
	modeID := uuid.New()
	svc := newTestService(newMockRepo(), modeID)
	ctx := context.Background()

	bs := validService(modeID)
	if err := svc.Create(ctx, bs); err != nil {
		t.Fatal(err)
	}

	patch := &BillableService{ID: bs.ID, ServiceStatus: StatusDisabled}
	if err := svc.Update(ctx, patch); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if patch.Name != "Consultation" || patch.ShortName != "CONS" {
		t.Errorf("merge lost fields: %+v", patch)
	}

	got, _ := svc.Get(ctx, bs.ID)
	if got.ServiceStatus != StatusDisabled {
		t.Errorf("ServiceStatus = %q, want %q", got.ServiceStatus, StatusDisabled)
	}
	if len(got.Prices) != 1 {
		t.Errorf("partial update should keep prices, got %d", len(got.Prices))
	}
}

func TestGetByName_CaseInsensitive(t *testing.T) {
	modeID := uuid.New()
	svc := newTestService(newMockRepo(), modeID)
	ctx := context.Background()

	bs := validService(modeID)
	if err := svc.Create(ctx, bs); err != nil {
		t.Fatal(err)
	}

	got, err := svc.GetByName(ctx, "cOnSuLtAtIoN")
	if err != nil {
		t.Fatalf("GetByName() error = %v", err)
	}
	if got.ID != bs.ID {
		t.Errorf("GetByName() resolved the wrong service")
	}
}

func TestList_FiltersByStatus(t *testing.T) {
	modeID := uuid.New()
	svc := newTestService(newMockRepo(), modeID)
	ctx := context.Background()

	enabled := validService(modeID)
	if err := svc.Create(ctx, enabled); err != nil {
		t.Fatal(err)
	}
	disabled := validService(modeID)
	disabled.Name = "X-Ray"
	disabled.ServiceStatus = StatusDisabled
	if err := svc.Create(ctx, disabled); err != nil {
		t.Fatal(err)
	}

	got, total, err := svc.List(ctx, "", StatusEnabled, 10, 0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if total != 1 || got[0].Name != "Consultation" {
		t.Errorf("List() = %d results, first %+v", total, got)
	}

	if _, _, err := svc.List(ctx, "", "bogus", 10, 0); err == nil {
		t.Error("invalid status filter should fail")
	}
}
