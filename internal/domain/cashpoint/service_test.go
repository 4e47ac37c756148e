package cashpoint

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
)

type mockRepo struct {
	items map[uuid.UUID]*CashPoint
	used  map[uuid.UUID]bool
}

func newMockRepo() *mockRepo {
	return &mockRepo{items: make(map[uuid.UUID]*CashPoint), used: make(map[uuid.UUID]bool)}
}

func (m *mockRepo) Create(_ context.Context, cp *CashPoint) error {
	cp.ID = uuid.New()
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = time.Now()
	stored := *cp
	m.items[cp.ID] = &stored
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*CashPoint, error) {
	cp, ok := m.items[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	c := *cp
	return &c, nil
}

func (m *mockRepo) Update(_ context.Context, cp *CashPoint) error {
	stored, ok := m.items[cp.ID]
	if !ok {
		return fmt.Errorf("not found")
	}
	*stored = *cp
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.items, id)
	return nil
}

func (m *mockRepo) List(_ context.Context, includeRetired bool, limit, offset int) ([]*CashPoint, int, error) {
	var result []*CashPoint
	for _, cp := range m.items {
		if !includeRetired && cp.Retired {
			continue
		}
		c := *cp
		result = append(result, &c)
	}
	return result, len(result), nil
}

func (m *mockRepo) InUse(_ context.Context, id uuid.UUID) (bool, error) {
	return m.used[id], nil
}

func TestCreate_RequiresName(t *testing.T) {
	svc := NewService(newMockRepo())
	if err := svc.Create(context.Background(), &CashPoint{}); err == nil {
		t.Error("expected a validation error")
	}
}

func TestDelete_UnreferencedIsRemoved(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	ctx := context.Background()

	cp := &CashPoint{Name: "OPD Till"}
	if err := svc.Create(ctx, cp); err != nil {
		t.Fatal(err)
	}
	if err := svc.Delete(ctx, cp.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := svc.Get(ctx, cp.ID); err == nil {
		t.Error("cash point should be gone")
	}
}

func TestDelete_ReferencedIsRetired(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	ctx := context.Background()

	cp := &CashPoint{Name: "Pharmacy Till"}
	if err := svc.Create(ctx, cp); err != nil {
		t.Fatal(err)
	}
	repo.used[cp.ID] = true

	if err := svc.Delete(ctx, cp.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	got, err := svc.Get(ctx, cp.ID)
	if err != nil {
		t.Fatalf("referenced cash point must survive delete: %v", err)
	}
	if !got.Retired {
		t.Error("referenced cash point should be retired")
	}
}

func TestList_ExcludesRetiredByDefault(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	ctx := context.Background()

	active := &CashPoint{Name: "OPD Till"}
	retired := &CashPoint{Name: "Old Till", Retired: true}
	for _, cp := range []*CashPoint{active, retired} {
		if err := svc.Create(ctx, cp); err != nil {
			t.Fatal(err)
		}
	}

	got, total, err := svc.List(ctx, false, 10, 0)
	if err != nil {
		t.Fatal(err)
	}
	if total != 1 || got[0].Name != "OPD Till" {
		t.Errorf("List(false) = %d results", total)
	}

	_, total, err = svc.List(ctx, true, 10, 0)
	if err != nil {
		t.Fatal(err)
	}
	if total != 2 {
		t.Errorf("List(true) = %d results, want 2", total)
	}
}
