package notifier_test

import (
	"context"
	"errors"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-dashboard/internal/domain/entity"
)

// fakeSource fuente de inventario controlable desde el test.
type fakeSource struct {
	mu     sync.Mutex
	items  []entity.InventoryItem
	err    error
	calls  int
	tokens []string
}

func (f *fakeSource) set(items ...entity.InventoryItem) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = items
	f.err = nil
}

func (f *fakeSource) fail(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func (f *fakeSource) ListInventory(ctx context.Context) ([]entity.InventoryItem, error) {
	return f.list(ctx, "")
}

func (f *fakeSource) list(_ context.Context, token string) ([]entity.InventoryItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.tokens = append(f.tokens, token)
	if f.err != nil {
		return nil, f.err
	}
	out := make([]entity.InventoryItem, len(f.items))
	copy(out, f.items)
	return out, nil
}

func (f *fakeSource) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeSource) lastToken() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.tokens) == 0 {
		return ""
	}
	return f.tokens[len(f.tokens)-1]
}

// fakeClient adapta fakeSource al contrato con token.
type fakeClient struct{ *fakeSource }

func (c fakeClient) ListInventory(ctx context.Context, token string) ([]entity.InventoryItem, error) {
	return c.list(ctx, token)
}

// mapStore almacenamiento en memoria con fallo opcional en Set.
type mapStore struct {
	mu      sync.Mutex
	data    map[string]string
	failSet bool
}

func newMapStore() *mapStore { return &mapStore{data: make(map[string]string)} }

func (s *mapStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *mapStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSet {
		return errors.New("quota exceeded")
	}
	s.data[key] = value
	return nil
}

func (s *mapStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

func (s *mapStore) value(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	return v, ok
}

// recordingSink guarda las alertas emitidas.
type recordingSink struct {
	mu     sync.Mutex
	alerts []entity.Alert
}

func (r *recordingSink) Notify(_ context.Context, a entity.Alert) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.alerts = append(r.alerts, a)
}

func (r *recordingSink) all() []entity.Alert {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.Alert, len(r.alerts))
	copy(out, r.alerts)
	return out
}

func (r *recordingSink) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.alerts)
}

func item(id, name string, status entity.StockStatus) entity.InventoryItem {
	return entity.InventoryItem{
		ID:             id,
		ProductName:    name,
		SKU:            "SKU-" + id,
		Status:         status,
		AvailableStock: decimal.NewFromInt(1),
		Threshold:      decimal.NewFromInt(10),
	}
}
