package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/Inventario-dashboard/internal/domain/entity"
	"github.com/jhoicas/Inventario-dashboard/internal/domain/repository"
)

var _ repository.AlertRepository = (*AlertRepo)(nil)

// AlertRepo historial de alertas en memoria, acotado a maxPerUser por usuario.
type AlertRepo struct {
	mu         sync.RWMutex
	maxPerUser int
	byUser     map[string][]entity.Alert
}

// NewAlertRepository construye el repositorio. maxPerUser <= 0 usa 500.
func NewAlertRepository(maxPerUser int) *AlertRepo {
	if maxPerUser <= 0 {
		maxPerUser = 500
	}
	return &AlertRepo{maxPerUser: maxPerUser, byUser: make(map[string][]entity.Alert)}
}

func (r *AlertRepo) Save(_ context.Context, alert *entity.Alert) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a := *alert
	a.Items = append([]entity.Snapshot(nil), alert.Items...)
	list := append(r.byUser[a.UserID], a)
	if len(list) > r.maxPerUser {
		list = list[len(list)-r.maxPerUser:]
	}
	r.byUser[a.UserID] = list
	return nil
}

func (r *AlertRepo) ListByUser(_ context.Context, userID string, since time.Time, limit int) ([]*entity.Alert, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*entity.Alert
	for _, a := range r.byUser[userID] {
		if a.CreatedAt.Before(since) {
			continue
		}
		cp := a
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
