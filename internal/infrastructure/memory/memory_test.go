package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-dashboard/internal/domain/entity"
	"github.com/jhoicas/Inventario-dashboard/internal/infrastructure/memory"
)

func TestKVStore(t *testing.T) {
	ctx := context.Background()
	s := memory.NewKVStore()

	_, found, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Set(ctx, "k", `["1-low-stock"]`))
	v, found, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `["1-low-stock"]`, v)

	require.NoError(t, s.Delete(ctx, "k"))
	_, found, _ = s.Get(ctx, "k")
	assert.False(t, found)
}

func TestAlertRepo_ListByUserOrdenYFiltros(t *testing.T) {
	ctx := context.Background()
	r := memory.NewAlertRepository(2)
	base := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, r.Save(ctx, &entity.Alert{ID: id, UserID: "u1", CreatedAt: base.Add(time.Duration(i) * time.Minute)}))
	}
	require.NoError(t, r.Save(ctx, &entity.Alert{ID: "x", UserID: "u2", CreatedAt: base}))

	got, err := r.ListByUser(ctx, "u1", time.Time{}, 0)
	require.NoError(t, err)
	require.Len(t, got, 2, "se conserva solo el máximo por usuario")
	assert.Equal(t, "c", got[0].ID)
	assert.Equal(t, "b", got[1].ID)

	got, err = r.ListByUser(ctx, "u1", base.Add(2*time.Minute), 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "c", got[0].ID)
}
