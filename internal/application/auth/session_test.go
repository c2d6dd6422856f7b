package auth_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-dashboard/internal/application/auth"
	"github.com/jhoicas/Inventario-dashboard/internal/application/guard"
	"github.com/jhoicas/Inventario-dashboard/internal/domain"
	"github.com/jhoicas/Inventario-dashboard/internal/domain/entity"
	"github.com/jhoicas/Inventario-dashboard/pkg/jwt"
)

type fakeIdentity struct {
	mu      sync.Mutex
	users   map[string]entity.User // token → usuario
	release chan struct{}          // si no es nil, Me espera hasta que se cierre
	calls   atomic.Int32
}

func newFakeIdentity() *fakeIdentity {
	return &fakeIdentity{users: map[string]entity.User{
		"tok-admin": {ID: "1", Email: "admin@x.co", Role: "admin", IsActive: true},
		"tok-staff": {ID: "2", Email: "staff@x.co", Role: "staff", IsActive: true},
		"tok-off":   {ID: "3", Email: "off@x.co", Role: "staff", IsActive: false},
	}}
}

func (f *fakeIdentity) Login(_ context.Context, username, password string) (*auth.Token, error) {
	if password != "ok" {
		return nil, domain.ErrUnauthorized
	}
	return &auth.Token{AccessToken: "tok-" + username, TokenType: "bearer"}, nil
}

func (f *fakeIdentity) Me(ctx context.Context, token string) (*entity.User, error) {
	f.calls.Add(1)
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[token]
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	return &u, nil
}

func newProvider(id auth.IdentityProvider, cfg auth.SessionConfig) *auth.SessionProvider {
	return auth.NewSessionProvider(id, cfg, zerolog.Nop())
}

func TestResolve_SinTokenNoAutenticado(t *testing.T) {
	p := newProvider(newFakeIdentity(), auth.SessionConfig{})
	assert.Equal(t, guard.AuthState{}, p.Resolve(context.Background(), ""))
}

func TestResolve_ConsultaRemotaYCache(t *testing.T) {
	id := newFakeIdentity()
	p := newProvider(id, auth.SessionConfig{LoadingBudget: time.Second})

	st := p.Resolve(context.Background(), "tok-admin")
	assert.Equal(t, guard.AuthState{Authenticated: true, Role: "admin", UserID: "1"}, st)

	st = p.Resolve(context.Background(), "tok-admin")
	assert.True(t, st.Authenticated)
	assert.Equal(t, int32(1), id.calls.Load(), "la segunda resolución usa la caché")
}

func TestResolve_TokenDesconocido(t *testing.T) {
	p := newProvider(newFakeIdentity(), auth.SessionConfig{LoadingBudget: time.Second})
	st := p.Resolve(context.Background(), "nope")
	assert.False(t, st.Authenticated)
	assert.False(t, st.Loading)
}

func TestResolve_CacheExpira(t *testing.T) {
	id := newFakeIdentity()
	p := newProvider(id, auth.SessionConfig{CacheTTL: time.Minute, LoadingBudget: time.Second})
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	p.SetClock(func() time.Time { return now })

	require.True(t, p.Resolve(context.Background(), "tok-staff").Authenticated)
	now = now.Add(2 * time.Minute)
	require.True(t, p.Resolve(context.Background(), "tok-staff").Authenticated)
	assert.Equal(t, int32(2), id.calls.Load())
}

func TestResolve_ConsultaLentaDevuelveCargando(t *testing.T) {
	id := newFakeIdentity()
	id.release = make(chan struct{})
	p := newProvider(id, auth.SessionConfig{LoadingBudget: 20 * time.Millisecond})

	st := p.Resolve(context.Background(), "tok-staff")
	assert.Equal(t, guard.AuthState{Loading: true}, st)

	close(id.release)
	assert.Eventually(t, func() bool {
		return p.Resolve(context.Background(), "tok-staff").Authenticated
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, int32(1), id.calls.Load(), "la consulta en curso se reutiliza")
}

func TestResolve_ConsultasConcurrentesSeAgrupan(t *testing.T) {
	id := newFakeIdentity()
	id.release = make(chan struct{})
	p := newProvider(id, auth.SessionConfig{LoadingBudget: time.Second})

	var wg sync.WaitGroup
	results := make([]guard.AuthState, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = p.Resolve(context.Background(), "tok-admin")
		}(i)
	}
	time.Sleep(20 * time.Millisecond)
	close(id.release)
	wg.Wait()

	for _, r := range results {
		assert.True(t, r.Authenticated)
	}
	assert.Equal(t, int32(1), id.calls.Load())
}

func TestResolve_JWTConRolNoConsultaRemoto(t *testing.T) {
	id := newFakeIdentity()
	p := newProvider(id, auth.SessionConfig{JWTSecret: "k"})

	tok, err := jwt.Generate("k", "9", "inventory_analyst", "test", 5)
	require.NoError(t, err)

	st := p.Resolve(context.Background(), tok)
	assert.Equal(t, guard.AuthState{Authenticated: true, Role: "inventory_analyst", UserID: "9"}, st)
	assert.Equal(t, int32(0), id.calls.Load())
}

func TestResolve_JWTConFirmaInvalida(t *testing.T) {
	id := newFakeIdentity()
	p := newProvider(id, auth.SessionConfig{JWTSecret: "k"})

	tok, err := jwt.Generate("otra", "9", "admin", "test", 5)
	require.NoError(t, err)

	assert.False(t, p.Resolve(context.Background(), tok).Authenticated)
	assert.Equal(t, int32(1), id.calls.Load(), "sin firma local válida se consulta /users/me")
}

func TestResolve_JWTSecretNoBloqueaTokensDelAPI(t *testing.T) {
	id := newFakeIdentity()
	p := newProvider(id, auth.SessionConfig{JWTSecret: "k", LoadingBudget: time.Second})

	st := p.Resolve(context.Background(), "tok-admin")
	assert.Equal(t, guard.AuthState{Authenticated: true, Role: "admin", UserID: "1"}, st)

	p.Remember("tok-nuevo", entity.User{ID: "7", Role: "staff", IsActive: true})
	st = p.Resolve(context.Background(), "tok-nuevo")
	assert.Equal(t, guard.AuthState{Authenticated: true, Role: "staff", UserID: "7"}, st)
	assert.Equal(t, int32(1), id.calls.Load(), "el token recordado sale de la caché")
}

func TestResolve_JWTSinRolConsultaRemoto(t *testing.T) {
	id := newFakeIdentity()
	p := newProvider(id, auth.SessionConfig{JWTSecret: "k", LoadingBudget: time.Second})

	tok, err := jwt.Generate("k", "9", "", "test", 5)
	require.NoError(t, err)

	assert.False(t, p.Resolve(context.Background(), tok).Authenticated)
	assert.Equal(t, int32(1), id.calls.Load())
}

func TestLookup_JWTConRol(t *testing.T) {
	id := newFakeIdentity()
	p := newProvider(id, auth.SessionConfig{JWTSecret: "k"})

	tok, err := jwt.Generate("k", "42", "store_manager", "test", 5)
	require.NoError(t, err)

	u, err := p.Lookup(context.Background(), tok)
	require.NoError(t, err)
	assert.Equal(t, "42", u.ID)
	assert.Equal(t, "store_manager", u.Role)
	assert.True(t, u.IsActive)
	assert.Equal(t, int32(0), id.calls.Load())
}

func TestForget(t *testing.T) {
	id := newFakeIdentity()
	p := newProvider(id, auth.SessionConfig{LoadingBudget: time.Second})
	require.True(t, p.Resolve(context.Background(), "tok-admin").Authenticated)

	p.Forget("tok-admin")
	require.True(t, p.Resolve(context.Background(), "tok-admin").Authenticated)
	assert.Equal(t, int32(2), id.calls.Load())
}

func TestLookup(t *testing.T) {
	p := newProvider(newFakeIdentity(), auth.SessionConfig{})
	u, err := p.Lookup(context.Background(), "tok-staff")
	require.NoError(t, err)
	assert.Equal(t, "staff@x.co", u.Email)

	_, err = p.Lookup(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = p.Lookup(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
