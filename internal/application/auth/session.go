package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/jhoicas/Inventario-dashboard/internal/application/guard"
	"github.com/jhoicas/Inventario-dashboard/internal/domain"
	"github.com/jhoicas/Inventario-dashboard/internal/domain/entity"
	"github.com/jhoicas/Inventario-dashboard/pkg/jwt"
)

// SessionConfig parámetros de resolución de sesión.
type SessionConfig struct {
	JWTSecret     string        // vacío = no se verifica el token localmente
	CacheTTL      time.Duration // vida de un usuario resuelto en caché
	LoadingBudget time.Duration // espera máxima por /users/me antes de responder "cargando"
	LookupTimeout time.Duration // timeout de la consulta remota (continúa tras el budget)
}

const maxCachedSessions = 10000

// SessionProvider resuelve el token de la petición a un AuthState.
// Las consultas concurrentes por el mismo token se agrupan (singleflight) y el
// resultado se guarda en caché durante CacheTTL.
type SessionProvider struct {
	identity IdentityProvider
	cfg      SessionConfig
	log      zerolog.Logger
	now      func() time.Time

	group singleflight.Group

	mu    sync.Mutex
	cache map[string]cachedUser
}

type cachedUser struct {
	user    entity.User
	expires time.Time
}

// NewSessionProvider construye el proveedor.
func NewSessionProvider(identity IdentityProvider, cfg SessionConfig, log zerolog.Logger) *SessionProvider {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = time.Minute
	}
	if cfg.LoadingBudget <= 0 {
		cfg.LoadingBudget = 300 * time.Millisecond
	}
	if cfg.LookupTimeout <= 0 {
		cfg.LookupTimeout = 10 * time.Second
	}
	return &SessionProvider{
		identity: identity,
		cfg:      cfg,
		log:      log.With().Str("component", "session").Logger(),
		now:      time.Now,
		cache:    make(map[string]cachedUser),
	}
}

// Resolve devuelve el estado de sesión para el token.
// Token vacío o inválido → no autenticado; consulta en curso más allá del
// budget → Loading. Un token firmado con JWTSecret que trae rol no consulta
// /users/me; cualquier otro token sigue el camino de caché y consulta remota.
func (p *SessionProvider) Resolve(ctx context.Context, token string) guard.AuthState {
	if token == "" {
		return guard.AuthState{}
	}

	if u, ok := p.fromClaims(token); ok {
		return authenticated(u)
	}
	if u, ok := p.cached(token); ok {
		return authenticated(u)
	}

	ch := p.fetch(token)

	timer := time.NewTimer(p.cfg.LoadingBudget)
	defer timer.Stop()

	select {
	case res := <-ch:
		if res.Err != nil {
			if !errors.Is(res.Err, domain.ErrUnauthorized) && !errors.Is(res.Err, domain.ErrForbidden) {
				p.log.Warn().Err(res.Err).Msg("no se pudo resolver la sesión")
			}
			return guard.AuthState{}
		}
		return authenticated(res.Val.(entity.User))
	case <-timer.C:
		return guard.AuthState{Loading: true}
	case <-ctx.Done():
		return guard.AuthState{Loading: true}
	}
}

// Lookup resuelve el usuario completo, esperando la consulta remota si hace falta.
func (p *SessionProvider) Lookup(ctx context.Context, token string) (*entity.User, error) {
	if token == "" {
		return nil, domain.ErrUnauthorized
	}
	if u, ok := p.fromClaims(token); ok {
		return &u, nil
	}
	if u, ok := p.cached(token); ok {
		return &u, nil
	}
	ch := p.fetch(token)
	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		u := res.Val.(entity.User)
		return &u, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Remember guarda el usuario para el token (por ejemplo tras el login).
func (p *SessionProvider) Remember(token string, u entity.User) {
	p.mu.Lock()
	defer p.mu.Unlock()
	now := p.now()
	if len(p.cache) >= maxCachedSessions {
		for k, v := range p.cache {
			if now.After(v.expires) {
				delete(p.cache, k)
			}
		}
	}
	p.cache[token] = cachedUser{user: u, expires: now.Add(p.cfg.CacheTTL)}
}

// Forget elimina el token de la caché (logout).
func (p *SessionProvider) Forget(token string) {
	p.mu.Lock()
	delete(p.cache, token)
	p.mu.Unlock()
	p.group.Forget(token)
}

// fetch consulta /users/me una sola vez por token aunque haya peticiones concurrentes.
// La consulta no depende del contexto de la petición que la originó.
func (p *SessionProvider) fetch(token string) <-chan singleflight.Result {
	return p.group.DoChan(token, func() (interface{}, error) {
		ctx, cancel := context.WithTimeout(context.Background(), p.cfg.LookupTimeout)
		defer cancel()
		u, err := p.identity.Me(ctx, token)
		if err != nil {
			return nil, err
		}
		p.Remember(token, *u)
		return *u, nil
	})
}

// fromClaims construye el usuario a partir de un token local con rol.
// Los tokens del API de inventario no validan con JWTSecret o no traen rol.
func (p *SessionProvider) fromClaims(token string) (entity.User, bool) {
	if p.cfg.JWTSecret == "" {
		return entity.User{}, false
	}
	claims, err := jwt.Parse(p.cfg.JWTSecret, token)
	if err != nil {
		p.log.Debug().Err(err).Msg("token no emitido localmente")
		return entity.User{}, false
	}
	if claims.Role == "" {
		return entity.User{}, false
	}
	return entity.User{ID: claims.UserID(), Email: claims.Email, Role: claims.Role, IsActive: true}, true
}

func (p *SessionProvider) cached(token string) (entity.User, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	c, ok := p.cache[token]
	if !ok {
		return entity.User{}, false
	}
	if p.now().After(c.expires) {
		delete(p.cache, token)
		return entity.User{}, false
	}
	return c.user, true
}

func authenticated(u entity.User) guard.AuthState {
	return guard.AuthState{Authenticated: true, Role: u.Role, UserID: u.ID}
}
