package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-dashboard/internal/application/dto"
	"github.com/jhoicas/Inventario-dashboard/internal/application/guard"
)

// Locals keys para la sesión en Fiber.
const (
	LocalUserID    = "user_id"
	LocalRole      = "role"
	LocalToken     = "token"
	LocalAuthState = "auth_state"
)

// TokenCookie cookie alternativa al header Authorization (navegación de páginas).
const TokenCookie = "access_token"

// SessionResolver resuelve el token a un estado de sesión.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) guard.AuthState
}

// NotifierActivator arranca el notificador de la sesión (puede ser nil).
type NotifierActivator interface {
	Activate(userID, token string)
}

// BearerToken extrae el token del header "Authorization: Bearer <token>" o, si no
// hay header, de la cookie access_token.
func BearerToken(c *fiber.Ctx) string {
	if h := c.Get(fiber.HeaderAuthorization); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return ""
		}
		return strings.TrimSpace(parts[1])
	}
	return strings.TrimSpace(c.Cookies(TokenCookie))
}

// SessionMiddleware resuelve la sesión y la deja en c.Locals sin rechazar la petición.
// Lo usan las rutas de página, donde el guard decide.
func SessionMiddleware(sessions SessionResolver, notifiers NotifierActivator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := BearerToken(c)
		state := sessions.Resolve(c.UserContext(), token)
		storeSession(c, token, state, notifiers)
		return c.Next()
	}
}

// AuthMiddleware exige una sesión autenticada para las rutas /api.
//   - 401 MISSING_TOKEN / INVALID_TOKEN si no hay sesión.
//   - 503 SESSION_LOADING con Retry-After si el proveedor aún no responde.
func AuthMiddleware(sessions SessionResolver, notifiers NotifierActivator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := BearerToken(c)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		state := sessions.Resolve(c.UserContext(), token)
		if state.Loading {
			c.Set(fiber.HeaderRetryAfter, "1")
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "SESSION_LOADING", Message: "la sesión aún se está cargando"})
		}
		if !state.Authenticated {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		storeSession(c, token, state, notifiers)
		return c.Next()
	}
}

func storeSession(c *fiber.Ctx, token string, state guard.AuthState, notifiers NotifierActivator) {
	c.Locals(LocalAuthState, state)
	if !state.Authenticated {
		return
	}
	c.Locals(LocalToken, token)
	c.Locals(LocalUserID, state.UserID)
	c.Locals(LocalRole, state.Role)
	if notifiers != nil {
		notifiers.Activate(state.UserID, token)
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string { return localString(c, LocalUserID) }

// GetRole devuelve el rol de la sesión.
func GetRole(c *fiber.Ctx) string { return localString(c, LocalRole) }

// GetToken devuelve el token de la sesión.
func GetToken(c *fiber.Ctx) string { return localString(c, LocalToken) }

// GetAuthState devuelve el estado resuelto por SessionMiddleware o AuthMiddleware.
func GetAuthState(c *fiber.Ctx) guard.AuthState {
	s, _ := c.Locals(LocalAuthState).(guard.AuthState)
	return s
}

func localString(c *fiber.Ctx, key string) string {
	s, _ := c.Locals(key).(string)
	return s
}
