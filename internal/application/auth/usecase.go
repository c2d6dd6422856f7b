package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Inventario-dashboard/internal/application/dto"
	"github.com/jhoicas/Inventario-dashboard/internal/domain"
	"github.com/jhoicas/Inventario-dashboard/internal/domain/access"
	"github.com/jhoicas/Inventario-dashboard/internal/domain/entity"
)

// FeedCleaner limpia las alertas en memoria del usuario al cerrar sesión.
type FeedCleaner interface {
	Clear(userID string)
}

// UseCase casos de uso de autenticación: login, sesión actual y logout.
// Las credenciales se validan en el API de inventario; el gateway no guarda contraseñas.
type UseCase struct {
	identity  IdentityProvider
	sessions  *SessionProvider
	notifiers NotifierLifecycle
	feed      FeedCleaner
	table     *access.Table
	log       zerolog.Logger
}

// NewUseCase construye el caso de uso. notifiers y feed pueden ser nil.
func NewUseCase(identity IdentityProvider, sessions *SessionProvider, notifiers NotifierLifecycle, feed FeedCleaner, table *access.Table, log zerolog.Logger) *UseCase {
	return &UseCase{
		identity:  identity,
		sessions:  sessions,
		notifiers: notifiers,
		feed:      feed,
		table:     table,
		log:       log.With().Str("component", "auth").Logger(),
	}
}

// Login intercambia credenciales por un token, resuelve el usuario y arranca su notificador.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: usuario y contraseña son obligatorios", domain.ErrInvalidInput)
	}
	tok, err := uc.identity.Login(ctx, username, in.Password)
	if err != nil {
		return nil, err
	}
	user, err := uc.identity.Me(ctx, tok.AccessToken)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: usuario inactivo", domain.ErrForbidden)
	}
	uc.sessions.Remember(tok.AccessToken, *user)
	if uc.notifiers != nil {
		uc.notifiers.Activate(user.ID, tok.AccessToken)
	}
	uc.log.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("login")
	return &dto.LoginResponse{
		Token:     tok.AccessToken,
		TokenType: tok.TokenType,
		User:      ToUserResponse(user),
		Landing:   access.DefaultLanding(user.Role),
	}, nil
}

// Me devuelve el usuario de la sesión con su menú.
func (uc *UseCase) Me(ctx context.Context, token string) (*dto.MeResponse, error) {
	user, err := uc.sessions.Lookup(ctx, token)
	if err != nil {
		return nil, err
	}
	nav := uc.table.Navigation(user.Role)
	if nav == nil {
		nav = []access.NavSection{}
	}
	return &dto.MeResponse{
		User:       ToUserResponse(user),
		Role:       user.Role,
		IsAdmin:    access.IsAdmin(user.Role),
		Landing:    access.DefaultLanding(user.Role),
		Navigation: nav,
	}, nil
}

// Logout olvida el token, detiene el notificador y limpia el feed en memoria.
// El conjunto persistido de ítems notificados se conserva.
func (uc *UseCase) Logout(token, userID string) {
	uc.sessions.Forget(token)
	if userID == "" {
		return
	}
	if uc.notifiers != nil {
		uc.notifiers.Deactivate(userID)
	}
	if uc.feed != nil {
		uc.feed.Clear(userID)
	}
	uc.log.Info().Str("user_id", userID).Msg("logout")
}

// ToUserResponse mapea la entidad al DTO.
func ToUserResponse(u *entity.User) dto.UserResponse {
	if u == nil {
		return dto.UserResponse{}
	}
	return dto.UserResponse{ID: u.ID, Email: u.Email, FullName: u.FullName, Role: u.Role}
}
