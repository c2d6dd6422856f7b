package auth

import (
	"context"

	"github.com/jhoicas/Inventario-dashboard/internal/domain/entity"
)

// Token credencial emitida por el API de inventario.
type Token struct {
	AccessToken string
	TokenType   string
}

// IdentityProvider puerto hacia el servicio de identidad remoto.
type IdentityProvider interface {
	Login(ctx context.Context, username, password string) (*Token, error)
	Me(ctx context.Context, token string) (*entity.User, error)
}

// NotifierLifecycle arranque y parada del notificador de stock por sesión.
type NotifierLifecycle interface {
	Activate(userID, token string)
	Deactivate(userID string)
}
