package dto

import "github.com/jhoicas/Inventario-dashboard/internal/domain/access"

// LoginRequest credenciales del formulario de login (JSON o form-urlencoded).
type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// UserResponse usuario autenticado.
type UserResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

// LoginResponse token emitido por el API de inventario más el destino inicial.
type LoginResponse struct {
	Token     string       `json:"token"`
	TokenType string       `json:"token_type"`
	User      UserResponse `json:"user"`
	Landing   string       `json:"landing"`
}

// MeResponse sesión actual con el menú visible para el rol.
type MeResponse struct {
	User       UserResponse        `json:"user"`
	Role       string              `json:"role"`
	IsAdmin    bool                `json:"is_admin"`
	Landing    string              `json:"landing"`
	Navigation []access.NavSection `json:"navigation"`
}
