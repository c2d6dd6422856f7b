package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound       = errors.New("recurso no encontrado")
	ErrInvalidInput   = errors.New("entrada inválida")
	ErrUnauthorized   = errors.New("no autorizado")
	ErrForbidden      = errors.New("acceso denegado")
	ErrUpstream       = errors.New("el API de inventario no respondió correctamente")
	ErrSessionLoading = errors.New("la sesión aún se está cargando")
)
