package repository

import "context"

// KeyValueStore define el puerto de almacenamiento clave/valor del cliente (DIP).
// Guarda un único string por clave; Get devuelve found=false si la clave no existe.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
