package entity

// User usuario autenticado según el proveedor de sesión (API remoto).
// El rol llega asignado externamente; el dashboard solo lo lee.
type User struct {
	ID       string
	Email    string
	FullName string
	Role     string
	IsActive bool
}
