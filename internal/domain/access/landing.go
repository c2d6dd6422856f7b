package access

// Destinos fijos de navegación.
const (
	PathLogin        = "/login"
	PathUnauthorized = "/unauthorized"
)

var landingByRole = map[Role]string{
	RoleAdmin:            "/dashboard/admin",
	RoleStoreManager:     "/dashboard/store",
	RoleInventoryAnalyst: "/dashboard/analyst",
	RoleStaff:            "/dashboard/store",
	RoleUser:             "/inventory",
}

// DefaultLanding página por defecto del rol.
// Sin rol → /login; rol desconocido → /unauthorized.
func DefaultLanding(role string) string {
	if role == "" {
		return PathLogin
	}
	r, ok := ParseRole(role)
	if !ok {
		return PathUnauthorized
	}
	return landingByRole[r]
}
