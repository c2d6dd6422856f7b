package access

// Role rol asignado por el proveedor de sesión (solo lectura para esta lógica).
type Role string

// Roles válidos del dashboard.
const (
	RoleAdmin            Role = "admin"
	RoleStoreManager     Role = "store_manager"
	RoleInventoryAnalyst Role = "inventory_analyst"
	RoleStaff            Role = "staff"
	RoleUser             Role = "user"
)

// Roles lista ordenada de todos los roles conocidos.
var Roles = []Role{RoleAdmin, RoleStoreManager, RoleInventoryAnalyst, RoleStaff, RoleUser}

// ParseRole devuelve el rol si s es uno de los roles conocidos.
func ParseRole(s string) (Role, bool) {
	for _, r := range Roles {
		if string(r) == s {
			return r, true
		}
	}
	return "", false
}

// IsAdmin informa si el rol es admin (acceso al panel de administración).
func IsAdmin(role string) bool {
	return role == string(RoleAdmin)
}

// Category dominio de permisos de primer nivel.
type Category string

// Categorías de permisos.
const (
	CategoryDashboards    Category = "dashboards"
	CategoryInventory     Category = "inventory"
	CategoryForecasting   Category = "forecasting"
	CategorySupplyChain   Category = "supplyChain"
	CategoryAdmin         Category = "admin"
	CategoryNotifications Category = "notifications"
)

// Categories todas las categorías; cada rol debe tener una entrada para cada una.
var Categories = []Category{
	CategoryDashboards,
	CategoryInventory,
	CategoryForecasting,
	CategorySupplyChain,
	CategoryAdmin,
	CategoryNotifications,
}

// ParseCategory devuelve la categoría si s es una categoría conocida.
func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}
