package access

// Page página del dashboard y el permiso que la protege.
// Category vacía significa que basta con estar autenticado; Public que no requiere sesión.
type Page struct {
	Path     string   `json:"path"`
	Title    string   `json:"title"`
	Section  string   `json:"section"`
	Category Category `json:"category,omitempty"`
	Feature  string   `json:"feature,omitempty"`
	Public   bool     `json:"-"`
}

// Secciones del menú lateral.
const (
	SectionDashboards  = "Dashboards"
	SectionInventory   = "Inventory"
	SectionForecasting = "Forecasting"
	SectionSupplyChain = "Supply Chain"
	SectionAdmin       = "Administration"
	SectionAccount     = "Account"
)

// Pages registro de páginas en el orden del menú.
var Pages = []Page{
	{Path: "/dashboard/store", Title: "Store Manager", Section: SectionDashboards, Category: CategoryDashboards, Feature: "store"},
	{Path: "/dashboard/analyst", Title: "Inventory Analyst", Section: SectionDashboards, Category: CategoryDashboards, Feature: "analyst"},
	{Path: "/dashboard/warehouse", Title: "Warehouse", Section: SectionDashboards, Category: CategorySupplyChain, Feature: "warehouse"},
	{Path: "/dashboard/admin", Title: "Admin / HQ", Section: SectionDashboards, Category: CategoryDashboards, Feature: "admin"},

	{Path: "/inventory", Title: "All Products", Section: SectionInventory, Category: CategoryInventory, Feature: "all"},
	{Path: "/inventory/low-stock", Title: "Low Stock", Section: SectionInventory, Category: CategoryInventory, Feature: "low-stock"},
	{Path: "/inventory/dead-stock", Title: "Dead Stock", Section: SectionInventory, Category: CategoryInventory, Feature: "dead-stock"},

	{Path: "/forecasting/demand", Title: "Demand Forecast", Section: SectionForecasting, Category: CategoryForecasting, Feature: "demand"},
	{Path: "/forecasting/seasonal", Title: "Seasonal Trends", Section: SectionForecasting, Category: CategoryForecasting, Feature: "seasonal"},
	{Path: "/forecasting/accuracy", Title: "Forecast Accuracy", Section: SectionForecasting, Category: CategoryForecasting, Feature: "accuracy"},

	{Path: "/supply-chain/orders", Title: "Purchase Orders", Section: SectionSupplyChain, Category: CategorySupplyChain, Feature: "orders"},
	{Path: "/supply-chain/shipments", Title: "Inbound Shipments", Section: SectionSupplyChain, Category: CategorySupplyChain, Feature: "shipments"},
	{Path: "/supply-chain/suppliers", Title: "Suppliers", Section: SectionSupplyChain, Category: CategorySupplyChain, Feature: "suppliers"},

	{Path: "/admin/users", Title: "User Management", Section: SectionAdmin, Category: CategoryAdmin, Feature: "users"},
	{Path: "/admin/settings", Title: "Settings", Section: SectionAdmin, Category: CategoryAdmin, Feature: "settings"},
	{Path: "/admin/thresholds", Title: "Threshold Rules", Section: SectionAdmin, Category: CategoryAdmin, Feature: "thresholds"},

	{Path: "/notifications", Title: "Notifications", Section: SectionAccount, Category: CategoryNotifications},
	{Path: "/profile", Title: "Profile", Section: SectionAccount},

	{Path: PathLogin, Title: "Login", Public: true},
	{Path: PathUnauthorized, Title: "Access Denied", Public: true},
}

// FindPage busca una página registrada por su ruta exacta.
func FindPage(path string) (Page, bool) {
	for _, p := range Pages {
		if p.Path == path {
			return p, true
		}
	}
	return Page{}, false
}

// NavSection grupo del menú con las páginas visibles.
type NavSection struct {
	Title string `json:"title"`
	Pages []Page `json:"pages"`
}

// Navigation devuelve las secciones del menú visibles para el rol, en orden.
// Las secciones sin páginas visibles se omiten.
func (t *Table) Navigation(role string) []NavSection {
	if _, ok := ParseRole(role); !ok {
		return nil
	}
	var out []NavSection
	index := make(map[string]int)
	for _, p := range Pages {
		if p.Public {
			continue
		}
		if p.Category != "" && !t.HasAccess(role, p.Category, p.Feature) {
			continue
		}
		i, ok := index[p.Section]
		if !ok {
			out = append(out, NavSection{Title: p.Section})
			i = len(out) - 1
			index[p.Section] = i
		}
		out[i].Pages = append(out[i].Pages, p)
	}
	return out
}
