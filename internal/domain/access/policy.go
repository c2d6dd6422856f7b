// Package access contiene la tabla estática de control de acceso por rol (RBAC)
// del dashboard: qué categorías y funcionalidades puede ver cada rol y cuál es
// su página de aterrizaje.
package access

import (
	"fmt"
)

// EntryKind discrimina la variante de una entrada de política.
type EntryKind int

const (
	// KindDenyAll niega la categoría completa.
	KindDenyAll EntryKind = iota
	// KindAllowAll permite la categoría completa (la feature se ignora).
	KindAllowAll
	// KindFeatureList permite solo las features listadas.
	KindFeatureList
)

// Entry variante AllowAll | DenyAll | FeatureList(set) para una categoría.
// El valor cero es DenyAll.
type Entry struct {
	kind     EntryKind
	features []string
	set      map[string]struct{}
}

// AllowAll entrada booleana verdadera.
func AllowAll() Entry { return Entry{kind: KindAllowAll} }

// DenyAll entrada booleana falsa.
func DenyAll() Entry { return Entry{kind: KindDenyAll} }

// Features entrada con lista de features permitidas. Una lista vacía no concede nada.
func Features(features ...string) Entry {
	e := Entry{kind: KindFeatureList, set: make(map[string]struct{}, len(features))}
	for _, f := range features {
		if _, dup := e.set[f]; dup {
			continue
		}
		e.set[f] = struct{}{}
		e.features = append(e.features, f)
	}
	return e
}

// Kind variante de la entrada.
func (e Entry) Kind() EntryKind { return e.kind }

// Contains informa si la feature está en la lista (false para entradas booleanas).
func (e Entry) Contains(feature string) bool {
	if e.kind != KindFeatureList {
		return false
	}
	_, ok := e.set[feature]
	return ok
}

// List devuelve una copia de las features en orden de declaración.
func (e Entry) List() []string {
	out := make([]string, len(e.features))
	copy(out, e.features)
	return out
}

// Policy mapea cada rol a sus entradas por categoría.
type Policy map[Role]map[Category]Entry

// DefaultPolicy tabla de permisos del dashboard de inventario.
func DefaultPolicy() Policy {
	return Policy{
		RoleAdmin: {
			CategoryDashboards:    Features("store", "analyst", "admin"),
			CategoryInventory:     Features("all", "low-stock", "dead-stock"),
			CategoryForecasting:   Features("demand", "seasonal", "accuracy"),
			CategorySupplyChain:   Features("orders", "shipments", "suppliers", "warehouse"),
			CategoryAdmin:         Features("users", "settings", "thresholds"),
			CategoryNotifications: AllowAll(),
		},
		RoleStoreManager: {
			CategoryDashboards:    Features("store", "analyst"),
			CategoryInventory:     Features("all", "low-stock", "dead-stock"),
			CategoryForecasting:   Features("demand", "seasonal", "accuracy"),
			CategorySupplyChain:   Features("orders", "shipments", "suppliers", "warehouse"),
			CategoryAdmin:         Features(),
			CategoryNotifications: AllowAll(),
		},
		RoleInventoryAnalyst: {
			CategoryDashboards:    Features("analyst"),
			CategoryInventory:     Features("all", "low-stock", "dead-stock"),
			CategoryForecasting:   Features("demand", "seasonal", "accuracy"),
			CategorySupplyChain:   Features("orders", "shipments"),
			CategoryAdmin:         Features(),
			CategoryNotifications: AllowAll(),
		},
		RoleStaff: {
			CategoryDashboards:    Features("store"),
			CategoryInventory:     Features("all", "low-stock"),
			CategoryForecasting:   Features(),
			CategorySupplyChain:   Features("orders", "shipments"),
			CategoryAdmin:         Features(),
			CategoryNotifications: AllowAll(),
		},
		RoleUser: {
			CategoryDashboards:    Features(),
			CategoryInventory:     Features("all"),
			CategoryForecasting:   Features(),
			CategorySupplyChain:   Features(),
			CategoryAdmin:         Features(),
			CategoryNotifications: AllowAll(),
		},
	}
}

// Table tabla de acceso validada. Es inmutable después de NewTable.
type Table struct {
	policy Policy
}

// NewTable valida que cada rol tenga una entrada para cada categoría.
func NewTable(p Policy) (*Table, error) {
	for role := range p {
		if _, ok := ParseRole(string(role)); !ok {
			return nil, fmt.Errorf("access: rol desconocido %q en la política", role)
		}
	}
	for _, role := range Roles {
		entries, ok := p[role]
		if !ok {
			return nil, fmt.Errorf("access: falta el rol %q en la política", role)
		}
		for _, c := range Categories {
			if _, ok := entries[c]; !ok {
				return nil, fmt.Errorf("access: el rol %q no tiene entrada para la categoría %q", role, c)
			}
		}
	}
	cp := make(Policy, len(p))
	for role, entries := range p {
		m := make(map[Category]Entry, len(entries))
		for c, e := range entries {
			m[c] = e
		}
		cp[role] = m
	}
	return &Table{policy: cp}, nil
}

// DefaultTable tabla construida con DefaultPolicy.
func DefaultTable() *Table {
	t, err := NewTable(DefaultPolicy())
	if err != nil {
		panic(err)
	}
	return t
}

// HasAccess decide si el rol puede acceder a la categoría (y opcionalmente a la feature).
// feature vacía significa "sin feature". Cualquier entrada desconocida devuelve false.
func (t *Table) HasAccess(role string, category Category, feature string) bool {
	entry, ok := t.lookup(role, category)
	if !ok {
		return false
	}
	switch entry.kind {
	case KindAllowAll:
		return true
	case KindDenyAll:
		return false
	case KindFeatureList:
		if feature != "" {
			return entry.Contains(feature)
		}
		return len(entry.features) > 0
	default:
		return false
	}
}

// AllowedFeatures lista las features de la categoría para el rol.
// Las entradas booleanas y los roles desconocidos devuelven una lista vacía.
func (t *Table) AllowedFeatures(role string, category Category) []string {
	entry, ok := t.lookup(role, category)
	if !ok || entry.kind != KindFeatureList {
		return []string{}
	}
	return entry.List()
}

// Entries devuelve las entradas del rol (nil si el rol no existe).
func (t *Table) Entries(role string) map[Category]Entry {
	r, ok := ParseRole(role)
	if !ok {
		return nil
	}
	entries, ok := t.policy[r]
	if !ok {
		return nil
	}
	out := make(map[Category]Entry, len(entries))
	for c, e := range entries {
		out[c] = e
	}
	return out
}

func (t *Table) lookup(role string, category Category) (Entry, bool) {
	if role == "" {
		return Entry{}, false
	}
	r, ok := ParseRole(role)
	if !ok {
		return Entry{}, false
	}
	entries, ok := t.policy[r]
	if !ok {
		return Entry{}, false
	}
	entry, ok := entries[category]
	return entry, ok
}
