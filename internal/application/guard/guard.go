// Package guard decide, por navegación, si una página protegida se renderiza,
// se redirige o se muestra el placeholder de carga.
package guard

import (
	"github.com/jhoicas/Inventario-dashboard/internal/domain/access"
)

// AuthState estado de sesión entregado por el proveedor de autenticación.
type AuthState struct {
	Loading       bool
	Authenticated bool
	Role          string
	UserID        string
}

// Rule requisitos de acceso declarados por una ruta.
// Category vacía: cualquier usuario autenticado pasa. Fallback vacío: landing del rol.
type Rule struct {
	Category access.Category
	Feature  string
	Fallback string
}

// RuleForPage regla de guardia para una página registrada.
func RuleForPage(p access.Page) Rule {
	return Rule{Category: p.Category, Feature: p.Feature}
}

// Outcome resultado terminal de una evaluación.
type Outcome int

const (
	OutcomeLoading Outcome = iota
	OutcomeRedirect
	OutcomeRender
)

func (o Outcome) String() string {
	switch o {
	case OutcomeLoading:
		return "loading"
	case OutcomeRedirect:
		return "redirect"
	case OutcomeRender:
		return "render"
	default:
		return "unknown"
	}
}

// Decision resultado de Evaluate. Location solo aplica a OutcomeRedirect.
type Decision struct {
	Outcome  Outcome
	Location string
}

// Guard evalúa reglas de ruta contra la tabla de acceso.
type Guard struct {
	table *access.Table
}

// New construye el guard con la tabla indicada.
func New(table *access.Table) *Guard {
	return &Guard{table: table}
}

// Evaluate aplica la secuencia: cargando → no autenticado → sin requisito →
// política (fallback o landing del rol) → render.
func (g *Guard) Evaluate(state AuthState, rule Rule) Decision {
	if state.Loading {
		return Decision{Outcome: OutcomeLoading}
	}
	if !state.Authenticated {
		return Decision{Outcome: OutcomeRedirect, Location: access.PathLogin}
	}
	if rule.Category == "" {
		return Decision{Outcome: OutcomeRender}
	}
	if !g.table.HasAccess(state.Role, rule.Category, rule.Feature) {
		location := rule.Fallback
		if location == "" {
			location = access.DefaultLanding(state.Role)
		}
		return Decision{Outcome: OutcomeRedirect, Location: location}
	}
	return Decision{Outcome: OutcomeRender}
}
