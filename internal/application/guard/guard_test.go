package guard_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Inventario-dashboard/internal/application/guard"
	"github.com/jhoicas/Inventario-dashboard/internal/domain/access"
)

func newGuard() *guard.Guard {
	return guard.New(access.DefaultTable())
}

func TestEvaluate_CargandoDevuelvePlaceholder(t *testing.T) {
	d := newGuard().Evaluate(guard.AuthState{Loading: true}, guard.Rule{Category: access.CategoryAdmin})
	assert.Equal(t, guard.OutcomeLoading, d.Outcome)
	assert.Empty(t, d.Location)
}

func TestEvaluate_NoAutenticadoSiempreALogin(t *testing.T) {
	g := newGuard()
	rules := []guard.Rule{
		{},
		{Category: access.CategoryInventory, Feature: "all"},
		{Category: access.CategoryAdmin, Feature: "users", Fallback: "/somewhere"},
	}
	for _, r := range rules {
		// Incluso con un rol presente, sin autenticación se va a login.
		d := g.Evaluate(guard.AuthState{Authenticated: false, Role: "admin"}, r)
		assert.Equal(t, guard.OutcomeRedirect, d.Outcome)
		assert.Equal(t, "/login", d.Location)
	}
}

func TestEvaluate_SinCategoriaRenderiza(t *testing.T) {
	g := newGuard()
	for _, role := range []string{"admin", "user", "", "desconocido"} {
		d := g.Evaluate(guard.AuthState{Authenticated: true, Role: role}, guard.Rule{})
		assert.Equal(t, guard.OutcomeRender, d.Outcome, "rol %q", role)
	}
}

func TestEvaluate_SinAccesoRedirigeALanding(t *testing.T) {
	g := newGuard()
	rule := guard.Rule{Category: access.CategoryAdmin, Feature: "users"}

	d := g.Evaluate(guard.AuthState{Authenticated: true, Role: "store_manager"}, rule)
	assert.Equal(t, guard.OutcomeRedirect, d.Outcome)
	assert.Equal(t, "/dashboard/store", d.Location)

	d = g.Evaluate(guard.AuthState{Authenticated: true, Role: "hacker"}, rule)
	assert.Equal(t, "/unauthorized", d.Location)

	d = g.Evaluate(guard.AuthState{Authenticated: true, Role: "user"}, rule)
	assert.Equal(t, "/inventory", d.Location)
}

func TestEvaluate_SinAccesoUsaFallbackExplicito(t *testing.T) {
	rule := guard.Rule{Category: access.CategoryForecasting, Feature: "demand", Fallback: "/unauthorized"}
	d := newGuard().Evaluate(guard.AuthState{Authenticated: true, Role: "staff"}, rule)
	assert.Equal(t, guard.OutcomeRedirect, d.Outcome)
	assert.Equal(t, "/unauthorized", d.Location)
}

func TestEvaluate_ConAccesoRenderiza(t *testing.T) {
	rule := guard.Rule{Category: access.CategoryForecasting, Feature: "seasonal"}
	d := newGuard().Evaluate(guard.AuthState{Authenticated: true, Role: "inventory_analyst"}, rule)
	assert.Equal(t, guard.OutcomeRender, d.Outcome)
}

func TestRuleForPage(t *testing.T) {
	p, ok := access.FindPage("/inventory/low-stock")
	assert.True(t, ok)
	r := guard.RuleForPage(p)
	assert.Equal(t, access.CategoryInventory, r.Category)
	assert.Equal(t, "low-stock", r.Feature)
	assert.Empty(t, r.Fallback)
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "loading", guard.OutcomeLoading.String())
	assert.Equal(t, "redirect", guard.OutcomeRedirect.String())
	assert.Equal(t, "render", guard.OutcomeRender.String())
}
