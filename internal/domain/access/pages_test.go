package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-dashboard/internal/domain/access"
)

func paths(sections []access.NavSection) []string {
	var out []string
	for _, s := range sections {
		for _, p := range s.Pages {
			out = append(out, p.Path)
		}
	}
	return out
}

func TestNavigation_UserSoloInventarioYCuenta(t *testing.T) {
	nav := access.DefaultTable().Navigation("user")
	assert.Equal(t, []string{"/inventory", "/notifications", "/profile"}, paths(nav))
	require.Len(t, nav, 2)
	assert.Equal(t, access.SectionInventory, nav[0].Title)
	assert.Equal(t, access.SectionAccount, nav[1].Title)
}

func TestNavigation_StoreManagerSinAdministracion(t *testing.T) {
	nav := access.DefaultTable().Navigation("store_manager")
	for _, s := range nav {
		assert.NotEqual(t, access.SectionAdmin, s.Title)
	}
	assert.Contains(t, paths(nav), "/dashboard/warehouse")
	assert.NotContains(t, paths(nav), "/dashboard/admin")
}

func TestNavigation_AdminVeTodasLasPaginasPrivadas(t *testing.T) {
	nav := access.DefaultTable().Navigation("admin")
	var private int
	for _, p := range access.Pages {
		if !p.Public {
			private++
		}
	}
	assert.Len(t, paths(nav), private)
}

func TestNavigation_RolDesconocidoVacio(t *testing.T) {
	assert.Empty(t, access.DefaultTable().Navigation(""))
	assert.Empty(t, access.DefaultTable().Navigation("ghost"))
}

func TestLandingPagesSonAccesiblesParaSuRol(t *testing.T) {
	table := access.DefaultTable()
	for _, role := range access.Roles {
		landing := access.DefaultLanding(string(role))
		page, ok := access.FindPage(landing)
		require.True(t, ok, "landing %s registrada", landing)
		assert.True(t, table.HasAccess(string(role), page.Category, page.Feature),
			"el rol %s debe poder ver su landing %s", role, landing)
	}
}

func TestFindPage(t *testing.T) {
	p, ok := access.FindPage("/forecasting/seasonal")
	require.True(t, ok)
	assert.Equal(t, access.CategoryForecasting, p.Category)
	assert.Equal(t, "seasonal", p.Feature)

	_, ok = access.FindPage("/nope")
	assert.False(t, ok)
}
