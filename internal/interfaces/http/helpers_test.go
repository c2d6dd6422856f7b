package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-dashboard/internal/application/auth"
	"github.com/jhoicas/Inventario-dashboard/internal/application/guard"
	"github.com/jhoicas/Inventario-dashboard/internal/application/notifier"
	"github.com/jhoicas/Inventario-dashboard/internal/application/stock"
	"github.com/jhoicas/Inventario-dashboard/internal/domain"
	"github.com/jhoicas/Inventario-dashboard/internal/domain/access"
	"github.com/jhoicas/Inventario-dashboard/internal/domain/entity"
	apphttp "github.com/jhoicas/Inventario-dashboard/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// Tokens de prueba: "tok-<rol>" autentica con ese rol; "tok-loading" simula una
// consulta de sesión en curso.
var testUsers = map[string]entity.User{
	"tok-admin":             {ID: "1", Email: "admin@x.co", Role: "admin", IsActive: true},
	"tok-store_manager":     {ID: "2", Email: "sm@x.co", Role: "store_manager", IsActive: true},
	"tok-inventory_analyst": {ID: "3", Email: "ia@x.co", Role: "inventory_analyst", IsActive: true},
	"tok-staff":             {ID: "4", Email: "staff@x.co", Role: "staff", IsActive: true},
	"tok-user":              {ID: "5", Email: "user@x.co", Role: "user", IsActive: true},
	"tok-ghost":             {ID: "6", Email: "ghost@x.co", Role: "ghost", IsActive: true},
}

type fakeSessions struct{}

func (fakeSessions) Resolve(_ context.Context, token string) guard.AuthState {
	if token == "tok-loading" {
		return guard.AuthState{Loading: true}
	}
	u, ok := testUsers[token]
	if !ok {
		return guard.AuthState{}
	}
	return guard.AuthState{Authenticated: true, Role: u.Role, UserID: u.ID}
}

// fakeUpstream implementa el API remoto: identidad e inventario.
type fakeUpstream struct {
	items []entity.InventoryItem
	err   error
}

func (f *fakeUpstream) Login(_ context.Context, username, password string) (*auth.Token, error) {
	if password != "ok" {
		return nil, domain.ErrUnauthorized
	}
	return &auth.Token{AccessToken: "tok-" + username, TokenType: "bearer"}, nil
}

func (f *fakeUpstream) Me(_ context.Context, token string) (*entity.User, error) {
	u, ok := testUsers[token]
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	return &u, nil
}

func (f *fakeUpstream) ListInventory(context.Context, string) ([]entity.InventoryItem, error) {
	return f.items, f.err
}

type recordingLifecycle struct {
	mu          sync.Mutex
	activated   map[string]string
	deactivated []string
	resets      []string
}

func (r *recordingLifecycle) Activate(userID, token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.activated[userID] = token
}

func (r *recordingLifecycle) Deactivate(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deactivated = append(r.deactivated, userID)
}

func (r *recordingLifecycle) ResetNotified(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resets = append(r.resets, userID)
	return nil
}

type testEnv struct {
	app       *fiber.App
	upstream  *fakeUpstream
	lifecycle *recordingLifecycle
	feed      *notifier.Feed
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	table := access.DefaultTable()
	up := &fakeUpstream{items: []entity.InventoryItem{
		{ID: "1", ProductName: "KALLAX", Status: entity.StatusInStock, AvailableStock: decimal.NewFromInt(80)},
		{ID: "2", ProductName: "MALM", Status: entity.StatusLowStock, AvailableStock: decimal.NewFromInt(12)},
		{ID: "3", ProductName: "LACK", Status: entity.StatusOutOfStock, AvailableStock: decimal.Zero},
	}}
	lc := &recordingLifecycle{activated: map[string]string{}}
	feed := notifier.NewFeed(10)
	log := zerolog.Nop()

	sessions := auth.NewSessionProvider(up, auth.SessionConfig{}, log)
	authUC := auth.NewUseCase(up, sessions, lc, feed, table, log)
	stockUC := stock.NewUseCase(up, fakePDF{}, nil, "")

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})
	apphttp.Router(app, apphttp.RouterDeps{
		Table:     table,
		Sessions:  fakeSessions{},
		Notifiers: lc,
		Resetter:  lc,
		AuthUC:    authUC,
		StockUC:   stockUC,
		Feed:      feed,
		Log:       log,
	})
	return &testEnv{app: app, upstream: up, lifecycle: lc, feed: feed}
}

type fakePDF struct{}

func (fakePDF) GenerateLowStockPDF(context.Context, *stock.LowStockReport) ([]byte, error) {
	return []byte("%PDF-1.3 test"), nil
}

func (e *testEnv) do(t *testing.T, method, path, token string, body io.Reader, contentType string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func (e *testEnv) get(t *testing.T, path, token string) *http.Response {
	return e.do(t, http.MethodGet, path, token, nil, "")
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return strings.TrimSpace(string(b))
}

func errUpstream() error {
	return fmt.Errorf("%w: status 500", domain.ErrUpstream)
}
