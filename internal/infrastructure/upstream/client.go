// Package upstream implementa el adaptador HTTP hacia el API REST de inventario y
// pronóstico (autenticación, usuario actual e inventario por tienda).
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-dashboard/internal/application/auth"
	"github.com/jhoicas/Inventario-dashboard/internal/application/notifier"
	"github.com/jhoicas/Inventario-dashboard/internal/domain"
	"github.com/jhoicas/Inventario-dashboard/internal/domain/entity"
)

// Verificar en tiempo de compilación los puertos implementados.
var (
	_ notifier.InventoryClient = (*Client)(nil)
	_ auth.IdentityProvider    = (*Client)(nil)
)

const (
	defaultPageSize = 100
	maxPages        = 200
	maxErrorBody    = 2048
)

// Config parámetros del cliente.
type Config struct {
	BaseURL  string        // ej. http://127.0.0.1:8000/api/v1
	Timeout  time.Duration // timeout de red por petición
	PageSize int           // tamaño de página al listar inventario
}

// Client adaptador del API remoto. Usa net/http de la librería estándar.
type Client struct {
	baseURL    string
	pageSize   int
	httpClient *http.Client
}

// NewClient construye el cliente.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		pageSize:   pageSize,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ── Estructuras del protocolo ────────────────────────────────────────────────

// flexID acepta IDs numéricos o string.
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexID(n.String())
	return nil
}

type inventoryItemWire struct {
	ID             flexID          `json:"id"`
	ProductName    string          `json:"product_name"`
	SKU            string          `json:"sku"`
	Category       string          `json:"category"`
	AvailableStock decimal.Decimal `json:"availableStock"`
	Threshold      decimal.Decimal `json:"threshold"`
	Status         string          `json:"status"`
	Location       string          `json:"location"`
	LastUpdated    string          `json:"lastUpdated"`
}

type userWire struct {
	ID       flexID `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	IsActive *bool  `json:"is_active"`
}

type tokenWire struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type errorWire struct {
	Detail any `json:"detail"`
}

// ── Operaciones ──────────────────────────────────────────────────────────────

// ListInventory recorre todas las páginas de GET /inventory/ con el token del usuario.
func (c *Client) ListInventory(ctx context.Context, token string) ([]entity.InventoryItem, error) {
	var out []entity.InventoryItem
	for page := 0; page < maxPages; page++ {
		q := url.Values{}
		q.Set("skip", strconv.Itoa(page*c.pageSize))
		q.Set("limit", strconv.Itoa(c.pageSize))

		var wire []inventoryItemWire
		if err := c.doJSON(ctx, http.MethodGet, "/inventory/?"+q.Encode(), token, nil, "", &wire); err != nil {
			return nil, fmt.Errorf("listar inventario: %w", err)
		}
		for _, w := range wire {
			out = append(out, toInventoryItem(w))
		}
		if len(wire) < c.pageSize {
			return out, nil
		}
	}
	return out, nil
}

// Me devuelve el usuario dueño del token (GET /users/me).
func (c *Client) Me(ctx context.Context, token string) (*entity.User, error) {
	var w userWire
	if err := c.doJSON(ctx, http.MethodGet, "/users/me", token, nil, "", &w); err != nil {
		return nil, fmt.Errorf("consultar usuario actual: %w", err)
	}
	u := &entity.User{
		ID:       string(w.ID),
		Email:    w.Email,
		FullName: w.FullName,
		Role:     w.Role,
		IsActive: w.IsActive == nil || *w.IsActive,
	}
	return u, nil
}

// Login intercambia usuario y contraseña por un token (POST /auth/login/access-token, formulario OAuth2).
func (c *Client) Login(ctx context.Context, username, password string) (*auth.Token, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	var w tokenWire
	body := strings.NewReader(form.Encode())
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login/access-token", "", body, "application/x-www-form-urlencoded", &w); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if w.AccessToken == "" {
		return nil, fmt.Errorf("login: %w: respuesta sin access_token", domain.ErrUpstream)
	}
	tokenType := w.TokenType
	if tokenType == "" {
		tokenType = "bearer"
	}
	return &auth.Token{AccessToken: w.AccessToken, TokenType: tokenType}, nil
}

func (c *Client) doJSON(ctx context.Context, method, path, token string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("crear request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: leer respuesta: %v", domain.ErrUpstream, err)
	}

	switch {
	case resp.StatusCode == http.StatusBadRequest:
		return badRequestError(errorDetail(raw))
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: %s", domain.ErrUnauthorized, errorDetail(raw))
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", domain.ErrNotFound, errorDetail(raw))
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return fmt.Errorf("%w: status %d: %s", domain.ErrUpstream, resp.StatusCode, errorDetail(raw))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(bytes.NewReader(raw)).Decode(out); err != nil {
		return fmt.Errorf("%w: JSON inválido: %v", domain.ErrUpstream, err)
	}
	return nil
}

// Mensajes de 400 del API de inventario (login y dependencias de usuario activo).
const (
	detailInactiveUser   = "Inactive user"
	detailBadCredentials = "Incorrect email or password"
)

// badRequestError traduce los 400 de autenticación del API a errores de dominio.
func badRequestError(detail string) error {
	switch detail {
	case detailInactiveUser:
		return fmt.Errorf("%w: %s", domain.ErrForbidden, detail)
	case detailBadCredentials:
		return fmt.Errorf("%w: %s", domain.ErrUnauthorized, detail)
	default:
		return fmt.Errorf("%w: status %d: %s", domain.ErrUpstream, http.StatusBadRequest, detail)
	}
}

// errorDetail extrae el campo detail de FastAPI o devuelve el cuerpo truncado.
func errorDetail(raw []byte) string {
	var e errorWire
	if err := json.Unmarshal(raw, &e); err == nil && e.Detail != nil {
		if s, ok := e.Detail.(string); ok {
			return s
		}
		b, _ := json.Marshal(e.Detail)
		return string(b)
	}
	if len(raw) > maxErrorBody {
		raw = raw[:maxErrorBody]
	}
	return strings.TrimSpace(string(raw))
}

func toInventoryItem(w inventoryItemWire) entity.InventoryItem {
	status := entity.StockStatus(w.Status)
	if status == "" {
		status = entity.DeriveStatus(w.AvailableStock, w.Threshold)
	}
	return entity.InventoryItem{
		ID:             string(w.ID),
		ProductName:    w.ProductName,
		SKU:            w.SKU,
		Category:       w.Category,
		AvailableStock: w.AvailableStock,
		Threshold:      w.Threshold,
		Status:         status,
		Location:       w.Location,
		LastUpdated:    w.LastUpdated,
	}
}
