package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Inventario-dashboard/internal/application/auth"
	"github.com/jhoicas/Inventario-dashboard/internal/application/guard"
	"github.com/jhoicas/Inventario-dashboard/internal/application/notifier"
	"github.com/jhoicas/Inventario-dashboard/internal/application/stock"
	"github.com/jhoicas/Inventario-dashboard/internal/domain/access"
	"github.com/jhoicas/Inventario-dashboard/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Table     *access.Table
	Sessions  SessionResolver
	Notifiers NotifierActivator
	Resetter  NotifiedResetter
	AuthUC    *auth.UseCase
	StockUC   *stock.UseCase
	Feed      *notifier.Feed
	History   repository.AlertRepository // nil = sin historial
	Log       zerolog.Logger
}

// Router registra las rutas de la API y de las páginas. Debe llamarse después de
// registrar /health y la documentación: la última ruta captura todo lo demás.
// Los middlewares de sesión se asocian a cada ruta, no a grupos con prefijo "/",
// para que las rutas desconocidas no resuelvan la sesión.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.Log)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	authMW := AuthMiddleware(deps.Sessions, deps.Notifiers)

	api.Post("/auth/logout", authMW, authHandler.Logout)
	api.Get("/auth/me", authMW, authHandler.Me)

	accessHandler := NewAccessHandler(deps.Table)
	api.Get("/access/check", authMW, accessHandler.Check)
	api.Get("/access/policy", authMW, accessHandler.Policy)

	inventoryHandler := NewInventoryHandler(deps.StockUC, deps.Log)
	api.Get("/inventory", authMW, RequireAccess(deps.Table, access.CategoryInventory, "all"), inventoryHandler.List)
	api.Get("/inventory/low-stock", authMW, RequireAccess(deps.Table, access.CategoryInventory, "low-stock"), inventoryHandler.LowStock)

	notificationHandler := NewNotificationHandler(deps.Feed, deps.History, deps.Resetter, deps.StockUC, deps.Log)
	notificationsMW := RequireAccess(deps.Table, access.CategoryNotifications, "")
	api.Get("/notifications", authMW, notificationsMW, notificationHandler.List)
	api.Get("/notifications/report.pdf", authMW, notificationsMW, notificationHandler.Report)
	api.Delete("/notifications/notified", authMW, notificationsMW, RequireAccess(deps.Table, access.CategoryAdmin, "thresholds"), notificationHandler.ResetNotified)

	pageHandler := NewPageHandler(guard.New(deps.Table), deps.Table)
	api.Use(pageHandler.NotFound)

	// Páginas del dashboard (guard de rutas)
	sessionMW := SessionMiddleware(deps.Sessions, deps.Notifiers)
	for _, p := range access.Pages {
		app.Get(p.Path, sessionMW, pageHandler.Serve(p))
	}
	app.Use(pageHandler.NotFound)
}
