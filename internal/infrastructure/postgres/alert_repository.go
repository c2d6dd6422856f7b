package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-dashboard/internal/domain/entity"
	"github.com/jhoicas/Inventario-dashboard/internal/domain/repository"
)

var _ repository.AlertRepository = (*AlertRepo)(nil)

// AlertRepo implementación del puerto AlertRepository sobre PostgreSQL.
type AlertRepo struct {
	pool *pgxpool.Pool
}

// NewAlertRepository construye el adaptador del historial de alertas.
func NewAlertRepository(pool *pgxpool.Pool) *AlertRepo {
	return &AlertRepo{pool: pool}
}

// Save persiste la alerta y sus ítems en una transacción.
func (r *AlertRepo) Save(ctx context.Context, a *entity.Alert) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO stock_alerts (id, user_id, dedup_key, severity, status, message, description, duration_ms, total, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		a.ID, a.UserID, a.DedupKey, a.Severity, string(a.Status), a.Message, a.Description,
		a.Duration.Milliseconds(), a.Total, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert alert: %w", err)
	}
	for i, it := range a.Items {
		_, err = tx.Exec(ctx, `
			INSERT INTO stock_alert_items (alert_id, position, item_id, name, status, available_stock, observed_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			a.ID, i, it.ItemID, it.Name, string(it.Status), it.AvailableStock, it.ObservedAt,
		)
		if err != nil {
			return fmt.Errorf("insert alert item: %w", err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// ListByUser alertas del usuario desde since, más recientes primero.
func (r *AlertRepo) ListByUser(ctx context.Context, userID string, since time.Time, limit int) ([]*entity.Alert, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, dedup_key, severity, status, message, description, duration_ms, total, created_at
		FROM stock_alerts
		WHERE user_id = $1 AND created_at >= $2
		ORDER BY created_at DESC
		LIMIT $3`, userID, since, limit)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	defer rows.Close()

	var (
		list  []*entity.Alert
		ids   []string
		index = make(map[string]*entity.Alert)
	)
	for rows.Next() {
		var (
			a          entity.Alert
			status     string
			durationMs int64
		)
		if err := rows.Scan(&a.ID, &a.UserID, &a.DedupKey, &a.Severity, &status, &a.Message, &a.Description, &durationMs, &a.Total, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		a.Status = entity.StockStatus(status)
		a.Duration = time.Duration(durationMs) * time.Millisecond
		list = append(list, &a)
		ids = append(ids, a.ID)
		index[a.ID] = &a
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows alerts: %w", err)
	}
	if len(ids) == 0 {
		return list, nil
	}

	itemRows, err := r.pool.Query(ctx, `
		SELECT alert_id, item_id, name, status, available_stock, observed_at
		FROM stock_alert_items
		WHERE alert_id = ANY($1)
		ORDER BY alert_id, position`, ids)
	if err != nil {
		return nil, fmt.Errorf("list alert items: %w", err)
	}
	defer itemRows.Close()
	for itemRows.Next() {
		var (
			alertID string
			status  string
			stock   decimal.Decimal
			s       entity.Snapshot
		)
		if err := itemRows.Scan(&alertID, &s.ItemID, &s.Name, &status, &stock, &s.ObservedAt); err != nil {
			return nil, fmt.Errorf("scan alert item: %w", err)
		}
		s.Status = entity.StockStatus(status)
		s.AvailableStock = stock
		if a, ok := index[alertID]; ok {
			a.Items = append(a.Items, s)
		}
	}
	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("rows alert items: %w", err)
	}
	return list, nil
}
