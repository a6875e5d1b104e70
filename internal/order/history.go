package order

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite"

	"github.com/hoterry/whatsdish-mobile-sub003/internal/checkout"
	"github.com/hoterry/whatsdish-mobile-sub003/internal/money"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// HistoryEntry is one placed order as the history screen shows it.
type HistoryEntry struct {
	OrderID      string                 `json:"order_id"`
	RestaurantID string                 `json:"restaurant_id"`
	Status       string                 `json:"status"`
	Total        money.Money            `json:"total"`
	Payload      *checkout.OrderPayload `json:"payload,omitempty"`
	CreatedAt    time.Time              `json:"created_at"`
}

// HistoryStore keeps placed orders in a local sqlite database.
type HistoryStore struct {
	db *sql.DB
}

// OpenHistory opens (or creates) the history database at path and applies
// pending migrations. Use ":memory:" in tests.
func OpenHistory(path string) (*HistoryStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	// Single writer; also keeps an in-memory database on one connection.
	db.SetMaxOpenConns(1)

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, err
	}
	return &HistoryStore{db: db}, nil
}

func runMigrations(db *sql.DB) error {
	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	dbDriver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "sqlite", dbDriver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

func (h *HistoryStore) Record(ctx context.Context, userID string, payload *checkout.OrderPayload, rcpt *Receipt) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal order payload: %w", err)
	}

	_, err = h.db.ExecContext(ctx, `
		INSERT INTO orders (id, user_id, restaurant_id, status, total_cents, payload, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rcpt.OrderID, userID, payload.RestaurantID, rcpt.Status,
		int64(payload.Totals.GrandTotal), string(body), payload.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// ListByUser returns the user's orders, most recent first.
func (h *HistoryStore) ListByUser(ctx context.Context, userID string, limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := h.db.QueryContext(ctx, `
		SELECT id, restaurant_id, status, total_cents, payload, created_at
		FROM orders
		WHERE user_id = ?
		ORDER BY created_at DESC
		LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	out := make([]HistoryEntry, 0, limit)
	for rows.Next() {
		var (
			e     HistoryEntry
			total int64
			body  string
		)
		if err := rows.Scan(&e.OrderID, &e.RestaurantID, &e.Status, &total, &body, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		e.Total = money.Money(total)

		var p checkout.OrderPayload
		if err := json.Unmarshal([]byte(body), &p); err == nil {
			e.Payload = &p
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (h *HistoryStore) Close() error {
	return h.db.Close()
}
