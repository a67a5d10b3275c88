//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// CreateTestProduct inserts a product. A negative qty leaves stock untracked.
func CreateTestProduct(t *testing.T, db DBLike, name, price string, qty int) uuid.UUID {
	t.Helper()

	inventory := qty >= 0
	if !inventory {
		qty = 0
	}
	slug := strings.ToLower(strings.ReplaceAll(name, " ", "-")) + "-" + uuid.NewString()[:8]

	var id uuid.UUID
	err := db.QueryRow(context.Background(),
		`INSERT INTO products (name, slug, price, qty, inventory) VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		name, slug, price, qty, inventory,
	).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateTestOptionItem inserts an option group item for productID. A nil qty leaves it untracked.
func CreateTestOptionItem(t *testing.T, db DBLike, productID uuid.UUID, group, name, price string, qty *int) uuid.UUID {
	t.Helper()
	ctx := context.Background()

	var optionID uuid.UUID
	err := db.QueryRow(ctx,
		`INSERT INTO product_options (product_id, name) VALUES ($1, $2) RETURNING id`,
		productID, group,
	).Scan(&optionID)
	require.NoError(t, err)

	var id uuid.UUID
	err = db.QueryRow(ctx,
		`INSERT INTO product_option_items (option_id, name, price, qty) VALUES ($1, $2, $3, $4) RETURNING id`,
		optionID, name, price, qty,
	).Scan(&id)
	require.NoError(t, err)
	return id
}

func CreateTestDiscount(t *testing.T, db DBLike, code, kind, rate string, oneTime bool, userID *uuid.UUID) uuid.UUID {
	t.Helper()

	var id uuid.UUID
	err := db.QueryRow(context.Background(),
		`INSERT INTO discounts (name, code, kind, rate, onetime, user_id) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		code+" discount", code, kind, rate, oneTime, userID,
	).Scan(&id)
	require.NoError(t, err)
	return id
}

func ProductQty(t *testing.T, db DBLike, productID uuid.UUID) int {
	t.Helper()

	var qty int
	err := db.QueryRow(context.Background(), `SELECT qty FROM products WHERE id = $1`, productID).Scan(&qty)
	require.NoError(t, err)
	return qty
}

func DiscountUsed(t *testing.T, db DBLike, discountID uuid.UUID) bool {
	t.Helper()

	var used bool
	err := db.QueryRow(context.Background(), `SELECT used FROM discounts WHERE id = $1`, discountID).Scan(&used)
	require.NoError(t, err)
	return used
}

func CountOrders(t *testing.T, db DBLike) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(), `SELECT count(*) FROM orders`).Scan(&n)
	require.NoError(t, err)
	return n
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}
