package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/wishyoulucky/storefront/pkg/storefront"
)

// DBTX is an interface that allows us to use either a database connection or a transaction
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Repository implements storefront.Repository using PostgreSQL. Rows are
// returned as generic column maps: the storefront views never trust the
// database to populate every field and funnel everything through the
// normalizer.
type Repository struct {
	db DBTX
}

// New creates a new PostgreSQL repository
func New(db DBTX) storefront.Repository {
	return &Repository{db: db}
}

// NewWithPool creates a new PostgreSQL repository with connection pool
func NewWithPool(pool *pgxpool.Pool) storefront.Repository {
	return &Repository{db: pool}
}

const productQuery = `
	SELECT p.*, COALESCE(img.images, '[]'::jsonb) AS product_images
	FROM products p
	LEFT JOIN LATERAL (
		SELECT jsonb_agg(
			jsonb_build_object('id', pi.id, 'image_url', pi.image_url, 'order', pi."order")
			ORDER BY pi."order"
		) AS images
		FROM product_images pi
		WHERE pi.product_id = p.id
	) img ON true`

func (r *Repository) ListProducts(ctx context.Context) ([]map[string]any, error) {
	rows, err := r.db.Query(ctx, productQuery+` ORDER BY p.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	return rowsToMaps(rows)
}

func (r *Repository) GetProductBySlug(ctx context.Context, slug string) (map[string]any, error) {
	rows, err := r.db.Query(ctx, productQuery+` WHERE p.slug = $1 OR p.id::text = $1 LIMIT 1`, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	defer rows.Close()

	records, err := rowsToMaps(rows)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, storefront.ErrProductNotFound
	}
	return records[0], nil
}

func (r *Repository) ListBanners(ctx context.Context) ([]map[string]any, error) {
	rows, err := r.db.Query(ctx, `SELECT * FROM banners ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to list banners: %w", err)
	}
	defer rows.Close()

	return rowsToMaps(rows)
}

func (r *Repository) ListCategoryBanners(ctx context.Context) ([]map[string]any, error) {
	rows, err := r.db.Query(ctx, `SELECT * FROM category_banners ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list category banners: %w", err)
	}
	defer rows.Close()

	return rowsToMaps(rows)
}

func (r *Repository) CreateOrder(ctx context.Context, order *storefront.Order) error {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("failed to encode order items: %w", err)
	}
	customer, err := json.Marshal(order.Customer)
	if err != nil {
		return fmt.Errorf("failed to encode customer info: %w", err)
	}

	query := `
		INSERT INTO orders (
			items, customer_info, total_selling_price, status,
			deposit, shipping_cost, discount, username, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
		RETURNING id, created_at::text`

	row := r.db.QueryRow(ctx, query,
		items, customer, order.TotalPrice, order.Status,
		order.Deposit, order.ShippingCost, order.Discount, order.Username)

	if err := row.Scan(&order.ID, &order.CreatedAt); err != nil {
		return handlePostgresError("create_order", err)
	}
	return nil
}

func (r *Repository) ListOrders(ctx context.Context) ([]map[string]any, error) {
	rows, err := r.db.Query(ctx, `SELECT * FROM orders ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	return rowsToMaps(rows)
}

// rowsToMaps materializes a result set as loosely-typed column maps. jsonb
// columns decode to nested []any / map[string]any, matching the shapes the
// normalizer accepts.
func rowsToMaps(rows pgx.Rows) ([]map[string]any, error) {
	fields := rows.FieldDescriptions()
	var records []map[string]any

	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		record := make(map[string]any, len(fields))
		for i, field := range fields {
			record[field.Name] = values[i]
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return records, nil
}

// handlePostgresError maps the common constraint violations onto readable errors
func handlePostgresError(operation string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("duplicate entry")
		case "23503": // foreign_key_violation
			return fmt.Errorf("referenced record not found")
		case "23502": // not_null_violation
			return fmt.Errorf("required field %s is missing", pgErr.ColumnName)
		case "42P01": // undefined_table
			return fmt.Errorf("table does not exist - database migration required")
		default:
			return fmt.Errorf("database error in %s: %s (code: %s)", operation, pgErr.Message, pgErr.Code)
		}
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("record not found")
	}

	return fmt.Errorf("database error in %s: %w", operation, err)
}
