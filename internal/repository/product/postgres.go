package product

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront-cart/internal/domain"
)

const productColumns = `
id::text, slug, name, COALESCE(brand, ''), COALESCE(category, ''), COALESCE(description, ''),
price_cents, compare_price_cents, currency, images, status, stock_quantity, variants, created_at
`

type PostgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) *PostgresRepo {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &PostgresRepo{pool: pool, logger: logger}
}

func (r *PostgresRepo) List(ctx context.Context) ([]domain.Product, error) {
	q := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("product repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("product repo: list rows error=%v", err)
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	q := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return r.getOne(ctx, q, id)
}

func (r *PostgresRepo) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	q := `SELECT ` + productColumns + ` FROM products WHERE slug = $1`
	return r.getOne(ctx, q, slug)
}

func (r *PostgresRepo) getOne(ctx context.Context, q, arg string) (*domain.Product, error) {
	row := r.pool.QueryRow(ctx, q, arg)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: get %q error=%v", arg, err)
		return nil, err
	}
	return &p, nil
}

func (r *PostgresRepo) Upsert(ctx context.Context, product domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (id, slug, name, brand, category, description, price_cents, compare_price_cents, currency, images, status, stock_quantity, variants)
VALUES (COALESCE(NULLIF($1, '')::uuid, gen_random_uuid()), $2, $3, NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), $7, $8, $9, COALESCE($10, '[]'::jsonb), $11, $12, COALESCE($13, '[]'::jsonb))
ON CONFLICT (slug) DO UPDATE SET
    name = EXCLUDED.name,
    brand = EXCLUDED.brand,
    category = EXCLUDED.category,
    description = EXCLUDED.description,
    price_cents = EXCLUDED.price_cents,
    compare_price_cents = EXCLUDED.compare_price_cents,
    currency = EXCLUDED.currency,
    images = EXCLUDED.images,
    status = EXCLUDED.status,
    stock_quantity = EXCLUDED.stock_quantity,
    variants = EXCLUDED.variants
RETURNING id::text, created_at
`
	res := product
	err := r.pool.QueryRow(ctx, q,
		product.ID,
		product.Slug,
		product.Name,
		product.Brand,
		product.Category,
		product.Description,
		product.PriceCents,
		product.ComparePriceCents,
		product.Currency,
		product.Images,
		product.Status,
		product.StockQuantity,
		product.Variants,
	).Scan(&res.ID, &res.CreatedAt)
	if err != nil {
		r.logger.Printf("product repo: upsert slug=%s error=%v", product.Slug, err)
		return nil, err
	}
	if product.ID != "" && res.ID != product.ID {
		return nil, fmt.Errorf("product repo: id mismatch for slug=%s existing_id=%s import_id=%s", product.Slug, res.ID, product.ID)
	}
	r.logger.Printf("product repo: upserted slug=%s id=%s", res.Slug, res.ID)
	return &res, nil
}

func scanProduct(row pgx.Row) (domain.Product, error) {
	var p domain.Product
	err := row.Scan(
		&p.ID,
		&p.Slug,
		&p.Name,
		&p.Brand,
		&p.Category,
		&p.Description,
		&p.PriceCents,
		&p.ComparePriceCents,
		&p.Currency,
		&p.Images,
		&p.Status,
		&p.StockQuantity,
		&p.Variants,
		&p.CreatedAt,
	)
	return p, err
}
