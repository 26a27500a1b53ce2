package product

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"storefront-cart/internal/domain"
	"storefront-cart/internal/migrate"
)

func TestPostgres_UpsertAndGet(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)

	repo := NewPostgres(pool, nil)
	compare := int64(1890)
	override := int64(2590)
	created, err := repo.Upsert(ctx, domain.Product{
		Slug:              "argan-oil-shampoo",
		Name:              "Argan Oil Shampoo",
		Brand:             "Kérastase",
		Category:          "hair-care",
		PriceCents:        1490,
		ComparePriceCents: &compare,
		Currency:          "EUR",
		Images:            []string{"/images/products/argan-shampoo.jpg"},
		Status:            domain.ProductStatusActive,
		StockQuantity:     24,
		Variants: []domain.ProductVariant{
			{ID: "500ml", Name: "Size", Value: "500ml", PriceCents: &override, StockQuantity: 8},
		},
	})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected generated id")
	}

	fetched, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if fetched.Slug != "argan-oil-shampoo" || fetched.PriceCents != 1490 {
		t.Fatalf("fetched mismatch %+v", fetched)
	}
	if len(fetched.Variants) != 1 || fetched.Variants[0].PriceCents == nil || *fetched.Variants[0].PriceCents != 2590 {
		t.Fatalf("variants mismatch %+v", fetched.Variants)
	}

	bySlug, err := repo.GetBySlug(ctx, "argan-oil-shampoo")
	if err != nil {
		t.Fatalf("GetBySlug: %v", err)
	}
	if bySlug.ID != created.ID {
		t.Fatalf("slug lookup mismatch %s != %s", bySlug.ID, created.ID)
	}

	if _, err := repo.GetByID(ctx, "00000000-0000-0000-0000-000000000000"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPostgres_List(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)

	repo := NewPostgres(pool, nil)
	for _, slug := range []string{"mask-a", "mask-b"} {
		if _, err := repo.Upsert(ctx, domain.Product{
			Slug:       slug,
			Name:       slug,
			PriceCents: 1000,
			Currency:   "EUR",
			Status:     domain.ProductStatusActive,
		}); err != nil {
			t.Fatalf("Upsert %s: %v", slug, err)
		}
	}

	products, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}
}

func testPool(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return pool
}

func resetTables(ctx context.Context, t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	if _, err := pool.Exec(ctx, `TRUNCATE products RESTART IDENTITY CASCADE`); err != nil {
		t.Fatalf("truncate tables: %v", err)
	}
}
