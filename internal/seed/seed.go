package seed

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"storefront-cart/internal/domain"
	productrepo "storefront-cart/internal/repository/product"
)

func int64Ptr(v int64) *int64 { return &v }

// Apply inserts demo catalog data for manual testing. Idempotent: the
// repository upserts on slug conflict.
func Apply(ctx context.Context, pool *pgxpool.Pool, logger *log.Logger) error {
	products := []domain.Product{
		{
			Slug:              "argan-oil-shampoo",
			Name:              "Argan Oil Repair Shampoo",
			Brand:             "Nativa",
			Category:          "hair-care",
			Description:       "Sulfate-free repair shampoo with Moroccan argan oil",
			PriceCents:        1490,
			ComparePriceCents: int64Ptr(1890),
			Currency:          "EUR",
			Images:            []string{"/images/products/argan-shampoo.jpg"},
			Status:            domain.ProductStatusActive,
			StockQuantity:     42,
			Variants: []domain.ProductVariant{
				{ID: "250ml", Name: "Size", Value: "250ml", StockQuantity: 30},
				{ID: "500ml", Name: "Size", Value: "500ml", PriceCents: int64Ptr(2390), StockQuantity: 12},
			},
		},
		{
			Slug:          "keratin-smoothing-mask",
			Name:          "Keratin Smoothing Mask",
			Brand:         "Cadiveu",
			Category:      "treatments",
			Description:   "Deep conditioning mask for chemically treated hair",
			PriceCents:    2190,
			Currency:      "EUR",
			Images:        []string{"/images/products/keratin-mask.jpg"},
			Status:        domain.ProductStatusActive,
			StockQuantity: 18,
		},
		{
			Slug:          "mega-hair-tape-in-55cm",
			Name:          "Mega Hair Tape-In Extensions 55cm",
			Brand:         "JC Collection",
			Category:      "extensions",
			Description:   "Natural human hair tape-in extensions, 55cm",
			PriceCents:    8990,
			Currency:      "EUR",
			Images:        []string{"/images/products/mega-hair-55.jpg"},
			Status:        domain.ProductStatusActive,
			StockQuantity: 6,
			Variants: []domain.ProductVariant{
				{ID: "tone-613", Name: "Tone", Value: "613 Blonde", PriceCents: int64Ptr(9990), StockQuantity: 3},
				{ID: "tone-1b", Name: "Tone", Value: "1B Natural Black", StockQuantity: 3},
			},
		},
		{
			Slug:          "retired-gloss-serum",
			Name:          "Gloss Serum (discontinued)",
			Brand:         "Nativa",
			Category:      "finishing",
			PriceCents:    990,
			Currency:      "EUR",
			Status:        domain.ProductStatusArchived,
			StockQuantity: 0,
		},
	}

	repo := productrepo.NewPostgres(pool, logger)
	for _, p := range products {
		if _, err := repo.Upsert(ctx, p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Slug, err)
		}
	}
	return nil
}
