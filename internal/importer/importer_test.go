package importer

import (
	"context"
	"strings"
	"testing"

	"storefront-cart/internal/domain"
)

type stubProductRepo struct {
	items []domain.Product
}

func (s *stubProductRepo) Upsert(_ context.Context, p domain.Product) (*domain.Product, error) {
	s.items = append(s.items, p)
	return &p, nil
}

func TestJSONImporter_Run(t *testing.T) {
	catalog := `{
  "products": [
    {
      "id": "00000000-0000-0000-0000-000000000001",
      "slug": "argan-oil-shampoo",
      "name": "Argan Oil Shampoo",
      "brand": "Nativa",
      "category": "hair-care",
      "price": 14.90,
      "comparePrice": 18.90,
      "currency": "EUR",
      "images": ["/images/argan.jpg"],
      "status": "active",
      "stockQuantity": 42,
      "variants": [
        {"id": "500ml", "name": "Size", "value": "500ml", "price": 23.90, "stockQuantity": 12}
      ]
    },
    {
      "name": "Keratin Mask",
      "price": 21.90,
      "stockQuantity": 18
    }
  ]
}`

	repo := &stubProductRepo{}
	imp := NewJSONImporter(strings.NewReader(catalog), repo)

	count, err := imp.Run(context.Background())
	if err != nil {
		t.Fatalf("import run: %v", err)
	}
	if count != 2 || len(repo.items) != 2 {
		t.Fatalf("expected 2 products imported, got count=%d saved=%d", count, len(repo.items))
	}

	first := repo.items[0]
	if first.ID != "00000000-0000-0000-0000-000000000001" {
		t.Fatalf("expected id preserved, got %s", first.ID)
	}
	if first.PriceCents != 1490 || first.ComparePriceCents == nil || *first.ComparePriceCents != 1890 {
		t.Fatalf("price conversion wrong: %+v", first)
	}
	if len(first.Variants) != 1 || first.Variants[0].PriceCents == nil || *first.Variants[0].PriceCents != 2390 {
		t.Fatalf("variant conversion wrong: %+v", first.Variants)
	}

	second := repo.items[1]
	if second.Slug != "keratin-mask" {
		t.Fatalf("expected slug derived from name, got %q", second.Slug)
	}
	if second.Status != domain.ProductStatusActive || second.Currency != "EUR" {
		t.Fatalf("defaults not applied: %+v", second)
	}
}

func TestJSONImporter_BadPayload(t *testing.T) {
	imp := NewJSONImporter(strings.NewReader("not json"), &stubProductRepo{})
	if _, err := imp.Run(context.Background()); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestJSONImporter_ProductWithoutIdentity(t *testing.T) {
	imp := NewJSONImporter(strings.NewReader(`{"products":[{"price": 1.0}]}`), &stubProductRepo{})
	if _, err := imp.Run(context.Background()); err == nil {
		t.Fatalf("expected identity error")
	}
}
