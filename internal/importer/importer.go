package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"storefront-cart/internal/domain"
)

type ProductWriter interface {
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}

// JSONImporter reads a consolidated catalog export (the storefront's
// `{"products": [...]}` format) and inserts/updates products.
type JSONImporter struct {
	reader      io.Reader
	productRepo ProductWriter
}

func NewJSONImporter(r io.Reader, repo ProductWriter) *JSONImporter {
	return &JSONImporter{reader: r, productRepo: repo}
}

type catalogFile struct {
	Products []catalogProduct `json:"products"`
}

type catalogProduct struct {
	ID            string           `json:"id"`
	Slug          string           `json:"slug"`
	Name          string           `json:"name"`
	Brand         string           `json:"brand"`
	Category      string           `json:"category"`
	Description   string           `json:"description"`
	Price         float64          `json:"price"`
	ComparePrice  *float64         `json:"comparePrice"`
	Currency      string           `json:"currency"`
	Images        []string         `json:"images"`
	Status        string           `json:"status"`
	StockQuantity int              `json:"stockQuantity"`
	Variants      []catalogVariant `json:"variants"`
}

type catalogVariant struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Value         string   `json:"value"`
	Price         *float64 `json:"price"`
	StockQuantity int      `json:"stockQuantity"`
}

// Run parses the catalog file and upserts every product. Prices in the
// export are decimal currency units and are stored as cents.
func (i *JSONImporter) Run(ctx context.Context) (int, error) {
	var file catalogFile
	dec := json.NewDecoder(i.reader)
	if err := dec.Decode(&file); err != nil {
		return 0, fmt.Errorf("decode catalog: %w", err)
	}

	imported := 0
	for _, cp := range file.Products {
		product, err := toProduct(cp)
		if err != nil {
			return imported, err
		}
		if _, err := i.productRepo.Upsert(ctx, product); err != nil {
			return imported, fmt.Errorf("upsert product %s: %w", product.Slug, err)
		}
		imported++
	}
	return imported, nil
}

func toProduct(cp catalogProduct) (domain.Product, error) {
	slug := strings.TrimSpace(cp.Slug)
	if slug == "" {
		slug = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(cp.Name)), " ", "-")
	}
	if slug == "" {
		return domain.Product{}, fmt.Errorf("product %q has neither slug nor name", cp.ID)
	}

	status := cp.Status
	if status == "" {
		status = domain.ProductStatusActive
	}
	currency := cp.Currency
	if currency == "" {
		currency = "EUR"
	}

	p := domain.Product{
		ID:            cp.ID,
		Slug:          slug,
		Name:          cp.Name,
		Brand:         cp.Brand,
		Category:      cp.Category,
		Description:   cp.Description,
		PriceCents:    toCents(cp.Price),
		Currency:      currency,
		Images:        cp.Images,
		Status:        status,
		StockQuantity: cp.StockQuantity,
	}
	if cp.ComparePrice != nil {
		cents := toCents(*cp.ComparePrice)
		p.ComparePriceCents = &cents
	}
	for _, v := range cp.Variants {
		variant := domain.ProductVariant{
			ID:            v.ID,
			Name:          v.Name,
			Value:         v.Value,
			StockQuantity: v.StockQuantity,
		}
		if v.Price != nil {
			cents := toCents(*v.Price)
			variant.PriceCents = &cents
		}
		p.Variants = append(p.Variants, variant)
	}
	return p, nil
}

func toCents(price float64) int64 {
	return int64(price*100 + 0.5)
}
