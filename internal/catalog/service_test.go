package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ruchulu/storefront-backend/pkg/db/models"
)

type stubRepo struct {
	products []models.Product
}

func (s *stubRepo) ListActive(ctx context.Context) ([]models.Product, error) {
	return s.products, nil
}

func (s *stubRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error) {
	var out []models.Product
	for _, p := range s.products {
		for _, id := range ids {
			if p.ID == id {
				out = append(out, p)
			}
		}
	}
	return out, nil
}

func (s *stubRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	for _, p := range s.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, context.Canceled
}

func sampleProducts() []models.Product {
	return []models.Product{
		{
			ID:     uuid.New(),
			Name:   "Gongura Pickle",
			Prices: []models.PriceOption{{Weight: "1/2 kg", Price: decimal.NewFromInt(250)}},
		},
		{
			ID:              uuid.New(),
			Name:            "Fresh Curd",
			Prices:          []models.PriceOption{{Weight: "1 kg", Price: decimal.NewFromInt(80)}},
			AvailableCities: []string{"Guntur"},
		},
	}
}

func TestListWithoutCityReturnsAll(t *testing.T) {
	svc, err := NewService(&stubRepo{products: sampleProducts()})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	products, err := svc.List(context.Background(), "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}
}

func TestListFiltersByDeliverableCity(t *testing.T) {
	svc, _ := NewService(&stubRepo{products: sampleProducts()})

	products, err := svc.List(context.Background(), "Hyderabad")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(products) != 1 || products[0].Name != "Gongura Pickle" {
		t.Fatalf("expected only the unrestricted product, got %+v", products)
	}

	products, err = svc.List(context.Background(), "guntur")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("city allow-list match is case-insensitive, got %d products", len(products))
	}
}

func TestByIDsIndexesResults(t *testing.T) {
	all := sampleProducts()
	svc, _ := NewService(&stubRepo{products: all})

	indexed, err := svc.ByIDs(context.Background(), []uuid.UUID{all[1].ID})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(indexed) != 1 {
		t.Fatalf("expected 1 product, got %d", len(indexed))
	}
	if indexed[all[1].ID].Name != "Fresh Curd" {
		t.Fatalf("unexpected product %+v", indexed[all[1].ID])
	}
}
