package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ruchulu/storefront-backend/pkg/db/models"
	pkgerrors "github.com/ruchulu/storefront-backend/pkg/errors"
)

// Service exposes the product catalog read surface.
type Service interface {
	// List returns active products, filtered to those deliverable to city
	// when city is non-empty.
	List(ctx context.Context, city string) ([]models.Product, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Product, error)
}

type service struct {
	repo Repository
}

// NewService builds the catalog service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, city string) ([]models.Product, error) {
	products, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}

	trimmedCity := strings.TrimSpace(city)
	if trimmedCity == "" {
		return products, nil
	}

	filtered := make([]models.Product, 0, len(products))
	for _, product := range products {
		if product.DeliverableTo(trimmedCity) {
			filtered = append(filtered, product)
		}
	}
	return filtered, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
	}
	return product, nil
}

func (s *service) ByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Product, error) {
	products, err := s.repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load products")
	}
	indexed := make(map[uuid.UUID]models.Product, len(products))
	for _, product := range products {
		indexed[product.ID] = product
	}
	return indexed, nil
}
