package customers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/ruchulu/storefront-backend/pkg/db/models"
	pkgerrors "github.com/ruchulu/storefront-backend/pkg/errors"
)

// Service looks up saved customer details for checkout prefill.
type Service interface {
	ByIdentifier(ctx context.Context, identifier string) (*models.CustomerDetail, error)
}

type service struct {
	repo Repository
}

// NewService builds the customer detail service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("customer repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ByIdentifier(ctx context.Context, identifier string) (*models.CustomerDetail, error) {
	trimmed := strings.TrimSpace(identifier)
	if trimmed == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "phone or email is required")
	}

	detail, err := s.repo.FindByIdentifier(ctx, trimmed)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no saved details for this customer")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "look up customer details")
	}
	return detail, nil
}
