package orders

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ruchulu/storefront-backend/internal/cart"
	"github.com/ruchulu/storefront-backend/internal/catalog"
	"github.com/ruchulu/storefront-backend/internal/checkout"
	"github.com/ruchulu/storefront-backend/internal/delivery"
	"github.com/ruchulu/storefront-backend/pkg/db/models"
	pkgerrors "github.com/ruchulu/storefront-backend/pkg/errors"
	"github.com/ruchulu/storefront-backend/pkg/metrics"
)

// Transactor runs a function inside a database transaction.
type Transactor interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// CustomerSaver persists the customer's contact/address for later prefill.
type CustomerSaver interface {
	Upsert(tx *gorm.DB, detail *models.CustomerDetail) error
}

// Service places and retrieves orders.
type Service interface {
	Place(ctx context.Context, sessionID string, form checkout.Form) (*models.Order, error)
	ByTrackingCode(ctx context.Context, code string) (*models.Order, error)
}

type service struct {
	repo      Repository
	tx        Transactor
	carts     cart.Service
	catalog   catalog.Service
	delivery  delivery.Service
	validator *checkout.Validator
	customers CustomerSaver
	met       *metrics.StorefrontMetrics
}

// NewService builds the order service.
func NewService(
	repo Repository,
	tx Transactor,
	carts cart.Service,
	catalogSvc catalog.Service,
	deliverySvc delivery.Service,
	validator *checkout.Validator,
	customers CustomerSaver,
	met *metrics.StorefrontMetrics,
) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transactor required")
	}
	if carts == nil {
		return nil, fmt.Errorf("cart service required")
	}
	if catalogSvc == nil {
		return nil, fmt.Errorf("catalog service required")
	}
	if deliverySvc == nil {
		return nil, fmt.Errorf("delivery service required")
	}
	if validator == nil {
		return nil, fmt.Errorf("checkout validator required")
	}
	return &service{
		repo:      repo,
		tx:        tx,
		carts:     carts,
		catalog:   catalogSvc,
		delivery:  deliverySvc,
		validator: validator,
		customers: customers,
		met:       met,
	}, nil
}

// Place validates the checkout form against the session cart, resolves the
// delivery charge, and persists the order with its items atomically. The cart
// is cleared only after the order committed.
func (s *service) Place(ctx context.Context, sessionID string, form checkout.Form) (*models.Order, error) {
	start := time.Now()

	if fieldErrs := s.validator.Validate(form); len(fieldErrs) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "checkout form is invalid").
			WithDetails(map[string]any{"fields": fieldErrs})
	}

	sessionCart, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(sessionCart.Lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	ids := make([]uuid.UUID, 0, len(sessionCart.Lines))
	for _, line := range sessionCart.Lines {
		ids = append(ids, line.ProductID)
	}
	products, err := s.catalog.ByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byKey := make(map[string]models.Product, len(products))
	for id, product := range products {
		byKey[id.String()] = product
	}
	if err := s.validator.CheckAvailability(sessionCart.Lines, byKey, form.EffectiveCity()); err != nil {
		return nil, err
	}

	selection, err := s.delivery.SelectCity(ctx, form.City, form.State)
	if err != nil {
		return nil, err
	}
	quote, err := s.delivery.Charge(ctx, selection, sessionCart.Subtotal())
	if err != nil {
		return nil, err
	}

	order := checkout.BuildOrder(form, sessionCart, quote)
	order.TrackingCode = newTrackingCode()

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.Create(tx, order); err != nil {
			return err
		}
		if s.customers != nil {
			return s.customers.Upsert(tx, customerDetailFrom(form))
		}
		return nil
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist order")
	}

	// Best effort: a failed cart clear leaves a stale snapshot that expires
	// with the session TTL, the placed order is unaffected.
	_ = s.carts.Clear(ctx, sessionID)

	s.met.IncOrderPlaced(order.PaymentMethod, order.IsCustomCity)
	s.met.ObserveOrderLatency(order.PaymentMethod, time.Since(start))

	return order, nil
}

func (s *service) ByTrackingCode(ctx context.Context, code string) (*models.Order, error) {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tracking code is required")
	}

	order, err := s.repo.FindByTrackingCode(ctx, trimmed)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}

func customerDetailFrom(form checkout.Form) *models.CustomerDetail {
	return &models.CustomerDetail{
		Name:     strings.TrimSpace(form.Name),
		Email:    strings.TrimSpace(form.Email),
		Phone:    strings.TrimSpace(form.Phone),
		DoorNo:   strings.TrimSpace(form.DoorNo),
		Building: strings.TrimSpace(form.Building),
		Street:   strings.TrimSpace(form.Street),
		City:     form.EffectiveCity(),
		State:    strings.TrimSpace(form.State),
		Pincode:  strings.TrimSpace(form.Pincode),
	}
}

// trackingCodeAlphabet omits easily confused characters (0/O, 1/I/L).
const trackingCodeAlphabet = "23456789ABCDEFGHJKMNPQRSTUVWXYZ"

func newTrackingCode() string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		// rand.Read failing means the platform entropy source is broken;
		// fall back to a UUID-derived suffix rather than aborting checkout.
		return "RU-" + strings.ToUpper(uuid.NewString()[:8])
	}
	for i, b := range buf {
		buf[i] = trackingCodeAlphabet[int(b)%len(trackingCodeAlphabet)]
	}
	return "RU-" + string(buf)
}
