package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/ruchulu/storefront-backend/pkg/errors"
	"github.com/ruchulu/storefront-backend/pkg/metrics"
	pkgredis "github.com/ruchulu/storefront-backend/pkg/redis"
)

// SnapshotStore is the persistence surface required by the cart service.
// pkg/redis.Client satisfies it.
type SnapshotStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CartKey(sessionID string) string
}

// Service exposes the session cart operations. Every mutation persists the
// full snapshot before returning.
type Service interface {
	Get(ctx context.Context, sessionID string) (*Cart, error)
	Add(ctx context.Context, sessionID string, line Line) (*Cart, error)
	UpdateQuantity(ctx context.Context, sessionID string, productID uuid.UUID, weightVariant string, quantity int) (*Cart, error)
	Remove(ctx context.Context, sessionID string, productID uuid.UUID, weightVariant string) (*Cart, error)
	Clear(ctx context.Context, sessionID string) error
}

type service struct {
	store   SnapshotStore
	ttl     time.Duration
	metrics *metrics.StorefrontMetrics
}

// NewService builds a cart service backed by the provided snapshot store.
func NewService(store SnapshotStore, ttl time.Duration, m *metrics.StorefrontMetrics) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("snapshot store required")
	}
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &service{store: store, ttl: ttl, metrics: m}, nil
}

// Get loads the session cart. A missing or unreadable snapshot yields an
// empty cart, never an error: a corrupt snapshot silently resets.
func (s *service) Get(ctx context.Context, sessionID string) (*Cart, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	return s.load(ctx, sessionID)
}

func (s *service) Add(ctx context.Context, sessionID string, line Line) (*Cart, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	if line.ProductID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if strings.TrimSpace(line.WeightVariant) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "weight variant is required")
	}
	if line.UnitPrice.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unit price must not be negative")
	}

	current, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	current.Add(line)
	if err := s.save(ctx, sessionID, current); err != nil {
		return nil, err
	}
	s.metrics.IncCartMutation("add")
	return current, nil
}

func (s *service) UpdateQuantity(ctx context.Context, sessionID string, productID uuid.UUID, weightVariant string, quantity int) (*Cart, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}

	current, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	current.UpdateQuantity(productID, weightVariant, quantity)
	if err := s.save(ctx, sessionID, current); err != nil {
		return nil, err
	}
	s.metrics.IncCartMutation("update_quantity")
	return current, nil
}

func (s *service) Remove(ctx context.Context, sessionID string, productID uuid.UUID, weightVariant string) (*Cart, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}

	current, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	current.Remove(productID, weightVariant)
	if err := s.save(ctx, sessionID, current); err != nil {
		return nil, err
	}
	s.metrics.IncCartMutation("remove")
	return current, nil
}

// Clear drops the session cart; used after a successful order placement.
func (s *service) Clear(ctx context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	if err := s.store.Del(ctx, s.store.CartKey(sessionID)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart snapshot")
	}
	s.metrics.IncCartMutation("clear")
	return nil
}

func (s *service) load(ctx context.Context, sessionID string) (*Cart, error) {
	raw, err := s.store.Get(ctx, s.store.CartKey(sessionID))
	if err != nil {
		if errors.Is(err, pkgredis.Nil) {
			return &Cart{}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart snapshot")
	}

	var cart Cart
	if err := json.Unmarshal([]byte(raw), &cart); err != nil {
		// Unreadable snapshot: reset to empty rather than failing the session.
		return &Cart{}, nil
	}
	return &cart, nil
}

func (s *service) save(ctx context.Context, sessionID string, cart *Cart) error {
	raw, err := json.Marshal(cart)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cart snapshot")
	}
	if err := s.store.Set(ctx, s.store.CartKey(sessionID), string(raw), s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist cart snapshot")
	}
	return nil
}
