package cart

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	pkgerrors "github.com/ruchulu/storefront-backend/pkg/errors"
	pkgredis "github.com/ruchulu/storefront-backend/pkg/redis"
)

type stubStore struct {
	values map[string]string
}

func newStubStore() *stubStore {
	return &stubStore{values: map[string]string{}}
}

func (s *stubStore) Get(_ context.Context, key string) (string, error) {
	if val, ok := s.values[key]; ok {
		return val, nil
	}
	return "", pkgredis.Nil
}

func (s *stubStore) Set(_ context.Context, key string, value any, _ time.Duration) error {
	s.values[key] = value.(string)
	return nil
}

func (s *stubStore) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(s.values, key)
	}
	return nil
}

func (s *stubStore) CartKey(sessionID string) string {
	return "test:cart:" + sessionID
}

func newTestService(t *testing.T) (Service, *stubStore) {
	t.Helper()
	store := newStubStore()
	svc, err := NewService(store, time.Hour, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, store
}

func sampleLine(productID uuid.UUID, weight string, price int64) Line {
	return Line{
		ProductID:     productID,
		Name:          "Avakaya Pickle",
		WeightVariant: weight,
		UnitPrice:     decimal.NewFromInt(price),
	}
}

func TestAddMergesSameProductVariant(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	productID := uuid.New()

	for i := 0; i < 3; i++ {
		if _, err := svc.Add(ctx, "sess", sampleLine(productID, "¼ kg", 120)); err != nil {
			t.Fatalf("add %d: %v", i, err)
		}
	}

	cart, err := svc.Get(ctx, "sess")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(cart.Lines) != 1 {
		t.Fatalf("expected one merged line, got %d", len(cart.Lines))
	}
	if cart.Lines[0].Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", cart.Lines[0].Quantity)
	}
}

func TestAddDifferentVariantsKeepSeparateLines(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	productID := uuid.New()

	if _, err := svc.Add(ctx, "sess", sampleLine(productID, "¼ kg", 120)); err != nil {
		t.Fatalf("add quarter: %v", err)
	}
	if _, err := svc.Add(ctx, "sess", sampleLine(productID, "1 kg", 400)); err != nil {
		t.Fatalf("add kilo: %v", err)
	}

	cart, err := svc.Get(ctx, "sess")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(cart.Lines) != 2 {
		t.Fatalf("expected separate lines per variant, got %d", len(cart.Lines))
	}
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	productID := uuid.New()

	if _, err := svc.Add(ctx, "sess", sampleLine(productID, "½ kg", 220)); err != nil {
		t.Fatalf("add: %v", err)
	}

	cart, err := svc.UpdateQuantity(ctx, "sess", productID, "½ kg", 0)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(cart.Lines) != 0 {
		t.Fatalf("expected empty cart after zero quantity, got %d lines", len(cart.Lines))
	}
}

func TestUpdateQuantityReplacesNotIncrements(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	productID := uuid.New()

	if _, err := svc.Add(ctx, "sess", sampleLine(productID, "½ kg", 220)); err != nil {
		t.Fatalf("add: %v", err)
	}

	cart, err := svc.UpdateQuantity(ctx, "sess", productID, "½ kg", 5)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if cart.Lines[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", cart.Lines[0].Quantity)
	}
}

func TestRemoveMissingLineIsNoop(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	cart, err := svc.Remove(ctx, "sess", uuid.New(), "¼ kg")
	if err != nil {
		t.Fatalf("remove should not fail on missing line: %v", err)
	}
	if len(cart.Lines) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(cart.Lines))
	}
}

func TestSubtotalAndCount(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	first := uuid.New()
	second := uuid.New()

	if _, err := svc.Add(ctx, "sess", sampleLine(first, "¼ kg", 120)); err != nil {
		t.Fatalf("add first: %v", err)
	}
	if _, err := svc.Add(ctx, "sess", sampleLine(first, "¼ kg", 120)); err != nil {
		t.Fatalf("add first again: %v", err)
	}
	if _, err := svc.Add(ctx, "sess", sampleLine(second, "1 kg", 400)); err != nil {
		t.Fatalf("add second: %v", err)
	}

	cart, err := svc.Get(ctx, "sess")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got := cart.Subtotal(); !got.Equal(decimal.NewFromInt(640)) {
		t.Fatalf("expected subtotal 640, got %s", got)
	}
	if got := cart.Count(); got != 3 {
		t.Fatalf("expected count 3, got %d", got)
	}
}

func TestClearEmptiesCart(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Add(ctx, "sess", sampleLine(uuid.New(), "¼ kg", 120)); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := svc.Clear(ctx, "sess"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if len(store.values) != 0 {
		t.Fatalf("expected snapshot removed, got %v", store.values)
	}

	cart, err := svc.Get(ctx, "sess")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !cart.Subtotal().IsZero() {
		t.Fatalf("expected zero subtotal after clear, got %s", cart.Subtotal())
	}
}

func TestCorruptSnapshotResetsSilently(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	store.values[store.CartKey("sess")] = "{not json"

	cart, err := svc.Get(ctx, "sess")
	if err != nil {
		t.Fatalf("corrupt snapshot should not surface an error: %v", err)
	}
	if len(cart.Lines) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(cart.Lines))
	}
}

func TestAddValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, "sess", Line{WeightVariant: "¼ kg"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for nil product id, got %v", err)
	}

	_, err = svc.Add(ctx, "sess", Line{ProductID: uuid.New()})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for blank variant, got %v", err)
	}

	_, err = svc.Add(ctx, "", sampleLine(uuid.New(), "¼ kg", 10))
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for blank session, got %v", err)
	}
}
