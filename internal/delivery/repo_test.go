package delivery

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ruchulu/storefront-backend/pkg/db/models"
)

func setupDeliveryTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	locations := `
CREATE TABLE delivery_locations (
  id TEXT PRIMARY KEY,
  city_name TEXT NOT NULL,
  state TEXT NOT NULL,
  charge TEXT NOT NULL,
  free_delivery_threshold TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	settings := `
CREATE TABLE free_delivery_settings (
  id INTEGER PRIMARY KEY,
  enabled INTEGER NOT NULL DEFAULT 0,
  threshold TEXT NOT NULL DEFAULT '0',
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(locations).Error)
	require.NoError(t, db.Exec(settings).Error)
	return db
}

func seedLocation(t *testing.T, db *gorm.DB, city, state string, charge int64, threshold *decimal.Decimal) {
	t.Helper()
	loc := models.DeliveryLocation{
		ID:                    uuid.New(),
		CityName:              city,
		State:                 state,
		Charge:                decimal.NewFromInt(charge),
		FreeDeliveryThreshold: threshold,
	}
	require.NoError(t, db.Create(&loc).Error)
}

func TestRepositoryFindByCityState(t *testing.T) {
	db := setupDeliveryTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	seedLocation(t, db, "Guntur", "Andhra Pradesh", 49, decPtr(500))
	seedLocation(t, db, "Guntur", "Telangana", 79, nil)

	loc, err := repo.FindByCityState(ctx, "GUNTUR", "Andhra Pradesh")
	require.NoError(t, err)
	assert.Equal(t, "Guntur", loc.CityName)
	assert.True(t, loc.Charge.Equal(decimal.NewFromInt(49)))
	require.NotNil(t, loc.FreeDeliveryThreshold)
	assert.True(t, loc.FreeDeliveryThreshold.Equal(decimal.NewFromInt(500)))

	loc, err = repo.FindByCityState(ctx, "guntur", "Telangana")
	require.NoError(t, err)
	assert.True(t, loc.Charge.Equal(decimal.NewFromInt(79)))
	assert.Nil(t, loc.FreeDeliveryThreshold)

	_, err = repo.FindByCityState(ctx, "Guntur", "Karnataka")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryListOrdersByStateThenCity(t *testing.T) {
	db := setupDeliveryTestDB(t)
	repo := NewRepository(db)

	seedLocation(t, db, "Vijayawada", "Andhra Pradesh", 59, nil)
	seedLocation(t, db, "Hyderabad", "Telangana", 89, nil)
	seedLocation(t, db, "Guntur", "Andhra Pradesh", 49, nil)

	locations, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, locations, 3)
	assert.Equal(t, "Guntur", locations[0].CityName)
	assert.Equal(t, "Vijayawada", locations[1].CityName)
	assert.Equal(t, "Hyderabad", locations[2].CityName)
}

func TestRepositoryFreeDeliverySetting(t *testing.T) {
	db := setupDeliveryTestDB(t)
	repo := NewRepository(db)

	require.NoError(t, db.Exec(`INSERT INTO free_delivery_settings (id, enabled, threshold) VALUES (1, 1, '750')`).Error)

	setting, err := repo.FreeDeliverySetting(context.Background())
	require.NoError(t, err)
	assert.True(t, setting.Enabled)
	assert.True(t, setting.Threshold.Equal(decimal.NewFromInt(750)))
}
