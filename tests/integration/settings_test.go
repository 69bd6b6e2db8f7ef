package integration

import (
	"context"
	"testing"

	"github.com/dimitrije/site-admin-api/internal/models"
	"github.com/dimitrije/site-admin-api/internal/services"
	"github.com/dimitrije/site-admin-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettings_Integration_OverrideWins(t *testing.T) {
	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	fixtures.SetSetting(t, "contact_phone", "+91 99999 11111")
	fixtures.SetSetting(t, "promo_code", "SPRING")

	resolver := services.NewSettingsResolver(services.NewSettingsStore(tdb.Lazy()), nil, nil)
	ctx := context.Background()

	assert.Equal(t, "+91 99999 11111", resolver.Get(ctx, "contact_phone"))
	assert.Equal(t, models.DefaultSetting("site_name"), resolver.Get(ctx, "site_name"))

	all := resolver.GetAll(ctx)
	assert.Equal(t, "+91 99999 11111", all["contact_phone"])
	assert.Equal(t, "SPRING", all["promo_code"])
	assert.Equal(t, models.DefaultSetting("hero_title"), all["hero_title"])
}

func TestSettings_Integration_PutUpserts(t *testing.T) {
	tdb := setupTest(t)
	store := services.NewSettingsStore(tdb.Lazy())
	resolver := services.NewSettingsResolver(store, nil, nil)
	ctx := context.Background()

	require.NoError(t, resolver.Put(ctx, map[string]string{"site_name": "First"}))
	require.NoError(t, resolver.Put(ctx, map[string]string{"site_name": "Second", "contact_phone": "+91 1"}))

	rows, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "contact_phone", rows[0].Key)
	assert.Equal(t, "Second", rows[1].Value)
	assert.False(t, rows[1].UpdatedAt.IsZero())
}

func TestSettings_Integration_StoreGoesAway(t *testing.T) {
	tdb := setupTest(t)
	resolver := services.NewSettingsResolver(services.NewSettingsStore(tdb.Lazy()), nil, nil)
	ctx := context.Background()

	tdb.DB.Pool.Close()

	assert.Equal(t, models.DefaultSettings(), resolver.GetAll(ctx))
	assert.Equal(t, "+91 80000 00000", resolver.Get(ctx, "contact_phone"))
}
