//go:build integration
// +build integration

// To enable gopls support for this file, add the following to your VSCode settings.json:
// "gopls": {
//   "buildFlags": ["-tags=integration"]
// }

package postgres

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/orderops/shipsplit/internal/domains/inventory/domain"
	"github.com/orderops/shipsplit/internal/platform/migrations"
)

func setupPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("shipsplit_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = migrations.Run(db)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func TestPostgresStore_ReserveDecrements(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	store := NewStore(db)
	ctx := context.Background()

	require.NoError(t, store.ReplaceAll(ctx, []domain.Record{{SKU: "DRA-100", Available: 5}}))

	reserved, err := store.Reserve(ctx, "DRA-100", 3)
	require.NoError(t, err)
	assert.True(t, reserved)

	reserved, err = store.Reserve(ctx, "DRA-100", 3)
	require.NoError(t, err)
	assert.False(t, reserved)

	records, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 2, records[0].Available)
}

func TestPostgresStore_ReserveUnknownSKU(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	store := NewStore(db)
	reserved, err := store.Reserve(context.Background(), "NOPE", 1)
	require.NoError(t, err)
	assert.False(t, reserved)
}

func TestPostgresStore_ReserveNeverGoesNegative(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	store := NewStore(db)
	ctx := context.Background()
	require.NoError(t, store.ReplaceAll(ctx, []domain.Record{{SKU: "DRT-1", Available: 10}}))

	var wg sync.WaitGroup
	granted := make(chan bool, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := store.Reserve(ctx, "DRT-1", 1)
			assert.NoError(t, err)
			granted <- ok
		}()
	}
	wg.Wait()
	close(granted)

	successes := 0
	for ok := range granted {
		if ok {
			successes++
		}
	}
	assert.Equal(t, 10, successes)

	records, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, records[0].Available)
}

func TestPostgresStore_ReplaceAllSwapsTable(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	store := NewStore(db)
	ctx := context.Background()

	require.NoError(t, store.ReplaceAll(ctx, []domain.Record{
		{SKU: "OLD-1", Available: 3},
		{SKU: "OLD-2", Available: 4},
	}))
	require.NoError(t, store.ReplaceAll(ctx, []domain.Record{
		{SKU: "NEW-1", Name: "Band Tee", Available: 12, Location: "A1-03"},
	}))

	records, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "NEW-1", records[0].SKU)
	assert.Equal(t, "Band Tee", records[0].Name)
	assert.Equal(t, "A1-03", records[0].Location)
}

func TestPostgresStore_ReplaceAllRejectsInvalid(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	store := NewStore(db)
	err := store.ReplaceAll(context.Background(), []domain.Record{{SKU: "", Available: 1}})
	assert.ErrorIs(t, err, domain.ErrMissingSKU)
}
