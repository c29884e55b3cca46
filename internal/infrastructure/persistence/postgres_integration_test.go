package persistence

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	mpg "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/baogia/backend/internal/domain/identity"
	"github.com/baogia/backend/internal/domain/quote"
	"github.com/baogia/backend/internal/domain/shared"
)

// startTestDB starts a throwaway PostgreSQL container, applies the
// versioned migrations and returns a connection. Requires Docker; run
// with -short to skip.
func startTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}

	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("baogia_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "failed to start PostgreSQL container")
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)

	driver, err := mpg.WithInstance(sqlDB, &mpg.Config{})
	require.NoError(t, err)
	m, err := migrate.NewWithDatabaseInstance("file://"+migrationsDir(t), "postgres", driver)
	require.NoError(t, err)
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		t.Fatalf("migrations failed: %v", err)
	}

	return db
}

// migrationsDir resolves the migrations directory relative to this file
func migrationsDir(t *testing.T) string {
	t.Helper()
	_, filename, _, ok := runtime.Caller(0)
	require.True(t, ok)
	dir := filepath.Join(filepath.Dir(filename), "..", "..", "..", "migrations")
	_, err := os.Stat(dir)
	require.NoError(t, err, "migrations directory not found")
	return dir
}

func TestPostgresQuoteLifecycle(t *testing.T) {
	db := startTestDB(t)
	ctx := context.Background()

	users := NewGormUserRepository(db)
	quotes := NewGormQuoteRepository(db)

	owner, err := identity.NewUser("an@xuonggo.vn", "Nguyễn Văn An", "matkhau123")
	require.NoError(t, err)
	require.NoError(t, users.Save(ctx, owner))

	q, err := quote.NewQuote(owner.ID, "Trần Thị Bình", time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	cabinet, err := quote.NewLineItem("Tủ bếp trên", decimal.NewFromInt(1), decimal.NewFromInt(2500000), quote.CalcTypeArea)
	require.NoError(t, err)
	cabinet.LengthMM = decimal.NewFromInt(2400)
	cabinet.HeightMM = decimal.NewFromInt(800)
	require.NoError(t, q.AddItem(*cabinet))

	stone, err := quote.NewLineItem("Mặt đá", decimal.NewFromInt(2), decimal.NewFromInt(1200000), quote.CalcTypeUnit)
	require.NoError(t, err)
	require.NoError(t, q.AddItem(*stone))

	deposit, err := quote.NewInstallment("Đặt cọc", quote.DiscountTypePercent, decimal.NewFromInt(30))
	require.NoError(t, err)
	require.NoError(t, q.AddInstallment(*deposit))

	require.NoError(t, quotes.Save(ctx, q))

	loaded, err := quotes.FindByIDForOwner(ctx, owner.ID, q.ID)
	require.NoError(t, err)
	assert.Equal(t, q.Number, loaded.Number)
	assert.Equal(t, "Trần Thị Bình", loaded.CustomerName)
	require.Len(t, loaded.Items, 2)
	require.Len(t, loaded.Installments, 1)
	assert.Equal(t, "Đặt cọc", loaded.Installments[0].Name)

	byNumber, err := quotes.FindByNumber(ctx, owner.ID, q.Number)
	require.NoError(t, err)
	assert.Equal(t, q.ID, byNumber.ID)

	// Removing a line and saving must not leave the row behind
	require.NoError(t, loaded.RemoveItem(loaded.Items[0].ID))
	require.NoError(t, quotes.Save(ctx, loaded))

	reloaded, err := quotes.FindByIDForOwner(ctx, owner.ID, q.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Items, 1)

	var orphans int64
	require.NoError(t, db.Model(&quote.LineItem{}).Where("quote_id = ?", q.ID).Count(&orphans).Error)
	assert.Equal(t, int64(1), orphans)

	// Another owner must not see the quote
	_, err = quotes.FindByIDForOwner(ctx, uuid.New(), q.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	require.NoError(t, quotes.Delete(ctx, q.ID))
	_, err = quotes.FindByIDForOwner(ctx, owner.ID, q.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestPostgresUserEmailLookup(t *testing.T) {
	db := startTestDB(t)
	ctx := context.Background()

	users := NewGormUserRepository(db)

	user, err := identity.NewUser("Binh@Example.com", "Trần Thị Bình", "matkhau123")
	require.NoError(t, err)
	require.NoError(t, users.Save(ctx, user))

	found, err := users.FindByEmail(ctx, "BINH@example.com")
	require.NoError(t, err)
	assert.Equal(t, "binh@example.com", found.Email)

	exists, err := users.ExistsByEmail(ctx, "binh@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = users.ExistsByEmail(ctx, "khong-ton-tai@example.com")
	require.NoError(t, err)
	assert.False(t, exists)
}
