package database

import (
	"context"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"

	"github.com/dumeirei/hotel-booking-backend/internal/common/config"
	"github.com/dumeirei/hotel-booking-backend/internal/models"
)

func openMemory(t *testing.T) *gorm.DB {
	conn, err := Open(&config.DatabaseConfig{Driver: DriverSQLite, Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return conn
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(&config.DatabaseConfig{Driver: "mysql"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}

func TestOpen_SQLite(t *testing.T) {
	conn := openMemory(t)
	assert.False(t, IsPostgres(conn))
	assert.False(t, IsPostgres(nil))
	assert.NoError(t, Ping(context.Background(), conn))

	sqlDB, err := conn.DB()
	require.NoError(t, err)
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
}

func TestPing_Nil(t *testing.T) {
	assert.Error(t, Ping(context.Background(), nil))
}

func TestMigrate_Idempotent(t *testing.T) {
	conn := openMemory(t)
	ctx := context.Background()

	require.NoError(t, Migrate(ctx, conn))
	require.NoError(t, Migrate(ctx, conn))

	var statuses []models.BookingStatus
	require.NoError(t, conn.Order("sort").Find(&statuses).Error)
	require.Len(t, statuses, len(models.BookingStatusCodes))
	assert.Equal(t, models.BookingStatusPending, statuses[0].Code)

	for _, m := range Models() {
		assert.True(t, conn.Migrator().HasTable(m))
	}
}

func TestSeedBookingStatuses_KeepsEditedRows(t *testing.T) {
	conn := openMemory(t)
	ctx := context.Background()
	require.NoError(t, Migrate(ctx, conn))

	require.NoError(t, conn.Model(&models.BookingStatus{}).
		Where("code = ?", models.BookingStatusPending).
		Update("name", "Pending").Error)
	require.NoError(t, SeedBookingStatuses(conn))

	var row models.BookingStatus
	require.NoError(t, conn.First(&row, "code = ?", models.BookingStatusPending).Error)
	assert.Equal(t, "Pending", row.Name)
}

func TestGormLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	cfg := &config.DatabaseConfig{LogMode: false, SlowThreshold: 200}
	gl := newGormLogger(zap.New(core), cfg)

	gl.Info(context.Background(), "migrated %d tables", 4)
	assert.Equal(t, 0, logs.Len(), "log_mode 关闭时不输出 Info")

	gl.Warn(context.Background(), "slow %s", "query")
	require.Equal(t, 1, logs.Len())
	assert.Contains(t, logs.All()[0].Message, "slow query")

	cfg.LogMode = true
	newGormLogger(zap.New(core), cfg).Info(context.Background(), "migrated %d tables", 4)
	assert.Equal(t, 2, logs.Len())
}

func TestPgErrorClassification(t *testing.T) {
	wrap := func(code string) error {
		return fmt.Errorf("insert booking: %w", &pgconn.PgError{Code: code})
	}

	assert.True(t, IsExclusionViolation(wrap("23P01")))
	assert.True(t, IsUniqueViolation(wrap("23505")))
	assert.True(t, IsSerializationFailure(wrap("40001")))
	assert.True(t, IsSerializationFailure(wrap("40P01")))
	assert.True(t, IsNumericOverflow(wrap("22003")))

	assert.False(t, IsExclusionViolation(wrap("23505")))
	assert.False(t, IsSerializationFailure(fmt.Errorf("plain")))
	assert.False(t, IsUniqueViolation(nil))
	assert.False(t, IsNumericOverflow(wrap("23505")))
}
