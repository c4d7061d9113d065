package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/s/coursehub/internal/models"
)

func TestSeedIdempotent(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, AutoMigrate(db))

	require.NoError(t, Seed(db))

	var usersFirst, coursesFirst, couponsFirst int64
	require.NoError(t, db.Model(&models.User{}).Count(&usersFirst).Error)
	require.NoError(t, db.Model(&models.Course{}).Count(&coursesFirst).Error)
	require.NoError(t, db.Model(&models.Coupon{}).Count(&couponsFirst).Error)
	assert.NotZero(t, usersFirst)
	assert.NotZero(t, coursesFirst)

	// Повторный прогон ничего не дублирует.
	require.NoError(t, Seed(db))

	var users, courses, coupons int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	require.NoError(t, db.Model(&models.Course{}).Count(&courses).Error)
	require.NoError(t, db.Model(&models.Coupon{}).Count(&coupons).Error)
	assert.Equal(t, usersFirst, users)
	assert.Equal(t, coursesFirst, courses)
	assert.Equal(t, couponsFirst, coupons)

	var admin models.User
	require.NoError(t, db.Where("email = ?", "admin@example.com").First(&admin).Error)
	assert.Equal(t, models.RoleAdmin, admin.Role)
}
