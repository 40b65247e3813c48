package postgres

import (
	"testing"
	"time"

	"ozeanLicht/domain"
	"ozeanLicht/pkg/database"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a migrated in-memory SQLite database that is closed when the test ends.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err, "Failed to open sqlite")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)

	t.Cleanup(func() {
		_ = database.Close(db)
	})

	require.NoError(t, database.AutoMigrate(db), "Failed to migrate schema")

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) domain.User {
	t.Helper()

	user := domain.User{Email: email, FullName: "Test User", Role: domain.RoleCustomer}
	require.NoError(t, db.Create(&user).Error)

	return user
}

func createTestOrder(t *testing.T, db *gorm.DB, externalID, email string, userID *string) domain.Order {
	t.Helper()

	order := domain.Order{
		ExternalOrderID: externalID,
		Email:           email,
		UserID:          userID,
		CourseID:        1,
		Status:          domain.OrderStatusPaid,
		Amount:          99,
		Currency:        "EUR",
	}
	require.NoError(t, db.Create(&order).Error)

	return order
}

func createTestCourse(t *testing.T, db *gorm.DB, slug, title, category string, published bool) domain.Course {
	t.Helper()

	course := domain.Course{Slug: slug, Title: title, Category: category, IsPublished: published, Currency: "EUR"}
	require.NoError(t, db.Create(&course).Error)
	// keep created_at ordering deterministic
	time.Sleep(2 * time.Millisecond)

	return course
}

func strPtr(s string) *string {
	return &s
}
