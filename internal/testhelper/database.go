// Package testhelper provides in-memory backends and fixtures for package tests.
package testhelper

import (
	"io"
	"testing"
	"time"

	"dawrni-api/internal/domain/entity"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB opens a private in-memory SQLite database with every table migrated.
// The pool is capped at one connection so all queries see the same database.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to open test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	err = db.AutoMigrate(
		&entity.User{},
		&entity.Category{},
		&entity.Company{},
		&entity.CompanyPhoto{},
		&entity.Client{},
		&entity.Favorite{},
		&entity.Appointment{},
		&entity.AuditLog{},
	)
	require.NoError(t, err, "failed to migrate test database")

	return db
}

// NewTestRedis starts a miniredis server that is stopped when the test ends.
func NewTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

// NewLogger returns a logger that discards output.
func NewLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func CreateUser(t *testing.T, db *gorm.DB, role entity.Role) *entity.User {
	t.Helper()

	user := &entity.User{
		Email:    uuid.NewString() + "@example.com",
		Password: "hashed",
		Role:     role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func CreateCategory(t *testing.T, db *gorm.DB, name string) *entity.Category {
	t.Helper()

	category := &entity.Category{Name: name}
	require.NoError(t, db.Create(category).Error)
	return category
}

// CreateCompany stores a company owned by a new company user. mutate, if not nil,
// adjusts the profile before it is saved.
func CreateCompany(t *testing.T, db *gorm.DB, mutate func(*entity.Company)) *entity.Company {
	t.Helper()

	user := CreateUser(t, db, entity.RoleCompany)
	company := &entity.Company{
		UserID:    user.ID,
		NameEn:    "Acme",
		NameAr:    "أكمي",
		AddressEn: "1 Main St",
		AddressAr: "١ الشارع الرئيسي",
		AboutEn:   "We fix things",
		AboutAr:   "نصلح الأشياء",
	}
	if mutate != nil {
		mutate(company)
	}
	require.NoError(t, db.Omit("User", "Category", "Photos").Create(company).Error)
	company.User = *user
	return company
}

func CreateClient(t *testing.T, db *gorm.DB) *entity.Client {
	t.Helper()

	user := CreateUser(t, db, entity.RoleClient)
	client := &entity.Client{
		UserID: user.ID,
		NameEn: "Sara",
		NameAr: "سارة",
		Email:  user.Email,
	}
	require.NoError(t, db.Omit("User").Create(client).Error)
	client.User = *user
	return client
}

func CreateAppointment(t *testing.T, db *gorm.DB, client *entity.Client, company *entity.Company, date, clock string, status entity.AppointmentStatus) *entity.Appointment {
	t.Helper()

	d, err := time.Parse(entity.AppointmentDateLayout, date)
	require.NoError(t, err)

	appointment := &entity.Appointment{
		ClientID:  client.ID,
		CompanyID: company.ID,
		Date:      d,
		Time:      clock,
		Status:    status,
	}
	require.NoError(t, db.Omit("Client", "Company").Create(appointment).Error)
	return appointment
}
