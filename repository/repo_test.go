package repository

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestDB opens a per-test in-memory sqlite database. The named
// shared-cache DSN keeps gorm's connection pool on one database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	// sqlite allows one writer; serializing the pool avoids spurious
	// SQLITE_BUSY failures in concurrent tests
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, Migrate(db))
	return db
}

func seedBook(t *testing.T, db *gorm.DB, book Book) Book {
	t.Helper()
	require.NoError(t, db.Create(&book).Error)
	return book
}

func seedUser(t *testing.T, db *gorm.DB, username string) User {
	t.Helper()
	user := User{
		Username: username,
		Email:    username + "@example.com",
		Password: "x",
		Role:     "user",
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}
