package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/product_catalog/internal/config"
	"github.com/Skotchmaster/product_catalog/internal/db"
	"github.com/Skotchmaster/product_catalog/internal/models"
)

func newTestRepo(t *testing.T) *GormRepo {
	t.Helper()

	gdb, err := db.Open(context.Background(), config.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gdb) })

	return &GormRepo{DB: gdb}
}

func seedUser(t *testing.T, gdb *gorm.DB, username string) *models.User {
	t.Helper()
	u := &models.User{Username: username, PasswordHash: "hash"}
	require.NoError(t, gdb.Create(u).Error)
	return u
}

func seedProduct(t *testing.T, gdb *gorm.DB, owner uint, name string) *models.Product {
	t.Helper()
	p := &models.Product{Name: name, ImageLink: "http://img/" + name, Description: name + " description", Price: 9.5, UserID: owner}
	require.NoError(t, gdb.Create(p).Error)
	return p
}
