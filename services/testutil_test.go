package services

import (
	"testing"

	"littlelemon/entity"
	"littlelemon/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// one connection so every session sees the same in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&entity.User{},
		&entity.Category{}, &entity.MenuItem{},
		&entity.CartLine{},
		&entity.Order{}, &entity.OrderItem{},
	))
	return db
}

type fixture struct {
	db    *gorm.DB
	menu  *MenuService
	cart  *CartService
	order *OrderService
	group *GroupService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)

	userRepo := repository.NewUserRepository(db)
	catRepo := repository.NewCategoryRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	return &fixture{
		db:    db,
		menu:  NewMenuService(menuRepo, catRepo),
		cart:  NewCartService(db, cartRepo, menuRepo),
		order: NewOrderService(db, orderRepo, cartRepo, userRepo),
		group: NewGroupService(userRepo),
	}
}

func (f *fixture) seedUser(t *testing.T, email string, role entity.Role) *entity.User {
	t.Helper()
	u := &entity.User{Email: email, Password: "x", Role: role}
	require.NoError(t, f.db.Create(u).Error)
	return u
}

func (f *fixture) seedCategory(t *testing.T, slug string) *entity.Category {
	t.Helper()
	c := &entity.Category{Slug: slug, Title: slug}
	require.NoError(t, f.db.Create(c).Error)
	return c
}

func (f *fixture) seedMenuItem(t *testing.T, title, price string, catID uint) *entity.MenuItem {
	t.Helper()
	m := &entity.MenuItem{
		Title:      title,
		Price:      decimal.RequireFromString(price),
		CategoryID: catID,
	}
	require.NoError(t, f.db.Create(m).Error)
	return m
}

func (f *fixture) countOf(t *testing.T, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(model).Count(&n).Error)
	return n
}
