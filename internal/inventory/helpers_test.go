package inventory

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"delights/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:inventory-%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})
	if err := db.AutoMigrate(
		&models.Category{},
		&models.Ingredient{},
		&models.MenuItem{},
		&models.Recipe{},
		&models.Purchase{},
		&models.Basket{},
		&models.OrderNumber{},
		&models.Order{},
	); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}
	return db
}

func d(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func seedIngredient(t *testing.T, db *gorm.DB, name, quantity, unitPrice string) models.Ingredient {
	t.Helper()
	ingredient := models.Ingredient{
		Name:      name,
		Quantity:  d(quantity),
		Unit:      "unit",
		UnitPrice: d(unitPrice),
		Threshold: d("0"),
		ReOrder:   d("0"),
	}
	if err := db.Create(&ingredient).Error; err != nil {
		t.Fatalf("failed to create ingredient %s: %v", name, err)
	}
	return ingredient
}

func seedMenuItem(t *testing.T, db *gorm.DB, title, price string, stockItem bool) models.MenuItem {
	t.Helper()
	item := models.MenuItem{Title: title, Price: d(price), Display: true, StockItem: stockItem}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("failed to create menu item %s: %v", title, err)
	}
	return item
}

func seedRecipe(t *testing.T, db *gorm.DB, item models.MenuItem, ingredient models.Ingredient, quantity string) models.Recipe {
	t.Helper()
	recipe := models.Recipe{MenuItemID: item.ID, IngredientID: ingredient.ID, Quantity: d(quantity)}
	if err := db.Create(&recipe).Error; err != nil {
		t.Fatalf("failed to create recipe row: %v", err)
	}
	return recipe
}

func stockOf(t *testing.T, db *gorm.DB, id uint) decimal.Decimal {
	t.Helper()
	var ingredient models.Ingredient
	if err := db.First(&ingredient, id).Error; err != nil {
		t.Fatalf("failed to reload ingredient %d: %v", id, err)
	}
	return ingredient.Quantity
}

func kanbanOf(t *testing.T, db *gorm.DB, id uint) bool {
	t.Helper()
	var ingredient models.Ingredient
	if err := db.First(&ingredient, id).Error; err != nil {
		t.Fatalf("failed to reload ingredient %d: %v", id, err)
	}
	return ingredient.Kanban
}

func assertStock(t *testing.T, db *gorm.DB, id uint, want string) {
	t.Helper()
	if got := stockOf(t, db, id); !got.Equal(d(want)) {
		t.Fatalf("ingredient %d stock = %s, want %s", id, got, want)
	}
}

// pancakes seeds the flour and egg example: two flour and one egg per dish.
func pancakes(t *testing.T, db *gorm.DB) (models.MenuItem, models.Ingredient, models.Ingredient) {
	t.Helper()
	flour := seedIngredient(t, db, "flour", "10", "0.50")
	egg := seedIngredient(t, db, "egg", "3", "0.25")
	item := seedMenuItem(t, db, "pancakes", "6.00", true)
	seedRecipe(t, db, item, flour, "2")
	seedRecipe(t, db, item, egg, "1")
	return item, flour, egg
}

var bg = context.Background()
