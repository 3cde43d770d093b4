package mock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	appdb "delights/internal/db"
	"delights/internal/inventory"
	applog "delights/internal/log"
	"delights/models"
)

// DemoPassword is the password of the seeded demo account.
const DemoPassword = "kitchen"

// New returns an in-memory sqlite database seeded with a small diner menu.
func New(ctx context.Context) (*gorm.DB, error) {
	applog.Debug(ctx, "initialising mock database")

	dsn := fmt.Sprintf("file:delights-mock-%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), appdb.GormConfig(logger.Silent))
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// Shared-cache memory databases vanish with their last connection.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(0)

	if err := appdb.AutoMigrate(db); err != nil {
		return nil, err
	}

	if err := seed(ctx, db); err != nil {
		return nil, err
	}

	applog.Debug(ctx, "mock database ready")
	return db, nil
}

type ingredientSeed struct {
	name      string
	quantity  string
	unit      string
	unitPrice string
	threshold string
	reOrder   string
}

type dishSeed struct {
	title     string
	price     string
	category  string
	stockItem bool
	recipe    map[string]string
}

func seed(ctx context.Context, db *gorm.DB) error {
	applog.Debug(ctx, "seeding mock database")

	password, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &models.User{
		Name:         "Sam Line",
		Email:        "sam@delights.app",
		PasswordHash: string(password),
	}
	if err := db.WithContext(ctx).Create(user).Error; err != nil {
		return err
	}

	categories := make(map[string]uint)
	for _, name := range []string{"Breakfast", "Drinks"} {
		category, err := inventory.CreateCategory(ctx, db, name)
		if err != nil {
			return err
		}
		categories[name] = category.ID
	}

	ingredients := []ingredientSeed{
		{"flour", "10", "kg", "0.50", "2", "10"},
		{"egg", "24", "each", "0.25", "6", "30"},
		{"milk", "8", "l", "0.80", "2", "6"},
		{"butter", "1.5", "kg", "6.40", "0.5", "2"},
		{"coffee beans", "2", "kg", "12.00", "0.5", "3"},
		{"saffron", "0.01", "kg", "3000", "0", "0"},
	}
	ingredientIDs := make(map[string]uint, len(ingredients))
	for _, in := range ingredients {
		created, err := inventory.CreateIngredient(ctx, db, inventory.IngredientInput{
			Name:      in.name,
			Quantity:  decimal.RequireFromString(in.quantity),
			Unit:      in.unit,
			UnitPrice: decimal.RequireFromString(in.unitPrice),
			Threshold: decimal.RequireFromString(in.threshold),
			ReOrder:   decimal.RequireFromString(in.reOrder),
		})
		if err != nil {
			return err
		}
		ingredientIDs[in.name] = created.ID
	}

	dishes := []dishSeed{
		{"Pancakes", "6.00", "Breakfast", true, map[string]string{"flour": "0.2", "egg": "2", "milk": "0.25", "butter": "0.02"}},
		{"Omelette", "7.50", "Breakfast", true, map[string]string{"egg": "3", "butter": "0.01"}},
		{"Latte", "3.20", "Drinks", false, map[string]string{"coffee beans": "0.018", "milk": "0.2"}},
	}
	menuItemIDs := make(map[string]uint, len(dishes))
	for _, dish := range dishes {
		categoryID := categories[dish.category]
		item, err := inventory.CreateMenuItem(ctx, db, inventory.MenuItemInput{
			Title:      dish.title,
			Price:      decimal.RequireFromString(dish.price),
			CategoryID: &categoryID,
			Display:    true,
			StockItem:  dish.stockItem,
		})
		if err != nil {
			return err
		}
		for name, quantity := range dish.recipe {
			if _, err := inventory.AddRecipe(ctx, db, inventory.RecipeInput{
				MenuItemID:   item.ID,
				IngredientID: ingredientIDs[name],
				Quantity:     decimal.RequireFromString(quantity),
			}); err != nil {
				return err
			}
		}
		menuItemIDs[dish.title] = item.ID
	}

	opened := time.Now().UTC().Truncate(time.Hour).Add(-48 * time.Hour)
	sales := []struct {
		title    string
		quantity int64
		offset   time.Duration
	}{
		{"Pancakes", 4, 2 * time.Hour},
		{"Omelette", 2, 3 * time.Hour},
		{"Pancakes", 3, 26 * time.Hour},
		{"Latte", 5, 27 * time.Hour},
	}
	for _, sale := range sales {
		if _, err := inventory.CreatePurchase(ctx, db, inventory.PurchaseInput{
			MenuItemID: menuItemIDs[sale.title],
			Quantity:   sale.quantity,
			Timestamp:  opened.Add(sale.offset),
		}); err != nil {
			return err
		}
	}

	applog.Debug(ctx, "mock database seeded")
	return nil
}
