package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	applog "delights/internal/log"
	"delights/models"
)

// MenuItemInput carries the editable fields of a menu item.
type MenuItemInput struct {
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  *uint           `json:"category_id"`
	Display     bool            `json:"display"`
	Description string          `json:"description"`
	StockItem   bool            `json:"stock_item"`
}

func (in MenuItemInput) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("title is required: %w", ErrInvalidInput)
	}
	if in.Price.IsNegative() {
		return fmt.Errorf("price must not be negative: %w", ErrInvalidInput)
	}
	return nil
}

func menuItemQuery(tx *gorm.DB) *gorm.DB {
	return tx.Preload("Category").
		Preload("Recipes", func(db *gorm.DB) *gorm.DB {
			return db.Order("recipes.id asc")
		}).
		Preload("Recipes.Ingredient")
}

// ListMenuItems returns every menu item with its recipe and ingredients loaded.
func ListMenuItems(ctx context.Context, db *gorm.DB) ([]models.MenuItem, error) {
	if db == nil {
		return nil, gorm.ErrInvalidDB
	}
	var items []models.MenuItem
	if err := menuItemQuery(db.WithContext(ctx)).Order("title asc").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	return items, nil
}

// StockedMenuItems returns the menu items that draw from tracked stock.
func StockedMenuItems(ctx context.Context, db *gorm.DB) ([]models.MenuItem, error) {
	items, err := ListMenuItems(ctx, db)
	if err != nil {
		return nil, err
	}
	stocked := make([]models.MenuItem, 0, len(items))
	for _, item := range items {
		if item.StockItem {
			stocked = append(stocked, item)
		}
	}
	return stocked, nil
}

// GetMenuItem loads one menu item with its recipe and ingredients.
func GetMenuItem(ctx context.Context, db *gorm.DB, id uint) (*models.MenuItem, error) {
	if db == nil {
		return nil, gorm.ErrInvalidDB
	}
	return loadMenuItem(menuItemQuery(db.WithContext(ctx)), id)
}

func loadMenuItem(tx *gorm.DB, id uint) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := tx.First(&item, id).Error; err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

func ensureUniqueTitle(tx *gorm.DB, title string, exceptID uint) error {
	var count int64
	if err := tx.Model(&models.MenuItem{}).
		Where("lower(title) = ? AND id <> ?", strings.ToLower(title), exceptID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("menu item %q: %w", title, ErrDuplicate)
	}
	return nil
}

// CreateMenuItem stores a new menu item.
func CreateMenuItem(ctx context.Context, db *gorm.DB, in MenuItemInput) (*models.MenuItem, error) {
	if db == nil {
		return nil, gorm.ErrInvalidDB
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	title := strings.TrimSpace(in.Title)

	var created models.MenuItem
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureUniqueTitle(tx, title, 0); err != nil {
			return err
		}
		created = models.MenuItem{
			Title:       title,
			Price:       in.Price,
			CategoryID:  in.CategoryID,
			Display:     in.Display,
			Description: strings.TrimSpace(in.Description),
			StockItem:   in.StockItem,
		}
		if err := tx.Create(&created).Error; err != nil {
			return fmt.Errorf("create menu item: %w", err)
		}
		return propagateKanban(ctx, tx, created.ID, created.StockItem)
	})
	if err != nil {
		return nil, err
	}
	return GetMenuItem(ctx, db, created.ID)
}

// UpdateMenuItem saves the editable fields and re-derives the kanban flags
// of the linked ingredients.
func UpdateMenuItem(ctx context.Context, db *gorm.DB, id uint, in MenuItemInput) (*models.MenuItem, error) {
	if db == nil {
		return nil, gorm.ErrInvalidDB
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	title := strings.TrimSpace(in.Title)

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := loadMenuItem(tx, id)
		if err != nil {
			return err
		}
		if err := ensureUniqueTitle(tx, title, id); err != nil {
			return err
		}
		updates := map[string]any{
			"title":       title,
			"price":       in.Price,
			"category_id": in.CategoryID,
			"display":     in.Display,
			"description": strings.TrimSpace(in.Description),
			"stock_item":  in.StockItem,
		}
		if err := tx.Model(existing).Updates(updates).Error; err != nil {
			return fmt.Errorf("update menu item %d: %w", id, err)
		}
		return propagateKanban(ctx, tx, id, in.StockItem)
	})
	if err != nil {
		return nil, err
	}
	return GetMenuItem(ctx, db, id)
}

// propagateKanban forces kanban on for every ingredient of a stocked menu
// item. For a non-stocked item it clears kanban only on ingredients that
// appear in no other recipe.
func propagateKanban(ctx context.Context, tx *gorm.DB, menuItemID uint, stockItem bool) error {
	var ingredientIDs []uint
	if err := tx.Model(&models.Recipe{}).
		Where("menu_item_id = ?", menuItemID).
		Pluck("ingredient_id", &ingredientIDs).Error; err != nil {
		return fmt.Errorf("load recipe ingredients: %w", err)
	}
	if len(ingredientIDs) == 0 {
		return nil
	}

	if stockItem {
		applog.Debug(ctx, "raising kanban for stocked menu item", "menuItemID", menuItemID, "ingredients", len(ingredientIDs))
		if err := tx.Model(&models.Ingredient{}).
			Where("id IN ?", ingredientIDs).
			Update("kanban", true).Error; err != nil {
			return fmt.Errorf("raise kanban: %w", err)
		}
		return nil
	}

	for _, ingredientID := range ingredientIDs {
		var uses int64
		if err := tx.Model(&models.Recipe{}).Where("ingredient_id = ?", ingredientID).Count(&uses).Error; err != nil {
			return fmt.Errorf("count recipes for ingredient %d: %w", ingredientID, err)
		}
		if uses != 1 {
			continue
		}
		applog.Debug(ctx, "clearing kanban on unshared ingredient", "menuItemID", menuItemID, "ingredientID", ingredientID)
		if err := tx.Model(&models.Ingredient{}).
			Where("id = ?", ingredientID).
			Update("kanban", false).Error; err != nil {
			return fmt.Errorf("clear kanban for ingredient %d: %w", ingredientID, err)
		}
	}
	return nil
}

// DeleteMenuItem removes the menu item and its recipe. Purchases keep their
// title snapshot and lose the reference.
func DeleteMenuItem(ctx context.Context, db *gorm.DB, id uint) error {
	if db == nil {
		return gorm.ErrInvalidDB
	}
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := loadMenuItem(tx, id); err != nil {
			return err
		}
		if err := tx.Model(&models.Purchase{}).
			Where("menu_item_id = ?", id).
			Update("menu_item_id", nil).Error; err != nil {
			return fmt.Errorf("detach purchases: %w", err)
		}
		if err := tx.Unscoped().Where("menu_item_id = ?", id).Delete(&models.Recipe{}).Error; err != nil {
			return fmt.Errorf("delete recipe rows: %w", err)
		}
		if err := tx.Unscoped().Delete(&models.MenuItem{}, id).Error; err != nil {
			return fmt.Errorf("delete menu item %d: %w", id, err)
		}
		return nil
	})
}

// RecipeInput links an ingredient to a menu item.
type RecipeInput struct {
	MenuItemID   uint            `json:"menu_item_id"`
	IngredientID uint            `json:"ingredient_id"`
	Quantity     decimal.Decimal `json:"quantity"`
}

// ListRecipes returns recipe rows, optionally limited to one menu item.
func ListRecipes(ctx context.Context, db *gorm.DB, menuItemID uint) ([]models.Recipe, error) {
	if db == nil {
		return nil, gorm.ErrInvalidDB
	}
	query := db.WithContext(ctx).Preload("Ingredient").Preload("MenuItem").Order("menu_item_id asc, id asc")
	if menuItemID != 0 {
		query = query.Where("menu_item_id = ?", menuItemID)
	}
	var recipes []models.Recipe
	if err := query.Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	return recipes, nil
}

// RecipeCandidates lists the ingredients not yet part of the menu item's recipe.
func RecipeCandidates(ctx context.Context, db *gorm.DB, menuItemID uint) ([]models.Ingredient, error) {
	if db == nil {
		return nil, gorm.ErrInvalidDB
	}
	session := db.WithContext(ctx)
	used := session.Model(&models.Recipe{}).Select("ingredient_id").Where("menu_item_id = ?", menuItemID)
	var ingredients []models.Ingredient
	if err := session.
		Where("id NOT IN (?)", used).
		Order("name asc").
		Find(&ingredients).Error; err != nil {
		return nil, fmt.Errorf("list recipe candidates: %w", err)
	}
	return ingredients, nil
}

// AddRecipe links an ingredient to a menu item. Adding to a stocked item
// raises kanban on the ingredient.
func AddRecipe(ctx context.Context, db *gorm.DB, in RecipeInput) (*models.Recipe, error) {
	if db == nil {
		return nil, gorm.ErrInvalidDB
	}
	if in.MenuItemID == 0 || in.IngredientID == 0 {
		return nil, fmt.Errorf("menu_item_id and ingredient_id are required: %w", ErrInvalidInput)
	}
	if !in.Quantity.IsPositive() {
		return nil, ErrInvalidQuantity
	}

	var recipe models.Recipe
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item, err := loadMenuItem(tx, in.MenuItemID)
		if err != nil {
			return err
		}
		var ingredient models.Ingredient
		if err := tx.First(&ingredient, in.IngredientID).Error; err != nil {
			return translate(err)
		}
		var existing int64
		if err := tx.Model(&models.Recipe{}).
			Where("menu_item_id = ? AND ingredient_id = ?", in.MenuItemID, in.IngredientID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return fmt.Errorf("%s already in %s: %w", ingredient.Name, item.Title, ErrDuplicate)
		}
		recipe = models.Recipe{
			MenuItemID:   in.MenuItemID,
			IngredientID: in.IngredientID,
			Quantity:     in.Quantity,
		}
		if err := tx.Create(&recipe).Error; err != nil {
			return fmt.Errorf("create recipe: %w", err)
		}
		if item.StockItem {
			return propagateKanban(ctx, tx, item.ID, true)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return getRecipe(ctx, db, recipe.ID)
}

// UpdateRecipeQuantity changes the required quantity of a recipe row.
func UpdateRecipeQuantity(ctx context.Context, db *gorm.DB, id uint, quantity decimal.Decimal) (*models.Recipe, error) {
	if db == nil {
		return nil, gorm.ErrInvalidDB
	}
	if !quantity.IsPositive() {
		return nil, ErrInvalidQuantity
	}
	result := db.WithContext(ctx).Model(&models.Recipe{}).Where("id = ?", id).Update("quantity", quantity)
	if result.Error != nil {
		return nil, fmt.Errorf("update recipe %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return getRecipe(ctx, db, id)
}

// DeleteRecipe removes a single recipe row.
func DeleteRecipe(ctx context.Context, db *gorm.DB, id uint) error {
	if db == nil {
		return gorm.ErrInvalidDB
	}
	result := db.WithContext(ctx).Unscoped().Delete(&models.Recipe{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete recipe %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func getRecipe(ctx context.Context, db *gorm.DB, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := db.WithContext(ctx).Preload("Ingredient").Preload("MenuItem").First(&recipe, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &recipe, nil
}
