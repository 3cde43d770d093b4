package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"delights/models"
)

// IngredientInput carries the editable fields of an ingredient. Quantity is
// only honoured on create; afterwards stock moves through purchases, orders
// and SetStockLevels.
type IngredientInput struct {
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	Unit      string          `json:"unit"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Kanban    bool            `json:"kanban"`
	Threshold decimal.Decimal `json:"threshold"`
	ReOrder   decimal.Decimal `json:"re_order"`
}

func (in IngredientInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("name is required: %w", ErrInvalidInput)
	}
	if len(strings.TrimSpace(in.Unit)) > 10 {
		return fmt.Errorf("unit must be at most 10 characters: %w", ErrInvalidInput)
	}
	for label, value := range map[string]decimal.Decimal{
		"quantity":   in.Quantity,
		"unit_price": in.UnitPrice,
		"threshold":  in.Threshold,
		"re_order":   in.ReOrder,
	} {
		if value.IsNegative() {
			return fmt.Errorf("%s must not be negative: %w", label, ErrInvalidInput)
		}
	}
	return nil
}

// ListIngredients returns every ingredient ordered by name.
func ListIngredients(ctx context.Context, db *gorm.DB) ([]models.Ingredient, error) {
	if db == nil {
		return nil, gorm.ErrInvalidDB
	}
	var ingredients []models.Ingredient
	if err := db.WithContext(ctx).Order("name asc").Find(&ingredients).Error; err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}
	return ingredients, nil
}

// CurrentStock returns the ingredients with a positive quantity on hand.
func CurrentStock(ctx context.Context, db *gorm.DB) ([]models.Ingredient, error) {
	if db == nil {
		return nil, gorm.ErrInvalidDB
	}
	var ingredients []models.Ingredient
	if err := db.WithContext(ctx).Where("quantity > 0").Order("name asc").Find(&ingredients).Error; err != nil {
		return nil, fmt.Errorf("list current stock: %w", err)
	}
	return ingredients, nil
}

// ShoppingList returns the ingredients that need reordering.
func ShoppingList(ctx context.Context, db *gorm.DB) ([]models.Ingredient, error) {
	ingredients, err := ListIngredients(ctx, db)
	if err != nil {
		return nil, err
	}
	list := make([]models.Ingredient, 0)
	for _, ingredient := range ingredients {
		if ingredient.Buy() {
			list = append(list, ingredient)
		}
	}
	return list, nil
}

// Orphans splits ingredients that no recipe uses from those only used by
// menu items that do not draw from stock.
type Orphans struct {
	NoRecipe []models.Ingredient `json:"no_recipe"`
	NonStock []models.Ingredient `json:"non_stock"`
}

// FindOrphans classifies ingredients that are not backing any stocked dish.
func FindOrphans(ctx context.Context, db *gorm.DB) (Orphans, error) {
	if db == nil {
		return Orphans{}, gorm.ErrInvalidDB
	}
	var ingredients []models.Ingredient
	if err := db.WithContext(ctx).
		Preload("Recipes").
		Preload("Recipes.MenuItem").
		Order("name asc").
		Find(&ingredients).Error; err != nil {
		return Orphans{}, fmt.Errorf("load ingredients with recipes: %w", err)
	}
	return classifyOrphans(ingredients), nil
}

func classifyOrphans(ingredients []models.Ingredient) Orphans {
	out := Orphans{
		NoRecipe: make([]models.Ingredient, 0),
		NonStock: make([]models.Ingredient, 0),
	}
	for _, ingredient := range ingredients {
		if len(ingredient.Recipes) == 0 {
			out.NoRecipe = append(out.NoRecipe, ingredient)
			continue
		}
		stocked := false
		for _, recipe := range ingredient.Recipes {
			if recipe.MenuItem != nil && recipe.MenuItem.StockItem {
				stocked = true
				break
			}
		}
		if !stocked {
			out.NonStock = append(out.NonStock, ingredient)
		}
	}
	for idx := range out.NoRecipe {
		out.NoRecipe[idx].Recipes = nil
	}
	for idx := range out.NonStock {
		out.NonStock[idx].Recipes = nil
	}
	return out
}

// GetIngredient loads one ingredient.
func GetIngredient(ctx context.Context, db *gorm.DB, id uint) (*models.Ingredient, error) {
	if db == nil {
		return nil, gorm.ErrInvalidDB
	}
	var ingredient models.Ingredient
	if err := db.WithContext(ctx).First(&ingredient, id).Error; err != nil {
		return nil, translate(err)
	}
	return &ingredient, nil
}

// FindIngredientByName looks an ingredient up case-insensitively.
func FindIngredientByName(ctx context.Context, db *gorm.DB, name string) (*models.Ingredient, error) {
	if db == nil {
		return nil, gorm.ErrInvalidDB
	}
	var ingredient models.Ingredient
	if err := db.WithContext(ctx).
		Where("lower(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		First(&ingredient).Error; err != nil {
		return nil, translate(err)
	}
	return &ingredient, nil
}

func ensureUniqueName(tx *gorm.DB, name string, exceptID uint) error {
	var count int64
	if err := tx.Model(&models.Ingredient{}).
		Where("lower(name) = ? AND id <> ?", strings.ToLower(name), exceptID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("ingredient %q: %w", name, ErrDuplicate)
	}
	return nil
}

// CreateIngredient stores a new ingredient with its opening stock.
func CreateIngredient(ctx context.Context, db *gorm.DB, in IngredientInput) (*models.Ingredient, error) {
	if db == nil {
		return nil, gorm.ErrInvalidDB
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)

	ingredient := models.Ingredient{
		Name:      name,
		Quantity:  in.Quantity,
		Unit:      strings.TrimSpace(in.Unit),
		UnitPrice: in.UnitPrice,
		Kanban:    in.Kanban,
		Threshold: in.Threshold,
		ReOrder:   in.ReOrder,
	}
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureUniqueName(tx, name, 0); err != nil {
			return err
		}
		if err := tx.Create(&ingredient).Error; err != nil {
			return fmt.Errorf("create ingredient: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &ingredient, nil
}

// UpdateIngredient edits everything but the stock quantity.
func UpdateIngredient(ctx context.Context, db *gorm.DB, id uint, in IngredientInput) (*models.Ingredient, error) {
	if db == nil {
		return nil, gorm.ErrInvalidDB
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Ingredient
		if err := tx.First(&existing, id).Error; err != nil {
			return translate(err)
		}
		if err := ensureUniqueName(tx, name, id); err != nil {
			return err
		}
		updates := map[string]any{
			"name":       name,
			"unit":       strings.TrimSpace(in.Unit),
			"unit_price": in.UnitPrice,
			"kanban":     in.Kanban,
			"threshold":  in.Threshold,
			"re_order":   in.ReOrder,
		}
		if err := tx.Model(&existing).Updates(updates).Error; err != nil {
			return fmt.Errorf("update ingredient %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return GetIngredient(ctx, db, id)
}

// DeleteIngredient removes the ingredient, the recipe rows and basket row
// that use it. Order history keeps the name snapshot.
func DeleteIngredient(ctx context.Context, db *gorm.DB, id uint) error {
	if db == nil {
		return gorm.ErrInvalidDB
	}
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Ingredient
		if err := tx.First(&existing, id).Error; err != nil {
			return translate(err)
		}
		if err := tx.Unscoped().Where("ingredient_id = ?", id).Delete(&models.Recipe{}).Error; err != nil {
			return fmt.Errorf("delete recipe rows: %w", err)
		}
		if err := tx.Unscoped().Where("ingredient_id = ?", id).Delete(&models.Basket{}).Error; err != nil {
			return fmt.Errorf("delete basket row: %w", err)
		}
		if err := tx.Model(&models.Order{}).
			Where("ingredient_id = ?", id).
			Update("ingredient_id", nil).Error; err != nil {
			return fmt.Errorf("detach orders: %w", err)
		}
		if err := tx.Unscoped().Delete(&existing).Error; err != nil {
			return fmt.Errorf("delete ingredient %d: %w", id, err)
		}
		return nil
	})
}
