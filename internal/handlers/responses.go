package handlers

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"delights/models"
)

// quantityPlaces matches the numeric(12,3) columns. SQLite keeps them as
// REAL, so values are rounded before they leave the service.
const quantityPlaces = 3

func roundQuantity(value decimal.Decimal) decimal.Decimal {
	return value.Round(quantityPlaces)
}

type ingredientResponse struct {
	ID        uint            `json:"id"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	Unit      string          `json:"unit"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Kanban    bool            `json:"kanban"`
	Threshold decimal.Decimal `json:"threshold"`
	ReOrder   decimal.Decimal `json:"re_order"`
	Buy       bool            `json:"buy"`
	InStock   bool            `json:"in_stock"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func projectIngredient(ingredient models.Ingredient) ingredientResponse {
	return ingredientResponse{
		ID:        ingredient.ID,
		Name:      ingredient.Name,
		Quantity:  roundQuantity(ingredient.Quantity),
		Unit:      ingredient.Unit,
		UnitPrice: roundQuantity(ingredient.UnitPrice),
		Kanban:    ingredient.Kanban,
		Threshold: roundQuantity(ingredient.Threshold),
		ReOrder:   roundQuantity(ingredient.ReOrder),
		Buy:       ingredient.Buy(),
		InStock:   ingredient.InStock(),
		UpdatedAt: ingredient.UpdatedAt,
	}
}

func projectIngredients(ingredients []models.Ingredient) []ingredientResponse {
	out := make([]ingredientResponse, 0, len(ingredients))
	for _, ingredient := range ingredients {
		out = append(out, projectIngredient(ingredient))
	}
	return out
}

type recipeResponse struct {
	ID           uint                `json:"id"`
	MenuItemID   uint                `json:"menu_item_id"`
	MenuItem     string              `json:"menu_item,omitempty"`
	IngredientID uint                `json:"ingredient_id"`
	Ingredient   *ingredientResponse `json:"ingredient,omitempty"`
	Quantity     decimal.Decimal     `json:"quantity"`
	LineCost     decimal.Decimal     `json:"line_cost"`
}

func projectRecipe(recipe models.Recipe) recipeResponse {
	resp := recipeResponse{
		ID:           recipe.ID,
		MenuItemID:   recipe.MenuItemID,
		IngredientID: recipe.IngredientID,
		Quantity:     roundQuantity(recipe.Quantity),
	}
	if recipe.MenuItem != nil {
		resp.MenuItem = recipe.MenuItem.Title
	}
	if recipe.Ingredient != nil {
		ingredient := projectIngredient(*recipe.Ingredient)
		resp.Ingredient = &ingredient
	}
	resp.LineCost, _ = recipe.LineCost()
	return resp
}

type menuItemResponse struct {
	ID          uint             `json:"id"`
	Title       string           `json:"title"`
	Price       decimal.Decimal  `json:"price"`
	CategoryID  *uint            `json:"category_id"`
	Category    string           `json:"category,omitempty"`
	Display     bool             `json:"display"`
	Description string           `json:"description"`
	StockItem   bool             `json:"stock_item"`
	Available   int64            `json:"available"`
	DishCost    decimal.Decimal  `json:"dish_cost"`
	Margin      decimal.Decimal  `json:"margin"`
	Recipes     []recipeResponse `json:"recipes"`
}

func projectMenuItem(item models.MenuItem) menuItemResponse {
	resp := menuItemResponse{
		ID:          item.ID,
		Title:       item.Title,
		Price:       item.Price,
		CategoryID:  item.CategoryID,
		Display:     item.Display,
		Description: item.Description,
		StockItem:   item.StockItem,
		Available:   item.Available(),
		DishCost:    item.DishCost(),
		Margin:      item.Margin(),
		Recipes:     make([]recipeResponse, 0, len(item.Recipes)),
	}
	if item.Category != nil {
		resp.Category = item.Category.Name
	}
	for _, recipe := range item.Recipes {
		resp.Recipes = append(resp.Recipes, projectRecipe(recipe))
	}
	return resp
}

func projectMenuItems(items []models.MenuItem) []menuItemResponse {
	out := make([]menuItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, projectMenuItem(item))
	}
	return out
}

type purchaseResponse struct {
	ID            uint      `json:"id"`
	MenuItemID    *uint     `json:"menu_item_id"`
	MenuItemTitle string    `json:"menu_item_title"`
	Quantity      int64     `json:"quantity"`
	Timestamp     time.Time `json:"timestamp"`
}

func projectPurchase(purchase models.Purchase) purchaseResponse {
	return purchaseResponse{
		ID:            purchase.ID,
		MenuItemID:    purchase.MenuItemID,
		MenuItemTitle: purchase.MenuItemTitle,
		Quantity:      purchase.Quantity,
		Timestamp:     purchase.Timestamp,
	}
}

type basketResponse struct {
	ID           uint                `json:"id"`
	IngredientID uint                `json:"ingredient_id"`
	Ingredient   *ingredientResponse `json:"ingredient,omitempty"`
	Quantity     decimal.Decimal     `json:"quantity"`
}

func projectBasket(row models.Basket) basketResponse {
	resp := basketResponse{
		ID:           row.ID,
		IngredientID: row.IngredientID,
		Quantity:     roundQuantity(row.Quantity),
	}
	if row.Ingredient != nil {
		ingredient := projectIngredient(*row.Ingredient)
		resp.Ingredient = &ingredient
	}
	return resp
}

type orderResponse struct {
	ID             uint            `json:"id"`
	IngredientID   *uint           `json:"ingredient_id"`
	IngredientName string          `json:"ingredient_name"`
	Quantity       decimal.Decimal `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
}

type orderNumberResponse struct {
	ID        uint            `json:"id"`
	Reference uuid.UUID       `json:"reference"`
	PlacedAt  time.Time       `json:"placed_at"`
	Orders    []orderResponse `json:"orders"`
}

func projectOrderNumber(number models.OrderNumber) orderNumberResponse {
	resp := orderNumberResponse{
		ID:        number.ID,
		Reference: number.Reference,
		PlacedAt:  number.PlacedAt,
		Orders:    make([]orderResponse, 0, len(number.Orders)),
	}
	for _, line := range number.Orders {
		resp.Orders = append(resp.Orders, orderResponse{
			ID:             line.ID,
			IngredientID:   line.IngredientID,
			IngredientName: line.IngredientName,
			Quantity:       roundQuantity(line.Quantity),
			UnitPrice:      line.UnitPrice,
		})
	}
	return resp
}

type categoryResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}
