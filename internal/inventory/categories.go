package inventory

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"delights/models"
)

func ListCategories(ctx context.Context, db *gorm.DB) ([]models.Category, error) {
	if db == nil {
		return nil, gorm.ErrInvalidDB
	}
	var categories []models.Category
	if err := db.WithContext(ctx).Order("name asc").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func CreateCategory(ctx context.Context, db *gorm.DB, name string) (*models.Category, error) {
	if db == nil {
		return nil, gorm.ErrInvalidDB
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("name is required: %w", ErrInvalidInput)
	}
	category := models.Category{Name: name}
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Category{}).Where("lower(name) = ?", strings.ToLower(name)).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("category %q: %w", name, ErrDuplicate)
		}
		return tx.Create(&category).Error
	})
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// DeleteCategory removes a category; its menu items become uncategorised.
func DeleteCategory(ctx context.Context, db *gorm.DB, id uint) error {
	if db == nil {
		return gorm.ErrInvalidDB
	}
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.MenuItem{}).Where("category_id = ?", id).Update("category_id", nil).Error; err != nil {
			return fmt.Errorf("detach menu items: %w", err)
		}
		result := tx.Unscoped().Delete(&models.Category{}, id)
		if result.Error != nil {
			return fmt.Errorf("delete category %d: %w", id, result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
