package inventory

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound        = errors.New("inventory: record not found")
	ErrDuplicate       = errors.New("inventory: record already exists")
	ErrInvalidQuantity = errors.New("inventory: quantity must be positive")
	ErrInvalidInput    = errors.New("inventory: invalid input")
	ErrEmptyBasket     = errors.New("inventory: basket is empty")
	ErrMenuItemGone    = errors.New("inventory: purchase no longer references a menu item")
	ErrNoSales         = errors.New("inventory: no purchases recorded")

	nowFunc = time.Now
)

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
