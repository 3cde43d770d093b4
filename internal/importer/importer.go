// Package importer loads supplier ingredient lists into the inventory.
//
// Both CSV files and supplier delivery-note PDFs are accepted. Every line
// carries "name, quantity, unit, unit price"; quantity and unit price are
// optional. Matching is by case-insensitive name: known ingredients receive
// the delivered quantity on top of their stock, unknown ones are created.
package importer

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

// ErrNoRows is returned when a source holds no importable lines.
var ErrNoRows = errors.New("importer: no ingredient rows found")

// Row is one parsed supplier line.
type Row struct {
	Line      int
	Name      string
	Quantity  decimal.Decimal
	Unit      string
	UnitPrice decimal.Decimal
}

// Result reports what an import changed.
type Result struct {
	Created int
	Updated int
}

// ParseLine splits a "name, quantity, unit, unit price" line. Blank lines,
// comments and the header row report ok=false without an error.
func ParseLine(line string, number int) (Row, bool, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return Row{}, false, nil
	}
	return parseFields(strings.Split(trimmed, ","), number)
}

func parseFields(fields []string, number int) (Row, bool, error) {
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	if len(fields) == 0 || fields[0] == "" {
		return Row{}, false, nil
	}
	if isHeader(fields) {
		return Row{}, false, nil
	}
	if len(fields) > 4 {
		return Row{}, false, fmt.Errorf("line %d: expected at most 4 fields, got %d", number, len(fields))
	}

	row := Row{Line: number, Name: fields[0]}
	if len(fields) > 1 && fields[1] != "" {
		quantity, err := decimal.NewFromString(fields[1])
		if err != nil {
			return Row{}, false, fmt.Errorf("line %d: quantity %q: %w", number, fields[1], err)
		}
		if quantity.IsNegative() {
			return Row{}, false, fmt.Errorf("line %d: quantity must not be negative", number)
		}
		row.Quantity = quantity
	}
	if len(fields) > 2 {
		row.Unit = fields[2]
	}
	if len(fields) > 3 && fields[3] != "" {
		price, err := decimal.NewFromString(strings.TrimPrefix(fields[3], "$"))
		if err != nil {
			return Row{}, false, fmt.Errorf("line %d: unit price %q: %w", number, fields[3], err)
		}
		if price.IsNegative() {
			return Row{}, false, fmt.Errorf("line %d: unit price must not be negative", number)
		}
		row.UnitPrice = price
	}
	return row, true, nil
}

func isHeader(fields []string) bool {
	if !strings.EqualFold(fields[0], "name") {
		return false
	}
	return len(fields) == 1 || strings.EqualFold(fields[1], "quantity")
}

// Import upserts every row, each inside its own transaction, and stops at the
// first failure. Rows applied before the failure stay committed.
func Import(ctx context.Context, db *gorm.DB, rows []Row) (Result, error) {
	var result Result
	if db == nil {
		return result, gorm.ErrInvalidDB
	}
	if len(rows) == 0 {
		return result, ErrNoRows
	}

	for _, row := range rows {
		created, err := upsert(ctx, db, row)
		if err != nil {
			return result, fmt.Errorf("line %d (%s): %w", row.Line, row.Name, err)
		}
		if created {
			result.Created++
		} else {
			result.Updated++
		}
	}
	applog.Info(ctx, "ingredients imported", "created", result.Created, "updated", result.Updated)
	return result, nil
}

func upsert(ctx context.Context, db *gorm.DB, row Row) (bool, error) {
	created := false
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Ingredient
		err := tx.Where("lower(name) = ?", strings.ToLower(row.Name)).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			ingredient := models.Ingredient{
				Name:      row.Name,
				Quantity:  row.Quantity,
				Unit:      row.Unit,
				UnitPrice: row.UnitPrice,
			}
			if err := tx.Create(&ingredient).Error; err != nil {
				return fmt.Errorf("create ingredient: %w", err)
			}
			created = true
			return nil
		case err != nil:
			return fmt.Errorf("find ingredient: %w", err)
		}

		updates := map[string]any{
			"quantity": gorm.Expr("quantity + ?", row.Quantity),
		}
		if row.Unit != "" {
			updates["unit"] = row.Unit
		}
		if !row.UnitPrice.IsZero() {
			updates["unit_price"] = row.UnitPrice
		}
		if err := tx.Model(&existing).Updates(updates).Error; err != nil {
			return fmt.Errorf("update ingredient %d: %w", existing.ID, err)
		}
		return nil
	})
	return created, err
}
