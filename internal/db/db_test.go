package db

import (
	"testing"
	"time"

	"delights/internal/config"
	"delights/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestInitializeRequiresURL(t *testing.T) {
	t.Parallel()

	db, err := Initialize(config.DatabaseConfig{URL: ""})
	if err == nil {
		t.Fatal("expected error when database URL is empty")
	}
	if db != nil {
		t.Fatal("expected returned db handle to be nil on error")
	}
}

func TestAutoMigrateRejectsNilDatabase(t *testing.T) {
	t.Parallel()

	if err := AutoMigrate(nil); err == nil {
		t.Fatal("expected error when database handle is nil")
	}
}

func TestAutoMigrateWithSQLite(t *testing.T) {
	t.Parallel()

	sqliteDB, err := gorm.Open(sqlite.Open("file:db-automigrate?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}

	if err := AutoMigrate(sqliteDB); err != nil {
		t.Fatalf("automigrate sqlite database: %v", err)
	}

	for _, table := range []string{"ingredients", "menu_items", "recipes", "purchases", "baskets", "order_numbers", "orders"} {
		if !sqliteDB.Migrator().HasTable(table) {
			t.Fatalf("expected table %s after migration", table)
		}
	}
	if !sqliteDB.Migrator().HasIndex(&models.Recipe{}, "idx_recipe_menu_ingredient") {
		t.Fatal("expected composite unique index on recipes")
	}
}

func TestGormConfigUsesUTC(t *testing.T) {
	t.Parallel()

	cfg := GormConfig(logger.Silent)
	if cfg.NowFunc().Location() != time.UTC {
		t.Fatal("expected NowFunc to return UTC times")
	}
	if !cfg.DisableForeignKeyConstraintWhenMigrating {
		t.Fatal("expected foreign key constraints to be disabled for migrations")
	}
}

func TestConfigurePropagatesInitializationError(t *testing.T) {
	t.Parallel()

	if _, err := Configure(config.DatabaseConfig{}); err == nil {
		t.Fatal("expected configuration error when initialize fails")
	}
}

func TestMustConfigurePanicsOnError(t *testing.T) {
	t.Parallel()

	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic when configuration fails")
		}
	}()

	MustConfigure(config.DatabaseConfig{})
}
