package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/gorm"

	"delights/internal/config"
	"delights/internal/db"
	"delights/internal/importer"
	applog "delights/internal/log"
)

var openDatabase = func(context.Context) (*gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := applog.SetLevel(cfg.Logging.Level); err != nil {
		return nil, err
	}
	if cfg.Database.UseMock {
		return nil, errors.New("DATABASE_URL must point at a real database to import ingredients")
	}
	return db.Configure(cfg.Database)
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: import_ingredients <delivery.csv|delivery.pdf>")
		os.Exit(2)
	}
	if err := run(context.Background(), os.Args[1], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "import failed: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, path string, out io.Writer) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("import path must not be empty")
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("locate import file: %w", err)
	}

	rows, err := importer.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}

	database, err := openDatabase(ctx)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	result, err := importer.Import(ctx, database, rows)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Imported %d ingredients from %s (%d new, %d restocked)\n",
		result.Created+result.Updated, filepath.Base(path), result.Created, result.Updated)
	return nil
}
