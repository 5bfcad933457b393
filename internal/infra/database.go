package infra

import (
	"fmt"

	"github.com/vjloable/fredelicacies-pos-sub003/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies idempotent SQL patches that GORM
// cannot express (sequences, partial indexes).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

// RunMigrations migrates the schema. Every connection path goes through
// NewDatabase, so it runs exactly once per process.
func RunMigrations(db *gorm.DB) error {
	// pgcrypto provides gen_random_uuid() on Postgres < 13 installs
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		return fmt.Errorf("pgcrypto extension: %w", err)
	}

	if err := db.AutoMigrate(
		&model.Branch{},
		&model.Worker{},
		&model.RoleAssignment{},
		&model.Category{},
		&model.InventoryItem{},
		&model.StockMovement{},
		&model.Discount{},
		&model.Order{},
		&model.OrderItem{},
		&model.OrderPayment{},
		&model.WorkSession{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}

	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL statements that GORM AutoMigrate
// cannot fully handle on its own. Each statement uses IF NOT EXISTS / guarded
// DO blocks so re-running on an already-patched DB is safe.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// Atomic order number allocation
		`CREATE SEQUENCE IF NOT EXISTS orders_number_seq START 1`,
		// At most one open work session per worker
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_work_sessions_open_worker') THEN
		    CREATE UNIQUE INDEX idx_work_sessions_open_worker
		        ON work_sessions (worker_id)
		        WHERE status = 'open';
		  END IF;
		END $$`,
		// Partial index for the shift watchdog query
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_work_sessions_open_opened_at') THEN
		    CREATE INDEX idx_work_sessions_open_opened_at
		        ON work_sessions (opened_at)
		        WHERE status = 'open';
		  END IF;
		END $$`,
		// Low-stock alert listing scans per branch
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_inventory_items_low_stock') THEN
		    CREATE INDEX idx_inventory_items_low_stock
		        ON inventory_items (branch_id)
		        WHERE is_active = true AND stock <= low_stock_at;
		  END IF;
		END $$`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
