package infra

import (
	"fmt"

	"almacen/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate
// to create / update all tables, then applies the idempotent SQL patches
// that GORM cannot express (check constraints, partial indexes).
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

	if err := db.AutoMigrate(
		&model.Category{},
		&model.Supplier{},
		&model.Product{},
		&model.Variation{},
		&model.Inventory{},
		&model.ProductIssue{},
		&model.Purchase{},
		&model.PurchaseItem{},
		&model.Operator{},
	); err != nil {
		return nil, fmt.Errorf("AutoMigrate: %w", err)
	}

	if err := applySchemaPatches(db); err != nil {
		return nil, fmt.Errorf("schema patches: %w", err)
	}

	return db, nil
}

// applySchemaPatches runs idempotent DDL that AutoMigrate may skip on
// existing databases. Every statement is safe to re-run.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// Deleting a category with products must fail at the DB too, not
		// only in the service check
		`DO $$ BEGIN
			ALTER TABLE products
				ADD CONSTRAINT fk_products_category
				FOREIGN KEY (category_id) REFERENCES categories(id) ON DELETE RESTRICT;
		EXCEPTION WHEN duplicate_object THEN NULL; END $$;`,
		`DO $$ BEGIN
			ALTER TABLE products
				ADD CONSTRAINT fk_products_supplier
				FOREIGN KEY (supplier_id) REFERENCES suppliers(id) ON DELETE RESTRICT;
		EXCEPTION WHEN duplicate_object THEN NULL; END $$;`,
		`DO $$ BEGIN
			ALTER TABLE categories
				ADD CONSTRAINT fk_categories_parent
				FOREIGN KEY (parent_id) REFERENCES categories(id) ON DELETE CASCADE;
		EXCEPTION WHEN duplicate_object THEN NULL; END $$;`,
		`CREATE INDEX IF NOT EXISTS idx_products_sale_price ON products (sale_price);`,
		`CREATE INDEX IF NOT EXISTS idx_inventories_low_stock ON inventories (current_stock) WHERE active = true;`,
	}
	for _, patch := range patches {
		if err := db.Exec(patch).Error; err != nil {
			return err
		}
	}
	return nil
}
