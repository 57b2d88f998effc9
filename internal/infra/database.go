package infra

import (
	"fmt"

	"github.com/vamkorsales/DoctorCRM-for-Clinics-sub000/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs
// AutoMigrate for all tables, then applies idempotent SQL patches that
// GORM cannot express (the invoice number sequence and partial indexes).
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
		&model.User{},
		&model.Patient{},
		&model.Doctor{},
		&model.Appointment{},
		&model.ServiceItem{},
		&model.ServicePriceOverride{},
		&model.TaxRate{},
		&model.Discount{},
		&model.Invoice{},
		&model.InvoiceItem{},
		&model.Payment{},
	); err != nil {
		return nil, fmt.Errorf("AutoMigrate: %w", err)
	}

	if err := applySchemaPatches(db); err != nil {
		return nil, fmt.Errorf("schema patches: %w", err)
	}

	return db, nil
}

// applySchemaPatches runs idempotent DDL statements that AutoMigrate
// cannot handle. Each statement is guarded so re-running on an
// already-patched DB is safe.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// Invoice numbers come from a dedicated sequence so concurrent
		// creates can't collide.
		`CREATE SEQUENCE IF NOT EXISTS invoices_number_seq START 1`,
		// Partial index for the overdue reminder query.
		`DO $$ BEGIN
		  IF EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = 'invoices')
		    AND NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_invoices_open_due') THEN
		    CREATE INDEX idx_invoices_open_due
		        ON invoices (due_date)
		        WHERE status = 'sent' AND balance > 0;
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

// RunMigrations applies the schema for integration tests.
func RunMigrations(db *gorm.DB) error {
	return applySchemaPatches(db)
}
