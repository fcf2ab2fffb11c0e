package store

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens (creating if necessary) a local SQLite database at path and
// runs the auto-migration for Run/ClassStereotypeCount.
//
// Grounded on db/sqlite.go's Connect. glebarez/sqlite (a pure-Go driver)
// replaces the teacher's tursodatabase/libsql-client-go remote connector —
// this store only ever targets a local file, never a remote libsql
// endpoint, so the remote connector has no component to serve (DESIGN.md).
func Connect(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite store: %w", err)
	}
	if err := db.AutoMigrate(&Run{}, &ClassStereotypeCount{}); err != nil {
		return nil, fmt.Errorf("migrate store: %w", err)
	}
	return db, nil
}

// RecordRun saves one Run row plus its per-class rows in a single
// transaction.
func RecordRun(db *gorm.DB, run *Run, classRows []ClassStereotypeCount) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(run).Error; err != nil {
			return err
		}
		for i := range classRows {
			classRows[i].RunID = run.ID
		}
		if len(classRows) == 0 {
			return nil
		}
		return tx.Create(&classRows).Error
	})
}
