// Package store persists an optional history of classification runs, the
// engine's auxiliary report made durable (SPEC_FULL.md's domain-stack
// section).
//
// Grounded on models/models.go's GORM struct shape (embedded gorm.Model,
// explicit TableName overrides) and db/sqlite.go's connect-and-migrate
// pattern.
package store

import (
	"time"

	"gorm.io/gorm"
)

// Run is one classification invocation: the archive path processed, the
// counts it produced, and when it ran.
type Run struct {
	gorm.Model

	ArchivePath  string
	UnitCount    int
	ClassCount   int
	MethodCount  int
	FinishedAt   time.Time
}

// TableName overrides gorm's pluralisation, matching the teacher's explicit
// TableName methods on Stage/Apply/Session.
func (Run) TableName() string { return "runs" }

// ClassStereotypeCount is one row per class produced by a Run: its
// stereotype list and a semicolon-joined histogram of its methods'
// stereotypes, for later aggregate queries without re-parsing the archive.
type ClassStereotypeCount struct {
	gorm.Model

	RunID uint `gorm:"index"`

	Language      string
	ClassName     string
	Stereotypes   string
	MethodHistogram string
}

func (ClassStereotypeCount) TableName() string { return "class_stereotype_counts" }
