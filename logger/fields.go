package logger

import (
	"go.uber.org/zap"
)

// Standard field names for consistent structured logging across gwkit.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Components
	FieldComponent = "component"
	FieldOperation = "operation"

	// Source position
	FieldFile = "file"
	FieldLine = "line"

	// Errors
	FieldError     = "error"
	FieldErrorKind = "error_kind"

	// Counts and sizes
	FieldCount    = "count"
	FieldPersons  = "persons"
	FieldFamilies = "families"
	FieldDummies  = "dummies"
	FieldBlocks   = "blocks"

	// GW-specific
	FieldBlock    = "block"    // block kind (fam, notes, rel, pevt, ...)
	FieldKey      = "key"      // person key "Surname Firstname.occ"
	FieldPersonID = "person_id"
	FieldFamilyID = "family_id"
	FieldEncoding = "encoding"
	FieldRunID    = "run_id"

	// Timing
	FieldDurationMS = "duration_ms"
)

// ComponentLogger returns a named logger for a specific component.
// This is the preferred way to get a logger for dependency injection.
//
// Example:
//
//	type Builder struct {
//	    log *zap.SugaredLogger
//	}
//
//	func NewBuilder() *Builder {
//	    return &Builder{log: logger.ComponentLogger("gw.graph")}
//	}
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}

// ChildLogger creates a child logger with additional context.
//
//	fileLogger := logger.ChildLogger(baseLogger, logger.FieldFile, path)
func ChildLogger(parent *zap.SugaredLogger, keysAndValues ...interface{}) *zap.SugaredLogger {
	return parent.With(keysAndValues...)
}
