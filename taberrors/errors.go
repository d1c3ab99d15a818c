// Package taberrors provides structured error types for tabtools.
//
// These error types enable programmatic error handling via errors.Is() and
// errors.As(), allowing callers to distinguish between different categories
// of errors and implement appropriate recovery strategies.
//
// # Error Categories
//
//   - SchemaBuildError: structurally invalid JSON Schema documents
//   - SchemaIndexError: $ref indexing and resolution failures
//   - ConfigError: invalid parse configuration or input options
//   - ParseError: row-level tabular parsing failures
//
// # Usage with errors.Is
//
//	table, err := projection.Build(schemaDoc, overrides)
//	if err != nil {
//	    if errors.Is(err, taberrors.ErrSchemaIndex) {
//	        // a $ref in the schema does not resolve
//	    }
//	}
package taberrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrSchemaBuild indicates a structurally invalid JSON Schema document.
	ErrSchemaBuild = errors.New("schema build error")

	// ErrSchemaIndex indicates a schema reference indexing failure.
	ErrSchemaIndex = errors.New("schema index error")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")

	// ErrParse indicates a tabular parsing failure.
	ErrParse = errors.New("parse error")
)

// SchemaBuildError represents a failure to build a JSON Schema from a
// document. This covers deserialization errors and structural issues such as
// a "type" keyword holding something other than a string or string array.
type SchemaBuildError struct {
	// Path is the schema location where the problem was found (e.g.
	// "#/properties/foo"), empty if unknown
	Path string
	// Message describes the build failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *SchemaBuildError) Error() string {
	msg := "failed to build json schema"
	if e.Path != "" {
		msg += " at " + e.Path
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *SchemaBuildError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *SchemaBuildError) Is(target error) bool {
	return target == ErrSchemaBuild
}

// SchemaIndexError represents a failure to index a JSON Schema, most commonly
// a $ref that does not resolve to any location within the document.
type SchemaIndexError struct {
	// Ref is the reference string that failed to resolve
	Ref string
	// Message provides additional context about the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *SchemaIndexError) Error() string {
	msg := "cannot index json schema"
	if e.Ref != "" {
		msg += ": " + e.Ref
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *SchemaIndexError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *SchemaIndexError) Is(target error) bool {
	return target == ErrSchemaIndex
}

// ConfigError represents an invalid configuration or input.
// This includes invalid options, missing required inputs, and malformed
// parse configuration documents.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

// ParseError represents a failure to parse a row of tabular input.
type ParseError struct {
	// Row is the 1-based row number where the error occurred (0 if unknown)
	Row int
	// Column is the column header associated with the error, if any
	Column string
	// Message describes the parsing failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Row > 0 {
		msg += fmt.Sprintf(" at row %d", e.Row)
	}
	if e.Column != "" {
		msg += ", column " + e.Column
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}
