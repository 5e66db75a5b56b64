// Package records defines the immutable record arena consumed by the
// resolution engine. Every row ingested from a source table becomes one
// Record with a stable ID; records are never mutated after creation, and
// the engine partitions them by ID rather than rewriting the table.
package records

import (
	"fmt"
	"strings"
)

// ID is a stable record identifier derived from the origin file and row
// position. IDs are never reused within a run.
type ID string

// NewID builds a record ID from its origin file stem and row position.
func NewID(sourceFile string, row int) ID {
	return ID(fmt.Sprintf("%s#%d", sourceFile, row))
}

// String returns the string representation of the ID.
func (id ID) String() string {
	return string(id)
}

// Well-known column names inspected by the core. Every other column is
// opaque payload carried through unchanged.
const (
	ColName        = "name"
	ColDescription = "description"
	ColURL         = "url"
	ColTargetGrade = "target_grade"
	ColSTEMFields  = "stem_fields"
	ColSource      = "source"
	ColSourceFile  = "source_file"
)

// Record is one candidate entity description. Created once by ingestion and
// immutable thereafter.
type Record struct {
	ID      ID
	Ordinal int // global load order; lower ordinal means lower ID for tie-breaks

	Name        string
	Description string
	URL         string
	TargetGrade string
	STEMFields  string

	// Source is the origin tag used by the name+source blocking dimension.
	Source     string
	SourceFile string
	Row        int

	// Extra carries every other column from the source table unchanged.
	Extra map[string]string
}

// Field returns the value of a named column, core or opaque.
func (r *Record) Field(column string) string {
	switch column {
	case ColName:
		return r.Name
	case ColDescription:
		return r.Description
	case ColURL:
		return r.URL
	case ColTargetGrade:
		return r.TargetGrade
	case ColSTEMFields:
		return r.STEMFields
	case ColSource:
		return r.Source
	case ColSourceFile:
		return r.SourceFile
	}
	return r.Extra[column]
}

// NonEmptyFields counts the populated fields of the record, core and opaque
// alike. Used by the completeness scorer to rank duplicate records.
func (r *Record) NonEmptyFields() int {
	count := 0
	for _, v := range []string{
		r.Name, r.Description, r.URL, r.TargetGrade,
		r.STEMFields, r.Source, r.SourceFile,
	} {
		if strings.TrimSpace(v) != "" {
			count++
		}
	}
	for _, v := range r.Extra {
		if strings.TrimSpace(v) != "" {
			count++
		}
	}
	return count
}

// HasURL reports whether the record carries a non-blank URL.
func (r *Record) HasURL() bool {
	return strings.TrimSpace(r.URL) != ""
}

// Less orders records by load order. All survivor tie-breaks go through
// this ordinal comparison, never string ID order or map iteration order.
func Less(a, b *Record) bool {
	return a.Ordinal < b.Ordinal
}
