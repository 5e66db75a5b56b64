package records

import (
	"github.com/blackmindsinstem/stemset/pkg/errors"
)

// Table is an ordered, append-only collection of records addressed by ID.
// It is the single logical input table the engine resolves over: the
// concatenation of every source file, in load order.
type Table struct {
	records []*Record
	byID    map[ID]*Record
	columns []string
	colSeen map[string]bool
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{
		byID:    make(map[ID]*Record),
		colSeen: make(map[string]bool),
	}
}

// Add appends a record, assigning its ordinal from load order.
// Duplicate IDs are rejected; an ID identifies exactly one row forever.
func (t *Table) Add(r *Record) error {
	if r == nil {
		return errors.NewValidationError("record", nil, "cannot be nil")
	}
	if r.ID == "" {
		return errors.NewValidationError("id", r.ID, "cannot be empty")
	}
	if _, exists := t.byID[r.ID]; exists {
		return errors.NewValidationError("id", r.ID, "duplicate record ID")
	}
	r.Ordinal = len(t.records)
	t.records = append(t.records, r)
	t.byID[r.ID] = r

	for _, col := range coreColumns {
		t.noteColumn(col)
	}
	for col := range r.Extra {
		t.noteColumn(col)
	}
	return nil
}

// coreColumns is the serialization order of the columns the core inspects.
var coreColumns = []string{
	ColName, ColDescription, ColURL, ColTargetGrade,
	ColSTEMFields, ColSource, ColSourceFile,
}

func (t *Table) noteColumn(col string) {
	if !t.colSeen[col] {
		t.colSeen[col] = true
		t.columns = append(t.columns, col)
	}
}

// Get returns the record with the given ID.
func (t *Table) Get(id ID) (*Record, error) {
	r, ok := t.byID[id]
	if !ok {
		return nil, errors.NewNotFoundError("record", id.String())
	}
	return r, nil
}

// Has reports whether the table contains the given ID.
func (t *Table) Has(id ID) bool {
	_, ok := t.byID[id]
	return ok
}

// Len returns the number of records in the table.
func (t *Table) Len() int {
	return len(t.records)
}

// Records returns all records in load order. The returned slice must not
// be modified.
func (t *Table) Records() []*Record {
	return t.records
}

// Columns returns every column name seen across the table, core columns
// first, then opaque columns in first-seen order.
func (t *Table) Columns() []string {
	return t.columns
}

// Select builds a new table containing the records whose IDs are in keep,
// preserving load order. Column layout is rebuilt from the kept records.
func (t *Table) Select(keep map[ID]bool) *Table {
	out := NewTable()
	for _, r := range t.records {
		if keep[r.ID] {
			// Add reassigns ordinals; copy so the source table's
			// ordering stays intact.
			clone := *r
			_ = out.Add(&clone)
		}
	}
	return out
}
