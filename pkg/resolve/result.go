package resolve

import (
	"github.com/blackmindsinstem/stemset/pkg/audit"
	"github.com/blackmindsinstem/stemset/pkg/records"
)

// Removal is a record removed as an exact duplicate, carrying a back
// reference to the record that superseded it. The reference expresses a
// same-entity relationship, not ownership.
type Removal struct {
	Record       *records.Record
	SupersededBy records.ID
}

// ReviewItem is a record flagged for human adjudication. Review status is
// advisory: the record also remains in the survivor set.
type ReviewItem struct {
	Record               *records.Record
	CandidateDuplicateOf records.ID
	Reason               string
}

// Statistics summarizes one resolution run.
type Statistics struct {
	RecordsIn       int
	CandidatePairs  int
	ExactDuplicates int
	Variations      int
	Ambiguous       int
	BelowFloor      int
	Removed         int
	Survivors       int
	TotalTimeMs     int64
}

// Result is the complete output of a resolution run: three disjoint
// collections plus the audit log. Survivors and removals partition the
// input exactly; review is a subset of survivors.
type Result struct {
	Survivors *records.Table
	Removed   []Removal
	Review    []ReviewItem
	Audit     *audit.Log
	Stats     Statistics
}
