package resolve

import (
	"github.com/blackmindsinstem/stemset/pkg/records"
)

// CompletenessScore ranks a record for survivor selection among records
// already judged exact duplicates. More populated fields, a longer
// description, and the presence of a URL all count toward keeping a
// record. The score has no meaning outside survivor selection.
func CompletenessScore(r *records.Record) float64 {
	score := float64(r.NonEmptyFields())
	score += float64(len(r.Description)) / 100
	if r.HasURL() {
		score += 2
	}
	return score
}

// survivor picks the record to keep from a duplicate group: highest
// completeness score, ties broken by the earlier-loaded record. The group
// must be pre-sorted by ordinal so the tie-break never depends on map or
// set iteration order.
func survivor(group []*records.Record) *records.Record {
	best := group[0]
	bestScore := CompletenessScore(best)
	for _, r := range group[1:] {
		if s := CompletenessScore(r); s > bestScore {
			best = r
			bestScore = s
		}
	}
	return best
}
