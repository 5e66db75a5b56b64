package audit_test

import (
	"testing"

	"github.com/blackmindsinstem/stemset/pkg/audit"
	"github.com/blackmindsinstem/stemset/pkg/blocking"
	"github.com/blackmindsinstem/stemset/pkg/classify"
	"github.com/blackmindsinstem/stemset/pkg/records"
	"github.com/blackmindsinstem/stemset/pkg/similarity"
)

func TestAppendStampsTimestamp(t *testing.T) {
	log := audit.NewLog()

	a := records.NewID("src", 0)
	b := records.NewID("src", 1)
	log.Append(audit.Entry{
		PairID:  blocking.PairID(a, b),
		RecordA: a,
		RecordB: b,
		Vector:  similarity.Vector{NameSimilarity: 100},
		Outcome: classify.KindExactDuplicate,
	})

	if log.Len() != 1 {
		t.Fatalf("Len = %d, want 1", log.Len())
	}
	if log.Entries()[0].Timestamp.IsZero() {
		t.Error("Append must stamp a timestamp")
	}
}

func TestEntriesKeepAppendOrder(t *testing.T) {
	log := audit.NewLog()
	ids := []records.ID{
		records.NewID("src", 0),
		records.NewID("src", 1),
		records.NewID("src", 2),
	}

	log.Append(audit.Entry{PairID: blocking.PairID(ids[0], ids[1]), RecordA: ids[0], RecordB: ids[1]})
	log.Append(audit.Entry{PairID: blocking.PairID(ids[0], ids[2]), RecordA: ids[0], RecordB: ids[2]})
	log.Append(audit.Entry{PairID: blocking.PairID(ids[1], ids[2]), RecordA: ids[1], RecordB: ids[2]})

	entries := log.Entries()
	if len(entries) != 3 {
		t.Fatalf("Len = %d, want 3", len(entries))
	}
	if entries[0].PairID != "src#0|src#1" || entries[2].PairID != "src#1|src#2" {
		t.Error("entries out of append order")
	}
}

func TestForRecord(t *testing.T) {
	log := audit.NewLog()
	a := records.NewID("src", 0)
	b := records.NewID("src", 1)
	c := records.NewID("src", 2)

	log.Append(audit.Entry{PairID: blocking.PairID(a, b), RecordA: a, RecordB: b})
	log.Append(audit.Entry{PairID: blocking.PairID(b, c), RecordA: b, RecordB: c})

	if got := len(log.ForRecord(b)); got != 2 {
		t.Errorf("ForRecord(b) = %d entries, want 2", got)
	}
	if got := len(log.ForRecord(a)); got != 1 {
		t.Errorf("ForRecord(a) = %d entries, want 1", got)
	}
	if got := len(log.ForRecord(records.NewID("src", 9))); got != 0 {
		t.Errorf("ForRecord(unknown) = %d entries, want 0", got)
	}
}
