// Package audit records every classification decision made during a
// resolution run. The log is append-only: entries are never updated or
// deleted, and the resolution engine is its only writer. It exists for
// human review and reproducibility, never for control flow.
package audit

import (
	"github.com/agentstation/utc"

	"github.com/blackmindsinstem/stemset/pkg/classify"
	"github.com/blackmindsinstem/stemset/pkg/records"
	"github.com/blackmindsinstem/stemset/pkg/similarity"
)

// Entry is one classified pair, keyed by its stable pair identifier.
type Entry struct {
	PairID    string
	RecordA   records.ID
	RecordB   records.ID
	Vector    similarity.Vector
	Outcome   classify.Kind
	Reason    string
	Timestamp utc.Time
}

// Log is the append-only sink of classification decisions.
type Log struct {
	entries []Entry
}

// NewLog creates an empty audit log.
func NewLog() *Log {
	return &Log{}
}

// Append adds an entry, stamping it with the current time when no
// timestamp was provided.
func (l *Log) Append(e Entry) {
	if e.Timestamp.IsZero() {
		e.Timestamp = utc.Now()
	}
	l.entries = append(l.entries, e)
}

// Len returns the number of entries.
func (l *Log) Len() int {
	return len(l.entries)
}

// Entries returns all entries in append order. The returned slice must
// not be modified.
func (l *Log) Entries() []Entry {
	return l.entries
}

// ForRecord returns every entry mentioning the given record, in append
// order.
func (l *Log) ForRecord(id records.ID) []Entry {
	var out []Entry
	for _, e := range l.entries {
		if e.RecordA == id || e.RecordB == id {
			out = append(out, e)
		}
	}
	return out
}
