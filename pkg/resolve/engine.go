// Package resolve orchestrates a full entity-resolution run: blocking,
// pair classification, duplicate grouping, survivor selection, and the
// final partition of the corpus into survivors, removals, and records
// needing review. Resolution is a pure, deterministic function of the
// input table and configuration; it performs no I/O and emits no logs.
// Any broken invariant aborts the run with no partial output, because
// silent data loss is worse than no deduplication at all.
package resolve

import (
	"time"

	"github.com/blackmindsinstem/stemset/pkg/audit"
	"github.com/blackmindsinstem/stemset/pkg/blocking"
	"github.com/blackmindsinstem/stemset/pkg/classify"
	"github.com/blackmindsinstem/stemset/pkg/errors"
	"github.com/blackmindsinstem/stemset/pkg/records"
)

// Engine resolves a record table into the final partition.
type Engine struct {
	classifier *classify.Classifier
}

// Option configures an Engine.
type Option func(*Engine) error

// WithClassifier replaces the default pair classifier.
func WithClassifier(c *classify.Classifier) Option {
	return func(e *Engine) error {
		if c == nil {
			return &errors.ValidationError{Field: "classifier", Message: "cannot be nil"}
		}
		e.classifier = c
		return nil
	}
}

// New creates an Engine with options.
func New(opts ...Option) (*Engine, error) {
	classifier, err := classify.New()
	if err != nil {
		return nil, err
	}
	e := &Engine{classifier: classifier}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// ambiguousRef remembers one side of an ambiguous pair for the review set.
type ambiguousRef struct {
	record *records.Record
	other  records.ID
	reason string
}

// Resolve runs the full resolution over the input table. An empty table
// is not an error; it produces empty outputs. The input table is never
// mutated.
func (e *Engine) Resolve(table *records.Table) (*Result, error) {
	start := time.Now()
	if table == nil {
		return nil, &errors.ValidationError{Field: "table", Message: "cannot be nil"}
	}

	log := audit.NewLog()
	uf := newUnionFind()
	var ambiguous []ambiguousRef
	stats := Statistics{RecordsIn: table.Len()}

	// Classify every deduplicated candidate pair, auditing each one
	// regardless of outcome.
	pairs := blocking.Build(table).Pairs()
	stats.CandidatePairs = len(pairs)

	for _, pair := range pairs {
		outcome, vector := e.classifier.Classify(pair)
		log.Append(audit.Entry{
			PairID:  pair.ID(),
			RecordA: pair.A.ID,
			RecordB: pair.B.ID,
			Vector:  vector,
			Outcome: outcome.Kind,
			Reason:  outcome.Reason,
		})

		switch outcome.Kind {
		case classify.KindExactDuplicate:
			uf.union(pair.A, pair.B)
			stats.ExactDuplicates++
		case classify.KindVariation:
			stats.Variations++
		case classify.KindAmbiguous:
			ambiguous = append(ambiguous,
				ambiguousRef{record: pair.A, other: pair.B.ID, reason: outcome.Reason},
				ambiguousRef{record: pair.B, other: pair.A.ID, reason: outcome.Reason},
			)
			stats.Ambiguous++
		case classify.KindNone:
			stats.BelowFloor++
		}
	}

	// Resolve duplicate components to one survivor each.
	removals, removedBy, err := e.resolveComponents(table, uf)
	if err != nil {
		return nil, err
	}

	// Everything not removed survives.
	keep := make(map[records.ID]bool, table.Len())
	for _, r := range table.Records() {
		if _, removed := removedBy[r.ID]; !removed {
			keep[r.ID] = true
		}
	}
	survivors := table.Select(keep)

	// Records touched by an ambiguous pair are flagged for review unless
	// they were already removed as duplicates. Review is advisory; the
	// record stays in the survivor set.
	review := buildReview(ambiguous, removedBy)

	if err := checkPartition(table, survivors, removals); err != nil {
		return nil, err
	}

	stats.Removed = len(removals)
	stats.Survivors = survivors.Len()
	stats.TotalTimeMs = time.Since(start).Milliseconds()

	return &Result{
		Survivors: survivors,
		Removed:   removals,
		Review:    review,
		Audit:     log,
		Stats:     stats,
	}, nil
}

// resolveComponents picks one survivor per duplicate component and turns
// the rest into removals. A record claimed by two removal decisions is a
// fatal invariant violation.
func (e *Engine) resolveComponents(table *records.Table, uf *unionFind) ([]Removal, map[records.ID]records.ID, error) {
	var removals []Removal
	removedBy := make(map[records.ID]records.ID)

	for _, component := range uf.components() {
		group := make([]*records.Record, 0, len(component))
		for _, id := range component {
			r, err := table.Get(id)
			if err != nil {
				return nil, nil, err
			}
			group = append(group, r)
		}

		keep := survivor(group)
		if _, claimed := removedBy[keep.ID]; claimed {
			return nil, nil, errors.NewInvariantError(keep.ID.String(),
				"survivor was already removed by another duplicate group")
		}

		for _, r := range group {
			if r.ID == keep.ID {
				continue
			}
			if _, claimed := removedBy[r.ID]; claimed {
				return nil, nil, errors.NewInvariantError(r.ID.String(),
					"record removed by two duplicate groups")
			}
			removedBy[r.ID] = keep.ID
			removals = append(removals, Removal{Record: r, SupersededBy: keep.ID})
		}
	}
	return removals, removedBy, nil
}

// buildReview flattens ambiguous pair references into one review item per
// record, first ambiguous partner wins.
func buildReview(ambiguous []ambiguousRef, removedBy map[records.ID]records.ID) []ReviewItem {
	var review []ReviewItem
	seen := make(map[records.ID]bool)
	for _, ref := range ambiguous {
		if seen[ref.record.ID] {
			continue
		}
		if _, removed := removedBy[ref.record.ID]; removed {
			continue
		}
		seen[ref.record.ID] = true
		review = append(review, ReviewItem{
			Record:               ref.record,
			CandidateDuplicateOf: ref.other,
			Reason:               ref.reason,
		})
	}
	return review
}

// checkPartition verifies that survivors and removals partition the input
// exactly once each.
func checkPartition(input, survivors *records.Table, removals []Removal) error {
	if survivors.Len()+len(removals) != input.Len() {
		return errors.NewInvariantError("",
			"survivors and removals do not partition the input table")
	}
	for _, removal := range removals {
		if survivors.Has(removal.Record.ID) {
			return errors.NewInvariantError(removal.Record.ID.String(),
				"record appears removed and surviving simultaneously")
		}
	}
	return nil
}
