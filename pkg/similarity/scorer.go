package similarity

import (
	"github.com/blackmindsinstem/stemset/pkg/errors"
	"github.com/blackmindsinstem/stemset/pkg/normalize"
	"github.com/blackmindsinstem/stemset/pkg/records"
)

// GradeCompat is the tri-state outcome of the grade-range comparison.
type GradeCompat int

const (
	// GradeUnknown means at least one record has no grade range.
	GradeUnknown GradeCompat = iota
	// GradeMatch means both grade ranges are identical after normalization.
	GradeMatch
	// GradeMismatch means both ranges are present but differ.
	// Range notation is compared as text, not as numeric overlap.
	GradeMismatch
)

// String returns the audit-log representation of the compatibility state.
func (g GradeCompat) String() string {
	switch g {
	case GradeMatch:
		return "true"
	case GradeMismatch:
		return "false"
	default:
		return "unknown"
	}
}

// Compatible reports whether the state does not rule out a duplicate:
// a match or an unknown qualifies, a mismatch disqualifies.
func (g GradeCompat) Compatible() bool {
	return g != GradeMismatch
}

// Vector is the fixed-shape similarity signal set for one candidate pair.
// Every signal is symmetric in the two records.
type Vector struct {
	NameSimilarity        float64
	DescriptionSimilarity float64
	URLEqual              bool
	GradeCompatible       GradeCompat
}

// Scorer computes similarity vectors over normalized record fields.
type Scorer struct {
	metric Metric
}

// Option configures a Scorer.
type Option func(*Scorer) error

// WithMetric replaces the default edit-distance metric.
func WithMetric(m Metric) Option {
	return func(s *Scorer) error {
		if m == nil {
			return &errors.ValidationError{Field: "metric", Message: "cannot be nil"}
		}
		s.metric = m
		return nil
	}
}

// NewScorer creates a Scorer with options.
func NewScorer(opts ...Option) (*Scorer, error) {
	s := &Scorer{metric: NewLevenshteinMetric()}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Score computes the similarity vector for a pair of records. It never
// fails: malformed or missing fields compare as maximally dissimilar, so
// bad data can lower a match score but never inflate one.
func (s *Scorer) Score(a, b *records.Record) Vector {
	nameA := normalize.Field(a.Name)
	nameB := normalize.Field(b.Name)
	descA := normalize.Field(a.Description)
	descB := normalize.Field(b.Description)

	v := Vector{
		NameSimilarity:        s.metric.Ratio(nameA, nameB),
		DescriptionSimilarity: s.metric.Ratio(descA, descB),
		URLEqual:              urlEqual(a.URL, b.URL),
		GradeCompatible:       gradeCompat(a.TargetGrade, b.TargetGrade),
	}
	return v
}

// urlEqual compares normalized URLs. Two empty URLs are not equal: an
// empty key must never glue unrelated no-URL records together.
func urlEqual(a, b string) bool {
	ua := normalize.URL(a)
	ub := normalize.URL(b)
	if ua == "" || ub == "" {
		return false
	}
	return ua == ub
}

// gradeCompat compares grade-range strings by exact normalized equality.
// "9-12" vs "9" is a mismatch; the source data is too inconsistent about
// range notation to attempt numeric overlap.
func gradeCompat(a, b string) GradeCompat {
	ga := normalize.Field(a)
	gb := normalize.Field(b)
	if ga == "" || gb == "" {
		return GradeUnknown
	}
	if ga == gb {
		return GradeMatch
	}
	return GradeMismatch
}
