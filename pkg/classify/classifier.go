// Package classify applies the duplicate-classification rules to candidate
// pairs. For every pair it answers one question in a single step: same
// entity republished, genuinely different entities sharing a parent
// program, or ambiguous and deferred to a human. The rules are
// deliberately strict about merging; losing a distinct program is worse
// than leaving two near-identical rows for manual review.
package classify

import (
	"github.com/blackmindsinstem/stemset/pkg/blocking"
	"github.com/blackmindsinstem/stemset/pkg/errors"
	"github.com/blackmindsinstem/stemset/pkg/similarity"
	"github.com/blackmindsinstem/stemset/pkg/vocab"
)

// Kind is the terminal classification of a candidate pair.
type Kind string

const (
	// KindExactDuplicate marks a republished same entity; one record is
	// removed in favor of the more complete one.
	KindExactDuplicate Kind = "exact_duplicate"
	// KindVariation marks two genuinely different entities that share
	// surface similarity; both are kept.
	KindVariation Kind = "legitimate_variation"
	// KindAmbiguous marks a pair deferred to human adjudication.
	KindAmbiguous Kind = "ambiguous"
	// KindNone marks a pair below the noise floor; it is audited but
	// otherwise not reported.
	KindNone Kind = "none"
)

// ReasonAmbiguous is the fixed explanation attached to ambiguous pairs.
const ReasonAmbiguous = "high name similarity, no distinguishing feature found, no exact match"

// Outcome is the result of classifying one pair.
type Outcome struct {
	Kind   Kind
	Reason string // closed-set category for variations, fixed text for ambiguous
	Detail string // human-oriented elaboration, e.g. the differing keywords
}

// Thresholds are the similarity cutoffs of the decision rules.
// All four exact-duplicate conditions must hold at once.
type Thresholds struct {
	ExactName        float64 // name similarity floor for exact duplicates
	ExactDescription float64 // description similarity floor for exact duplicates
	AmbiguousName    float64 // name similarity floor below which pairs are noise
}

// DefaultThresholds returns the production cutoffs.
func DefaultThresholds() Thresholds {
	return Thresholds{
		ExactName:        95,
		ExactDescription: 90,
		AmbiguousName:    80,
	}
}

// Classifier decides the outcome for candidate pairs.
type Classifier struct {
	scorer     *similarity.Scorer
	detector   *detector
	thresholds Thresholds
}

// Option configures a Classifier.
type Option func(*Classifier) error

// WithScorer replaces the default similarity scorer.
func WithScorer(s *similarity.Scorer) Option {
	return func(c *Classifier) error {
		if s == nil {
			return &errors.ValidationError{Field: "scorer", Message: "cannot be nil"}
		}
		c.scorer = s
		return nil
	}
}

// WithVocabulary replaces the default keyword vocabulary used by the
// distinguishing-feature detector.
func WithVocabulary(v *vocab.Vocabulary) Option {
	return func(c *Classifier) error {
		if v == nil {
			return &errors.ValidationError{Field: "vocabulary", Message: "cannot be nil"}
		}
		if err := v.Validate(); err != nil {
			return err
		}
		c.detector = newDetector(v)
		return nil
	}
}

// WithThresholds replaces the default similarity cutoffs.
func WithThresholds(t Thresholds) Option {
	return func(c *Classifier) error {
		if t.ExactName <= 0 || t.ExactName > 100 ||
			t.ExactDescription <= 0 || t.ExactDescription > 100 ||
			t.AmbiguousName <= 0 || t.AmbiguousName > 100 {
			return &errors.ValidationError{
				Field:   "thresholds",
				Value:   t,
				Message: "cutoffs must be in (0, 100]",
			}
		}
		c.thresholds = t
		return nil
	}
}

// New creates a Classifier with options.
func New(opts ...Option) (*Classifier, error) {
	scorer, err := similarity.NewScorer()
	if err != nil {
		return nil, err
	}
	c := &Classifier{
		scorer:     scorer,
		detector:   newDetector(vocab.Default()),
		thresholds: DefaultThresholds(),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Classify applies the decision rules to one candidate pair, returning the
// outcome and the similarity vector it was decided on. It never mutates
// the records and never fails.
func (c *Classifier) Classify(pair blocking.Pair) (Outcome, similarity.Vector) {
	v := c.scorer.Score(pair.A, pair.B)

	// Rule 1: strict conjunction for exact duplicates. Any single
	// failing condition disqualifies the merge. Republication is proven
	// either by a shared URL or by an exact (name, source) match; records
	// without URLs have only the latter path.
	if (v.URLEqual || pair.Matched(blocking.DimensionNameSource)) &&
		v.NameSimilarity >= c.thresholds.ExactName &&
		v.DescriptionSimilarity >= c.thresholds.ExactDescription &&
		v.GradeCompatible.Compatible() {
		return Outcome{Kind: KindExactDuplicate}, v
	}

	// Rule 2: a distinguishing feature makes the pair a legitimate
	// variation of the same parent program.
	if reason, detail, found := c.detector.detect(pair.A, pair.B, v); found {
		return Outcome{Kind: KindVariation, Reason: reason, Detail: detail}, v
	}

	// Rule 3: close names with nothing telling them apart go to review.
	if v.NameSimilarity >= c.thresholds.AmbiguousName {
		return Outcome{Kind: KindAmbiguous, Reason: ReasonAmbiguous}, v
	}

	// Rule 4: below the noise floor.
	return Outcome{Kind: KindNone}, v
}
