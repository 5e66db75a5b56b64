package stemset

import (
	"github.com/blackmindsinstem/stemset/internal/review"
	"github.com/blackmindsinstem/stemset/pkg/classify"
	"github.com/blackmindsinstem/stemset/pkg/errors"
	"github.com/blackmindsinstem/stemset/pkg/vocab"
)

// config holds pipeline configuration assembled from options.
type config struct {
	dataDirs   []string
	outputDir  string
	vocabulary *vocab.Vocabulary
	thresholds classify.Thresholds
	decisions  []review.File
}

func defaultConfig() *config {
	return &config{
		dataDirs:   []string{"data"},
		thresholds: classify.DefaultThresholds(),
	}
}

// Option is a function that configures a Pipeline instance.
type Option func(*config) error

// WithDataDirs sets the directories scanned for source CSV files.
func WithDataDirs(dirs ...string) Option {
	return func(c *config) error {
		if len(dirs) == 0 {
			return &errors.ValidationError{Field: "dataDirs", Message: "at least one directory required"}
		}
		c.dataDirs = dirs
		return nil
	}
}

// WithOutputDir sets the directory report artifacts are written to.
// Leave unset to resolve in memory without writing anything.
func WithOutputDir(dir string) Option {
	return func(c *config) error {
		c.outputDir = dir
		return nil
	}
}

// WithVocabulary replaces the embedded keyword vocabulary.
func WithVocabulary(v *vocab.Vocabulary) Option {
	return func(c *config) error {
		if v == nil {
			return &errors.ValidationError{Field: "vocabulary", Message: "cannot be nil"}
		}
		c.vocabulary = v
		return nil
	}
}

// WithVocabularyFile loads a keyword vocabulary from a YAML file.
func WithVocabularyFile(path string) Option {
	return func(c *config) error {
		v, err := vocab.Load(path)
		if err != nil {
			return err
		}
		c.vocabulary = v
		return nil
	}
}

// WithThresholds overrides the classifier similarity cutoffs.
func WithThresholds(t classify.Thresholds) Option {
	return func(c *config) error {
		c.thresholds = t
		return nil
	}
}

// WithNonK12Decisions applies a reviewed non-K-12 flags file before
// resolution. Rows marked KEEP are retained; REMOVE or blank rows drop
// the matching records.
func WithNonK12Decisions(path string) Option {
	return func(c *config) error {
		c.decisions = append(c.decisions, review.File{
			Category: "non_k12",
			Path:     path,
			Mode:     review.ModeDecisions,
		})
		return nil
	}
}

// WithEducatorDecisions applies an educator-resource flags file before
// resolution. Every listed row is removed.
func WithEducatorDecisions(path string) Option {
	return func(c *config) error {
		c.decisions = append(c.decisions, review.File{
			Category: "educator",
			Path:     path,
			Mode:     review.ModeRemoveAll,
		})
		return nil
	}
}
