// Package stemset deduplicates scraped STEM enrichment program listings.
// It removes exact republications of the same program while preserving
// legitimate variations (campus, session, subject track), flags ambiguous
// near-matches for human review, and records every pairwise decision in
// an audit log.
package stemset

import (
	"context"
	"fmt"

	"github.com/blackmindsinstem/stemset/internal/ingest"
	"github.com/blackmindsinstem/stemset/internal/report"
	"github.com/blackmindsinstem/stemset/internal/review"
	"github.com/blackmindsinstem/stemset/pkg/classify"
	"github.com/blackmindsinstem/stemset/pkg/logging"
	"github.com/blackmindsinstem/stemset/pkg/resolve"
)

// Pipeline runs a complete cleaning pass over the configured data
// directories.
type Pipeline interface {
	// Run loads, filters, and resolves the dataset, writing report
	// artifacts when an output directory is configured.
	Run(ctx context.Context) (*resolve.Result, error)
}

// pipeline is the internal implementation of the Pipeline interface.
type pipeline struct {
	config     *config
	classifier *classify.Classifier
}

// New creates a Pipeline with the given options.
func New(opts ...Option) (Pipeline, error) {
	p := &pipeline{config: defaultConfig()}
	for _, opt := range opts {
		if err := opt(p.config); err != nil {
			return nil, fmt.Errorf("applying options: %w", err)
		}
	}

	classifierOpts := []classify.Option{
		classify.WithThresholds(p.config.thresholds),
	}
	if p.config.vocabulary != nil {
		classifierOpts = append(classifierOpts, classify.WithVocabulary(p.config.vocabulary))
	}
	classifier, err := classify.New(classifierOpts...)
	if err != nil {
		return nil, err
	}
	p.classifier = classifier
	return p, nil
}

// Run executes the pipeline: ingest, decision-file filtering, resolution,
// and reporting.
func (p *pipeline) Run(ctx context.Context) (*resolve.Result, error) {
	log := logging.Ctx(ctx)

	table, issues, err := ingest.New(p.config.dataDirs...).Load(ctx)
	if err != nil {
		return nil, err
	}
	for _, issue := range issues {
		log.Warn().
			Str("source_file", issue.SourceFile).
			Int("row", issue.Row).
			Str("field", issue.Field).
			Msg("excluded row: " + issue.Message)
	}

	table, flagged, err := review.Apply(ctx, table, p.config.decisions)
	if err != nil {
		return nil, err
	}

	engine, err := resolve.New(resolve.WithClassifier(p.classifier))
	if err != nil {
		return nil, err
	}
	result, err := engine.Resolve(table)
	if err != nil {
		return nil, err
	}
	log.Info().
		Int("records_in", result.Stats.RecordsIn).
		Int("pairs", result.Stats.CandidatePairs).
		Int("exact_duplicates", result.Stats.ExactDuplicates).
		Int("variations", result.Stats.Variations).
		Int("ambiguous", result.Stats.Ambiguous).
		Int("survivors", result.Stats.Survivors).
		Int64("elapsed_ms", result.Stats.TotalTimeMs).
		Msg("resolution complete")

	if p.config.outputDir != "" {
		writer, err := report.NewWriter(p.config.outputDir)
		if err != nil {
			return nil, err
		}
		if err := writer.WriteAll(ctx, result, p.classifier, flagged); err != nil {
			return nil, err
		}
	}
	return result, nil
}
