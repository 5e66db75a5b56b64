// Package ingest loads the raw record table from CSV files scattered
// across the configured data directories. It concatenates every source
// file into one logical table, tags each row with its origin, and filters
// out rows that cannot enter resolution (missing name), reporting them as
// data-quality issues instead of processing them.
package ingest

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"

	"github.com/blackmindsinstem/stemset/pkg/errors"
	"github.com/blackmindsinstem/stemset/pkg/logging"
	"github.com/blackmindsinstem/stemset/pkg/normalize"
	"github.com/blackmindsinstem/stemset/pkg/records"
)

// Issue is one excluded row, surfaced to the caller for reporting.
type Issue = errors.DataQualityError

// Loader reads source CSV files into a record table.
type Loader struct {
	dirs []string
}

// New creates a Loader over the given data directories.
func New(dirs ...string) *Loader {
	return &Loader{dirs: dirs}
}

// Load reads every CSV file under the configured directories into one
// table. Files whose stem contains "progress" are scraper bookkeeping,
// not resource data, and are skipped. A missing directory is logged and
// skipped, matching how partial scraper output is usually laid out.
func (l *Loader) Load(ctx context.Context) (*records.Table, []Issue, error) {
	log := logging.Ctx(ctx)
	table := records.NewTable()
	var issues []Issue

	for _, dir := range l.dirs {
		if _, err := os.Stat(dir); err != nil {
			log.Warn().Str("dir", dir).Msg("data directory not found, skipping")
			continue
		}

		paths, err := filepath.Glob(filepath.Join(dir, "*.csv"))
		if err != nil {
			return nil, nil, errors.WrapIO("scan", dir, err)
		}

		for _, path := range paths {
			stem := fileStem(path)
			if strings.Contains(strings.ToLower(stem), "progress") {
				continue
			}

			n, fileIssues, err := l.loadFile(path, stem, table)
			if err != nil {
				return nil, nil, err
			}
			issues = append(issues, fileIssues...)
			log.Info().
				Str("source_file", stem).
				Int("rows", n).
				Msg("loaded source file")
		}
	}

	log.Info().
		Int("records", table.Len()).
		Int("excluded", len(issues)).
		Msg("ingestion complete")
	return table, issues, nil
}

// loadFile reads one CSV file into the table, returning the number of
// rows added and the rows excluded for data-quality reasons.
func (l *Loader) loadFile(path, stem string, table *records.Table) (int, []Issue, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, nil, errors.WrapIO("read", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // scraper output is ragged sometimes

	rows, err := reader.ReadAll()
	if err != nil {
		return 0, nil, errors.WrapIO("parse", path, err)
	}
	if len(rows) == 0 {
		return 0, nil, nil
	}

	header := rows[0]
	var issues []Issue
	added := 0

	for i, row := range rows[1:] {
		rowNum := i + 1
		r := buildRecord(header, row, stem, rowNum)

		if normalize.Field(r.Name) == "" {
			issues = append(issues, Issue{
				SourceFile: stem,
				Row:        rowNum,
				Field:      records.ColName,
				Message:    "required field is empty",
			})
			continue
		}

		if err := table.Add(r); err != nil {
			return added, issues, err
		}
		added++
	}
	return added, issues, nil
}

// buildRecord maps one CSV row onto a Record. Known columns feed the core
// fields; everything else rides along as opaque payload. The source tag
// defaults to the file stem when the row carries no source column.
func buildRecord(header, row []string, stem string, rowNum int) *records.Record {
	r := &records.Record{
		ID:         records.NewID(stem, rowNum),
		SourceFile: stem,
		Row:        rowNum,
	}

	for i, col := range header {
		if i >= len(row) {
			break
		}
		value := row[i]
		switch strings.ToLower(strings.TrimSpace(col)) {
		case records.ColName:
			r.Name = value
		case records.ColDescription:
			r.Description = value
		case records.ColURL:
			r.URL = value
		case records.ColTargetGrade:
			r.TargetGrade = value
		case records.ColSTEMFields:
			r.STEMFields = value
		case records.ColSource:
			r.Source = value
		case records.ColSourceFile:
			// Origin is assigned by the loader, not trusted from data.
		default:
			if r.Extra == nil {
				r.Extra = make(map[string]string)
			}
			r.Extra[col] = value
		}
	}

	if strings.TrimSpace(r.Source) == "" {
		r.Source = stem
	}
	return r
}

func fileStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
