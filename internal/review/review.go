// Package review applies human adjudication files to the record table
// before resolution runs. Earlier cleaning passes flag rows (out-of-scope
// audiences, educator-only resources) into CSV files that a reviewer
// marks up with a Decisions column; this package removes the rows the
// reviewer rejected and keeps the rest.
package review

import (
	"context"
	"encoding/csv"
	"os"
	"strings"

	"github.com/blackmindsinstem/stemset/pkg/errors"
	"github.com/blackmindsinstem/stemset/pkg/logging"
	"github.com/blackmindsinstem/stemset/pkg/records"
)

// Mode selects how a decision file is interpreted.
type Mode int

const (
	// ModeDecisions honors the Decisions column: rows marked KEEP stay,
	// rows marked REMOVE or left blank are removed. A blank decision
	// counts as removal; the reviewer opted nothing in.
	ModeDecisions Mode = iota
	// ModeRemoveAll removes every row listed in the file.
	ModeRemoveAll
)

// File is one decision file to apply.
type File struct {
	Category string // e.g. "non_k12", "educator"; keys the removal report
	Path     string
	Mode     Mode
}

// flag is one row of a decision file.
type flag struct {
	name       string
	sourceFile string
	decision   string
}

// Apply removes flagged rows from the table, returning the filtered table
// and the removed records grouped by category. A missing decision file is
// skipped; the cleaning run simply has nothing to apply for it.
func Apply(ctx context.Context, table *records.Table, files []File) (*records.Table, map[string][]*records.Record, error) {
	log := logging.Ctx(ctx)
	removedByCategory := make(map[string][]*records.Record)
	drop := make(map[records.ID]bool)

	for _, file := range files {
		flags, err := loadFlags(file.Path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				log.Warn().
					Str("category", file.Category).
					Str("path", file.Path).
					Msg("decision file not found, skipping")
				continue
			}
			return nil, nil, err
		}

		removed := 0
		for _, fl := range flags {
			if file.Mode == ModeDecisions && fl.decision == "KEEP" {
				continue
			}
			for _, r := range match(table, fl) {
				if drop[r.ID] {
					continue
				}
				drop[r.ID] = true
				removedByCategory[file.Category] = append(removedByCategory[file.Category], r)
				removed++
			}
		}
		log.Info().
			Str("category", file.Category).
			Int("flagged", len(flags)).
			Int("removed", removed).
			Msg("applied decision file")
	}

	keep := make(map[records.ID]bool, table.Len())
	for _, r := range table.Records() {
		if !drop[r.ID] {
			keep[r.ID] = true
		}
	}
	return table.Select(keep), removedByCategory, nil
}

// match finds table rows with the flagged name and origin file.
func match(table *records.Table, fl flag) []*records.Record {
	var out []*records.Record
	for _, r := range table.Records() {
		if r.Name == fl.name && r.SourceFile == fl.sourceFile {
			out = append(out, r)
		}
	}
	return out
}

// loadFlags reads one decision CSV. The reviewer files carry at least a
// name column and a file_source column (with the .csv extension still
// on); the Decisions column may be absent, blank, or cased freely.
func loadFlags(path string) ([]flag, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.WrapIO("parse", path, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	nameIdx, sourceIdx, decisionIdx := -1, -1, -1
	for i, col := range rows[0] {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case "name":
			nameIdx = i
		case "file_source":
			sourceIdx = i
		case "decisions", "decision":
			decisionIdx = i
		}
	}
	if nameIdx < 0 || sourceIdx < 0 {
		return nil, &errors.ValidationError{
			Field:   "header",
			Value:   path,
			Message: "decision file needs name and file_source columns",
		}
	}

	var flags []flag
	for _, row := range rows[1:] {
		if nameIdx >= len(row) || sourceIdx >= len(row) {
			continue
		}
		fl := flag{
			name:       row[nameIdx],
			sourceFile: strings.TrimSuffix(row[sourceIdx], ".csv"),
		}
		if decisionIdx >= 0 && decisionIdx < len(row) {
			fl.decision = strings.ToUpper(strings.TrimSpace(row[decisionIdx]))
		}
		flags = append(flags, fl)
	}
	return flags, nil
}
