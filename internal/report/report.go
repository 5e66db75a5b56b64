// Package report serializes the output of a cleaning run: the survivor
// table, removal and review manifests, the full audit log, and a pair of
// human-oriented summaries. Every artifact lands in one output directory
// so a run can be reviewed or diffed as a unit.
package report

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/blackmindsinstem/stemset/pkg/classify"
	"github.com/blackmindsinstem/stemset/pkg/errors"
	"github.com/blackmindsinstem/stemset/pkg/logging"
	"github.com/blackmindsinstem/stemset/pkg/records"
	"github.com/blackmindsinstem/stemset/pkg/resolve"
)

// Artifact file names within the output directory.
const (
	SurvivorsFile  = "cleaned_programs.csv"
	RemovedFile    = "removed_duplicates.csv"
	ReviewFile     = "needs_review.csv"
	AuditFile      = "audit_log.csv"
	SummaryFile    = "cleaning_summary.txt"
	VariationsFile = "program_variations.txt"
)

// Writer emits run artifacts into a single directory.
type Writer struct {
	dir string
}

// NewWriter creates a Writer that emits into dir, creating it if needed.
func NewWriter(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.WrapIO("create", dir, err)
	}
	return &Writer{dir: dir}, nil
}

// WriteAll emits every artifact for one run. flagged holds the records
// removed by human decision files, keyed by category.
func (w *Writer) WriteAll(ctx context.Context, result *resolve.Result, classifier *classify.Classifier, flagged map[string][]*records.Record) error {
	log := logging.Ctx(ctx)

	steps := []struct {
		name string
		fn   func() error
	}{
		{SurvivorsFile, func() error { return w.WriteSurvivors(result.Survivors) }},
		{RemovedFile, func() error { return w.WriteRemoved(result.Removed) }},
		{ReviewFile, func() error { return w.WriteReview(result.Review) }},
		{AuditFile, func() error { return w.WriteAudit(result) }},
		{SummaryFile, func() error { return w.WriteSummary(result, flagged) }},
		{VariationsFile, func() error { return w.WriteVariations(result.Survivors, classifier) }},
	}
	for _, step := range steps {
		if err := step.fn(); err != nil {
			return err
		}
		log.Info().Str("artifact", step.name).Msg("wrote report artifact")
	}
	return nil
}

// WriteSurvivors writes the cleaned table with every column it carried in,
// core columns first.
func (w *Writer) WriteSurvivors(table *records.Table) error {
	header := append([]string{"id"}, table.Columns()...)
	rows := make([][]string, 0, table.Len())
	for _, r := range table.Records() {
		row := make([]string, 0, len(header))
		row = append(row, r.ID.String())
		for _, col := range table.Columns() {
			row = append(row, r.Field(col))
		}
		rows = append(rows, row)
	}
	return w.writeCSV(SurvivorsFile, header, rows)
}

// WriteRemoved writes the exact-duplicate removals, each with a back
// reference to the record that superseded it.
func (w *Writer) WriteRemoved(removed []resolve.Removal) error {
	header := []string{
		"id", records.ColName, records.ColURL,
		records.ColSource, records.ColSourceFile, "superseded_by",
	}
	rows := make([][]string, 0, len(removed))
	for _, rm := range removed {
		rows = append(rows, []string{
			rm.Record.ID.String(), rm.Record.Name, rm.Record.URL,
			rm.Record.Source, rm.Record.SourceFile, rm.SupersededBy.String(),
		})
	}
	return w.writeCSV(RemovedFile, header, rows)
}

// WriteReview writes the ambiguous records awaiting human adjudication.
func (w *Writer) WriteReview(items []resolve.ReviewItem) error {
	header := []string{
		"id", records.ColName, records.ColDescription, records.ColURL,
		records.ColSourceFile, "candidate_duplicate_of", "reason",
	}
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{
			item.Record.ID.String(), item.Record.Name, item.Record.Description,
			item.Record.URL, item.Record.SourceFile,
			item.CandidateDuplicateOf.String(), item.Reason,
		})
	}
	return w.writeCSV(ReviewFile, header, rows)
}

// WriteAudit writes every pairwise decision of the run.
func (w *Writer) WriteAudit(result *resolve.Result) error {
	header := []string{
		"pair_id", "record_a", "record_b",
		"name_similarity", "description_similarity", "url_equal",
		"grade_compatible", "outcome", "reason", "timestamp",
	}
	entries := result.Audit.Entries()
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.PairID, e.RecordA.String(), e.RecordB.String(),
			strconv.FormatFloat(e.Vector.NameSimilarity, 'f', 1, 64),
			strconv.FormatFloat(e.Vector.DescriptionSimilarity, 'f', 1, 64),
			strconv.FormatBool(e.Vector.URLEqual),
			e.Vector.GradeCompatible.String(),
			string(e.Outcome), e.Reason,
			e.Timestamp.Format(time.RFC3339),
		})
	}
	return w.writeCSV(AuditFile, header, rows)
}

// WriteSummary writes the human-oriented run summary: headline counts,
// decision-file removals by category, record counts per source, and per
// column completeness of the surviving table.
func (w *Writer) WriteSummary(result *resolve.Result, flagged map[string][]*records.Record) error {
	var b strings.Builder
	s := result.Stats

	b.WriteString("DATA CLEANING SUMMARY\n")
	b.WriteString("=====================\n\n")
	fmt.Fprintf(&b, "Records in:           %d\n", s.RecordsIn)
	fmt.Fprintf(&b, "Candidate pairs:      %d\n", s.CandidatePairs)
	fmt.Fprintf(&b, "Exact duplicates:     %d\n", s.ExactDuplicates)
	fmt.Fprintf(&b, "Legitimate variations:%d\n", s.Variations)
	fmt.Fprintf(&b, "Ambiguous (review):   %d\n", s.Ambiguous)
	fmt.Fprintf(&b, "Removed:              %d\n", s.Removed)
	fmt.Fprintf(&b, "Survivors:            %d\n", s.Survivors)
	fmt.Fprintf(&b, "Elapsed:              %dms\n", s.TotalTimeMs)

	if len(flagged) > 0 {
		b.WriteString("\nREVIEW DECISION REMOVALS\n")
		b.WriteString("------------------------\n")
		categories := make([]string, 0, len(flagged))
		for cat := range flagged {
			categories = append(categories, cat)
		}
		sort.Strings(categories)
		for _, cat := range categories {
			fmt.Fprintf(&b, "%-20s %d\n", cat, len(flagged[cat]))
		}
	}

	b.WriteString("\nRECORDS PER SOURCE\n")
	b.WriteString("------------------\n")
	for _, sc := range sourceCounts(result.Survivors) {
		fmt.Fprintf(&b, "%-30s %d\n", sc.source, sc.count)
	}

	b.WriteString("\nCOLUMN COMPLETENESS\n")
	b.WriteString("-------------------\n")
	total := result.Survivors.Len()
	for _, col := range result.Survivors.Columns() {
		filled := 0
		for _, r := range result.Survivors.Records() {
			if strings.TrimSpace(r.Field(col)) != "" {
				filled++
			}
		}
		pct := 0.0
		if total > 0 {
			pct = float64(filled) / float64(total) * 100
		}
		fmt.Fprintf(&b, "%-30s %5.1f%% (%d/%d)\n", col, pct, filled, total)
	}

	return w.writeFile(SummaryFile, b.String())
}

// WriteVariations writes the preserved program variations grouped by
// parent family, each member annotated with its distinguishing features.
func (w *Writer) WriteVariations(table *records.Table, classifier *classify.Classifier) error {
	families := make(map[string][]*records.Record)
	for _, r := range table.Records() {
		if family := classifier.FamilyOf(r); family != "" {
			families[family] = append(families[family], r)
		}
	}

	var b strings.Builder
	b.WriteString("PRESERVED PROGRAM VARIATIONS\n")
	b.WriteString("============================\n")

	names := make([]string, 0, len(families))
	for name, members := range families {
		if len(members) > 1 {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	if len(names) == 0 {
		b.WriteString("\nNo multi-variant program families in the cleaned set.\n")
	}
	for _, name := range names {
		fmt.Fprintf(&b, "\n%s (%d variants)\n", name, len(families[name]))
		for _, r := range families[name] {
			fmt.Fprintf(&b, "  - %s [%s]\n", r.Name, r.SourceFile)
			for _, feature := range classifier.Features(r) {
				fmt.Fprintf(&b, "      %s\n", feature)
			}
		}
	}
	return w.writeFile(VariationsFile, b.String())
}

func (w *Writer) writeCSV(name string, header []string, rows [][]string) error {
	path := filepath.Join(w.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return errors.WrapIO("create", path, err)
	}

	cw := csv.NewWriter(f)
	if err := cw.Write(header); err != nil {
		f.Close()
		return errors.WrapIO("write", path, err)
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			f.Close()
			return errors.WrapIO("write", path, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		f.Close()
		return errors.WrapIO("write", path, err)
	}
	if err := f.Close(); err != nil {
		return errors.WrapIO("close", path, err)
	}
	return nil
}

func (w *Writer) writeFile(name, content string) error {
	path := filepath.Join(w.dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}

type sourceCount struct {
	source string
	count  int
}

// sourceCounts tallies surviving records per source tag, most populous
// first, ties broken by name.
func sourceCounts(table *records.Table) []sourceCount {
	counts := make(map[string]int)
	for _, r := range table.Records() {
		counts[r.Source]++
	}
	out := make([]sourceCount, 0, len(counts))
	for source, count := range counts {
		out = append(out, sourceCount{source, count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].source < out[j].source
	})
	return out
}
