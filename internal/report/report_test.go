package report_test

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackmindsinstem/stemset/internal/report"
	"github.com/blackmindsinstem/stemset/pkg/classify"
	"github.com/blackmindsinstem/stemset/pkg/records"
	"github.com/blackmindsinstem/stemset/pkg/resolve"
)

func newClassifier(t *testing.T) *classify.Classifier {
	t.Helper()
	c, err := classify.New()
	require.NoError(t, err)
	return c
}

func resolveTable(t *testing.T, rs ...*records.Record) *resolve.Result {
	t.Helper()
	table := records.NewTable()
	for i, r := range rs {
		if r.ID == "" {
			r.ID = records.NewID("test", i)
		}
		require.NoError(t, table.Add(r))
	}
	engine, err := resolve.New()
	require.NoError(t, err)
	result, err := engine.Resolve(table)
	require.NoError(t, err)
	return result
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func readText(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestWriteAll(t *testing.T) {
	result := resolveTable(t,
		&records.Record{Name: "Code Quest", Description: "An evening coding club.", URL: "https://x.org/a", Source: "a", SourceFile: "a"},
		&records.Record{Name: "Code Quest", Description: "An evening coding club.", URL: "https://x.org/a", TargetGrade: "9-12", Source: "a", SourceFile: "a"},
	)

	dir := t.TempDir()
	w, err := report.NewWriter(dir)
	require.NoError(t, err)
	flagged := map[string][]*records.Record{
		"non_k12": {{Name: "Adult Bootcamp"}},
	}
	require.NoError(t, w.WriteAll(context.Background(), result, newClassifier(t), flagged))

	for _, name := range []string{
		report.SurvivorsFile, report.RemovedFile, report.ReviewFile,
		report.AuditFile, report.SummaryFile, report.VariationsFile,
	} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
}

func TestWriteSurvivorsCarriesAllColumns(t *testing.T) {
	result := resolveTable(t,
		&records.Record{
			Name: "Space Camp", URL: "https://x.org", Source: "nasa", SourceFile: "nasa",
			Extra: map[string]string{"cost": "free"},
		},
	)

	dir := t.TempDir()
	w, err := report.NewWriter(dir)
	require.NoError(t, err)
	require.NoError(t, w.WriteSurvivors(result.Survivors))

	rows := readCSV(t, filepath.Join(dir, report.SurvivorsFile))
	require.Len(t, rows, 2)
	assert.Equal(t, "id", rows[0][0])
	assert.Contains(t, rows[0], "cost")
	assert.Contains(t, rows[1], "free")
	assert.Contains(t, rows[1], "Space Camp")
}

func TestWriteRemovedReferencesSurvivor(t *testing.T) {
	result := resolveTable(t,
		&records.Record{Name: "Code Quest", Description: "An evening coding club.", URL: "https://x.org/a"},
		&records.Record{Name: "Code Quest", Description: "An evening coding club.", URL: "https://x.org/a", TargetGrade: "9-12"},
	)
	require.Len(t, result.Removed, 1)

	dir := t.TempDir()
	w, err := report.NewWriter(dir)
	require.NoError(t, err)
	require.NoError(t, w.WriteRemoved(result.Removed))

	rows := readCSV(t, filepath.Join(dir, report.RemovedFile))
	require.Len(t, rows, 2)
	superseded := rows[1][len(rows[1])-1]
	assert.Equal(t, result.Removed[0].SupersededBy.String(), superseded)
}

func TestWriteAuditHasOneRowPerPair(t *testing.T) {
	result := resolveTable(t,
		&records.Record{Name: "AI4ALL @ Stanford", Description: "AI program.", URL: "https://ai4all.org"},
		&records.Record{Name: "AI4ALL @ MIT", Description: "AI program.", URL: "https://ai4all.org"},
	)

	dir := t.TempDir()
	w, err := report.NewWriter(dir)
	require.NoError(t, err)
	require.NoError(t, w.WriteAudit(result))

	rows := readCSV(t, filepath.Join(dir, report.AuditFile))
	require.Len(t, rows, 2)
	assert.Equal(t, string(classify.KindVariation), rows[1][7])
	assert.Equal(t, classify.ReasonLocation, rows[1][8])
}

func TestWriteSummary(t *testing.T) {
	result := resolveTable(t,
		&records.Record{Name: "Space Camp", URL: "https://x.org", Source: "nasa", SourceFile: "nasa"},
		&records.Record{Name: "Rocket Club", Source: "nasa", SourceFile: "nasa"},
	)

	dir := t.TempDir()
	w, err := report.NewWriter(dir)
	require.NoError(t, err)
	flagged := map[string][]*records.Record{
		"educator": {{Name: "Teacher Toolkit"}, {Name: "Lesson Plans"}},
	}
	require.NoError(t, w.WriteSummary(result, flagged))

	text := readText(t, filepath.Join(dir, report.SummaryFile))
	assert.Contains(t, text, "Records in:           2")
	assert.Contains(t, text, "educator")
	assert.Contains(t, text, "nasa")
	assert.Contains(t, text, "COLUMN COMPLETENESS")
	// name is filled on both rows, url on one.
	assert.Contains(t, text, "100.0% (2/2)")
	assert.Contains(t, text, "50.0% (1/2)")
}

func TestWriteVariationsGroupsByFamily(t *testing.T) {
	result := resolveTable(t,
		&records.Record{Name: "AI4ALL @ Stanford", Description: "AI program.", URL: "https://ai4all.org/s", SourceFile: "a"},
		&records.Record{Name: "AI4ALL @ MIT", Description: "AI program.", URL: "https://ai4all.org/m", SourceFile: "a"},
		&records.Record{Name: "Chess Masters", Description: "A ladder.", SourceFile: "a", Source: "a"},
	)

	dir := t.TempDir()
	w, err := report.NewWriter(dir)
	require.NoError(t, err)
	require.NoError(t, w.WriteVariations(result.Survivors, newClassifier(t)))

	text := readText(t, filepath.Join(dir, report.VariationsFile))
	assert.Contains(t, text, "(2 variants)")
	assert.Contains(t, text, "AI4ALL @ Stanford")
	assert.Contains(t, text, "Location: Stanford")
	assert.NotContains(t, text, "Chess Masters")
}

func TestWriteVariationsEmpty(t *testing.T) {
	result := resolveTable(t,
		&records.Record{Name: "Chess Masters", Description: "A ladder.", SourceFile: "a", Source: "a"},
	)

	dir := t.TempDir()
	w, err := report.NewWriter(dir)
	require.NoError(t, err)
	require.NoError(t, w.WriteVariations(result.Survivors, newClassifier(t)))

	text := readText(t, filepath.Join(dir, report.VariationsFile))
	assert.True(t, strings.Contains(text, "No multi-variant"))
}
