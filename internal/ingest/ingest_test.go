package ingest_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackmindsinstem/stemset/internal/ingest"
	"github.com/blackmindsinstem/stemset/pkg/records"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "nasa_programs.csv",
		"name,description,url,target_grade,stem_fields,cost\n"+
			"Space Camp,Week-long camp.,https://nasa.gov/camp,6-8,aerospace,free\n"+
			"Rocket Club,Build rockets.,https://nasa.gov/rockets,9-12,engineering,\n")

	table, issues, err := ingest.New(dir).Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, issues)
	require.Equal(t, 2, table.Len())

	r, err := table.Get(records.NewID("nasa_programs", 1))
	require.NoError(t, err)
	assert.Equal(t, "Space Camp", r.Name)
	assert.Equal(t, "https://nasa.gov/camp", r.URL)
	assert.Equal(t, "6-8", r.TargetGrade)
	assert.Equal(t, "aerospace", r.STEMFields)
	assert.Equal(t, "free", r.Extra["cost"])
	// Source defaults to the file stem when the data has no source column.
	assert.Equal(t, "nasa_programs", r.Source)
	assert.Equal(t, "nasa_programs", r.SourceFile)
}

func TestLoadSkipsProgressFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "programs.csv", "name\nSpace Camp\n")
	writeFile(t, dir, "scrape_progress.csv", "name\nShould Be Skipped\n")

	table, _, err := ingest.New(dir).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, table.Len())
}

func TestLoadReportsMissingNames(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "programs.csv",
		"name,description\n"+
			"Space Camp,Camp.\n"+
			"   ,No name here.\n"+
			"Rocket Club,Rockets.\n")

	table, issues, err := ingest.New(dir).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len())
	require.Len(t, issues, 1)
	assert.Equal(t, 2, issues[0].Row)
	assert.Equal(t, records.ColName, issues[0].Field)
}

func TestLoadSourceColumnWins(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "combined.csv",
		"name,source\n"+
			"Space Camp,nasa\n")

	table, _, err := ingest.New(dir).Load(context.Background())
	require.NoError(t, err)
	r, err := table.Get(records.NewID("combined", 1))
	require.NoError(t, err)
	assert.Equal(t, "nasa", r.Source)
	assert.Equal(t, "combined", r.SourceFile)
}

func TestLoadMissingDirectorySkipped(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "programs.csv", "name\nSpace Camp\n")

	table, _, err := ingest.New(filepath.Join(dir, "nope"), dir).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, table.Len())
}

func TestLoadRaggedRows(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "programs.csv",
		"name,description,url\n"+
			"Space Camp\n")

	table, _, err := ingest.New(dir).Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, table.Len())
	r, err := table.Get(records.NewID("programs", 1))
	require.NoError(t, err)
	assert.Equal(t, "Space Camp", r.Name)
	assert.Equal(t, "", r.URL)
}

func TestLoadMultipleDirectories(t *testing.T) {
	dirA := t.TempDir()
	dirB := t.TempDir()
	writeFile(t, dirA, "a.csv", "name\nAlpha Camp\n")
	writeFile(t, dirB, "b.csv", "name\nBeta Camp\n")

	table, _, err := ingest.New(dirA, dirB).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len())
}
