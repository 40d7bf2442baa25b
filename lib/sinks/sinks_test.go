package sinks

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"zoomgrab/lib/scrapers/zoominfo"

	"github.com/stretchr/testify/require"
)

var batch1 = []zoominfo.Person{
	{FullName: "Joe Z. Dirt", Title: "Chief Yard Officer", Location: "Baton Rouge, LA", Email: "jdirt@acme.com"},
	{FullName: "Mary Skinner", Title: "", Location: "Boise", Email: "mskinner@acme.com"},
}

var batch2 = []zoominfo.Person{
	{FullName: "Cher", Title: "Icon", Location: "Unknown", Email: "ccher@acme.com"},
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("csv")
	require.NoError(t, err)
	require.Equal(t, FormatCsv, f)

	_, err = ParseFormat("yaml")
	require.Error(t, err)
}

func TestFlatWriter(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir, "acme.com", zoominfo.ConventionFLast, FormatFlat)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	require.NoError(t, w.WriteBatch(batch1))
	require.NoError(t, w.WriteBatch(batch2))

	contents, err := os.ReadFile(filepath.Join(dir, "acme.com-flast.txt"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(string(contents), "\n"), "\n")
	require.Len(t, lines, 3)
	require.Equal(t, "jdirt@acme.com|Joe Z. Dirt|Chief Yard Officer|Baton Rouge, LA", lines[0])
	require.Equal(t, "ccher@acme.com|Cher|Icon|Unknown", lines[2])
}

func TestCsvWriter(t *testing.T) {
	dir := t.TempDir()

	// a leftover file from a previous run is replaced by the header
	path := filepath.Join(dir, "acme.com-flast.csv")
	err := os.WriteFile(path, []byte("stale leftovers\n"), 0644)
	if err != nil {
		t.Fatal(err)
	}

	w, err := NewWriter(dir, "acme.com", zoominfo.ConventionFLast, FormatCsv)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	require.NoError(t, w.WriteBatch(batch1))

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(string(contents), "\n"), "\n")
	require.Equal(t, "Email,Full Name,Title,Location", lines[0])
	require.Len(t, lines, 3)
	// minimal quoting: only the field with a comma gets quotes
	require.Equal(t, `jdirt@acme.com,Joe Z. Dirt,Chief Yard Officer,"Baton Rouge, LA"`, lines[1])
}

func TestJsonWriter(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir, "acme.com", zoominfo.ConventionFull, FormatJson)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	require.NoError(t, w.WriteBatch(batch1))
	require.NoError(t, w.WriteBatch(batch2))

	contents, err := os.ReadFile(filepath.Join(dir, "acme.com-full.json"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(string(contents), "\n"), "\n")
	require.Len(t, lines, 3)

	// one json object per line, csv-compatible keys
	var first map[string]string
	err = json.Unmarshal([]byte(lines[0]), &first)
	require.NoError(t, err)
	require.Equal(t, map[string]string{
		"Email":     "jdirt@acme.com",
		"Full Name": "Joe Z. Dirt",
		"Title":     "Chief Yard Officer",
		"Location":  "Baton Rouge, LA",
	}, first)
}

func TestSqliteWriter(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir, "acme.com", zoominfo.ConventionFull, FormatSqlite)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	require.NoError(t, w.WriteBatch(batch1))
	require.NoError(t, w.WriteBatch(batch2))

	var count int
	err = w.db.QueryRow(`SELECT COUNT(*) FROM person`).Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 3, count)

	var email, location string
	err = w.db.QueryRow(`SELECT email, location FROM person WHERE full_name = 'Cher'`).Scan(&email, &location)
	require.NoError(t, err)
	require.Equal(t, "ccher@acme.com", email)
	require.Equal(t, "Unknown", location)
}

func TestWriterCreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "results")
	w, err := NewWriter(dir, "acme.com", zoominfo.ConventionFLast, FormatFlat)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	require.NoError(t, w.WriteBatch(batch2))
	_, err = os.Stat(filepath.Join(dir, "acme.com-flast.txt"))
	require.NoError(t, err)
}
