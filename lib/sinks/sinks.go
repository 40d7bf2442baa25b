package sinks

import (
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"zoomgrab/lib/scrapers/zoominfo"
	"zoomgrab/lib/sqliteutil"
)

type Format string

const (
	FormatFlat   Format = "flat"
	FormatCsv    Format = "csv"
	FormatJson   Format = "json"
	FormatSqlite Format = "sqlite"
)

var Formats = []Format{FormatFlat, FormatCsv, FormatJson, FormatSqlite}

func ParseFormat(s string) (Format, error) {
	for _, known := range Formats {
		if Format(s) == known {
			return known, nil
		}
	}
	return "", fmt.Errorf("unknown output format %q, expected one of %v", s, Formats)
}

var csvHeader = []string{"Email", "Full Name", "Title", "Location"}

// json objects are written with the same keys the csv header uses
type record struct {
	Email    string `json:"Email"`
	FullName string `json:"Full Name"`
	Title    string `json:"Title"`
	Location string `json:"Location"`
}

const personSchema = `
CREATE TABLE person (
	email TEXT NOT NULL,
	full_name TEXT NOT NULL,
	title TEXT NOT NULL,
	location TEXT NOT NULL
);
`

// Writer appends batches of extracted records to a file (or sqlite
// database) named <domain>-<convention>.<ext> inside the output
// directory. Each batch is flushed before WriteBatch returns, a run
// that dies mid-scrape keeps everything written so far.
type Writer struct {
	format   Format
	basePath string
	db       *sql.DB
}

func NewWriter(dir, domain string, convention zoominfo.Convention, format Format) (*Writer, error) {
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return nil, err
	}

	w := &Writer{
		format:   format,
		basePath: filepath.Join(dir, fmt.Sprintf("%s-%s", domain, convention)),
	}

	switch format {
	case FormatCsv:
		// the header also truncates whatever a previous run wrote
		f, err := os.Create(w.basePath + ".csv")
		if err != nil {
			return nil, err
		}
		defer f.Close()
		cw := csv.NewWriter(f)
		err = cw.Write(csvHeader)
		if err != nil {
			return nil, err
		}
		cw.Flush()
		if cw.Error() != nil {
			return nil, cw.Error()
		}
	case FormatSqlite:
		w.db, err = sqliteutil.OpenDB(personSchema, w.basePath+".db")
		if err != nil {
			return nil, err
		}
	}

	return w, nil
}

func (w *Writer) WriteBatch(people []zoominfo.Person) error {
	switch w.format {
	case FormatFlat:
		return w.writeFlat(people)
	case FormatCsv:
		return w.writeCsv(people)
	case FormatJson:
		return w.writeJson(people)
	case FormatSqlite:
		return w.writeSqlite(people)
	}
	return fmt.Errorf("unknown output format %q", w.format)
}

func (w *Writer) Close() error {
	if w.db != nil {
		return w.db.Close()
	}
	return nil
}

func (w *Writer) appendFile(ext string) (*os.File, error) {
	return os.OpenFile(w.basePath+ext, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
}

func (w *Writer) writeFlat(people []zoominfo.Person) error {
	f, err := w.appendFile(".txt")
	if err != nil {
		return err
	}
	defer f.Close()

	for _, p := range people {
		_, err = fmt.Fprintf(f, "%s|%s|%s|%s\n", p.Email, p.FullName, p.Title, p.Location)
		if err != nil {
			return err
		}
	}
	return f.Sync()
}

func (w *Writer) writeCsv(people []zoominfo.Person) error {
	f, err := w.appendFile(".csv")
	if err != nil {
		return err
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	for _, p := range people {
		err = cw.Write([]string{p.Email, p.FullName, p.Title, p.Location})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (w *Writer) writeJson(people []zoominfo.Person) error {
	f, err := w.appendFile(".json")
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	for _, p := range people {
		err = enc.Encode(record{
			Email:    p.Email,
			FullName: p.FullName,
			Title:    p.Title,
			Location: p.Location,
		})
		if err != nil {
			return err
		}
	}
	return f.Sync()
}

func (w *Writer) writeSqlite(people []zoominfo.Person) error {
	tx, err := w.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, p := range people {
		_, err = tx.Exec(
			`INSERT INTO person (email, full_name, title, location) VALUES (?, ?, ?, ?)`,
			p.Email, p.FullName, p.Title, p.Location,
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}
