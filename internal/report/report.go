// Package report renders results as aligned text, CSV or JSON.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

type Format string

const (
	Text Format = "text"
	JSON Format = "json"
	CSV  Format = "csv"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case Text, JSON, CSV:
		return f, nil
	case "":
		return Text, nil
	default:
		return "", fmt.Errorf("unknown format: %s (want text, json or csv)", s)
	}
}

// Table is the tabular view of a result.
type Table struct {
	Title  string
	Header []string
	Rows   [][]string
	Notes  []string
}

// Tabular is implemented by every report value.
type Tabular interface {
	Table() *Table
}

// Write renders v in the given format. JSON encodes v itself; text and CSV
// use its table.
func Write(w io.Writer, format Format, v Tabular) error {
	switch format {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case CSV:
		return writeCSV(w, v.Table())
	case Text, "":
		return writeText(w, v.Table())
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func writeText(w io.Writer, t *Table) error {
	if t.Title != "" {
		if _, err := fmt.Fprintln(w, t.Title); err != nil {
			return err
		}
	}
	if len(t.Header) > 0 || len(t.Rows) > 0 {
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		if len(t.Header) > 0 {
			fmt.Fprintln(tw, strings.Join(t.Header, "\t"))
		}
		for _, row := range t.Rows {
			fmt.Fprintln(tw, strings.Join(row, "\t"))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	for _, n := range t.Notes {
		if _, err := fmt.Fprintln(w, n); err != nil {
			return err
		}
	}
	return nil
}

func writeCSV(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)
	if len(t.Header) > 0 {
		if err := cw.Write(t.Header); err != nil {
			return err
		}
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return err
	}
	return cw.Error()
}

func num(v float64) string { return fmt.Sprintf("%.6g", v) }
