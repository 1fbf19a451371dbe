package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"text/tabwriter"

	"github.com/san-kum/mcint/internal/analysis"
)

const (
	FormatTable = "table"
	FormatCSV   = "csv"
	FormatJSON  = "json"
)

// Formats lists the encodings accepted by Write.
func Formats() []string {
	return []string{FormatTable, FormatCSV, FormatJSON}
}

type ExportData struct {
	Problem   string        `json:"problem"`
	Generator string        `json:"generator"`
	Seed      uint64        `json:"seed"`
	Exact     float64       `json:"exact"`
	Slope     *float64      `json:"slope,omitempty"`
	Points    []ExportPoint `json:"points"`
}

type ExportPoint struct {
	N        int     `json:"n"`
	Estimate float64 `json:"estimate"`
	RelErr   float64 `json:"relative_error"`
	Expected float64 `json:"inverse_sqrt_n"`
}

type Meta struct {
	Problem   string
	Generator string
	Seed      uint64
	Exact     float64
}

func newExportData(meta Meta, rec analysis.Record) ExportData {
	data := ExportData{
		Problem:   meta.Problem,
		Generator: meta.Generator,
		Seed:      meta.Seed,
		Exact:     meta.Exact,
		Points:    make([]ExportPoint, len(rec)),
	}
	if slope, err := analysis.FitSlope(rec); err == nil {
		data.Slope = &slope
	}
	for i, p := range rec {
		data.Points[i] = ExportPoint{
			N:        p.N,
			Estimate: p.Estimate,
			RelErr:   p.RelErr,
			Expected: 1 / math.Sqrt(float64(p.N)),
		}
	}
	return data
}

// Write encodes rec to w in the named format.
func Write(w io.Writer, format string, meta Meta, rec analysis.Record) error {
	switch format {
	case FormatTable, "":
		return WriteTable(w, meta, rec)
	case FormatCSV:
		return WriteCSV(w, rec)
	case FormatJSON:
		return WriteJSON(w, meta, rec)
	default:
		return fmt.Errorf("unknown format: %s (available: %v)", format, Formats())
	}
}

func WriteJSON(w io.Writer, meta Meta, rec analysis.Record) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(newExportData(meta, rec))
}

func WriteCSV(w io.Writer, rec analysis.Record) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"n", "estimate", "relative_error", "inverse_sqrt_n"}); err != nil {
		return err
	}
	for _, p := range rec {
		row := []string{
			strconv.Itoa(p.N),
			strconv.FormatFloat(p.Estimate, 'g', -1, 64),
			strconv.FormatFloat(p.RelErr, 'g', -1, 64),
			strconv.FormatFloat(1/math.Sqrt(float64(p.N)), 'g', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func WriteTable(w io.Writer, meta Meta, rec analysis.Record) error {
	fmt.Fprintf(w, "problem: %s  exact: %.8g  generator: %s  seed: %d\n\n", meta.Problem, meta.Exact, meta.Generator, meta.Seed)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "N\tESTIMATE\tREL_ERR\t1/SQRT(N)")
	for _, p := range rec {
		fmt.Fprintf(tw, "%d\t%.8g\t%.3e\t%.3e\n", p.N, p.Estimate, p.RelErr, 1/math.Sqrt(float64(p.N)))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if slope, err := analysis.FitSlope(rec); err == nil {
		fmt.Fprintf(w, "\nlog-log slope: %.3f (expected -0.5)\n", slope)
	}
	return nil
}
