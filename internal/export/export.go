// Package export writes estimate results to the supported output formats:
// a text table, CSV and XLSX.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/tkoskela/floraest/internal/bayes"
	"github.com/tkoskela/floraest/internal/conf"
	"github.com/tkoskela/floraest/internal/errors"
	"github.com/tkoskela/floraest/internal/extrapolate"
)

// Result bundles everything one estimation run produced, ready for export.
type Result struct {
	Node        string    // node name from settings
	GeneratedAt time.Time // when the run finished

	PriorVariant string  // prior variant name
	AlphaPrior   float64 // prior pseudo-counts
	BetaPrior    float64

	Trials    int // total species records
	Successes int // edible species records

	Posterior bayes.Posterior
	Interval  bayes.Interval
	Mass      float64
	Draws     int
	Seed      uint64

	Estimate extrapolate.Estimate
}

// Save writes the result in the given format. The table format writes to
// stdout; csv and xlsx write to path.
func Save(result *Result, format, path string) error {
	switch format {
	case conf.FormatTable:
		return WriteTable(os.Stdout, result)
	case conf.FormatCSV:
		return SaveCSV(path, result)
	case conf.FormatXLSX:
		return SaveXLSX(path, result)
	default:
		return errors.Newf("unknown output format: %q", format).
			Category(errors.CategoryExport).
			Component("export").
			Build()
	}
}

// rows flattens the result into ordered metric/value pairs shared by every
// output format.
func (r *Result) rows() [][2]string {
	rows := [][2]string{
		{"node", r.Node},
		{"generated_at", r.GeneratedAt.Format(time.RFC3339)},
		{"prior_variant", r.PriorVariant},
		{"alpha_prior", formatFloat(r.AlphaPrior)},
		{"beta_prior", formatFloat(r.BetaPrior)},
		{"trials", strconv.Itoa(r.Trials)},
		{"successes", strconv.Itoa(r.Successes)},
		{"alpha_posterior", formatFloat(r.Posterior.Alpha)},
		{"beta_posterior", formatFloat(r.Posterior.Beta)},
		{"mass", formatFloat(r.Mass)},
		{"draws", strconv.Itoa(r.Draws)},
		{"seed", strconv.FormatUint(r.Seed, 10)},
		{"mean_percentage", fmt.Sprintf("%.2f", r.Estimate.MeanPercentage)},
		{"hdi_lower_percentage", fmt.Sprintf("%.2f", r.Estimate.LowerPercentage)},
		{"hdi_upper_percentage", fmt.Sprintf("%.2f", r.Estimate.UpperPercentage)},
	}
	for _, bound := range r.Estimate.Bounds {
		total := fmt.Sprintf("%.0f", bound.TotalSpecies)
		rows = append(rows,
			[2]string{"edible_lower_at_" + total, fmt.Sprintf("%.0f", bound.LowerCount)},
			[2]string{"edible_upper_at_" + total, fmt.Sprintf("%.0f", bound.UpperCount)},
		)
	}
	return rows
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteTable writes the result as an aligned text table followed by the
// human-readable summary sentence.
func WriteTable(w io.Writer, result *Result) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	for _, row := range result.rows() {
		fmt.Fprintf(tw, "%s\t%s\n", row[0], row[1])
	}
	if err := tw.Flush(); err != nil {
		return errors.Newf("failed to write table: %w", err).
			Category(errors.CategoryExport).
			Component("export").
			Build()
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, result.Estimate.Summary())
	return nil
}

// SaveCSV writes the result as metric,value rows.
func SaveCSV(path string, result *Result) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Newf("failed to create output file: %w", err).
			Category(errors.CategoryFileIO).
			Component("export").
			Context("path", path).
			Build()
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write([]string{"metric", "value"}); err != nil {
		return errors.Newf("failed to write CSV header: %w", err).
			Category(errors.CategoryExport).
			Component("export").
			Build()
	}
	for _, row := range result.rows() {
		if err := writer.Write(row[:]); err != nil {
			return errors.Newf("failed to write CSV row: %w", err).
				Category(errors.CategoryExport).
				Component("export").
				Build()
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return errors.Newf("failed to flush CSV output: %w", err).
			Category(errors.CategoryExport).
			Component("export").
			Build()
	}
	return f.Sync()
}

// SaveXLSX writes the result as a single-sheet workbook.
func SaveXLSX(path string, result *Result) error {
	f := excelize.NewFile()
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "failed to close workbook: %v\n", closeErr)
		}
	}()

	const sheet = "Sheet1"
	if err := f.SetCellValue(sheet, "A1", "metric"); err != nil {
		return wrapXLSX(err)
	}
	if err := f.SetCellValue(sheet, "B1", "value"); err != nil {
		return wrapXLSX(err)
	}

	for i, row := range result.rows() {
		rowIdx := i + 2
		if err := f.SetCellValue(sheet, fmt.Sprintf("A%d", rowIdx), row[0]); err != nil {
			return wrapXLSX(err)
		}
		if err := f.SetCellValue(sheet, fmt.Sprintf("B%d", rowIdx), row[1]); err != nil {
			return wrapXLSX(err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return errors.Newf("failed to save workbook: %w", err).
			Category(errors.CategoryFileIO).
			Component("export").
			Context("path", path).
			Build()
	}
	return nil
}

func wrapXLSX(err error) error {
	return errors.Newf("failed to build workbook: %w", err).
		Category(errors.CategoryExport).
		Component("export").
		Build()
}
