package flora

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/tkoskela/floraest/internal/errors"
)

// Dataset CSV column order. The loader accepts exactly this header.
var csvHeader = []string{
	"id", "scientific_name", "definition", "report_count", "toxic", "processing", "edible",
}

// LoadCSV reads species records from a CSV file.
func LoadCSV(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Newf("failed to open dataset: %w", err).
			Category(errors.CategoryFileIO).
			Component("flora").
			Context("path", path).
			Build()
	}
	defer f.Close()

	records, err := ReadCSV(f)
	if err != nil {
		var enhanced *errors.EnhancedError
		if errors.As(err, &enhanced) {
			return nil, err
		}
		return nil, errors.Newf("failed to read dataset %s: %w", path, err).
			Category(errors.CategoryFileParsing).
			Component("flora").
			Context("path", path).
			Build()
	}
	return records, nil
}

// ReadCSV parses species records from r. The first row must match the
// dataset header; every following row is one record.
func ReadCSV(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(csvHeader)

	header, err := reader.Read()
	if err != nil {
		return nil, errors.Newf("failed to read dataset header: %w", err).
			Category(errors.CategoryFileParsing).
			Component("flora").
			Build()
	}
	for i, col := range csvHeader {
		if header[i] != col {
			return nil, errors.Newf("unexpected dataset header column %d: got %q, want %q", i, header[i], col).
				Category(errors.CategoryFileParsing).
				Component("flora").
				Context("header", header).
				Build()
		}
	}

	var records []Record
	line := 1
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, errors.Newf("failed to read dataset row: %w", err).
				Category(errors.CategoryFileParsing).
				Component("flora").
				Context("line", line).
				Build()
		}

		record, err := parseRow(row, line)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}

func parseRow(row []string, line int) (Record, error) {
	fail := func(field string, err error) (Record, error) {
		return Record{}, errors.Newf("invalid %s on line %d: %w", field, line, err).
			Category(errors.CategoryFileParsing).
			Component("flora").
			Context("line", line).
			Context("field", field).
			Build()
	}

	id, err := strconv.Atoi(row[0])
	if err != nil {
		return fail("id", err)
	}
	definition, err := ParseDefinitionCategory(row[2])
	if err != nil {
		return fail("definition", err)
	}
	reportCount, err := strconv.Atoi(row[3])
	if err != nil {
		return fail("report_count", err)
	}
	toxic, err := strconv.ParseBool(row[4])
	if err != nil {
		return fail("toxic", err)
	}
	processing, err := ParseProcessingLevel(row[5])
	if err != nil {
		return fail("processing", err)
	}
	edible, err := strconv.ParseBool(row[6])
	if err != nil {
		return fail("edible", err)
	}

	record := Record{
		ID:             id,
		ScientificName: row[1],
		Definition:     definition,
		ReportCount:    reportCount,
		Toxic:          toxic,
		Processing:     processing,
		Edible:         edible,
	}
	if err := record.Validate(); err != nil {
		return Record{}, err
	}
	return record, nil
}

// SaveCSV writes species records to a CSV file, creating or truncating it.
func SaveCSV(path string, records []Record) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Newf("failed to create dataset file: %w", err).
			Category(errors.CategoryFileIO).
			Component("flora").
			Context("path", path).
			Build()
	}
	defer f.Close()

	if err := WriteCSV(f, records); err != nil {
		return err
	}
	return f.Sync()
}

// WriteCSV writes species records to w in the dataset CSV format.
func WriteCSV(w io.Writer, records []Record) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(csvHeader); err != nil {
		return errors.Newf("failed to write dataset header: %w", err).
			Category(errors.CategoryFileIO).
			Component("flora").
			Build()
	}

	for i := range records {
		r := &records[i]
		row := []string{
			strconv.Itoa(r.ID),
			r.ScientificName,
			string(r.Definition),
			strconv.Itoa(r.ReportCount),
			strconv.FormatBool(r.Toxic),
			string(r.Processing),
			strconv.FormatBool(r.Edible),
		}
		if err := writer.Write(row); err != nil {
			return errors.Newf("failed to write dataset row %d: %w", i+1, err).
				Category(errors.CategoryFileIO).
				Component("flora").
				Build()
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return errors.Newf("failed to flush dataset: %w", err).
			Category(errors.CategoryFileIO).
			Component("flora").
			Build()
	}
	return nil
}

// String implements fmt.Stringer for log output.
func (r Record) String() string {
	return fmt.Sprintf("%d %s definition=%s reports=%d toxic=%t processing=%s edible=%t",
		r.ID, r.ScientificName, r.Definition, r.ReportCount, r.Toxic, r.Processing, r.Edible)
}
