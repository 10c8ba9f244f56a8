// Package flora defines the species record model used by the estimation
// pipeline, the CSV dataset format and the sample simulator.
package flora

import (
	"github.com/tkoskela/floraest/internal/errors"
)

// DefinitionCategory describes how strictly "edible" was defined for the
// record: raw consumption, partial preparation or full processing.
type DefinitionCategory string

const (
	DefinitionRaw       DefinitionCategory = "Raw"
	DefinitionPartial   DefinitionCategory = "Partial"
	DefinitionProcessed DefinitionCategory = "Processed"
)

// ProcessingLevel describes the preparation needed before consumption.
type ProcessingLevel string

const (
	ProcessingNone      ProcessingLevel = "None"
	ProcessingCooked    ProcessingLevel = "Cooked"
	ProcessingProcessed ProcessingLevel = "Processed"
)

// Record represents a single species observation in the dataset. Records are
// created during simulation or load and are immutable thereafter.
type Record struct {
	ID             int                // stable record identifier
	ScientificName string             // binomial species name
	Definition     DefinitionCategory // edibility definition category
	ReportCount    int                // ethnobotanical report count
	Toxic          bool               // known toxicity flag
	Processing     ProcessingLevel    // processing level before consumption
	Edible         bool               // edibility outcome
}

// ParseDefinitionCategory validates a definition category string.
func ParseDefinitionCategory(s string) (DefinitionCategory, error) {
	switch DefinitionCategory(s) {
	case DefinitionRaw, DefinitionPartial, DefinitionProcessed:
		return DefinitionCategory(s), nil
	default:
		return "", errors.Newf("unknown definition category: %q", s).
			Category(errors.CategoryValidation).
			Component("flora").
			Build()
	}
}

// ParseProcessingLevel validates a processing level string.
func ParseProcessingLevel(s string) (ProcessingLevel, error) {
	switch ProcessingLevel(s) {
	case ProcessingNone, ProcessingCooked, ProcessingProcessed:
		return ProcessingLevel(s), nil
	default:
		return "", errors.Newf("unknown processing level: %q", s).
			Category(errors.CategoryValidation).
			Component("flora").
			Build()
	}
}

// Validate checks the record fields against the data model invariants.
func (r *Record) Validate() error {
	if r.ReportCount < 0 {
		return errors.Newf("report count must not be negative, got %d", r.ReportCount).
			Category(errors.CategoryValidation).
			Component("flora").
			Context("record_id", r.ID).
			Build()
	}
	if _, err := ParseDefinitionCategory(string(r.Definition)); err != nil {
		return err
	}
	if _, err := ParseProcessingLevel(string(r.Processing)); err != nil {
		return err
	}
	return nil
}

// Counts aggregates a record set into binomial trial counts: every record is
// a trial, every edible outcome a success.
func Counts(records []Record) (trials, successes int) {
	trials = len(records)
	for i := range records {
		if records[i].Edible {
			successes++
		}
	}
	return trials, successes
}
