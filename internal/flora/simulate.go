package flora

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Simulator generates a synthetic species record table with the dataset
// attributes. All randomness flows from the explicit seed, so identical
// (seed, count) inputs produce identical tables.
type Simulator struct {
	rng      *rand.Rand
	reports  distuv.Poisson
	toxicity distuv.Bernoulli
}

// Simulation parameters. The report count follows a Poisson distribution and
// toxicity a Bernoulli draw; the edibility outcome is a logistic function of
// the other attributes.
const (
	reportRate    = 2.5  // mean ethnobotanical report count
	toxicRate     = 0.15 // marginal probability of a toxicity flag
	logitBase     = -2.2 // intercept of the edibility logit
	logitReports  = 0.35 // per-report contribution, capped at reportCap
	reportCap     = 8    // reports beyond this add no further evidence
	logitToxic    = -2.5 // toxicity penalty
	logitCooked   = 0.4  // cooking bonus
	logitFullProc = 0.7  // full processing bonus
)

// NewSimulator creates a seeded sample simulator.
func NewSimulator(seed uint64) *Simulator {
	src := rand.NewSource(seed)
	return &Simulator{
		rng:      rand.New(src),
		reports:  distuv.Poisson{Lambda: reportRate, Src: src},
		toxicity: distuv.Bernoulli{P: toxicRate, Src: src},
	}
}

// Generate produces count species records.
func (s *Simulator) Generate(count int) []Record {
	records := make([]Record, 0, count)
	for i := 0; i < count; i++ {
		records = append(records, s.generateOne(i+1))
	}
	return records
}

func (s *Simulator) generateOne(id int) Record {
	name := fmt.Sprintf("%s %s",
		genera[s.rng.Intn(len(genera))],
		epithets[s.rng.Intn(len(epithets))])

	definition := s.drawDefinition()
	reportCount := int(s.reports.Rand())
	toxic := s.toxicity.Rand() == 1
	processing := s.drawProcessing(toxic)

	records := float64(reportCount)
	if records > reportCap {
		records = reportCap
	}
	logit := logitBase + logitReports*records
	if toxic {
		logit += logitToxic
	}
	switch processing {
	case ProcessingCooked:
		logit += logitCooked
	case ProcessingProcessed:
		logit += logitFullProc
	}
	edible := s.rng.Float64() < sigmoid(logit)

	return Record{
		ID:             id,
		ScientificName: name,
		Definition:     definition,
		ReportCount:    reportCount,
		Toxic:          toxic,
		Processing:     processing,
		Edible:         edible,
	}
}

func (s *Simulator) drawDefinition() DefinitionCategory {
	switch u := s.rng.Float64(); {
	case u < 0.30:
		return DefinitionRaw
	case u < 0.70:
		return DefinitionPartial
	default:
		return DefinitionProcessed
	}
}

// Toxic species are mostly recorded with some form of processing.
func (s *Simulator) drawProcessing(toxic bool) ProcessingLevel {
	u := s.rng.Float64()
	if toxic {
		switch {
		case u < 0.15:
			return ProcessingNone
		case u < 0.50:
			return ProcessingCooked
		default:
			return ProcessingProcessed
		}
	}
	switch {
	case u < 0.45:
		return ProcessingNone
	case u < 0.80:
		return ProcessingCooked
	default:
		return ProcessingProcessed
	}
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// Name pools for synthetic records. Real genera, shuffled epithets; the
// combinations are not meant to be real species.
var genera = []string{
	"Allium", "Amaranthus", "Asclepias", "Atriplex", "Brassica", "Chenopodium",
	"Cirsium", "Crataegus", "Dioscorea", "Erythrina", "Ficus", "Helianthus",
	"Ipomoea", "Lupinus", "Malva", "Opuntia", "Oxalis", "Plantago",
	"Polygonum", "Portulaca", "Quercus", "Rubus", "Rumex", "Sambucus",
	"Solanum", "Sonchus", "Taraxacum", "Typha", "Urtica", "Vaccinium",
}

var epithets = []string{
	"album", "angustifolia", "arvensis", "communis", "edulis", "esculenta",
	"hirsuta", "lanceolata", "maritima", "montana", "nigra", "occidentalis",
	"officinalis", "palustris", "repens", "rotundifolia", "sativa", "spinosa",
	"tuberosa", "vulgaris",
}
