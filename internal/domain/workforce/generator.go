package workforce

import (
	"github.com/shopspring/decimal"

	"github.com/andrescamacho/carrierplus-go/internal/domain/shared"
)

const (
	MinStat = 1
	MaxStat = 100

	statSpread = 0.20
	wageSpread = 0.10
)

// CountryStats are the base values a country's workers are generated from
type CountryStats struct {
	CountryCode    string
	BaseSpeed      int
	BaseResistance int
	BaseHourlyWage decimal.Decimal
}

var firstNames = []string{
	"James", "Marie", "Lucas", "Emma", "Hugo", "Léa", "Noah", "Chloé", "Louis", "Inès",
	"Thomas", "Sarah", "Pierre", "Julie", "Antoine", "Camille", "Paul", "Manon", "Jules", "Anna",
}

var lastNames = []string{
	"Martin", "Bernard", "Dubois", "Thomas", "Robert", "Richard", "Petit", "Durand", "Leroy", "Moreau",
	"Simon", "Laurent", "Lefebvre", "Michel", "Garcia", "David", "Bertrand", "Roux", "Vincent", "Fournier",
}

// Candidate is a generated, not yet persisted, worker profile
type Candidate struct {
	Kind       Kind
	FirstName  string
	LastName   string
	Speed      int
	Resistance int
	HourlyWage decimal.Decimal
}

// Generator produces worker profiles from country base stats.
// Stats vary ±20% around the base and wages ±10%; engineers earn twice the base wage.
type Generator struct {
	rng shared.RandomSource
}

// NewGenerator creates a generator over the given random source
func NewGenerator(rng shared.RandomSource) *Generator {
	return &Generator{rng: rng}
}

// Generate draws one candidate of the given kind
func (g *Generator) Generate(kind Kind, stats CountryStats) Candidate {
	baseWage := stats.BaseHourlyWage
	if kind == KindEngineer {
		baseWage = baseWage.Mul(decimal.NewFromInt(2))
	}

	return Candidate{
		Kind:       kind,
		FirstName:  firstNames[g.rng.IntN(len(firstNames))],
		LastName:   lastNames[g.rng.IntN(len(lastNames))],
		Speed:      g.stat(stats.BaseSpeed),
		Resistance: g.stat(stats.BaseResistance),
		HourlyWage: g.wage(baseWage),
	}
}

func (g *Generator) stat(base int) int {
	factor := shared.Uniform(g.rng, 1-statSpread, 1+statSpread)
	return clampStat(int(float64(base) * factor))
}

func (g *Generator) wage(base decimal.Decimal) decimal.Decimal {
	factor := shared.Uniform(g.rng, 1-wageSpread, 1+wageSpread)
	return base.Mul(decimal.NewFromFloat(factor)).Round(2)
}

func clampStat(v int) int {
	if v < MinStat {
		return MinStat
	}
	if v > MaxStat {
		return MaxStat
	}
	return v
}
