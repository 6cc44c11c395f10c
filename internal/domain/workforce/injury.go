package workforce

import "github.com/andrescamacho/carrierplus-go/internal/domain/shared"

// InjuryProbability is base × (100 − resistance) / 100, with the base rate
// doubled when the factory could not feed its workers.
func InjuryProbability(baseRate float64, resistance int, hasFood bool) float64 {
	rate := baseRate
	if !hasFood {
		rate *= 2
	}
	return rate * float64(100-clampStat(resistance)) / 100
}

// RollInjury draws once for the worker and reports whether an injury occurs
func RollInjury(rng shared.RandomSource, baseRate float64, resistance int, hasFood bool) bool {
	return rng.Float64() < InjuryProbability(baseRate, resistance, hasFood)
}
