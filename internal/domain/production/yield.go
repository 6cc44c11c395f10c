package production

const (
	engineerBonusPercent = 10
	maxBonusPercent      = 150
)

// Yield applies the engineer bonus to a base quantity: +10% per engineer,
// capped at +50%, only when the batch started with the bonus enabled.
// The result is floored.
func Yield(base, engineers int, bonusApplied bool) int {
	if !bonusApplied || engineers <= 0 || base <= 0 {
		return base
	}
	percent := 100 + engineerBonusPercent*engineers
	if percent > maxBonusPercent {
		percent = maxBonusPercent
	}
	return base * percent / 100
}
