package workforce

// tierThresholds lists the minimum XP for each tier above 1, highest first
var tierThresholds = []struct {
	xp   int
	tier int
}{
	{15000, 5},
	{7000, 4},
	{3000, 3},
	{1000, 2},
}

// TierForXP derives a worker tier (1-5) from accumulated experience
func TierForXP(xp int) int {
	for _, t := range tierThresholds {
		if xp >= t.xp {
			return t.tier
		}
	}
	return 1
}
