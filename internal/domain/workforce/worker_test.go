package workforce_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/carrierplus-go/internal/domain/shared"
	"github.com/andrescamacho/carrierplus-go/internal/domain/workforce"
)

var epoch = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newWorker(t *testing.T, kind workforce.Kind) *workforce.Worker {
	t.Helper()
	w, err := workforce.NewWorker(kind, "Jane", "Doe", "LFPG", "FR", 50, 50, decimal.NewFromInt(12), epoch)
	require.NoError(t, err)
	return w
}

func TestTierForXP(t *testing.T) {
	tests := []struct {
		xp   int
		tier int
	}{
		{0, 1},
		{999, 1},
		{1000, 2},
		{2999, 2},
		{3000, 3},
		{6999, 3},
		{7000, 4},
		{14999, 4},
		{15000, 5},
		{1000000, 5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.tier, workforce.TierForXP(tt.xp), "xp=%d", tt.xp)
	}
}

func TestNewWorker_Validation(t *testing.T) {
	_, err := workforce.NewWorker("pilot", "A", "B", "LFPG", "FR", 50, 50, decimal.NewFromInt(1), epoch)
	assert.Error(t, err)

	_, err = workforce.NewWorker(workforce.KindWorker, "A", "B", "LFPG", "FR", 0, 50, decimal.NewFromInt(1), epoch)
	assert.Error(t, err)

	_, err = workforce.NewWorker(workforce.KindWorker, "A", "B", "LFPG", "FR", 50, 101, decimal.NewFromInt(1), epoch)
	assert.Error(t, err)

	_, err = workforce.NewWorker(workforce.KindWorker, "A", "B", "LFPG", "FR", 50, 50, decimal.NewFromInt(-1), epoch)
	assert.Error(t, err)

	w := newWorker(t, workforce.KindEngineer)
	assert.Equal(t, workforce.StatusAvailable, w.Status())
	assert.Equal(t, 1, w.Tier())
	assert.True(t, w.IsEngineer())
	assert.False(t, w.IsEmployed())
}

func TestWorkerLifecycle(t *testing.T) {
	w := newWorker(t, workforce.KindWorker)
	companyID := uuid.New()
	factoryID := uuid.New()

	require.NoError(t, w.Hire(companyID))
	require.NoError(t, w.AssignTo(factoryID))
	assert.Equal(t, workforce.StatusWorking, w.Status())
	assert.Equal(t, factoryID, *w.FactoryID())

	require.NoError(t, w.Injure(epoch))
	assert.Equal(t, workforce.StatusInjured, w.Status())

	err := w.AssignTo(factoryID)
	assert.True(t, shared.IsInvalidTransition(err), "injured workers cannot be assigned")

	employer, err := w.Die(epoch.Add(time.Hour))
	require.NoError(t, err)
	require.NotNil(t, employer)
	assert.Equal(t, companyID, *employer)
	assert.Equal(t, workforce.StatusDead, w.Status())
	assert.Nil(t, w.EmployerID())
	assert.Nil(t, w.FactoryID())
	assert.NotNil(t, w.DiedAt())

	assert.True(t, shared.IsInvalidTransition(w.Recover()), "dead is terminal")
}

func TestWorker_DieRequiresInjury(t *testing.T) {
	w := newWorker(t, workforce.KindWorker)

	_, err := w.Die(epoch)

	assert.True(t, shared.IsInvalidTransition(err))
	assert.Equal(t, workforce.StatusAvailable, w.Status())
}

func TestWorker_RecoverClearsInjury(t *testing.T) {
	w := newWorker(t, workforce.KindWorker)
	require.NoError(t, w.AssignTo(uuid.New()))
	require.NoError(t, w.Injure(epoch))

	require.NoError(t, w.Recover())

	assert.Equal(t, workforce.StatusAvailable, w.Status())
	assert.Nil(t, w.InjuredAt())
	assert.Nil(t, w.FactoryID())
}

func TestWorker_InjuryExceedsIsStrict(t *testing.T) {
	grace := 10 * 24 * time.Hour
	w := newWorker(t, workforce.KindWorker)
	require.NoError(t, w.Injure(epoch))

	assert.False(t, w.InjuryExceeds(epoch.Add(grace), grace), "exactly at the grace boundary the worker survives")
	assert.True(t, w.InjuryExceeds(epoch.Add(grace+time.Second), grace))
}

func TestWorker_DeadLongerThan(t *testing.T) {
	retention := 30 * 24 * time.Hour
	w := newWorker(t, workforce.KindWorker)
	require.NoError(t, w.Injure(epoch))
	_, err := w.Die(epoch)
	require.NoError(t, err)

	assert.False(t, w.DeadLongerThan(epoch.Add(retention), retention))
	assert.True(t, w.DeadLongerThan(epoch.Add(retention+time.Minute), retention))
}

func TestWorker_GrantXP(t *testing.T) {
	w := newWorker(t, workforce.KindWorker)

	w.GrantXP(999)
	assert.Equal(t, 1, w.Tier())
	w.GrantXP(1)
	assert.Equal(t, 1000, w.XP())
	assert.Equal(t, 2, w.Tier())

	w.GrantXP(-50)
	assert.Equal(t, 1000, w.XP(), "negative grants are ignored")
}

func TestInjuryProbability(t *testing.T) {
	assert.InDelta(t, 0.0025, workforce.InjuryProbability(0.005, 50, true), 1e-12)
	assert.InDelta(t, 0.005, workforce.InjuryProbability(0.005, 50, false), 1e-12, "hunger doubles the base rate")
	assert.InDelta(t, 0.0, workforce.InjuryProbability(0.005, 100, false), 1e-12)
	assert.InDelta(t, 0.00495, workforce.InjuryProbability(0.005, 1, true), 1e-12)
}

func TestRollInjury(t *testing.T) {
	assert.True(t, workforce.RollInjury(shared.FixedRandom{Value: 0}, 0.5, 50, true))
	assert.False(t, workforce.RollInjury(shared.FixedRandom{Value: 0.25}, 0.5, 50, true))
	assert.True(t, workforce.RollInjury(shared.FixedRandom{Value: 0.25}, 0.5, 50, false))
}

func TestGenerator_StaysWithinBounds(t *testing.T) {
	gen := workforce.NewGenerator(shared.NewSeededRandom(42))
	stats := workforce.CountryStats{
		CountryCode:    "FR",
		BaseSpeed:      50,
		BaseResistance: 95,
		BaseHourlyWage: decimal.NewFromInt(20),
	}

	for i := 0; i < 500; i++ {
		c := gen.Generate(workforce.KindWorker, stats)
		assert.GreaterOrEqual(t, c.Speed, 39)
		assert.LessOrEqual(t, c.Speed, 60)
		assert.GreaterOrEqual(t, c.Resistance, 75)
		assert.LessOrEqual(t, c.Resistance, workforce.MaxStat)
		assert.True(t, c.HourlyWage.GreaterThanOrEqual(decimal.NewFromInt(18)), c.HourlyWage.String())
		assert.True(t, c.HourlyWage.LessThanOrEqual(decimal.NewFromInt(22)), c.HourlyWage.String())
		assert.NotEmpty(t, c.FirstName)
		assert.NotEmpty(t, c.LastName)
	}
}

func TestGenerator_EngineersEarnDouble(t *testing.T) {
	stats := workforce.CountryStats{BaseSpeed: 50, BaseResistance: 50, BaseHourlyWage: decimal.NewFromInt(10)}

	worker := workforce.NewGenerator(shared.FixedRandom{Value: 0.5}).Generate(workforce.KindWorker, stats)
	engineer := workforce.NewGenerator(shared.FixedRandom{Value: 0.5}).Generate(workforce.KindEngineer, stats)

	assert.True(t, worker.HourlyWage.Equal(decimal.NewFromInt(10)), worker.HourlyWage.String())
	assert.True(t, engineer.HourlyWage.Equal(decimal.NewFromInt(20)), engineer.HourlyWage.String())
	assert.Equal(t, workforce.KindEngineer, engineer.Kind)
}

func TestPool_MarkResetCapsCounts(t *testing.T) {
	pool := &workforce.Pool{ID: uuid.New(), AirportIdent: "LFPG", MaxWorkers: 5, MaxEngineers: 1}
	assert.True(t, pool.IsDue(epoch), "a pool never reset is due")

	pool.MarkReset(9, 3, epoch, 24*time.Hour)

	assert.Equal(t, 5, pool.CurrentWorkers)
	assert.Equal(t, 1, pool.CurrentEngineers)
	assert.False(t, pool.IsDue(epoch.Add(23*time.Hour)))
	assert.True(t, pool.IsDue(epoch.Add(24*time.Hour)))
}
