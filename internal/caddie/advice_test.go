package caddie

import (
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdvisor(t *testing.T, elevation Feet) *Advisor {
	t.Helper()
	advisor, err := NewAdvisor(DefaultCoefficients(elevation))
	require.NoError(t, err)
	return advisor
}

func calmWeather() WeatherSnapshot {
	return WeatherSnapshot{
		TemperatureF:        70,
		RelativeHumidityPct: 60,
		WindSpeedMph:        0,
		WindFromDeg:         0,
		Timestamp:           time.Date(2026, 5, 2, 14, 0, 0, 0, time.UTC),
	}
}

func TestBuildAdvicePureTailwind(t *testing.T) {
	advisor := newTestAdvisor(t, 1050)

	weather := calmWeather()
	weather.WindSpeedMph = 10
	weather.WindFromDeg = 270

	driver := &ClubProfile{Name: "driver", AverageCarryYards: 250, AverageTotalYards: 270, DispersionYards: 15}
	iron := &ClubProfile{Name: "7 iron", AverageCarryYards: 165, AverageTotalYards: 172, DispersionYards: 8}

	result, err := advisor.BuildAdvice(NewHoleGeometry(7, 90), weather, driver, iron)
	require.NoError(t, err)

	assert.InDelta(t, 10, float64(result.Wind.HeadTailMph), tolerance)
	assert.InDelta(t, 0, float64(result.Wind.CrossMph), tolerance)

	assert.InDelta(t, 3.05, float64(result.DriverAdjustment.CarryDeltaPct), tolerance)
	assert.InDelta(t, 7.625, float64(result.DriverAdjustment.CarryDeltaYards), tolerance)
	assert.InDelta(t, 0, float64(result.DriverAdjustment.AimOffsetYards), tolerance)
	assert.Equal(t, ClassDriver, result.DriverAdjustment.Class)

	assert.InDelta(t, 1.05+1.4, float64(result.IronAdjustment.CarryDeltaPct), tolerance)
	assert.InDelta(t, 165*0.0245, float64(result.IronAdjustment.CarryDeltaYards), tolerance)
	assert.Equal(t, ClassIron, result.IronAdjustment.Class)

	assert.Equal(t, GreensNormal, result.GreenNote)
	assert.Equal(t, 7, result.Hole.HoleNumber)
	assert.InDelta(t, 257.625, float64(result.DriverAdjustment.AdjustedCarry()), tolerance)
}

func TestBuildAdviceCrosswind(t *testing.T) {
	advisor := newTestAdvisor(t, 0)

	weather := calmWeather()
	weather.WindSpeedMph = 10
	weather.WindFromDeg = 270

	driver := &ClubProfile{Name: "driver", AverageCarryYards: 200, AverageTotalYards: 220}
	iron := &ClubProfile{Name: "7 iron", AverageCarryYards: 100, AverageTotalYards: 110}

	result, err := advisor.BuildAdvice(NewHoleGeometry(1, 0), weather, driver, iron)
	require.NoError(t, err)

	assert.InDelta(t, 0, float64(result.Wind.HeadTailMph), tolerance)
	assert.InDelta(t, 10, float64(result.Wind.CrossMph), tolerance)
	assert.InDelta(t, 0, float64(result.DriverAdjustment.CarryDeltaPct), 1e-6)

	assert.InDelta(t, 7, float64(result.DriverAdjustment.AimOffsetYards), tolerance)
	assert.Equal(t, AimRight, result.DriverAdjustment.AimDirection)
	assert.InDelta(t, 3.5, float64(result.IronAdjustment.AimOffsetYards), tolerance)
	assert.Equal(t, AimRight, result.IronAdjustment.AimDirection)
}

func TestBuildAdviceMissingInputs(t *testing.T) {
	advisor := newTestAdvisor(t, 0)
	driver := &ClubProfile{Name: "driver", AverageCarryYards: 250, AverageTotalYards: 260}
	iron := &ClubProfile{Name: "7 iron", AverageCarryYards: 160, AverageTotalYards: 165}

	t.Run("invalid hole", func(t *testing.T) {
		_, err := advisor.BuildAdvice(NewHoleGeometry(19, 10), calmWeather(), driver, iron)
		assert.ErrorIs(t, err, ErrInvalidHoleSelection)
	})

	t.Run("hole without bearing", func(t *testing.T) {
		_, err := advisor.BuildAdvice(HoleGeometry{HoleNumber: 4}, calmWeather(), driver, iron)
		assert.ErrorIs(t, err, ErrHoleDataMissing)
	})

	t.Run("no driver", func(t *testing.T) {
		result, err := advisor.BuildAdvice(NewHoleGeometry(4, 10), calmWeather(), nil, iron)
		assert.Nil(t, result)
		var clubErr *ClubError
		require.True(t, errors.As(err, &clubErr))
		assert.Equal(t, "driver", clubErr.Club)
		assert.ErrorIs(t, err, ErrMissingClubData)
	})

	t.Run("zero carry is not a distance", func(t *testing.T) {
		_, err := advisor.BuildAdvice(NewHoleGeometry(4, 10), calmWeather(), driver, &ClubProfile{Name: "7 iron"})
		assert.ErrorIs(t, err, ErrMissingClubData)
	})

	t.Run("NaN carry is rejected", func(t *testing.T) {
		bad := &ClubProfile{Name: "7 iron", AverageCarryYards: Yards(math.NaN())}
		_, err := advisor.BuildAdvice(NewHoleGeometry(4, 10), calmWeather(), driver, bad)
		assert.ErrorIs(t, err, ErrMissingClubData)
	})
}

func TestBuildAdviceGreens(t *testing.T) {
	advisor := newTestAdvisor(t, 0)
	driver := &ClubProfile{Name: "driver", AverageCarryYards: 250, AverageTotalYards: 260}
	iron := &ClubProfile{Name: "7 iron", AverageCarryYards: 160, AverageTotalYards: 165}

	weather := calmWeather()
	weather.RainLastHourMm = 1.0
	result, err := advisor.BuildAdvice(NewHoleGeometry(2, 120), weather, driver, iron)
	require.NoError(t, err)
	assert.Equal(t, GreensSlow, result.GreenNote)

	weather = calmWeather()
	weather.RelativeHumidityPct = 30
	weather.WindSpeedMph = 20
	result, err = advisor.BuildAdvice(NewHoleGeometry(2, 120), weather, driver, iron)
	require.NoError(t, err)
	assert.Equal(t, GreensFast, result.GreenNote)
}

func TestNewAdvisorCopiesCoefficients(t *testing.T) {
	coeff := DefaultCoefficients(0)
	advisor, err := NewAdvisor(coeff)
	require.NoError(t, err)

	driver := ClubProfile{Name: "Driver", AverageCarryYards: 250}
	tail := WindComponents{HeadTailMph: 10}
	before, err := advisor.AdjustClub(&driver, ClassDriver, tail, 70)
	require.NoError(t, err)

	coeff.WindPerMph[ClassDriver] = 1
	after, err := advisor.AdjustClub(&driver, ClassDriver, tail, 70)
	require.NoError(t, err)
	assert.Equal(t, before.CarryDeltaPct, after.CarryDeltaPct)

	delete(coeff.WindPerMph, ClassIron)
	_, err = NewAdvisor(coeff)
	assert.Error(t, err)
}

func TestBuildAdviceConcurrentCallsAreIndependent(t *testing.T) {
	advisor := newTestAdvisor(t, 1050)
	driver := &ClubProfile{Name: "driver", AverageCarryYards: 250, AverageTotalYards: 260}
	iron := &ClubProfile{Name: "7 iron", AverageCarryYards: 160, AverageTotalYards: 165}

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			weather := calmWeather()
			weather.WindSpeedMph = MPH(i)
			weather.WindFromDeg = Degrees(i * 11)
			bearing := Degrees(i * 7)

			got, err := advisor.BuildAdvice(NewHoleGeometry(1+i%18, bearing), weather, driver, iron)
			assert.NoError(t, err)
			want := ResolveWind(weather.WindSpeedMph, weather.WindFromDeg, bearing)
			assert.InDelta(t, float64(want.HeadTailMph), float64(got.Wind.HeadTailMph), tolerance)
			assert.InDelta(t, float64(want.CrossMph), float64(got.Wind.CrossMph), tolerance)
		}(i)
	}
	wg.Wait()
}
