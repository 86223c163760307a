package consolidation

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var designDrain = Drain{Ch: 0.869, Diameter: 0.064, InfluenceDiameter: 1.133}

func TestSettlementReference(t *testing.T) {
	s, err := Settlement(SettlementInput{Thickness: 20, Load: 20, UnitWeight: 6, Cc: 1.2, VoidRatio: 2.0})
	require.NoError(t, err)
	assert.InDelta(t, 1.6623717037305814, s, 1e-12)
	assert.False(t, math.IsNaN(s) || math.IsInf(s, 0))
	assert.Greater(t, s, 0.0)
}

func TestSettlementMonotonic(t *testing.T) {
	base := SettlementInput{Thickness: 20, Load: 20, UnitWeight: 6, Cc: 1.2, VoidRatio: 2.0}

	t.Run("load", func(t *testing.T) {
		prev := -1.0
		for _, load := range []float64{1, 5, 10, 20, 40, 80, 160, 500} {
			in := base
			in.Load = load
			s, err := Settlement(in)
			require.NoError(t, err)
			assert.Greater(t, s, prev, "load %g", load)
			prev = s
		}
	})

	t.Run("compression index", func(t *testing.T) {
		prev := -1.0
		for _, cc := range []float64{0.1, 0.3, 0.6, 1.2, 2.4} {
			in := base
			in.Cc = cc
			s, err := Settlement(in)
			require.NoError(t, err)
			assert.Greater(t, s, prev, "Cc %g", cc)
			prev = s
		}
	})
}

func TestSettlementZeroLoad(t *testing.T) {
	s, err := Settlement(SettlementInput{Thickness: 10, Load: 0, UnitWeight: 6, Cc: 1, VoidRatio: 1.5})
	require.NoError(t, err)
	assert.Equal(t, 0.0, s)
}

func TestSettlementDomain(t *testing.T) {
	tests := []struct {
		name  string
		in    SettlementInput
		param string
	}{
		{"zero unit weight", SettlementInput{Thickness: 20, Load: 20, UnitWeight: 0, Cc: 1.2, VoidRatio: 2}, "gamma"},
		{"negative unit weight", SettlementInput{Thickness: 20, Load: 20, UnitWeight: -6, Cc: 1.2, VoidRatio: 2}, "gamma"},
		{"zero thickness", SettlementInput{Thickness: 0, Load: 20, UnitWeight: 6, Cc: 1.2, VoidRatio: 2}, "H"},
		{"negative load", SettlementInput{Thickness: 20, Load: -5, UnitWeight: 6, Cc: 1.2, VoidRatio: 2}, "delta_sigma"},
		{"NaN load", SettlementInput{Thickness: 20, Load: math.NaN(), UnitWeight: 6, Cc: 1.2, VoidRatio: 2}, "delta_sigma"},
		{"zero void ratio", SettlementInput{Thickness: 20, Load: 20, UnitWeight: 6, Cc: 1.2, VoidRatio: 0}, "e0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Settlement(tt.in)
			var de *DomainError
			require.True(t, errors.As(err, &de), "want DomainError, got %v", err)
			assert.Equal(t, tt.param, de.Param)
		})
	}
}

func TestDegreeBounds(t *testing.T) {
	u0, err := designDrain.Degree(0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, u0)

	uInf, err := designDrain.Degree(1e6)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, uInf, 1e-12)

	u1, err := designDrain.Degree(1)
	require.NoError(t, err)
	assert.InDelta(t, 0.8515061678350276, u1, 1e-12)
}

func TestDegreesElementwise(t *testing.T) {
	times := []float64{0, 0.01, 0.1, 0.5, 1, 2, 10}
	u, err := DegreeOfConsolidation(designDrain.Ch, times, designDrain.Diameter, designDrain.InfluenceDiameter)
	require.NoError(t, err)
	require.Len(t, u, len(times))

	for i, tm := range times {
		want, err := designDrain.Degree(tm)
		require.NoError(t, err)
		assert.Equal(t, want, u[i], "t=%g", tm)
		if i > 0 {
			assert.GreaterOrEqual(t, u[i], u[i-1])
		}
	}

	empty, err := designDrain.Degrees(nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestDegreeDomain(t *testing.T) {
	tests := []struct {
		name  string
		drain Drain
		param string
	}{
		{"n equal to one", Drain{Ch: 1, Diameter: 1, InfluenceDiameter: 1}, "n"},
		{"n below one", Drain{Ch: 1, Diameter: 2, InfluenceDiameter: 1}, "n"},
		{"n just above one", Drain{Ch: 1, Diameter: 1, InfluenceDiameter: 1.01}, "F_n"},
		{"zero drain diameter", Drain{Ch: 1, Diameter: 0, InfluenceDiameter: 1}, "d"},
		{"zero c_h", Drain{Ch: 0, Diameter: 0.05, InfluenceDiameter: 1}, "c_h"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.drain.Degrees([]float64{1})
			var de *DomainError
			require.True(t, errors.As(err, &de), "want DomainError, got %v", err)
			assert.Equal(t, tt.param, de.Param)
		})
	}

	t.Run("negative time", func(t *testing.T) {
		_, err := designDrain.Degrees([]float64{1, -1})
		var de *DomainError
		require.True(t, errors.As(err, &de))
		assert.Equal(t, "t", de.Param)
	})
}

func TestCurve(t *testing.T) {
	days := []float64{0, 36.5, 365}
	points, err := Curve(designDrain, 1.5, days)
	require.NoError(t, err)
	require.Len(t, points, 3)

	assert.Equal(t, 0.0, points[0].Settlement)
	assert.InDelta(t, 0.17363704206036268, points[1].Degree, 1e-12)
	assert.InDelta(t, 0.8515061678350276*1.5, points[2].Settlement, 1e-12)
	assert.Equal(t, 365.0, points[2].Time)
}

func TestLogTimes(t *testing.T) {
	ts, err := LogTimes(1, 1000, 4)
	require.NoError(t, err)
	require.Len(t, ts, 4)
	for i, want := range []float64{1, 10, 100, 1000} {
		assert.InDelta(t, want, ts[i], 1e-9)
	}

	_, err = LogTimes(0, 10, 5)
	assert.Error(t, err)
	_, err = LogTimes(1, 10, 1)
	assert.Error(t, err)
}

func TestTimeToDegree(t *testing.T) {
	tm, err := designDrain.TimeToDegree(0.9)
	require.NoError(t, err)
	u, err := designDrain.Degree(tm)
	require.NoError(t, err)
	assert.InDelta(t, 0.9, u, 1e-12)

	_, err = designDrain.TimeToDegree(1)
	assert.Error(t, err)
}
