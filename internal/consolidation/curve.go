package consolidation

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// DaysPerYear converts analysis times reported in days to the yearly unit
// used for c_h.
const DaysPerYear = 365.0

// LogTimes returns n times spaced logarithmically between start and end
// inclusive. Both bounds must be positive.
func LogTimes(start, end float64, n int) ([]float64, error) {
	if n < 2 {
		return nil, fmt.Errorf("log time grid needs at least 2 points, got %d", n)
	}
	if !(start > 0) || !(end > start) {
		return nil, fmt.Errorf("log time grid needs 0 < start < end, got %g..%g", start, end)
	}
	return floats.LogSpan(make([]float64, n), start, end), nil
}

// CurvePoint is one point of a settlement-time curve.
type CurvePoint struct {
	Time       float64 // analysis time (days)
	Degree     float64 // U_h
	Settlement float64 // U_h·S∞ (m)
}

// Curve predicts the settlement-time curve of a drained layer: Barron's
// degree of consolidation at each time (days) scaled by the ultimate
// settlement.
func Curve(dr Drain, ultimate float64, days []float64) ([]CurvePoint, error) {
	years := make([]float64, len(days))
	copy(years, days)
	floats.Scale(1/DaysPerYear, years)

	u, err := dr.Degrees(years)
	if err != nil {
		return nil, err
	}

	s := make([]float64, len(u))
	floats.ScaleTo(s, ultimate, u)

	points := make([]CurvePoint, len(days))
	for i := range days {
		points[i] = CurvePoint{Time: days[i], Degree: u[i], Settlement: s[i]}
	}
	return points, nil
}

// TimeToDegree returns the time (in the unit of c_h) at which the average
// degree of consolidation reaches target, 0 <= target < 1.
func (dr Drain) TimeToDegree(target float64) (float64, error) {
	if err := dr.Validate(); err != nil {
		return 0, err
	}
	if !(target >= 0 && target < 1) {
		return 0, domainErr("time_to_degree", "U", target, "0 <= U < 1")
	}
	de2 := dr.InfluenceDiameter * dr.InfluenceDiameter
	th := -dr.GeometryFactor() / 8 * math.Log(1-target)
	return th * de2 / dr.Ch, nil
}
