package consolidation

import "math"

// Drain describes a vertical drain installation for radial consolidation.
type Drain struct {
	Ch                float64 `yaml:"ch"`                 // c_h - horizontal coefficient of consolidation (m²/yr)
	Diameter          float64 `yaml:"drain_diameter"`     // d - equivalent drain diameter (m)
	InfluenceDiameter float64 `yaml:"influence_diameter"` // D_e - equivalent diameter of the tributary area (m)
}

// SpacingRatio returns n = D_e/d.
func (dr Drain) SpacingRatio() float64 {
	return dr.InfluenceDiameter / dr.Diameter
}

// GeometryFactor returns F(n) = n²/(n²−1)·ln(n − (3n²−1)/(4n²)).
func (dr Drain) GeometryFactor() float64 {
	n := dr.SpacingRatio()
	n2 := n * n
	return n2 / (n2 - 1) * math.Log(n-(3*n2-1)/(4*n2))
}

// Validate checks that the drain geometry gives a positive geometry factor.
// This requires c_h > 0, d > 0, n > 1 and n − (3n²−1)/(4n²) > 1.
func (dr Drain) Validate() error {
	const fn = "degree_of_consolidation"
	switch {
	case !(dr.Ch > 0) || math.IsInf(dr.Ch, 0):
		return domainErr(fn, "c_h", dr.Ch, "c_h > 0")
	case !(dr.Diameter > 0) || math.IsInf(dr.Diameter, 0):
		return domainErr(fn, "d", dr.Diameter, "d > 0")
	case !(dr.InfluenceDiameter > 0) || math.IsInf(dr.InfluenceDiameter, 0):
		return domainErr(fn, "D_e", dr.InfluenceDiameter, "D_e > 0")
	}
	if n := dr.SpacingRatio(); !(n > 1) {
		return domainErr(fn, "n", n, "n = D_e/d > 1")
	}
	if f := dr.GeometryFactor(); !(f > 0) || math.IsInf(f, 0) {
		return domainErr(fn, "F_n", f, "F_n > 0")
	}
	return nil
}

// TimeFactor returns T_h = c_h·t/D_e².
func (dr Drain) TimeFactor(t float64) float64 {
	return dr.Ch * t / (dr.InfluenceDiameter * dr.InfluenceDiameter)
}

// Degree returns Barron's average degree of radial consolidation
// U_h = 1 − exp(−8·T_h/F_n) at time t (same time unit as c_h).
func (dr Drain) Degree(t float64) (float64, error) {
	if err := dr.Validate(); err != nil {
		return 0, err
	}
	if err := checkTime(t); err != nil {
		return 0, err
	}
	return dr.degree(t, dr.GeometryFactor()), nil
}

// Degrees evaluates Degree element-wise over times. The result has the
// same length as times.
func (dr Drain) Degrees(times []float64) ([]float64, error) {
	if err := dr.Validate(); err != nil {
		return nil, err
	}
	fn := dr.GeometryFactor()
	u := make([]float64, len(times))
	for i, t := range times {
		if err := checkTime(t); err != nil {
			return nil, err
		}
		u[i] = dr.degree(t, fn)
	}
	return u, nil
}

func (dr Drain) degree(t, fn float64) float64 {
	return 1 - math.Exp(-8*dr.TimeFactor(t)/fn)
}

func checkTime(t float64) error {
	if !(t >= 0) || math.IsInf(t, 0) {
		return domainErr("degree_of_consolidation", "t", t, "0 <= t < +Inf")
	}
	return nil
}

// DegreeOfConsolidation is the functional form of Drain.Degrees.
func DegreeOfConsolidation(ch float64, times []float64, d, de float64) ([]float64, error) {
	return Drain{Ch: ch, Diameter: d, InfluenceDiameter: de}.Degrees(times)
}
