// Package consolidation evaluates closed-form consolidation results used to
// check the staged finite-element analyses: the ultimate one-dimensional
// settlement of a normally consolidated clay layer and Barron's average
// degree of radial consolidation for a vertical drain system.
package consolidation

import "math"

// SettlementInput holds the parameters of a uniformly loaded clay layer.
type SettlementInput struct {
	Thickness  float64 // H - clay thickness (m)
	Load       float64 // Δσ - stress increment applied at the top (kPa)
	UnitWeight float64 // γ' - effective unit weight (kN/m³)
	Cc         float64 // compression index (log10)
	VoidRatio  float64 // e0 - initial void ratio
}

// Validate checks the inputs against the domain of the settlement formula.
func (in SettlementInput) Validate() error {
	const fn = "settlement"
	switch {
	case !(in.Thickness > 0):
		return domainErr(fn, "H", in.Thickness, "H > 0")
	case !(in.UnitWeight > 0):
		return domainErr(fn, "gamma", in.UnitWeight, "gamma > 0")
	case !(in.Load >= 0):
		return domainErr(fn, "delta_sigma", in.Load, "delta_sigma >= 0")
	case !(in.Cc >= 0):
		return domainErr(fn, "Cc", in.Cc, "Cc >= 0")
	case !(in.VoidRatio > 0):
		return domainErr(fn, "e0", in.VoidRatio, "e0 > 0")
	}
	for _, v := range []float64{in.Thickness, in.Load, in.UnitWeight, in.Cc, in.VoidRatio} {
		if math.IsInf(v, 0) {
			return domainErr(fn, "input", v, "finite values")
		}
	}
	return nil
}

// Settlement returns the ultimate one-dimensional consolidation settlement
// (m) of a clay layer of thickness H under a surface load Δσ, integrating
// Cc/(1+e0)·log10((σ'v+Δσ)/σ'v) over the layer with σ'v = γ'·z:
//
//	S = Cc/(1+e0)·(H·log10((Δσ+σb)/σb) − Δσ/γ·log10(Δσ) + Δσ/γ·log10(Δσ+σb))
//
// where σb = H·γ' is the effective stress at the base of the layer.
func Settlement(in SettlementInput) (float64, error) {
	if err := in.Validate(); err != nil {
		return 0, err
	}
	if in.Load == 0 {
		return 0, nil
	}

	sigmaB := in.Thickness * in.UnitWeight
	ratio := (in.Load + sigmaB) / sigmaB
	if !(ratio > 0) {
		return 0, domainErr("settlement", "stress ratio", ratio, "(delta_sigma+sigma_b)/sigma_b > 0")
	}

	depthTerm := in.Thickness * math.Log10(ratio)
	loadTerm := in.Load / in.UnitWeight * (math.Log10(in.Load+sigmaB) - math.Log10(in.Load))
	s := in.Cc / (1 + in.VoidRatio) * (depthTerm + loadTerm)

	if math.IsNaN(s) || math.IsInf(s, 0) {
		return 0, domainErr("settlement", "result", s, "a finite settlement")
	}
	return s, nil
}
