package results

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/alexiusacademia/geocons/internal/consolidation"
)

// CurveStep is one calculation step at a curve point: the time reached
// (days) and the total displacement (m).
type CurveStep struct {
	Time float64
	Utot float64
}

// ReadCurve reads a settlement-time curve from CSV with columns time and
// utot. Times must not decrease.
func ReadCurve(r io.Reader) ([]CurveStep, error) {
	t, err := readTable(r, "time", "utot")
	if err != nil {
		return nil, fmt.Errorf("curve: %w", err)
	}
	steps := make([]CurveStep, len(t.rows))
	for i := range t.rows {
		v, err := t.floats(i, "time", "utot")
		if err != nil {
			return nil, fmt.Errorf("curve: %w", err)
		}
		if v[0] < 0 {
			return nil, fmt.Errorf("curve: line %d: negative time %g", t.line[i], v[0])
		}
		if i > 0 && v[0] < steps[i-1].Time {
			return nil, fmt.Errorf("curve: line %d: time %g before %g", t.line[i], v[0], steps[i-1].Time)
		}
		steps[i] = CurveStep{Time: v[0], Utot: v[1]}
	}
	return steps, nil
}

// WriteCurve writes steps as CSV with a time,utot header.
func WriteCurve(w io.Writer, steps []CurveStep) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"time", "utot"}); err != nil {
		return err
	}
	for _, s := range steps {
		rec := []string{
			strconv.FormatFloat(s.Time, 'g', -1, 64),
			strconv.FormatFloat(s.Utot, 'g', -1, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Comparison pairs a computed settlement with Barron's prediction at the
// same time.
type Comparison struct {
	Time     float64 // days
	Measured float64 // m
	Barron   float64 // m
}

// Residual returns Measured − Barron.
func (c Comparison) Residual() float64 {
	return c.Measured - c.Barron
}

// CompareWithBarron evaluates Barron's settlement U_h(t)·S∞ at each step
// time. Step times are in days; the drain's c_h is per year.
func CompareWithBarron(steps []CurveStep, dr consolidation.Drain, ultimate float64) ([]Comparison, error) {
	days := make([]float64, len(steps))
	for i, s := range steps {
		days[i] = s.Time
	}
	predicted, err := consolidation.Curve(dr, ultimate, days)
	if err != nil {
		return nil, err
	}
	out := make([]Comparison, len(steps))
	for i, s := range steps {
		out[i] = Comparison{Time: s.Time, Measured: s.Utot, Barron: predicted[i].Settlement}
	}
	return out, nil
}
