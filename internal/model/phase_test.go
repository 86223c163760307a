package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhaseConstructors(t *testing.T) {
	p := NewPlasticPhase("Excavation", InitialPhase)
	assert.Equal(t, Plastic, p.Type)
	assert.Equal(t, Picos, p.Solver)
	assert.Equal(t, Phreatic, p.PorePressure)
	assert.True(t, p.CavitationCutOff)
	assert.False(t, p.ResetDisplacements)
	assert.NoError(t, p.Validate())

	c, err := NewConsolidationPhase("Wait", "Excavation", MinExcessPorePressure, 1)
	require.NoError(t, err)
	assert.Equal(t, 1.0, c.PStop)
	assert.Equal(t, PreviousPhase, c.PorePressure)

	c, err = NewConsolidationPhase("Wait", "Excavation", DegreeOfConsolidation, 90)
	require.NoError(t, err)
	assert.Equal(t, 90.0, c.Degree)

	_, err = NewConsolidationPhase("Wait", "Excavation", StagedConstruction, 0)
	assert.Error(t, err)
	_, err = NewConsolidationPhase("Wait", "Excavation", DegreeOfConsolidation, 120)
	assert.Error(t, err)
	_, err = NewConsolidationPhase("Wait", "Excavation", "Load advancement", 1)
	assert.Error(t, err)

	s := NewSafetyPhase("FoS", "Wait", true, 0)
	assert.Equal(t, Safety, s.Type)
	assert.Nil(t, s.Numerical)
	assert.Equal(t, 100, s.MaxSteps)
	assert.True(t, s.ResetDisplacements)

	s = NewSafetyPhase("FoS", "Wait", false, 300)
	require.NotNil(t, s.Numerical)
	assert.Equal(t, 300, s.Numerical.MaxSteps)
	assert.Equal(t, 300, s.MaxSteps)
	assert.NoError(t, s.Validate())
}

func TestDefaultNumericalControl(t *testing.T) {
	nc := DefaultNumericalControl()
	assert.Equal(t, NumericalControl{
		MaxSteps:             1000,
		MaxUnloadingSteps:    5,
		MaxIterations:        60,
		DesiredMinIterations: 6,
		DesiredMaxIterations: 15,
	}, nc)
	require.NoError(t, nc.Validate())

	nc.DesiredMinIterations = 20
	assert.Error(t, nc.Validate())

	nc = DefaultNumericalControl()
	nc.DesiredMaxIterations = 80
	assert.Error(t, nc.Validate())
}

func TestPlan(t *testing.T) {
	plan := NewPlan()
	require.Equal(t, 1, plan.Len())

	require.NoError(t, plan.Add(NewPlasticPhase("Fill", InitialPhase)))
	wait, err := NewConsolidationPhase("Wait", "", StagedConstruction, 60)
	require.NoError(t, err)
	require.NoError(t, plan.Add(wait))

	got, ok := plan.Lookup("Wait")
	require.True(t, ok)
	assert.Equal(t, "Fill", got.Parent, "empty parent starts from the last phase")

	assert.Error(t, plan.Add(NewPlasticPhase("Fill", InitialPhase)), "duplicate name")
	assert.Error(t, plan.Add(NewPlasticPhase("Cut", "Excavation")), "unknown parent")
	assert.Equal(t, 3, plan.Len())

	phases := plan.Phases()
	phases[0].Name = "changed"
	_, ok = plan.Lookup(InitialPhase)
	assert.True(t, ok, "Phases returns a copy")
}

func TestConsolidationSchedule(t *testing.T) {
	stages, err := ConsolidationSchedule("Fill", 3, 5)
	require.NoError(t, err)
	require.Len(t, stages, 4)

	wantNames := []string{
		"Consolidation at 3 days",
		"Consolidation at 9 days",
		"Consolidation at 27 days",
		"Consolidation at 81 days",
	}
	wantElapsed := []float64{3, 12, 39, 120}
	parent := "Fill"
	for i, s := range stages {
		assert.Equal(t, wantNames[i], s.Phase.Name)
		assert.Equal(t, parent, s.Phase.Parent)
		assert.Equal(t, StagedConstruction, s.Phase.Loading)
		assert.InDelta(t, wantElapsed[i], s.Elapsed, 1e-9)
		parent = s.Phase.Name
	}

	plan := NewPlan()
	require.NoError(t, plan.Add(NewPlasticPhase("Fill", InitialPhase)))
	require.NoError(t, plan.AddAll(SchedulePhases(stages)))
	elapsed, err := plan.Elapsed(plan.Last().Name)
	require.NoError(t, err)
	assert.InDelta(t, 120.0, elapsed, 1e-9)

	_, err = ConsolidationSchedule("Fill", 1, 5)
	assert.Error(t, err)
	_, err = ConsolidationSchedule("Fill", 3, 1)
	assert.Error(t, err)
}
