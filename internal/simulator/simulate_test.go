package simulator

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/afmlab/internal/afm"
)

const epsilon = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestNew_Defaults(t *testing.T) {
	s := New()
	assert.Equal(t, 0.0, s.Theta)
	assert.Equal(t, 0.0, s.Beta)
	assert.Equal(t, 0.3, s.Gamma)
	assert.Equal(t, 5, s.Practice)
	assert.Equal(t, 5, s.PracticeCount)
	assert.Empty(t, s.Log)
	assert.InDelta(t, 1.5, s.Logit(), epsilon)
}

func TestSimulateResponse_CorrectFromDefaults(t *testing.T) {
	s, changed := New().SimulateResponse(true)

	assert.Equal(t, 0.1, s.Theta)
	assert.Equal(t, 0.0, s.Beta)
	assert.Equal(t, 0.3, s.Gamma)
	assert.Equal(t, 6, s.PracticeCount)
	assert.Equal(t, 6, s.Practice)
	require.Len(t, s.Log, 1)
	assert.Equal(t, 5, s.Log[0].Practice)
	assert.True(t, s.Log[0].Correct)
	assert.InDelta(t, afm.Sigmoid(1.5), s.Log[0].Probability, epsilon)
	assert.Equal(t, []Param{ParamTheta, ParamPractice}, changed)
}

func TestSimulateResponse_IncorrectCompoundsBeta(t *testing.T) {
	// p = sigmoid(1.5) ≈ 0.82: rule (a) adds 0.15, rule (b) adds 0.05.
	s, changed := New().SimulateResponse(false)

	assert.Equal(t, -0.05, s.Theta)
	assert.Equal(t, 0.2, s.Beta)
	assert.Equal(t, 0.3, s.Gamma)
	assert.Equal(t, []Param{ParamTheta, ParamBeta, ParamPractice}, changed)
}

func TestSimulateResponse_CorrectWhenUnlikely(t *testing.T) {
	// logit = 0 - 1 + 0 = -1, p ≈ 0.27: both rules lower beta.
	s := State{Theta: 0, Beta: 1, Gamma: 0, Practice: 0, PracticeCount: 0}
	s, _ = s.SimulateResponse(true)
	assert.Equal(t, 0.8, s.Beta)
}

func TestSimulateResponse_SmallErrorOnlyRuleB(t *testing.T) {
	// p = 0.5: |error| = 0.5 but neither big-step band applies.
	s := State{Gamma: 0}
	s, _ = s.SimulateResponse(true)
	assert.Equal(t, -0.05, s.Beta)

	s = State{Gamma: 0}
	s, _ = s.SimulateResponse(false)
	assert.Equal(t, 0.05, s.Beta)
}

func TestSimulateResponse_ThreeCorrectFromZero(t *testing.T) {
	s := State{Theta: 0, Beta: 0, Gamma: 0.3, Practice: 0, PracticeCount: 0}
	for range 3 {
		s, _ = s.SimulateResponse(true)
	}

	assert.Equal(t, 0.3, s.Theta)
	assert.Equal(t, 3, s.PracticeCount)
	assert.Equal(t, 3, s.Practice)
	require.Len(t, s.Log, 3)
	for i, r := range s.Log {
		assert.Equal(t, i, r.Practice)
	}
}

func TestSimulateResponse_GammaRaisedAfterStreak(t *testing.T) {
	s := New()
	for range 3 {
		s, _ = s.SimulateResponse(true)
	}
	// The third correct answer completes the window.
	assert.Equal(t, 0.35, s.Gamma)

	s, changed := s.SimulateResponse(false)
	assert.Equal(t, 0.4, s.Gamma)
	assert.Contains(t, changed, ParamGamma)
}

func TestSimulateResponse_GammaLoweredAfterThreeMisses(t *testing.T) {
	s := New()
	for range 2 {
		s, _ = s.SimulateResponse(false)
	}
	assert.Equal(t, 0.3, s.Gamma)

	s, _ = s.SimulateResponse(false)
	assert.Equal(t, 0.25, s.Gamma)
}

func TestSimulateResponse_GammaUnchangedWithOneOfThree(t *testing.T) {
	s := New()
	s, _ = s.SimulateResponse(true)
	s, _ = s.SimulateResponse(false)
	s, _ = s.SimulateResponse(false)
	assert.Equal(t, 0.3, s.Gamma)
}

func TestSimulateResponse_ParametersStayInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	s := New()
	for i := 0; i < 500; i++ {
		s, _ = s.SimulateResponse(rng.Intn(4) != 0)
		if s.Theta > 3 || s.Theta < -3 {
			t.Fatalf("theta out of range after %d steps: %v", i, s.Theta)
		}
		if s.Beta > 2 || s.Beta < -2 {
			t.Fatalf("beta out of range after %d steps: %v", i, s.Beta)
		}
		if s.Gamma > 1 || s.Gamma < 0 {
			t.Fatalf("gamma out of range after %d steps: %v", i, s.Gamma)
		}
	}
}

func TestSimulateResponse_ClampsAtBounds(t *testing.T) {
	s := State{Theta: 3, Beta: -2, Gamma: 1, PracticeCount: 0}
	for range 5 {
		s, _ = s.SimulateResponse(true)
	}
	assert.Equal(t, 3.0, s.Theta)
	assert.Equal(t, -2.0, s.Beta)
	assert.Equal(t, 1.0, s.Gamma)

	s = State{Theta: -3, Beta: 2, Gamma: 0, PracticeCount: 0}
	for range 5 {
		s, _ = s.SimulateResponse(false)
	}
	assert.Equal(t, -3.0, s.Theta)
	assert.Equal(t, 0.0, s.Gamma)
}

func TestSimulateResponse_DoesNotAliasLog(t *testing.T) {
	a, _ := New().SimulateResponse(true)
	b, _ := a.SimulateResponse(true)
	c, _ := a.SimulateResponse(false)

	require.Len(t, a.Log, 1)
	require.Len(t, b.Log, 2)
	require.Len(t, c.Log, 2)
	assert.True(t, b.Log[1].Correct)
	assert.False(t, c.Log[1].Correct)
}

func TestSimulateResponse_UsesPracticeCountNotSlider(t *testing.T) {
	s := New().SetPractice(20)
	assert.Equal(t, 5, s.PracticeCount)

	s, _ = s.SimulateResponse(true)
	require.Len(t, s.Log, 1)
	assert.Equal(t, 5, s.Log[0].Practice)
	assert.True(t, almostEqual(afm.Sigmoid(1.5), s.Log[0].Probability))
	assert.Equal(t, 6, s.Practice)
	assert.Equal(t, 6, s.PracticeCount)
}

func TestRecentLog(t *testing.T) {
	s := New()
	for range 12 {
		s, _ = s.SimulateResponse(true)
	}
	recent := s.RecentLog()
	require.Len(t, recent, LogDisplayLimit)
	assert.Equal(t, 7, recent[0].Practice)
	assert.Equal(t, 16, recent[9].Practice)
}
