package simulator

import (
	"math"
	"slices"

	"github.com/abhisek/afmlab/internal/afm"
)

// Default parameter values for a fresh simulator.
const (
	DefaultTheta         = 0.0
	DefaultBeta          = 0.0
	DefaultGamma         = 0.3
	DefaultPractice      = 5
	DefaultPracticeCount = 5
)

// CurveMaxPractice is the last practice value plotted on the curve.
const CurveMaxPractice = 20

// LogDisplayLimit is how many recent responses are shown.
const LogDisplayLimit = 10

// Response is one simulated answer and the probability predicted before it.
type Response struct {
	Practice    int     `json:"practice"`
	Correct     bool    `json:"correct"`
	Probability float64 `json:"probability"`
}

// State is the simulator model. It is a value type: transitions return a new
// State and never modify the receiver's response log.
type State struct {
	Theta float64
	Beta  float64
	Gamma float64

	// Practice is the slider-visible practice value used for display.
	Practice int

	// PracticeCount is the practice value used by simulated responses. It only
	// matches Practice after a simulated response.
	PracticeCount int

	// Log is the append-only response history.
	Log []Response
}

// New returns the simulator with default parameters and an empty log.
func New() State {
	return State{
		Theta:         DefaultTheta,
		Beta:          DefaultBeta,
		Gamma:         DefaultGamma,
		Practice:      DefaultPractice,
		PracticeCount: DefaultPracticeCount,
	}
}

// Value returns the current value of p.
func (s State) Value(p Param) float64 {
	switch p {
	case ParamTheta:
		return s.Theta
	case ParamBeta:
		return s.Beta
	case ParamGamma:
		return s.Gamma
	case ParamPractice:
		return float64(s.Practice)
	}
	return 0
}

// SetTheta sets θ, clamped to [-3, 3]. NaN is ignored.
func (s State) SetTheta(v float64) State {
	if math.IsNaN(v) {
		return s
	}
	s.Theta = clampParam(ParamTheta, v)
	return s
}

// SetBeta sets β, clamped to [-2, 2]. NaN is ignored.
func (s State) SetBeta(v float64) State {
	if math.IsNaN(v) {
		return s
	}
	s.Beta = clampParam(ParamBeta, v)
	return s
}

// SetGamma sets γ, clamped to [0, 1]. NaN is ignored.
func (s State) SetGamma(v float64) State {
	if math.IsNaN(v) {
		return s
	}
	s.Gamma = clampParam(ParamGamma, v)
	return s
}

// SetPractice sets the slider practice value, clamped to [0, 20].
// PracticeCount is left alone.
func (s State) SetPractice(v int) State {
	r := ParamPractice.Range()
	s.Practice = int(afm.Clamp(float64(v), r.Min, r.Max))
	return s
}

// Set dispatches to the setter for p. Practice values are rounded to the
// nearest whole number. NaN leaves the state unchanged.
func (s State) Set(p Param, v float64) State {
	if math.IsNaN(v) {
		return s
	}
	switch p {
	case ParamTheta:
		return s.SetTheta(v)
	case ParamBeta:
		return s.SetBeta(v)
	case ParamGamma:
		return s.SetGamma(v)
	case ParamPractice:
		r := ParamPractice.Range()
		return s.SetPractice(int(afm.Round(afm.Clamp(v, r.Min, r.Max), 0)))
	}
	return s
}

// Nudge moves p by steps slider steps.
func (s State) Nudge(p Param, steps int) State {
	return s.Set(p, s.Value(p)+float64(steps)*p.Range().Step)
}

func clampParam(p Param, v float64) float64 {
	r := p.Range()
	return afm.Round(afm.Clamp(v, r.Min, r.Max), 2)
}

// Logit returns θ - β + γ·Practice.
func (s State) Logit() float64 {
	return afm.SimulatorLogit(s.Theta, s.Beta, s.Gamma, s.Practice)
}

// Probability returns the predicted success probability at the slider practice.
func (s State) Probability() float64 {
	return afm.PredictSim(s.Theta, s.Beta, s.Gamma, s.Practice)
}

// Curve returns the probability curve for practice 0..20.
func (s State) Curve() []afm.CurvePoint {
	return afm.Curve(s.Theta, s.Beta, s.Gamma, CurveMaxPractice)
}

// RecentLog returns up to LogDisplayLimit most recent responses, oldest first.
func (s State) RecentLog() []Response {
	start := max(0, len(s.Log)-LogDisplayLimit)
	return slices.Clone(s.Log[start:])
}
