package simulator

import (
	"math"

	"github.com/abhisek/afmlab/internal/afm"
)

// Adaptation constants for simulated responses.
const (
	thetaUp   = 0.1
	thetaDown = 0.05

	betaBigStep   = 0.15
	betaSmallStep = 0.05
	largeError    = 0.2

	gammaStep   = 0.05
	gammaWindow = 3
)

// SimulateResponse records a simulated answer and adapts the parameters.
// It returns the new state and the parameters whose value changed; practice
// is always included.
func (s State) SimulateResponse(correct bool) (State, []Param) {
	p := afm.PredictSim(s.Theta, s.Beta, s.Gamma, s.PracticeCount)

	next := s
	next.Log = append(make([]Response, 0, len(s.Log)+1), s.Log...)
	next.Log = append(next.Log, Response{Practice: s.PracticeCount, Correct: correct, Probability: p})

	if correct {
		next.Theta = math.Min(3, s.Theta+thetaUp)
	} else {
		next.Theta = math.Max(-3, s.Theta-thetaDown)
	}
	next.Theta = afm.Round(next.Theta, 2)

	next.Beta = afm.Round(adaptBeta(s.Beta, p, correct), 2)
	next.Gamma = afm.Round(adaptGamma(s.Gamma, next.Log), 2)

	next.PracticeCount = s.PracticeCount + 1
	next.Practice = next.PracticeCount

	var changed []Param
	if next.Theta != s.Theta {
		changed = append(changed, ParamTheta)
	}
	if next.Beta != s.Beta {
		changed = append(changed, ParamBeta)
	}
	if next.Gamma != s.Gamma {
		changed = append(changed, ParamGamma)
	}
	changed = append(changed, ParamPractice)
	return next, changed
}

// adaptBeta applies both difficulty rules in order. The second rule works on
// the result of the first, so a large miss can move beta by 0.2 in one step.
func adaptBeta(beta, p float64, correct bool) float64 {
	outcome := 0.0
	if correct {
		outcome = 1
	}
	if math.Abs(outcome-p) > largeError {
		switch {
		case correct && p < 0.4:
			beta = math.Max(-2, beta-betaBigStep)
		case !correct && p > 0.6:
			beta = math.Min(2, beta+betaBigStep)
		}
	}
	switch {
	case correct && p < 0.7:
		beta = math.Max(-2, beta-betaSmallStep)
	case !correct && p > 0.3:
		beta = math.Min(2, beta+betaSmallStep)
	}
	return beta
}

// adaptGamma looks at the last three responses, including the newest.
func adaptGamma(gamma float64, log []Response) float64 {
	if len(log) < gammaWindow {
		return gamma
	}
	n := 0
	for _, r := range log[len(log)-gammaWindow:] {
		if r.Correct {
			n++
		}
	}
	switch {
	case n >= 2:
		return math.Min(1, gamma+gammaStep)
	case n == 0:
		return math.Max(0, gamma-gammaStep)
	}
	return gamma
}
