// Package afm implements the Additive Factor Model probability functions
// shared by the Learning Explorer and the Simulator.
package afm

import "math"

// Sigmoid maps a logit to a probability strictly inside (0, 1).
// Saturated results are nudged to the nearest representable value inside
// the interval so callers can rely on the open bounds for any finite input.
func Sigmoid(logit float64) float64 {
	var p float64
	if logit >= 0 {
		p = 1 / (1 + math.Exp(-logit))
	} else {
		e := math.Exp(logit)
		p = e / (1 + e)
	}
	switch {
	case p >= 1:
		return math.Nextafter(1, 0)
	case p <= 0:
		return math.SmallestNonzeroFloat64
	}
	return p
}

// ExplorerLogit is the explorer's log-odds: ability + difficulty + rate × T.
// Difficulty is added, so harder concepts carry negative values.
func ExplorerLogit(ability, difficulty, learningRate float64, opportunities int) float64 {
	return ability + difficulty + learningRate*float64(opportunities)
}

// Predict returns the explorer's probability of a correct answer.
func Predict(ability, difficulty, learningRate float64, opportunities int) float64 {
	return Sigmoid(ExplorerLogit(ability, difficulty, learningRate, opportunities))
}

// SimulatorLogit is the simulator's log-odds: θ - β + γ × T.
// Difficulty is subtracted here, unlike ExplorerLogit.
func SimulatorLogit(theta, beta, gamma float64, practice int) float64 {
	return theta - beta + gamma*float64(practice)
}

// PredictSim returns the simulator's probability of a correct answer.
func PredictSim(theta, beta, gamma float64, practice int) float64 {
	return Sigmoid(SimulatorLogit(theta, beta, gamma, practice))
}

// Round rounds x to the given number of decimal places.
func Round(x float64, places int) float64 {
	pow := math.Pow(10, float64(places))
	return math.Round(x*pow) / pow
}

// Clamp bounds x to [lo, hi]. NaN clamps to lo.
func Clamp(x, lo, hi float64) float64 {
	if math.IsNaN(x) {
		return lo
	}
	return math.Max(lo, math.Min(hi, x))
}
