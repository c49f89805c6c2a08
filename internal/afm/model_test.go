package afm

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestSigmoid_Midpoint(t *testing.T) {
	if got := Sigmoid(0); !almostEqual(got, 0.5) {
		t.Errorf("Sigmoid(0) = %f, want 0.5", got)
	}
}

func TestSigmoid_StrictBounds(t *testing.T) {
	for _, x := range []float64{-1000, -40, -5, -0.1, 0, 0.1, 5, 40, 1000} {
		p := Sigmoid(x)
		if !(p > 0 && p < 1) {
			t.Errorf("Sigmoid(%v) = %v, want strictly inside (0,1)", x, p)
		}
	}
}

func TestSigmoid_Symmetry(t *testing.T) {
	for _, x := range []float64{0.3, 1.5, 4, 9} {
		if got := Sigmoid(x) + Sigmoid(-x); !almostEqual(got, 1) {
			t.Errorf("Sigmoid(%v)+Sigmoid(-%v) = %v, want 1", x, x, got)
		}
	}
}

func TestPredict_KnownValue(t *testing.T) {
	// variables concept, first task: 0 + (-0.3) + 0.4*0 = -0.3
	want := 1 / (1 + math.Exp(0.3))
	if got := Predict(0, -0.3, 0.4, 0); !almostEqual(got, want) {
		t.Errorf("Predict = %f, want %f", got, want)
	}
}

func TestPredict_Bounds(t *testing.T) {
	tests := []struct {
		ability, difficulty, rate float64
		opps                      int
	}{
		{0, 0, 0, 0},
		{50, 50, 1, 100},
		{-50, -50, 0, 0},
		{3, -2.5, 0.4, 1000},
		{-3, 2.5, -0.4, 1000},
	}
	for _, tt := range tests {
		p := Predict(tt.ability, tt.difficulty, tt.rate, tt.opps)
		if !(p > 0 && p < 1) {
			t.Errorf("Predict(%v, %v, %v, %d) = %v out of (0,1)", tt.ability, tt.difficulty, tt.rate, tt.opps, p)
		}
	}
}

func TestPredict_MonotoneInAbility(t *testing.T) {
	prev := Predict(-3, -0.8, 0.2, 2)
	for a := -2.9; a <= 3; a += 0.1 {
		p := Predict(a, -0.8, 0.2, 2)
		if p <= prev {
			t.Fatalf("Predict not increasing at ability %.1f: %f <= %f", a, p, prev)
		}
		prev = p
	}
}

func TestPredict_MonotoneInOpportunities(t *testing.T) {
	prev := Predict(0, -1.2, 0.3, 0)
	for n := 1; n <= 20; n++ {
		p := Predict(0, -1.2, 0.3, n)
		if p <= prev {
			t.Fatalf("Predict not increasing at T=%d", n)
		}
		prev = p
	}
}

func TestPredict_HarderConceptLowerProbability(t *testing.T) {
	easy := Predict(0, -0.3, 0.1, 0)
	hard := Predict(0, -2.5, 0.1, 0)
	if hard >= easy {
		t.Errorf("more negative difficulty should lower probability: hard=%f easy=%f", hard, easy)
	}
}

func TestPredictSim_SubtractsBeta(t *testing.T) {
	// theta=0, beta=1, gamma=0: logit -1
	if got, want := PredictSim(0, 1, 0, 0), Sigmoid(-1); !almostEqual(got, want) {
		t.Errorf("PredictSim = %f, want %f", got, want)
	}
	// The explorer form adds difficulty instead.
	if got, want := Predict(0, 1, 0, 0), Sigmoid(1); !almostEqual(got, want) {
		t.Errorf("Predict = %f, want %f", got, want)
	}
}

func TestSimulatorLogit_Defaults(t *testing.T) {
	// theta 0, beta 0, gamma 0.3, practice 5 -> 1.5
	if got := SimulatorLogit(0, 0, 0.3, 5); !almostEqual(got, 1.5) {
		t.Errorf("SimulatorLogit = %f, want 1.5", got)
	}
}

func TestRound(t *testing.T) {
	tests := []struct {
		in     float64
		places int
		want   float64
	}{
		{0.1 + 0.1 + 0.1, 2, 0.3},
		{0.7999999999999999, 2, 0.8},
		{-0.05, 2, -0.05},
		{0.3 + 0.05, 2, 0.35},
	}
	for _, tt := range tests {
		if got := Round(tt.in, tt.places); got != tt.want {
			t.Errorf("Round(%v, %d) = %v, want %v", tt.in, tt.places, got, tt.want)
		}
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(3.2, -3, 3); got != 3 {
		t.Errorf("Clamp high = %v", got)
	}
	if got := Clamp(-3.2, -3, 3); got != -3 {
		t.Errorf("Clamp low = %v", got)
	}
	if got := Clamp(1.5, -3, 3); got != 1.5 {
		t.Errorf("Clamp inside = %v", got)
	}
	if got := Clamp(math.NaN(), -3, 3); got != -3 {
		t.Errorf("Clamp NaN = %v, want -3", got)
	}
}
