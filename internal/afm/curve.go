package afm

// CurvePoint is one sample of the simulator's success curve.
type CurvePoint struct {
	Practice    int     `json:"practice"`
	Probability float64 `json:"probability"`
}

// Curve samples PredictSim for practice = 0..maxPractice inclusive.
func Curve(theta, beta, gamma float64, maxPractice int) []CurvePoint {
	if maxPractice < 0 {
		return nil
	}
	points := make([]CurvePoint, 0, maxPractice+1)
	for t := 0; t <= maxPractice; t++ {
		points = append(points, CurvePoint{
			Practice:    t,
			Probability: PredictSim(theta, beta, gamma, t),
		})
	}
	return points
}
