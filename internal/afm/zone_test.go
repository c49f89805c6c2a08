package afm

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		p    float64
		want Zone
	}{
		{0.01, TooHard},
		{0.399, TooHard},
		{0.4, InZPD},
		{0.6, InZPD},
		{0.8, InZPD},
		{0.8001, TooEasy},
		{0.99, TooEasy},
	}
	for _, tt := range tests {
		if got := Classify(tt.p); got != tt.want {
			t.Errorf("Classify(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestZoneLabel(t *testing.T) {
	if TooHard.Label() != "TOO HARD" || InZPD.Label() != "IN ZPD" || TooEasy.Label() != "TOO EASY" {
		t.Error("unexpected zone labels")
	}
}

func TestCurve(t *testing.T) {
	pts := Curve(0, 0, 0.3, 20)
	if len(pts) != 21 {
		t.Fatalf("len(Curve) = %d, want 21", len(pts))
	}
	for i, pt := range pts {
		if pt.Practice != i {
			t.Errorf("point %d has practice %d", i, pt.Practice)
		}
		if want := PredictSim(0, 0, 0.3, i); !almostEqual(pt.Probability, want) {
			t.Errorf("point %d probability = %f, want %f", i, pt.Probability, want)
		}
	}
	if Curve(0, 0, 0.3, -1) != nil {
		t.Error("negative range should return nil")
	}
}
