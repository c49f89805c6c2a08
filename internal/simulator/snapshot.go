package simulator

import (
	"fmt"
	"time"

	"github.com/abhisek/afmlab/internal/afm"
)

// ParamView is one slider as presented.
type ParamView struct {
	Param       Param   `json:"param"`
	Symbol      string  `json:"symbol"`
	Label       string  `json:"label"`
	Value       float64 `json:"value"`
	Display     string  `json:"display"`
	Range       Range   `json:"range"`
	Highlighted bool    `json:"highlighted"`
}

// Snapshot is a read-only rendering of State for presentation layers.
type Snapshot struct {
	Params        []ParamView      `json:"params"`
	PracticeCount int              `json:"practice_count"`
	Logit         float64          `json:"logit"`
	Probability   float64          `json:"probability"`
	Zone          string           `json:"zone"`
	Formula       string           `json:"formula"`
	Steps         []string         `json:"steps"`
	Curve         []afm.CurvePoint `json:"curve"`
	CurrentPoint  afm.CurvePoint   `json:"current_point"`
	Log           []Response       `json:"log"`
	TotalLogged   int              `json:"total_logged"`
}

// FormatValue renders v with the display precision of p.
func FormatValue(p Param, v float64) string {
	return fmt.Sprintf("%.*f", p.Precision(), v)
}

// Formula is the canonical AFM formula with current values filled in.
func (s State) Formula() string {
	p := s.Probability()
	return fmt.Sprintf("ln(%.3f / (1 - %.3f)) = %.1f + 1.0 × %.1f + 1.0 × %.2f × %d",
		p, p, s.Theta, s.Beta, s.Gamma, s.Practice)
}

// Steps returns the step-by-step calculation lines.
func (s State) Steps() []string {
	logit := s.Logit()
	return []string{
		"1. Logit = θ - β + γ × T",
		fmt.Sprintf("2. Logit = %.1f - (%.1f) + %.2f × %d", s.Theta, s.Beta, s.Gamma, s.Practice),
		fmt.Sprintf("3. Logit = %.3f", logit),
		"4. P(success) = 1 / (1 + e^-logit)",
		fmt.Sprintf("5. P(success) = 1 / (1 + e^-%.3f)", logit),
		fmt.Sprintf("P(success) = %.1f%%", s.Probability()*100),
	}
}

// Snapshot builds the presentation view of s. Highlights are evaluated at now;
// h may be nil.
func (s State) Snapshot(h *Highlights, now time.Time) Snapshot {
	prob := s.Probability()
	snap := Snapshot{
		PracticeCount: s.PracticeCount,
		Logit:         s.Logit(),
		Probability:   prob,
		Zone:          afm.Classify(prob).String(),
		Formula:       s.Formula(),
		Steps:         s.Steps(),
		Curve:         s.Curve(),
		CurrentPoint:  afm.CurvePoint{Practice: s.Practice, Probability: prob},
		Log:           s.RecentLog(),
		TotalLogged:   len(s.Log),
	}
	for _, p := range Params() {
		v := s.Value(p)
		snap.Params = append(snap.Params, ParamView{
			Param:       p,
			Symbol:      p.Symbol(),
			Label:       p.Label(),
			Value:       v,
			Display:     FormatValue(p, v),
			Range:       p.Range(),
			Highlighted: h != nil && h.IsActive(p, now),
		})
	}
	return snap
}
