package coach

import (
	"fmt"
	"time"

	"github.com/abhisek/afmlab/internal/afm"
	"github.com/abhisek/afmlab/internal/explorer"
	"github.com/abhisek/afmlab/internal/simulator"
)

// Page names the widget a request came from.
type Page string

const (
	PageExplorer  Page = "explorer"
	PageSimulator Page = "simulator"
)

// Term is one named contribution to the logit.
type Term struct {
	Name  string
	Value float64
}

// Input is everything the coach sees about the current prediction.
type Input struct {
	Page        Page
	Subject     string // task title or "simulated student"
	Terms       []Term
	Logit       float64
	Probability float64
	Zone        afm.Zone

	// Outcome is "correct", "incorrect" or empty when nothing has been
	// answered yet.
	Outcome string

	// Recent holds the latest simulated outcomes, oldest first.
	Recent []bool

	// Offline is shown when no provider is configured or the call fails.
	Offline string
}

// Explanation is a plain-language reading of a prediction.
type Explanation struct {
	Summary     string
	Suggestion  string
	Source      string // provider name, or "offline"
	GeneratedAt time.Time
}

// SourceOffline marks explanations built without an LLM.
const SourceOffline = "offline"

// FromExplorer describes the explorer's current task. The second result is
// false once every task is done.
func FromExplorer(s explorer.State) (Input, bool) {
	t, ok := s.CurrentTask()
	if !ok {
		return Input{}, false
	}
	cs := s.Concepts[t.Concept]
	in := Input{
		Page:    PageExplorer,
		Subject: fmt.Sprintf("%s (%s)", t.Title, t.Concept.DisplayName()),
		Terms: []Term{
			{Name: "ability", Value: s.Ability},
			{Name: "difficulty", Value: cs.Difficulty},
			{Name: fmt.Sprintf("learning rate × %d opportunities", cs.Opportunities), Value: cs.LearningRate * float64(cs.Opportunities)},
		},
		Logit:       s.Logit(),
		Probability: s.Probability(),
		Zone:        s.Zone(),
	}
	if s.Answered {
		in.Outcome = outcome(s.LastAnswerCorrect())
		in.Offline = s.Insight()
	} else {
		in.Offline = fmt.Sprintf("The model gives you a %.0f%% chance on this %s task, which it rates %s.",
			in.Probability*100, t.Concept.DisplayName(), in.Zone.Label())
	}
	return in, true
}

// FromSimulator describes the simulated student.
func FromSimulator(s simulator.State) Input {
	in := Input{
		Page:    PageSimulator,
		Subject: "simulated student",
		Terms: []Term{
			{Name: "θ ability", Value: s.Theta},
			{Name: "-β difficulty", Value: -s.Beta},
			{Name: fmt.Sprintf("γ × %d practice", s.Practice), Value: s.Gamma * float64(s.Practice)},
		},
		Logit:       s.Logit(),
		Probability: s.Probability(),
		Zone:        afm.Classify(s.Probability()),
	}
	for _, r := range s.RecentLog() {
		in.Recent = append(in.Recent, r.Correct)
	}
	if n := len(s.Log); n > 0 {
		in.Outcome = outcome(s.Log[n-1].Correct)
	}
	steps := s.Steps()
	in.Offline = fmt.Sprintf("%s, so this student is %s.", steps[len(steps)-1], in.Zone.Label())
	return in
}

func outcome(correct bool) string {
	if correct {
		return "correct"
	}
	return "incorrect"
}
