package explorer

import (
	"fmt"
	"strconv"
)

// Insight returns the model insight for an answered task. cs is the concept
// state after the answer was recorded; correct reports whether it was right.
func Insight(t Task, cs ConceptState, correct bool) string {
	switch t.Focus {
	case FocusOpportunities:
		return fmt.Sprintf("Notice how your opportunities increased from %d to %d. "+
			"This directly affects your predicted success on similar tasks.",
			cs.Opportunities-1, cs.Opportunities)
	case FocusLearningRate:
		return fmt.Sprintf("The learning rate (%s) determines how much each practice opportunity "+
			"improves your performance. Higher rates mean faster learning.", trimFloat(cs.LearningRate))
	case FocusDifficulty:
		return fmt.Sprintf("This concept has difficulty %s. More negative values mean harder tasks, "+
			"which start with lower success probabilities.", trimFloat(cs.Difficulty))
	case FocusTransfer:
		return "This task combines multiple concepts. The AFM considers each concept separately, " +
			"which may not capture how skills truly interact."
	case FocusAbility:
		change := "stayed the same"
		if correct {
			change = "increased"
		}
		return fmt.Sprintf("Your general ability (θ) %s. This affects ALL future predictions, "+
			"regardless of the specific concept.", change)
	case FocusZPD:
		return "You're in the Zone of Proximal Development (40-80% success probability). " +
			"This is where optimal learning happens: challenging but achievable."
	case FocusTooHard:
		return "This task is above your ZPD (below 40% success probability). In a real learning system, " +
			"you would benefit from scaffolding, hints, or prerequisite practice before attempting this level."
	case FocusLimitation:
		return "Model limitation: the AFM may not accurately predict performance on completely new " +
			"concept types, as it only considers past performance on similar concepts."
	}
	return ""
}

func trimFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ParamHelp describes each parameter shown in the explorer's model panel.
var ParamHelp = map[string]string{
	"ability": "Represents the learner's general cognitive ability. Real AFM implementations estimate it " +
		"from historical performance across skills. Here it starts at 0.0 and grows by 0.1 per correct answer.",
	"difficulty": "How hard a skill is to master. Skills most students find difficult have more negative " +
		"values, typically calibrated with Item Response Theory on large response datasets.",
	"learning_rate": "How much each practice opportunity improves performance for this skill. " +
		"Higher values are learned faster.",
	"opportunities": "How many times this skill has been practiced. Every attempt counts, " +
		"whether the answer was correct or not.",
}

// SummarySection is one block of the completion summary.
type SummarySection struct {
	Heading string   `json:"heading"`
	Items   []string `json:"items,omitempty"`
	Body    string   `json:"body,omitempty"`
}

// CompletionSummary returns the recap shown once every task is answered.
func CompletionSummary() []SummarySection {
	return []SummarySection{
		{
			Heading: "What you experienced",
			Items:   []string{
				"Zone of Proximal Development: tasks with 40-80% success probability are optimal for learning",
				"Too Hard (< 40%): students need scaffolding or prerequisites",
				"Too Easy (> 80%): students may become bored or disengaged",
				"Parameter Transparency: how θ, β, γ and T are calculated in real systems",
			},
		},
		{
			Heading: "Key AFM limitations",
			Items:   []string{
				"Independence Assumption: skills are assumed not to interact or transfer",
				"Cold Start Problem: poor predictions for completely new concept types",
				"No Forgetting: knowledge decay over time is ignored",
				"One-Size-Fits-All: every student shares the same learning rates",
				"Context Blind: motivation, mood and environment are ignored",
				"Binary Skills: skills are known or unknown, never partially mastered",
			},
		},
		{
			Heading: "Real-world implementation notes",
			Body:    "Systems like Khan Academy or Carnegie Learning estimate AFM parameters from large datasets. " +
				"Ability comes from cross-skill performance analysis, difficulty from population-wide success " +
				"rates and learning rates from longitudinal progression data. Parameters are refit as new " +
				"interaction data arrives.",
		},
		{
			Heading: "Beyond AFM",
			Body:    "Modern adaptive systems often combine AFM with Bayesian Knowledge Tracing, Deep Knowledge " +
				"Tracing or multi-dimensional IRT models to address these limitations.",
		},
	}
}
