package explorer

import (
	"fmt"
	"slices"
	"strings"
)

// Concept names a programming concept tracked by the explorer.
type Concept string

const (
	ConceptVariables      Concept = "variables"
	ConceptLoops          Concept = "loops"
	ConceptFunctions      Concept = "functions"
	ConceptDataStructures Concept = "data_structures"
	ConceptAlgorithms     Concept = "algorithms"
	ConceptZPDDemo        Concept = "zpd_demo"
	ConceptTooHard        Concept = "too_hard"
)

// AllConcepts returns every concept in display order.
func AllConcepts() []Concept {
	return []Concept{
		ConceptVariables,
		ConceptLoops,
		ConceptFunctions,
		ConceptDataStructures,
		ConceptAlgorithms,
		ConceptZPDDemo,
		ConceptTooHard,
	}
}

// ParseConcept converts a name such as "data_structures" or
// "data structures" to a Concept.
func ParseConcept(name string) (Concept, error) {
	c := Concept(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_"))
	if slices.Contains(AllConcepts(), c) {
		return c, nil
	}
	return "", fmt.Errorf("unknown concept %q", name)
}

// Label returns the concept in prose form, e.g. "data structures".
func (c Concept) Label() string {
	return strings.ReplaceAll(string(c), "_", " ")
}

// DisplayName returns the concept as shown on the task badge, e.g. "DATA STRUCTURES".
func (c Concept) DisplayName() string {
	return strings.ToUpper(c.Label())
}

// ConceptState holds the AFM parameters for one concept.
// Difficulty and LearningRate are fixed at creation; Opportunities only grows.
type ConceptState struct {
	Difficulty    float64 `json:"difficulty"`
	LearningRate  float64 `json:"learning_rate"`
	Opportunities int     `json:"opportunities"`
}

// DefaultConcepts returns the initial per-concept parameters.
// More negative difficulty means a harder concept.
func DefaultConcepts() map[Concept]ConceptState {
	return map[Concept]ConceptState{
		ConceptVariables:      {Difficulty: -0.3, LearningRate: 0.4},
		ConceptLoops:          {Difficulty: -0.8, LearningRate: 0.2},
		ConceptFunctions:      {Difficulty: -1.2, LearningRate: 0.3},
		ConceptDataStructures: {Difficulty: -1.5, LearningRate: 0.1},
		ConceptAlgorithms:     {Difficulty: -1.8, LearningRate: 0.15},
		ConceptZPDDemo:        {Difficulty: -0.6, LearningRate: 0.25},
		ConceptTooHard:        {Difficulty: -2.5, LearningRate: 0.1},
	}
}

// MaxDifficultyDots is the width of the difficulty indicator.
const MaxDifficultyDots = 5

// DifficultyDots returns how many of the MaxDifficultyDots indicator dots are
// filled: one per half unit of |difficulty|, rounded up.
func (c ConceptState) DifficultyDots() int {
	d := c.Difficulty * 2
	if d < 0 {
		d = -d
	}
	n := 0
	for i := 0; i < MaxDifficultyDots; i++ {
		if float64(i) < d {
			n++
		}
	}
	return n
}
