package explorer

import (
	"fmt"

	"github.com/abhisek/afmlab/internal/afm"
)

// ConceptView is a concept's parameters plus its derived probability.
type ConceptView struct {
	ConceptState
	Concept     Concept `json:"concept"`
	Probability float64 `json:"probability"`
	Dots        int     `json:"difficulty_dots"`
}

// TaskView is the public part of a task plus answer feedback once answered.
type TaskView struct {
	Task
	Index        int  `json:"index"`
	Selected     *int `json:"selected,omitempty"`
	CorrectIndex *int `json:"correct_index,omitempty"`
	Correct      bool `json:"correct"`
}

// Snapshot is a read-only rendering of State for presentation layers.
type Snapshot struct {
	Ability     float64          `json:"ability"`
	TaskIndex   int              `json:"task_index"`
	TaskCount   int              `json:"task_count"`
	Answered    bool             `json:"answered"`
	Completed   bool             `json:"completed"`
	Task        *TaskView        `json:"task,omitempty"`
	Concept     *ConceptView     `json:"concept,omitempty"`
	Probability float64          `json:"probability"`
	Zone        string           `json:"zone,omitempty"`
	ZoneLabel   string           `json:"zone_label,omitempty"`
	Formula     string           `json:"formula,omitempty"`
	Insight     string           `json:"insight,omitempty"`
	Explanation string           `json:"explanation,omitempty"`
	Progress    []Marker         `json:"progress"`
	Concepts    []ConceptView    `json:"concepts"`
	Summary     []SummarySection `json:"summary,omitempty"`
}

// Formula renders the logit for the current task with its inputs filled in.
func (s State) Formula() string {
	t, ok := s.CurrentTask()
	if !ok {
		return ""
	}
	cs := s.Concepts[t.Concept]
	return fmt.Sprintf("ln(p/(1-p)) = %.2f + %.2f + (%.2f × %d)",
		s.Ability, cs.Difficulty, cs.LearningRate, cs.Opportunities)
}

// Snapshot builds the presentation view of s.
func (s State) Snapshot() Snapshot {
	snap := Snapshot{
		Ability:   s.Ability,
		TaskIndex: s.TaskIndex,
		TaskCount: TaskCount(),
		Answered:  s.Answered,
		Completed: s.Completed(),
		Progress:  s.Progress(),
	}

	for _, c := range AllConcepts() {
		snap.Concepts = append(snap.Concepts, s.conceptView(c))
	}

	t, ok := s.CurrentTask()
	if !ok {
		snap.Summary = CompletionSummary()
		return snap
	}

	tv := &TaskView{Task: t, Index: s.TaskIndex}
	if s.Answered {
		sel, correct := s.Selected, t.CorrectIndex
		tv.Selected = &sel
		tv.CorrectIndex = &correct
		tv.Correct = sel == correct
	}
	cv := s.conceptView(t.Concept)

	snap.Task = tv
	snap.Concept = &cv
	snap.Probability = s.Probability()
	zone := afm.Classify(snap.Probability)
	snap.Zone = zone.String()
	snap.ZoneLabel = zone.Label()
	snap.Formula = s.Formula()
	snap.Insight = s.Insight()
	snap.Explanation = s.Explanation()
	return snap
}

func (s State) conceptView(c Concept) ConceptView {
	cs := s.Concepts[c]
	return ConceptView{
		Concept:      c,
		ConceptState: cs,
		Probability:  s.ProbabilityFor(c),
		Dots:         cs.DifficultyDots(),
	}
}
