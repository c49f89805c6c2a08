package explorer

import (
	"maps"

	"github.com/abhisek/afmlab/internal/afm"
)

// AbilityStep is the ability gain for a correct answer.
const AbilityStep = 0.1

// NoSelection marks that no option has been chosen for the current task.
const NoSelection = -1

// State is the learner state for one explorer session. It is a value type:
// every transition returns a new State and leaves the receiver untouched.
type State struct {
	// Concepts holds per-concept AFM parameters. Never mutated in place.
	Concepts map[Concept]ConceptState

	// Ability is the learner's general ability (θ). It only grows.
	Ability float64

	// TaskIndex is the index of the current task. TaskCount() means completed.
	TaskIndex int

	// Answered is true once the current task has an answer.
	Answered bool

	// Selected is the chosen option for the current task, or NoSelection.
	Selected int
}

// New returns the initial explorer state.
func New() State {
	return State{
		Concepts: DefaultConcepts(),
		Selected: NoSelection,
	}
}

// Completed reports whether every task has been answered and advanced past.
func (s State) Completed() bool {
	return s.TaskIndex >= TaskCount()
}

// CurrentTask returns the task being shown. ok is false once completed.
func (s State) CurrentTask() (Task, bool) {
	if s.Completed() || s.TaskIndex < 0 {
		return Task{}, false
	}
	return taskCatalog[s.TaskIndex], true
}

// SelectAnswer records an answer for the current task. It is a no-op when the
// session is completed, the task is already answered, or option is out of range.
func (s State) SelectAnswer(option int) State {
	t, ok := s.CurrentTask()
	if !ok || s.Answered || option < 0 || option >= len(t.Options) {
		return s
	}

	next := s
	next.Concepts = maps.Clone(s.Concepts)
	cs := next.Concepts[t.Concept]
	cs.Opportunities++
	next.Concepts[t.Concept] = cs

	next.Answered = true
	next.Selected = option
	if option == t.CorrectIndex {
		next.Ability = afm.Round(s.Ability+AbilityStep, 2)
	}
	return next
}

// NextTask advances to the next task. It is a no-op until the current task
// has been answered.
func (s State) NextTask() State {
	if !s.Answered || s.Completed() {
		return s
	}
	next := s
	next.TaskIndex++
	next.Answered = false
	next.Selected = NoSelection
	return next
}

// LastAnswerCorrect reports whether the recorded answer for the current task
// is correct. It is false when nothing has been answered yet.
func (s State) LastAnswerCorrect() bool {
	t, ok := s.CurrentTask()
	return ok && s.Answered && s.Selected == t.CorrectIndex
}

// ProbabilityFor returns the predicted success probability for concept c.
func (s State) ProbabilityFor(c Concept) float64 {
	cs := s.Concepts[c]
	return afm.Predict(s.Ability, cs.Difficulty, cs.LearningRate, cs.Opportunities)
}

// Probability returns the predicted success probability for the current
// task's concept. It is zero once completed.
func (s State) Probability() float64 {
	t, ok := s.CurrentTask()
	if !ok {
		return 0
	}
	return s.ProbabilityFor(t.Concept)
}

// Zone classifies the current probability.
func (s State) Zone() afm.Zone {
	return afm.Classify(s.Probability())
}

// Logit returns the current task's logit.
func (s State) Logit() float64 {
	t, ok := s.CurrentTask()
	if !ok {
		return 0
	}
	cs := s.Concepts[t.Concept]
	return afm.ExplorerLogit(s.Ability, cs.Difficulty, cs.LearningRate, cs.Opportunities)
}

// Insight returns the model insight for the current task once answered.
func (s State) Insight() string {
	t, ok := s.CurrentTask()
	if !ok || !s.Answered {
		return ""
	}
	return Insight(t, s.Concepts[t.Concept], s.LastAnswerCorrect())
}

// Explanation returns the current task's explanation once answered.
func (s State) Explanation() string {
	t, ok := s.CurrentTask()
	if !ok || !s.Answered {
		return ""
	}
	return t.Explanation
}

// Marker is the progress marker for one task.
type Marker string

const (
	MarkerDone    Marker = "done"
	MarkerCurrent Marker = "current"
	MarkerPending Marker = "pending"
)

// Progress returns one marker per task.
func (s State) Progress() []Marker {
	out := make([]Marker, TaskCount())
	for i := range out {
		switch {
		case i < s.TaskIndex:
			out[i] = MarkerDone
		case i == s.TaskIndex:
			out[i] = MarkerCurrent
		default:
			out[i] = MarkerPending
		}
	}
	return out
}
