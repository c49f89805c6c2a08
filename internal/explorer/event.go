package explorer

// Event is a user intent applied to a State.
type Event interface {
	isEvent()
}

// SelectAnswerEvent chooses an option for the current task.
type SelectAnswerEvent struct {
	Option int
}

// NextTaskEvent advances past an answered task.
type NextTaskEvent struct{}

func (SelectAnswerEvent) isEvent() {}
func (NextTaskEvent) isEvent()     {}

// Apply folds one event into the state. Unknown events leave it unchanged.
func (s State) Apply(ev Event) State {
	switch e := ev.(type) {
	case SelectAnswerEvent:
		return s.SelectAnswer(e.Option)
	case NextTaskEvent:
		return s.NextTask()
	}
	return s
}

// Replay applies events in order starting from New().
func Replay(events ...Event) State {
	s := New()
	for _, ev := range events {
		s = s.Apply(ev)
	}
	return s
}
