package simulator

// Event is a user intent applied to a State.
type Event interface {
	isEvent()
}

// SetParamEvent moves one slider.
type SetParamEvent struct {
	Param Param
	Value float64
}

// SimulateEvent records a simulated answer.
type SimulateEvent struct {
	Correct bool
}

func (SetParamEvent) isEvent() {}
func (SimulateEvent) isEvent() {}

// Apply folds one event into the state and returns the parameters it changed.
func (s State) Apply(ev Event) (State, []Param) {
	switch e := ev.(type) {
	case SetParamEvent:
		next := s.Set(e.Param, e.Value)
		if next.Value(e.Param) == s.Value(e.Param) {
			return next, nil
		}
		return next, []Param{e.Param}
	case SimulateEvent:
		return s.SimulateResponse(e.Correct)
	}
	return s, nil
}
