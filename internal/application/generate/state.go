package generate

// State is a step of a single generation action.
type State string

const (
	StateIdle               State = "idle"
	StateAssembling         State = "assembling"
	StateRequestingMetadata State = "requesting_metadata"
	StateRecorded           State = "recorded"
)

// Observer is notified on every state transition.
type Observer interface {
	Transition(from, to State)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(from, to State)

func (f ObserverFunc) Transition(from, to State) { f(from, to) }

// tracker walks the state machine and reports each step.
type tracker struct {
	state    State
	observer Observer
}

func newTracker(o Observer) *tracker {
	return &tracker{state: StateIdle, observer: o}
}

func (t *tracker) move(to State) {
	from := t.state
	t.state = to
	if t.observer != nil {
		t.observer.Transition(from, to)
	}
}
