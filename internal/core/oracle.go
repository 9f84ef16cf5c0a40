package core

// State is a global state of the explored system. Key is the text of the
// state's label; states with equal keys are the same state.
type State interface {
	Key() string
}

// Step is one enabled transition: process PID performs Action and leads to Next.
type Step struct {
	PID    int
	Action string
	Next   State
}

// Oracle answers the questions the explorer asks about a system of processes.
// Implementations must be deterministic.
type Oracle interface {
	// InitialStates returns the initial global states.
	InitialStates() ([]State, error)
	// Enabled returns the transitions enabled at s, by ascending process id.
	Enabled(s State) ([]Step, error)
	// IsFinal reports whether s is an accepting state.
	IsFinal(s State) (bool, error)
}
