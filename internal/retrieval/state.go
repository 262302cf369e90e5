// Package retrieval models the secret viewer's state machine. Exactly one
// state is active at a time:
//
//	Loading -> Revealed | PasswordRequired | Failed
//	PasswordRequired --submit--> Loading -> Revealed | PasswordRequired | Failed
//
// Transitions are pure functions from (state, event) to state. Every fetch
// attempt is tagged with a generation; events carrying an older generation
// are discarded so a slow, stale response can never overwrite the outcome of
// a newer attempt.
package retrieval

// Phase enumerates the active state of the viewer.
type Phase int

const (
	Loading Phase = iota
	Revealed
	PasswordRequired
	Failed
)

// String returns a short lowercase name for logging.
func (p Phase) String() string {
	switch p {
	case Loading:
		return "loading"
	case Revealed:
		return "revealed"
	case PasswordRequired:
		return "password_required"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// State is the full viewer state. Only the field matching the Phase is
// meaningful; the secret text lives exclusively here, in memory, for the
// lifetime of a single render.
type State struct {
	Phase   Phase
	Gen     uint64 // generation of the fetch that produced this state
	Secret  string // Revealed only
	Prompt  string // PasswordRequired only
	Message string // Failed only
}

// Predicates for template use.
func (s State) IsLoading() bool          { return s.Phase == Loading }
func (s State) IsRevealed() bool         { return s.Phase == Revealed }
func (s State) IsPasswordRequired() bool { return s.Phase == PasswordRequired }
func (s State) IsFailed() bool           { return s.Phase == Failed }

// Event is a tagged transition input. Implementations carry the generation
// of the fetch attempt that produced them.
type Event interface {
	generation() uint64
}

// Started begins a new fetch attempt (initial load or password retry). Its
// generation must be strictly greater than the current state's.
type Started struct{ Gen uint64 }

// Fetched reports a 200 response carrying the secret text.
type Fetched struct {
	Gen    uint64
	Secret string
}

// Challenged reports a 401 response carrying the server-supplied prompt.
type Challenged struct {
	Gen    uint64
	Prompt string
}

// Errored reports any other non-200 status or a transport/parse failure.
type Errored struct {
	Gen     uint64
	Message string
}

func (e Started) generation() uint64    { return e.Gen }
func (e Fetched) generation() uint64    { return e.Gen }
func (e Challenged) generation() uint64 { return e.Gen }
func (e Errored) generation() uint64    { return e.Gen }

// Reduce applies an event to a state and returns the next state. Stale
// events (generation below the state's) are ignored; terminal events whose
// generation does not match the in-flight fetch are likewise ignored.
func Reduce(s State, e Event) State {
	switch ev := e.(type) {
	case Started:
		if ev.Gen <= s.Gen {
			return s
		}
		return State{Phase: Loading, Gen: ev.Gen}
	case Fetched:
		if ev.Gen != s.Gen {
			return s
		}
		return State{Phase: Revealed, Gen: ev.Gen, Secret: ev.Secret}
	case Challenged:
		if ev.Gen != s.Gen {
			return s
		}
		return State{Phase: PasswordRequired, Gen: ev.Gen, Prompt: ev.Prompt}
	case Errored:
		if ev.Gen != s.Gen {
			return s
		}
		return State{Phase: Failed, Gen: ev.Gen, Message: ev.Message}
	}
	return s
}
