// Package reveal implements one-shot "reveal on scroll" visibility tracking.
//
// Every observed content block runs a two-state machine, Hidden → Visible. The transition fires
// the first time the block's visible area reaches a threshold fraction inside the viewport (shrunk
// by a bottom margin), after which the block's observer detaches. Nothing ever resets a block back
// to Hidden, so re-scrolling cannot make content flicker.
package reveal

// State is the visibility state of one block.
type State uint8

const (
	// Hidden is the initial state of every block.
	Hidden State = iota
	// Visible is the terminal state, entered at most once.
	Visible
)

func (s State) String() string {
	switch s {
	case Hidden:
		return "hidden"
	case Visible:
		return "visible"
	default:
		return "unknown"
	}
}

// Flag is a fire-once visibility flag. The zero value is Hidden.
type Flag struct {
	state State
}

// Fire moves the flag to Visible.
//
// Returns:
//   - bool: true only for the call that performed the transition
func (f *Flag) Fire() bool {
	if f.state == Visible {
		return false
	}
	f.state = Visible
	return true
}

// State returns the current state.
func (f *Flag) State() State {
	return f.state
}

// Visible reports whether the flag has fired.
func (f *Flag) Visible() bool {
	return f.state == Visible
}
