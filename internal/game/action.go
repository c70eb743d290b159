// Package game provides the hunt session state machine and the terminal
// shell that drives it.
package game

// Action is the player-facing mode the session is in.
type Action int

const (
	// ActionChoosingMode is the root menu: cycle between GO and SHOT.
	ActionChoosingMode Action = iota
	// ActionChoosingShotLength picks how many rooms the arrow flies (1-5).
	ActionChoosingShotLength
	// ActionChoosingShotPath picks the arrow's path one room at a time.
	ActionChoosingShotPath
	// ActionChoosingDestination picks which tunnel to walk down, if any.
	ActionChoosingDestination
	// ActionBatTransport is the timed, non-interactive bat ride.
	ActionBatTransport
	// ActionDied is terminal: the hunt is lost.
	ActionDied
	// ActionWon is terminal: the wumpus is dead.
	ActionWon
)

// String returns a human-readable action name.
func (a Action) String() string {
	switch a {
	case ActionChoosingMode:
		return "choosing_mode"
	case ActionChoosingShotLength:
		return "choosing_shot_length"
	case ActionChoosingShotPath:
		return "choosing_shot_path"
	case ActionChoosingDestination:
		return "choosing_destination"
	case ActionBatTransport:
		return "bat_transport"
	case ActionDied:
		return "died"
	case ActionWon:
		return "won"
	default:
		return "unknown"
	}
}

// Terminal reports whether the action ends the session.
func (a Action) Terminal() bool {
	return a == ActionDied || a == ActionWon
}

// Intent is what ChoosingMode confirms into: walking or shooting.
type Intent int

const (
	// IntentGo walks to an adjacent room.
	IntentGo Intent = iota
	// IntentShoot fires an arrow along a picked path.
	IntentShoot
)

// String returns a human-readable intent name.
func (i Intent) String() string {
	switch i {
	case IntentGo:
		return "go"
	case IntentShoot:
		return "shoot"
	default:
		return "unknown"
	}
}

// Toggled returns the other intent.
func (i Intent) Toggled() Intent {
	if i == IntentGo {
		return IntentShoot
	}
	return IntentGo
}
