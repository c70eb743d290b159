package game

// Cue names a melody the session wants played. While a cue is active the
// session steps through its notes on the fast tick and ignores player
// input.
type Cue int

const (
	// CueNone means no melody is playing.
	CueNone Cue = iota
	// CueStartup plays when a session begins.
	CueStartup
	// CueWin plays when the wumpus dies.
	CueWin
	// CueLose plays when the player dies.
	CueLose
	// CueBats plays on bat transport and on a fresh bat warning.
	CueBats
)

// ID returns the melody registry key for the cue, or "" for CueNone.
func (c Cue) ID() string {
	switch c {
	case CueStartup:
		return "startup"
	case CueWin:
		return "win"
	case CueLose:
		return "lose"
	case CueBats:
		return "bats"
	default:
		return ""
	}
}

// String returns a human-readable cue name.
func (c Cue) String() string {
	if c == CueNone {
		return "none"
	}
	return c.ID()
}

// LED is the indicator lamp state shown after a hunt ends.
type LED int

const (
	// LEDOff is the idle lamp.
	LEDOff LED = iota
	// LEDGreen flashes on a win.
	LEDGreen
	// LEDRed flashes on a death.
	LEDRed
)

// String returns a human-readable lamp name.
func (l LED) String() string {
	switch l {
	case LEDGreen:
		return "green"
	case LEDRed:
		return "red"
	default:
		return "off"
	}
}
