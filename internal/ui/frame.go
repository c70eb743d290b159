package ui

// LED is the lamp state a frame asks the renderer to draw. It mirrors the
// game core's lamp values without importing the core; the shell maps one
// to the other when it builds the frame.
type LED int

const (
	// LEDOff draws no lamp.
	LEDOff LED = iota
	// LEDGreen draws the win lamp.
	LEDGreen
	// LEDRed draws the lose lamp.
	LEDRed
)

// Frame is one face state ready to draw. The shell builds a fresh frame
// after every event and tick; blink phases are already resolved into blank
// strings, so the renderer draws exactly what is here and nothing else.
type Frame struct {
	RoomText string  // top-right room number, "" while blanked by a blink
	Hours    string  // left pair of the big display
	Minutes  string  // right pair of the big display
	Seconds  string  // small display: hazard warning or death cause glyph
	Colon    bool    // colon between hours and minutes
	Lap      bool    // LAP indicator, lit in active wumpus mode
	Bell     bool    // BELL indicator, lit when sound is on
	Arrows   int     // arrows left in the quiver
	Note     string  // melody note name while one plays, "" otherwise
	LED      LED     // lamp to draw
	LEDPulse float64 // 0 at full brightness, rising to 1 as the flash fades
	Busy     bool    // buttons currently ignored
}
