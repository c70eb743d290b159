package game

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PieterJanSterk/second-movement/internal/cave"
	"github.com/PieterJanSterk/second-movement/internal/hunt"
	"github.com/PieterJanSterk/second-movement/internal/ui"
)

func TestFrameChoosingModeBlinksWholeWord(t *testing.T) {
	s := newTestSession(quiet(), 0, 2, 3, 9, 10, 19)

	f := BuildFrame(s)
	assert.Equal(t, "SH", f.Hours)
	assert.Equal(t, "OT", f.Minutes)
	assert.Equal(t, "1", f.RoomText)
	assert.False(t, f.Colon)
	assert.Equal(t, 5, f.Arrows)

	s.Tick() // blink phase off

	f = BuildFrame(s)
	assert.Empty(t, f.Hours)
	assert.Empty(t, f.Minutes)
	assert.Equal(t, "1", f.RoomText, "the room digits do not blink here")
}

func TestFrameGoIntent(t *testing.T) {
	s := newTestSession(quiet(), 0, 2, 3, 9, 10, 19)
	s.Cycle()

	f := BuildFrame(s)
	assert.Equal(t, "GO", f.Hours)
	assert.Equal(t, "  ", f.Minutes)
}

func TestFrameShotSelectionShowsColon(t *testing.T) {
	s := newTestSession(quiet(), 0, 2, 3, 9, 10, 19)
	ctx := context.Background()

	s.Confirm(ctx)
	f := BuildFrame(s)
	assert.True(t, f.Colon)
	assert.Equal(t, "rn", f.Hours)
	assert.Equal(t, "1 ", f.Minutes)

	s.Confirm(ctx)
	f = BuildFrame(s)
	assert.True(t, f.Colon)
	assert.Equal(t, "r1", f.Hours)
	assert.Equal(t, "2 ", f.Minutes, "first tunnel of room one shown 1-based")

	s.Tick() // blink phase off hides only the digits

	f = BuildFrame(s)
	assert.Equal(t, "r1", f.Hours)
	assert.Empty(t, f.Minutes)
	assert.True(t, f.Colon)
}

func TestFrameDestinationBlinksRoom(t *testing.T) {
	s := newTestSession(quiet(), 0, 2, 3, 9, 10, 19)
	ctx := context.Background()

	s.Cycle()
	s.Confirm(ctx)
	require.Equal(t, ActionChoosingDestination, s.Action())

	f := BuildFrame(s)
	assert.Equal(t, "GO", f.Hours)
	assert.Equal(t, "1", f.RoomText, "own room shown while nothing is picked")

	s.Cycle() // pick the first tunnel, room 1
	f = BuildFrame(s)
	assert.Equal(t, "2", f.RoomText)

	s.Tick() // blink phase off blanks the room digits

	f = BuildFrame(s)
	assert.Empty(t, f.RoomText)
}

func TestFrameTransport(t *testing.T) {
	s := newTestSession(quiet(), 0, 2, 3, 1, 10, 19, 5)
	ctx := context.Background()

	s.Cycle()
	s.Confirm(ctx)
	s.Cycle()
	s.Confirm(ctx)
	require.Equal(t, ActionBatTransport, s.Action())

	f := BuildFrame(s)
	assert.Equal(t, "BA", f.Hours)
	assert.Equal(t, "T ", f.Minutes)
}

func TestFrameDeathShowsCauseGlyph(t *testing.T) {
	s := newTestSession(quiet(), 0, 4, 3, 9, 10, 19)
	ctx := context.Background()

	s.Cycle()
	s.Confirm(ctx)
	s.Cycle()
	s.Cycle()
	s.Confirm(ctx) // into the pit
	require.Equal(t, ActionDied, s.Action())

	f := BuildFrame(s)
	assert.Equal(t, "DI", f.Hours)
	assert.Equal(t, "ED", f.Minutes)
	assert.Equal(t, "Pt", f.Seconds)
	assert.Equal(t, ui.LEDRed, f.LED)
	assert.InDelta(t, 0.0, f.LEDPulse, 0.001, "flash starts at full brightness")

	s.Tick()
	f = BuildFrame(s)
	assert.InDelta(t, 1.0/3.0, f.LEDPulse, 0.001)
}

func TestFrameWinShowsGreat(t *testing.T) {
	s := newTestSession(quiet(), 0, 2, 3, 9, 10, 1)
	ctx := context.Background()

	s.Confirm(ctx)
	s.Confirm(ctx)
	s.Confirm(ctx)
	require.Equal(t, ActionWon, s.Action())

	f := BuildFrame(s)
	assert.Equal(t, "Gr", f.Hours)
	assert.Equal(t, "ea", f.Minutes)
	assert.Equal(t, "t ", f.Seconds)
	assert.Equal(t, ui.LEDGreen, f.LED)
}

func TestFrameShowsWarningGlyph(t *testing.T) {
	// pit behind tunnel one, bat behind tunnel two
	s := newTestSession(quiet(), 0, 1, 9, 4, 10, 19)

	f := BuildFrame(s)
	assert.Equal(t, "Pt", f.Seconds)

	s.Tick()
	f = BuildFrame(s)
	assert.Equal(t, "Bt", f.Seconds)
}

func TestFrameNoteDuringMelody(t *testing.T) {
	settings := &Settings{Sound: true}
	s := newTestSession(settings, 0, 2, 3, 9, 10, 19)

	f := BuildFrame(s)
	assert.True(t, f.Busy)
	assert.Empty(t, f.Note, "no note before the first melody tick")
	assert.True(t, f.Bell)

	s.Tick()
	f = BuildFrame(s)
	assert.Equal(t, "A3", f.Note)
}

func TestFrameIndicators(t *testing.T) {
	settings := &Settings{ActiveWumpus: true, Sound: false}
	s := newTestSession(settings, 0, 2, 3, 9, 10, 19)

	f := BuildFrame(s)
	assert.True(t, f.Lap)
	assert.False(t, f.Bell)
}

func TestGlyphTables(t *testing.T) {
	assert.Equal(t, "UU", hazardGlyph(cave.HazardWumpus))
	assert.Equal(t, "Bt", hazardGlyph(cave.HazardBat))
	assert.Equal(t, "Pt", hazardGlyph(cave.HazardPit))
	assert.Equal(t, "  ", hazardGlyph(cave.HazardNone))

	assert.Equal(t, "UU", causeGlyph(hunt.DeathWumpus))
	assert.Equal(t, "Pt", causeGlyph(hunt.DeathPit))
	assert.Equal(t, "Ar", causeGlyph(hunt.DeathOutOfArrows))
	assert.Equal(t, "Ar", causeGlyph(hunt.DeathSelfShot))
}
