package game

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"pgregory.net/rapid"

	"github.com/PieterJanSterk/second-movement/internal/cave"
	"github.com/PieterJanSterk/second-movement/internal/gamedata"
	"github.com/PieterJanSterk/second-movement/internal/hunt"
	"github.com/PieterJanSterk/second-movement/internal/random"
)

// scriptSource replays a fixed sequence of draws, reduced modulo the bound.
type scriptSource struct {
	vals []int
	next int
}

func (s *scriptSource) Intn(n int) int {
	if n <= 0 {
		panic("scriptSource: Intn called with n <= 0")
	}
	v := s.vals[s.next%len(s.vals)]
	s.next++
	return v % n
}

var testMelodies = gamedata.MustLoadMelodyRegistry()

// newTestSession deals a session with scripted randomness. The first six
// values place the player, two pits, two bats, and the wumpus; the rest
// feed gameplay draws.
func newTestSession(settings *Settings, vals ...int) *Session {
	src := &scriptSource{vals: vals}
	return NewSession(context.Background(), settings, src, testMelodies, zap.NewNop())
}

func quiet() *Settings {
	return &Settings{ActiveWumpus: false, Sound: false}
}

func TestNewSessionStartsInShootMode(t *testing.T) {
	s := newTestSession(quiet(), 0, 2, 3, 9, 10, 19)

	assert.Equal(t, ActionChoosingMode, s.Action())
	assert.Equal(t, IntentShoot, s.Intent())
	assert.Equal(t, cave.Room(0), s.PlayerRoom())
	assert.Equal(t, 5, s.ArrowsLeft())
	assert.False(t, s.Busy(), "sound off means no startup melody")
	assert.False(t, s.ShouldRestart())
	assert.Equal(t, NormalTickHz, s.TickHz())
}

func TestWalkIntoPitDies(t *testing.T) {
	// pits at 2 and 4; room 4 is the player's second tunnel
	s := newTestSession(quiet(), 0, 4, 3, 9, 10, 19)
	ctx := context.Background()

	s.Cycle() // intent Go
	require.Equal(t, IntentGo, s.Intent())
	s.Confirm(ctx)
	require.Equal(t, ActionChoosingDestination, s.Action())

	s.Cycle() // first tunnel, room 1
	s.Cycle() // second tunnel, room 4
	dest, ok := s.DestinationSelected()
	require.True(t, ok)
	require.Equal(t, cave.Room(4), dest)

	s.Confirm(ctx)

	assert.Equal(t, ActionDied, s.Action())
	assert.Equal(t, hunt.DeathPit, s.Cause())
	assert.Equal(t, cave.Room(4), s.PlayerRoom())
	assert.Equal(t, LEDRed, s.LED(), "sound off lights the lamp immediately")
}

func TestLEDFlashRunsOutThenSignalsRestart(t *testing.T) {
	s := newTestSession(quiet(), 0, 4, 3, 9, 10, 19)
	ctx := context.Background()

	s.Cycle()
	s.Confirm(ctx)
	s.Cycle()
	s.Cycle()
	s.Confirm(ctx) // into the pit
	require.Equal(t, ActionDied, s.Action())
	require.Equal(t, LedFlashTicks, s.LEDTicks())
	require.True(t, s.Busy())

	// buttons are dead while the lamp flashes
	s.Cycle()
	s.Confirm(ctx)
	assert.Equal(t, ActionDied, s.Action())

	s.Tick()
	s.Tick()
	assert.False(t, s.ShouldRestart())
	s.Tick()
	assert.True(t, s.ShouldRestart())
	assert.Equal(t, LEDOff, s.LED())
}

func TestWalkIntoBatStartsTransport(t *testing.T) {
	// bat at room 1, the player's first tunnel; scripted landing in room 5
	s := newTestSession(quiet(), 0, 2, 3, 1, 10, 19, 5)
	ctx := context.Background()

	s.Cycle()
	s.Confirm(ctx)
	s.Cycle() // room 1
	s.Confirm(ctx)

	require.Equal(t, ActionBatTransport, s.Action())
	require.Equal(t, TransportDelayTicks, s.TransportCountdown())
	assert.Equal(t, cave.Room(1), s.PlayerRoom(), "still airborne from the bat room")

	for i := TransportDelayTicks - 1; i >= 0; i-- {
		s.Tick()
		assert.Equal(t, i, s.TransportCountdown())
	}
	require.Equal(t, ActionBatTransport, s.Action())

	s.Tick() // countdown spent, the bat drops the player

	assert.Equal(t, cave.Room(5), s.PlayerRoom())
	assert.Equal(t, ActionChoosingMode, s.Action())
	assert.Equal(t, IntentGo, s.Intent())
}

func TestTransportRerollsWhenLandingOnBat(t *testing.T) {
	// bats at 1 and 10; the first landing draw picks the second bat's room
	s := newTestSession(quiet(), 0, 2, 3, 1, 10, 19, 10, 6)
	ctx := context.Background()

	s.Cycle()
	s.Confirm(ctx)
	s.Cycle()
	s.Confirm(ctx)
	require.Equal(t, ActionBatTransport, s.Action())

	for i := 0; i < TransportDelayTicks+1; i++ {
		s.Tick()
	}

	// landed on the other bat: carried again, countdown restarted
	assert.Equal(t, ActionBatTransport, s.Action())
	assert.Equal(t, cave.Room(10), s.PlayerRoom())
	assert.Equal(t, TransportDelayTicks, s.TransportCountdown())

	for i := 0; i < TransportDelayTicks+1; i++ {
		s.Tick()
	}

	assert.Equal(t, ActionChoosingMode, s.Action())
	assert.Equal(t, cave.Room(6), s.PlayerRoom())
}

func TestTransportIgnoresButtons(t *testing.T) {
	s := newTestSession(quiet(), 0, 2, 3, 1, 10, 19, 5)
	ctx := context.Background()

	s.Cycle()
	s.Confirm(ctx)
	s.Cycle()
	s.Confirm(ctx)
	require.Equal(t, ActionBatTransport, s.Action())

	s.Cycle()
	s.Confirm(ctx)
	assert.Equal(t, ActionBatTransport, s.Action())
	assert.Equal(t, TransportDelayTicks, s.TransportCountdown())

	// settings toggles still work mid-ride
	assert.True(t, s.ToggleSound())
	assert.True(t, s.Settings().Sound)
}

func TestMissedShotReturnsToShootMode(t *testing.T) {
	s := newTestSession(quiet(), 0, 2, 3, 9, 10, 19, 2)
	ctx := context.Background()

	s.Confirm(ctx) // shoot intent confirmed
	require.Equal(t, ActionChoosingShotLength, s.Action())
	require.Equal(t, 1, s.ShotLength())

	s.Confirm(ctx)
	require.Equal(t, ActionChoosingShotPath, s.Action())
	require.Equal(t, cave.Room(1), s.ShotCandidate(), "first tunnel preselected")

	s.Confirm(ctx) // commit the single leg, arrow flies

	assert.Equal(t, 4, s.ArrowsLeft())
	assert.Equal(t, ActionChoosingMode, s.Action())
	assert.Equal(t, IntentShoot, s.Intent())
}

func TestShootingTheWumpusWins(t *testing.T) {
	// wumpus right behind the first tunnel
	s := newTestSession(quiet(), 0, 2, 3, 9, 10, 1)
	ctx := context.Background()

	s.Confirm(ctx)
	s.Confirm(ctx)
	s.Confirm(ctx)

	assert.Equal(t, ActionWon, s.Action())
	assert.Equal(t, LEDGreen, s.LED())
}

func TestOutOfArrowsDiesOnSixthShot(t *testing.T) {
	// wumpus far away at 19, scripted to shuffle between 19 and 18
	s := newTestSession(quiet(), 0, 2, 3, 9, 10, 19, 2, 2, 2, 2, 2)
	ctx := context.Background()

	fireShot := func() {
		require.Equal(t, ActionChoosingMode, s.Action())
		require.Equal(t, IntentShoot, s.Intent())
		s.Confirm(ctx)
		s.Confirm(ctx)
		s.Confirm(ctx)
	}

	for i := 0; i < 5; i++ {
		fireShot()
		require.Equal(t, 4-i, s.ArrowsLeft())
		require.Equal(t, ActionChoosingMode, s.Action(), "shot %d should miss", i+1)
	}

	fireShot()

	assert.Equal(t, ActionDied, s.Action())
	assert.Equal(t, hunt.DeathOutOfArrows, s.Cause())
	assert.Equal(t, 0, s.ArrowsLeft(), "display never goes negative")
}

func TestStartupMelodyPausesButtons(t *testing.T) {
	settings := &Settings{Sound: true}
	s := newTestSession(settings, 0, 2, 3, 9, 10, 19)
	ctx := context.Background()

	require.Equal(t, CueStartup, s.MelodyCue())
	require.True(t, s.Busy())
	require.Equal(t, MelodyTickHz, s.TickHz())

	s.Cycle()
	assert.Equal(t, IntentShoot, s.Intent(), "cycle ignored during playback")
	s.Confirm(ctx)
	assert.Equal(t, ActionChoosingMode, s.Action(), "confirm ignored during playback")

	steps := testMelodies.Steps(CueStartup.ID())
	for i := 0; i < steps; i++ {
		s.Tick()
		assert.Equal(t, i+1, s.MelodyStep())
	}
	s.Tick() // finishing tick clears the cue

	assert.Equal(t, CueNone, s.MelodyCue())
	assert.False(t, s.Busy())
	assert.Equal(t, NormalTickHz, s.TickHz())

	s.Cycle()
	assert.Equal(t, IntentGo, s.Intent(), "buttons live again")
}

func TestBatWarningCuesFlutter(t *testing.T) {
	// both of the player's hazardous neighbors hold bats
	settings := &Settings{Sound: true}
	s := newTestSession(settings, 0, 9, 10, 1, 4, 19)

	steps := testMelodies.Steps(CueStartup.ID())
	for i := 0; i < steps+1; i++ {
		s.Tick()
	}
	require.Equal(t, CueNone, s.MelodyCue())

	s.Tick() // first normal tick scrolls a bat warning into view

	assert.Equal(t, CueBats, s.MelodyCue())
	assert.Equal(t, MelodyTickHz, s.TickHz())
}

func TestWarningCursorCyclesHazards(t *testing.T) {
	// pit behind tunnel one, bat behind tunnel two
	s := newTestSession(quiet(), 0, 1, 9, 4, 10, 19)

	w, ok := s.CurrentWarning()
	require.True(t, ok)
	assert.Equal(t, cave.HazardPit, w)

	s.Tick()
	w, ok = s.CurrentWarning()
	require.True(t, ok)
	assert.Equal(t, cave.HazardBat, w)

	s.Tick()
	w, ok = s.CurrentWarning()
	require.True(t, ok)
	assert.Equal(t, cave.HazardPit, w, "cursor wraps around")
}

func TestNoWarningsInQuietCorner(t *testing.T) {
	// hazards all placed away from the player's three tunnels
	s := newTestSession(quiet(), 0, 2, 3, 9, 10, 19)

	_, ok := s.CurrentWarning()
	assert.False(t, ok)

	s.Tick()
	_, ok = s.CurrentWarning()
	assert.False(t, ok)
}

func TestSettingsPersistAcrossSessions(t *testing.T) {
	settings := DefaultSettings()
	s1 := NewSession(context.Background(), &settings, random.NewSeeded(7), testMelodies, zap.NewNop())

	require.True(t, s1.ToggleWumpusMode())
	require.True(t, s1.ToggleSound())

	s2 := NewSession(context.Background(), &settings, random.NewSeeded(8), testMelodies, zap.NewNop())

	assert.True(t, s2.Settings().ActiveWumpus)
	assert.False(t, s2.Settings().Sound)
}

func TestActiveWumpusCanWalkOntoPlayer(t *testing.T) {
	// wumpus one tunnel away; the roll says move and the tunnel leads home
	settings := &Settings{ActiveWumpus: true}
	s := newTestSession(settings, 0, 2, 3, 9, 10, 1, 80, 0)

	s.Confirm(context.Background()) // any confirm gives the wumpus its turn

	assert.Equal(t, ActionDied, s.Action())
	assert.Equal(t, hunt.DeathWumpus, s.Cause())
}

func TestActiveWumpusRollsOnEveryConfirm(t *testing.T) {
	settings := &Settings{ActiveWumpus: true}
	// first confirm rolls 10 (stays), the no-op confirm rolls 90 and kills
	s := newTestSession(settings, 0, 2, 3, 9, 10, 1, 10, 90, 0)
	ctx := context.Background()

	s.Cycle() // intent Go
	s.Confirm(ctx)
	require.Equal(t, ActionChoosingDestination, s.Action(), "low roll leaves the wumpus put")

	s.Confirm(ctx) // nothing selected: player stays, wumpus still gets a turn

	assert.Equal(t, ActionDied, s.Action())
	assert.Equal(t, hunt.DeathWumpus, s.Cause())
}

func TestStationaryWumpusHoldsStillOnSafeMoves(t *testing.T) {
	// wumpus one tunnel from home at room 1; walk 0 -> 4 -> 0 without
	// shooting; any stray relocation draw would pull it off room 1
	s := newTestSession(quiet(), 0, 2, 3, 9, 10, 1)
	ctx := context.Background()

	s.Cycle() // intent Go
	s.Confirm(ctx)
	s.Cycle()
	s.Cycle() // second tunnel, room 4
	s.Confirm(ctx)
	require.Equal(t, ActionChoosingMode, s.Action())
	require.Equal(t, cave.Room(4), s.PlayerRoom())

	s.Confirm(ctx) // intent is already Go after a safe landing
	s.Cycle()      // first tunnel out of 4, back to room 0
	s.Confirm(ctx)
	require.Equal(t, cave.Room(0), s.PlayerRoom())

	w, ok := s.CurrentWarning()
	require.True(t, ok)
	assert.Equal(t, cave.HazardWumpus, w, "the wumpus never stirred from room 1")
}

func TestConfirmWithNoDestinationStaysPut(t *testing.T) {
	s := newTestSession(quiet(), 0, 2, 3, 9, 10, 19)
	ctx := context.Background()

	s.Cycle()
	s.Confirm(ctx)
	require.Equal(t, ActionChoosingDestination, s.Action())

	s.Confirm(ctx)

	assert.Equal(t, ActionChoosingDestination, s.Action())
	assert.Equal(t, cave.Room(0), s.PlayerRoom())
}

func TestDestinationCycleWrapsThroughNone(t *testing.T) {
	s := newTestSession(quiet(), 0, 2, 3, 9, 10, 19)
	ctx := context.Background()

	s.Cycle()
	s.Confirm(ctx)

	_, ok := s.DestinationSelected()
	require.False(t, ok, "starts with no tunnel picked")

	want := cave.Neighbors(0)
	for i := 0; i < cave.NumNeighbors; i++ {
		s.Cycle()
		dest, ok := s.DestinationSelected()
		require.True(t, ok)
		assert.Equal(t, want[i], dest)
	}

	s.Cycle()
	_, ok = s.DestinationSelected()
	assert.False(t, ok, "cycles back to none")
}

func TestShotLengthAndCandidateWrap(t *testing.T) {
	s := newTestSession(quiet(), 0, 2, 3, 9, 10, 19)
	ctx := context.Background()

	s.Confirm(ctx)
	require.Equal(t, ActionChoosingShotLength, s.Action())

	for want := 2; want <= hunt.MaxShotLength; want++ {
		s.Cycle()
		assert.Equal(t, want, s.ShotLength())
	}
	s.Cycle()
	assert.Equal(t, 1, s.ShotLength(), "length wraps back to one")

	s.Confirm(ctx)
	require.Equal(t, cave.Room(1), s.ShotCandidate())

	for i := 0; i < cave.NumRooms-1; i++ {
		s.Cycle()
	}
	assert.Equal(t, cave.Room(0), s.ShotCandidate(), "candidate wraps past room twenty")
}

func TestTogglesAreDeadAfterTheHunt(t *testing.T) {
	s := newTestSession(quiet(), 0, 2, 3, 9, 10, 1)
	ctx := context.Background()

	s.Confirm(ctx)
	s.Confirm(ctx)
	s.Confirm(ctx) // wumpus shot, hunt over
	require.Equal(t, ActionWon, s.Action())

	assert.False(t, s.ToggleWumpusMode())
	assert.False(t, s.ToggleSound())
	assert.False(t, s.Settings().ActiveWumpus)
	assert.False(t, s.Settings().Sound)
}

func TestRandomEventSequencesNeverPanic(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Int64().Draw(rt, "seed")
		settings := Settings{
			ActiveWumpus: rapid.Bool().Draw(rt, "active"),
			Sound:        rapid.Bool().Draw(rt, "sound"),
		}
		src := random.NewSeeded(seed)
		ctx := context.Background()
		s := NewSession(ctx, &settings, src, testMelodies, zap.NewNop())

		steps := rapid.IntRange(50, 400).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			switch rapid.IntRange(0, 5).Draw(rt, "event") {
			case 0:
				s.Cycle()
			case 1:
				s.Confirm(ctx)
			case 2, 3:
				s.Tick()
			case 4:
				s.ToggleWumpusMode()
			case 5:
				s.ToggleSound()
			}

			require.GreaterOrEqual(rt, s.ArrowsLeft(), 0)
			hz := s.TickHz()
			require.True(rt, hz == NormalTickHz || hz == MelodyTickHz)
			_ = BuildFrame(s)

			if s.ShouldRestart() {
				s = NewSession(ctx, &settings, src, testMelodies, zap.NewNop())
			}
		}
	})
}

func TestActionStrings(t *testing.T) {
	tests := []struct {
		action   Action
		expected string
	}{
		{ActionChoosingMode, "choosing_mode"},
		{ActionChoosingShotLength, "choosing_shot_length"},
		{ActionChoosingShotPath, "choosing_shot_path"},
		{ActionChoosingDestination, "choosing_destination"},
		{ActionBatTransport, "bat_transport"},
		{ActionDied, "died"},
		{ActionWon, "won"},
		{Action(99), "unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.action.String())
	}

	assert.True(t, ActionDied.Terminal())
	assert.True(t, ActionWon.Terminal())
	assert.False(t, ActionBatTransport.Terminal())
}

func TestIntentAndCueStrings(t *testing.T) {
	assert.Equal(t, "go", IntentGo.String())
	assert.Equal(t, "shoot", IntentShoot.String())
	assert.Equal(t, IntentShoot, IntentGo.Toggled())
	assert.Equal(t, IntentGo, IntentShoot.Toggled())

	assert.Equal(t, "startup", CueStartup.ID())
	assert.Equal(t, "win", CueWin.ID())
	assert.Equal(t, "lose", CueLose.ID())
	assert.Equal(t, "bats", CueBats.ID())
	assert.Equal(t, "", CueNone.ID())
	assert.Equal(t, "none", CueNone.String())

	assert.Equal(t, "green", LEDGreen.String())
	assert.Equal(t, "red", LEDRed.String())
	assert.Equal(t, "off", LEDOff.String())
}
