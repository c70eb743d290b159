package game

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/PieterJanSterk/second-movement/internal/cave"
	"github.com/PieterJanSterk/second-movement/internal/entity"
	"github.com/PieterJanSterk/second-movement/internal/gamedata"
	"github.com/PieterJanSterk/second-movement/internal/hunt"
	"github.com/PieterJanSterk/second-movement/internal/random"
	"github.com/PieterJanSterk/second-movement/internal/telemetry"
)

const (
	// TransportDelayTicks is how many ticks a bat ride lasts before the
	// player is dropped into the destination room.
	TransportDelayTicks = 4
	// LedFlashTicks is how many ticks the end-of-hunt lamp stays lit before
	// the session signals a restart.
	LedFlashTicks = 3
	// NormalTickHz is the tick rate while the session waits on the player.
	NormalTickHz = 4
	// MelodyTickHz is the tick rate while a melody plays, one note per tick.
	MelodyTickHz = 8
)

// Session is one hunt, from cave generation to a win or a death. It is a
// plain synchronous state machine: the shell feeds it Cycle, Confirm and
// Tick events and renders whatever the query methods report. Nothing in
// here blocks, spawns goroutines, or touches a clock; all waiting is
// countdowns paid down by Ticks.
type Session struct {
	id       uuid.UUID
	settings *Settings
	player   *entity.Player
	field    *cave.Field
	resolver *hunt.Resolver
	melodies *gamedata.MelodyRegistry
	logger   *zap.Logger

	action Action
	intent Intent
	cause  hunt.DeathCause

	// arrow path under construction
	shotLen    int
	shotPicked int
	shotRoom   cave.Room
	shotPath   [hunt.MaxShotLength]cave.Room

	// tunnel selection; destChosen false means no tunnel picked yet
	destIndex  int
	destChosen bool

	// bat ride in progress
	transportDest  cave.Room
	transportTicks int

	// melody playback; step counts notes already sounded
	melodyCue   Cue
	melodyStep  int
	melodySteps int

	// end-of-hunt lamp flash
	led      LED
	ledTicks int

	hazardCursor int
	blinkOn      bool
	restart      bool
}

// NewSession deals a fresh cave and starts a hunt. The player wakes in a
// uniform random room with a full quiver and the hazards are placed around
// them. Settings are shared with the caller, so toggles made during this
// hunt carry into the next one.
func NewSession(ctx context.Context, settings *Settings, src random.Source, melodies *gamedata.MelodyRegistry, logger *zap.Logger) *Session {
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "session.start")
	defer span.End()

	player := entity.NewPlayer(cave.Room(src.Intn(cave.NumRooms)))
	s := &Session{
		id:       uuid.New(),
		settings: settings,
		player:   player,
		field:    cave.GenerateField(ctx, player.Room, src),
		resolver: hunt.NewResolver(src, logger),
		melodies: melodies,
		logger:   logger,
		action:   ActionChoosingMode,
		intent:   IntentShoot,
		blinkOn:  true,
	}

	span.SetAttributes(
		attribute.String("session.id", s.id.String()),
		attribute.Int("session.start_room", player.Room.Display()),
		attribute.Bool("session.active_wumpus", settings.ActiveWumpus),
	)
	s.logger.Info("hunt started",
		zap.String("session", s.id.String()),
		zap.Int("room", player.Room.Display()),
		zap.Bool("active_wumpus", settings.ActiveWumpus),
		zap.Bool("sound", settings.Sound),
	)

	s.cueMelody(CueStartup)
	return s
}

// =============================================================================
// Events
// =============================================================================

// Cycle steps the current selection: intent, shot length, path room, or
// tunnel slot. Ignored while the session is busy or over.
func (s *Session) Cycle() {
	if s.paused() || s.action.Terminal() {
		return
	}

	switch s.action {
	case ActionChoosingMode:
		s.intent = s.intent.Toggled()
		s.blinkOn = true
	case ActionChoosingShotLength:
		s.shotLen++
		if s.shotLen > hunt.MaxShotLength {
			s.shotLen = 1
		}
	case ActionChoosingShotPath:
		s.shotRoom = (s.shotRoom + 1) % cave.NumRooms
	case ActionChoosingDestination:
		// none -> first tunnel -> second -> third -> none again
		switch {
		case !s.destChosen:
			s.destChosen = true
			s.destIndex = 0
		case s.destIndex+1 < cave.NumNeighbors:
			s.destIndex++
		default:
			s.destChosen = false
			s.destIndex = 0
		}
	}
}

// Confirm commits the current selection and advances the state machine.
// Ignored while the session is busy or over. While active mode is on, every
// confirm that leaves the hunt in progress also gives the wumpus its chance
// to roam.
func (s *Session) Confirm(ctx context.Context) {
	if s.paused() || s.action.Terminal() {
		return
	}

	switch s.action {
	case ActionChoosingMode:
		if s.intent == IntentGo {
			s.action = ActionChoosingDestination
			s.destChosen = false
			s.destIndex = 0
		} else {
			s.action = ActionChoosingShotLength
			s.shotLen = 1
		}
		s.blinkOn = true
	case ActionChoosingShotLength:
		s.action = ActionChoosingShotPath
		s.shotPicked = 0
		s.shotRoom = cave.Neighbor(s.player.Room, 0)
	case ActionChoosingShotPath:
		s.shotPath[s.shotPicked] = s.shotRoom
		s.shotPicked++
		s.shotRoom = 0
		s.blinkOn = true
		if s.shotPicked == s.shotLen {
			s.resolveShot(ctx)
		}
	case ActionChoosingDestination:
		// confirming with no tunnel picked stays put
		if s.destChosen {
			s.resolveMove(ctx)
		}
	}

	s.rollActiveWumpus(ctx)
}

// Tick advances time. The shell calls it at TickHz. Exactly one timed phase
// is serviced per tick: melody playback first, then the lamp flash, then the
// bat ride, then ordinary blinking and warning cycling.
func (s *Session) Tick() {
	switch {
	case s.melodyCue != CueNone:
		s.tickMelody()
	case s.ledTicks > 0:
		s.tickLED()
	case s.action == ActionBatTransport:
		s.tickTransport()
	default:
		s.tickNormal()
	}
}

// ToggleWumpusMode flips the roaming-wumpus setting. Allowed any time the
// hunt is still in progress, even mid-ride. Reports whether it changed.
func (s *Session) ToggleWumpusMode() bool {
	if s.action.Terminal() {
		return false
	}
	s.settings.ActiveWumpus = !s.settings.ActiveWumpus
	s.logger.Debug("wumpus mode toggled", zap.Bool("active", s.settings.ActiveWumpus))
	return true
}

// ToggleSound flips the sound setting. A melody already playing finishes;
// only new cues are muted. Reports whether it changed.
func (s *Session) ToggleSound() bool {
	if s.action.Terminal() {
		return false
	}
	s.settings.Sound = !s.settings.Sound
	s.logger.Debug("sound toggled", zap.Bool("sound", s.settings.Sound))
	return true
}

// =============================================================================
// Resolution
// =============================================================================

// resolveMove walks the player down the chosen tunnel.
func (s *Session) resolveMove(ctx context.Context) {
	dest := cave.Neighbor(s.player.Room, s.destIndex)
	res := s.resolver.Move(s.field, s.player, dest)

	switch res.Outcome {
	case hunt.OutcomeSafe:
		s.backToMode(IntentGo)
	case hunt.OutcomeBatTransport:
		s.beginTransport(res.BatDest)
	default:
		s.finishGame(ctx, res.Outcome, res.Cause)
	}
}

// resolveShot fires the committed path. A miss stirs the stationary wumpus,
// which may blunder straight into the archer.
func (s *Session) resolveShot(ctx context.Context) {
	res := s.resolver.Shoot(ctx, s.field, s.player, s.shotPath[:s.shotLen])

	switch res.Outcome {
	case hunt.OutcomeMissed:
		s.backToMode(IntentShoot)
		if !s.settings.ActiveWumpus {
			if room, moved := s.resolver.FleeWumpus(s.field); moved && room == s.player.Room {
				s.finishGame(ctx, hunt.OutcomeDied, hunt.DeathWumpus)
			}
		}
	default:
		s.finishGame(ctx, res.Outcome, res.Cause)
	}
}

// rollActiveWumpus runs the active movement policy after a confirm.
func (s *Session) rollActiveWumpus(ctx context.Context) {
	if !s.settings.ActiveWumpus || s.action.Terminal() {
		return
	}
	if room, moved := s.resolver.MoveWumpus(s.field); moved && room == s.player.Room {
		s.finishGame(ctx, hunt.OutcomeDied, hunt.DeathWumpus)
	}
}

// beginTransport starts a bat ride toward dest.
func (s *Session) beginTransport(dest cave.Room) {
	s.action = ActionBatTransport
	s.transportDest = dest
	s.transportTicks = TransportDelayTicks
	s.cueMelody(CueBats)
	s.logger.Debug("bat transport",
		zap.Int("from", s.player.Room.Display()),
		zap.Int("dest", dest.Display()),
	)
}

// backToMode returns to the root menu with the given intent preselected.
func (s *Session) backToMode(intent Intent) {
	s.action = ActionChoosingMode
	s.intent = intent
	s.blinkOn = true
}

// finishGame ends the hunt. The win or lose melody plays first and the lamp
// flash follows; with sound off the lamp lights immediately so the restart
// path never stalls.
func (s *Session) finishGame(ctx context.Context, outcome hunt.Outcome, cause hunt.DeathCause) {
	tracer := telemetry.Tracer("game")
	_, span := tracer.Start(ctx, "session.finish")
	defer span.End()

	cue := CueWin
	if outcome == hunt.OutcomeWon {
		s.action = ActionWon
	} else {
		s.action = ActionDied
		s.cause = cause
		cue = CueLose
	}

	span.SetAttributes(
		attribute.String("session.id", s.id.String()),
		attribute.String("session.outcome", outcome.String()),
		attribute.Int("session.arrows_left", s.player.ArrowsLeft()),
	)
	fields := []zap.Field{
		zap.String("session", s.id.String()),
		zap.String("outcome", outcome.String()),
		zap.Int("arrows_left", s.player.ArrowsLeft()),
	}
	if s.action == ActionDied {
		span.SetAttributes(attribute.String("session.cause", cause.String()))
		fields = append(fields, zap.String("cause", cause.String()))
	}
	s.logger.Info("hunt finished", fields...)

	if !s.cueMelody(cue) {
		s.startLED(ledFor(cue))
	}
}

// =============================================================================
// Ticking
// =============================================================================

func (s *Session) tickMelody() {
	if s.melodyStep < s.melodySteps {
		s.melodyStep++
		return
	}
	cue := s.melodyCue
	s.melodyCue = CueNone
	s.melodyStep = 0
	s.melodySteps = 0
	if cue == CueWin || cue == CueLose {
		s.startLED(ledFor(cue))
	}
}

func (s *Session) tickLED() {
	s.ledTicks--
	if s.ledTicks <= 0 {
		s.ledTicks = 0
		s.led = LEDOff
		s.restart = true
	}
}

func (s *Session) tickTransport() {
	if s.transportTicks > 0 {
		s.transportTicks--
		return
	}
	s.player.MoveTo(s.transportDest)
	if s.field.At(s.player.Room) == cave.HazardBat {
		// dropped into another bat's room, carried straight off again
		s.transportDest = s.resolver.SafeRoom(s.field)
		s.transportTicks = TransportDelayTicks
		s.cueMelody(CueBats)
		s.logger.Debug("bat transport rerolled", zap.Int("dest", s.transportDest.Display()))
		return
	}
	s.backToMode(IntentGo)
	s.logger.Debug("bat transport landed", zap.Int("room", s.player.Room.Display()))
}

func (s *Session) tickNormal() {
	s.blinkOn = !s.blinkOn
	if s.action.Terminal() {
		return
	}
	s.advanceWarning()
}

// advanceWarning steps the cyclic cursor over the neighboring hazards and
// cues the flutter when a bat warning scrolls into view. The cursor is not
// reset on room changes, so it is re-clamped whenever the warning list has
// shrunk underneath it.
func (s *Session) advanceWarning() {
	warnings := s.field.WarningsFor(s.player.Room)
	if len(warnings) == 0 {
		s.hazardCursor = 0
		return
	}
	if s.hazardCursor >= len(warnings) {
		s.hazardCursor = 0
	} else {
		s.hazardCursor = (s.hazardCursor + 1) % len(warnings)
	}
	if warnings[s.hazardCursor] == cave.HazardBat {
		s.cueMelody(CueBats)
	}
}

// cueMelody starts a melody if sound is on and nothing else is playing.
// Reports whether the cue took.
func (s *Session) cueMelody(cue Cue) bool {
	if !s.settings.Sound || s.melodyCue != CueNone {
		return false
	}
	steps := s.melodies.Steps(cue.ID())
	if steps == 0 {
		return false
	}
	s.melodyCue = cue
	s.melodyStep = 0
	s.melodySteps = steps
	return true
}

func (s *Session) startLED(l LED) {
	s.led = l
	s.ledTicks = LedFlashTicks
}

// paused reports whether timed playback is eating the button events.
func (s *Session) paused() bool {
	return s.melodyCue != CueNone || s.ledTicks > 0 || s.action == ActionBatTransport
}

func ledFor(cue Cue) LED {
	if cue == CueWin {
		return LEDGreen
	}
	return LEDRed
}

// =============================================================================
// Queries
// =============================================================================

// ID returns the session's unique identifier, used in logs and traces.
func (s *Session) ID() uuid.UUID { return s.id }

// Action returns the current player-facing mode.
func (s *Session) Action() Action { return s.action }

// Intent returns what confirming in ChoosingMode would start.
func (s *Session) Intent() Intent { return s.intent }

// Cause returns why the player died. Meaningful only in ActionDied.
func (s *Session) Cause() hunt.DeathCause { return s.cause }

// PlayerRoom returns the room the player is in, 0-based.
func (s *Session) PlayerRoom() cave.Room { return s.player.Room }

// ArrowsLeft returns the arrows remaining, clamped to zero for display.
func (s *Session) ArrowsLeft() int { return s.player.ArrowsLeft() }

// ShotLength returns the path length being picked or flown.
func (s *Session) ShotLength() int { return s.shotLen }

// ShotPicked returns how many path rooms have been committed.
func (s *Session) ShotPicked() int { return s.shotPicked }

// ShotCandidate returns the room under the path cursor.
func (s *Session) ShotCandidate() cave.Room { return s.shotRoom }

// DestinationSelected returns the tunnel destination currently picked, or
// false when no tunnel is selected.
func (s *Session) DestinationSelected() (cave.Room, bool) {
	if !s.destChosen {
		return 0, false
	}
	return cave.Neighbor(s.player.Room, s.destIndex), true
}

// TransportCountdown returns the ticks left on the bat ride.
func (s *Session) TransportCountdown() int { return s.transportTicks }

// CurrentWarning returns the neighboring hazard under the cyclic cursor, or
// false when the adjacent rooms are all clear.
func (s *Session) CurrentWarning() (cave.Hazard, bool) {
	warnings := s.field.WarningsFor(s.player.Room)
	if len(warnings) == 0 {
		return cave.HazardNone, false
	}
	i := s.hazardCursor
	if i >= len(warnings) {
		i = 0
	}
	return warnings[i], true
}

// MelodyCue returns the melody being played, or CueNone.
func (s *Session) MelodyCue() Cue { return s.melodyCue }

// MelodyStep returns how many notes of the current melody have sounded.
func (s *Session) MelodyStep() int { return s.melodyStep }

// LED returns the lamp state.
func (s *Session) LED() LED { return s.led }

// LEDTicks returns the ticks left on the lamp flash.
func (s *Session) LEDTicks() int { return s.ledTicks }

// Busy reports whether playback or the lamp flash is pending, meaning
// button events are being ignored.
func (s *Session) Busy() bool {
	return s.melodyCue != CueNone || s.ledTicks > 0
}

// BlinkOn returns the blink phase for whatever element the action blinks.
func (s *Session) BlinkOn() bool { return s.blinkOn }

// ShouldRestart reports whether the end-of-hunt sequence has fully played
// out and the shell should deal a new session.
func (s *Session) ShouldRestart() bool { return s.restart }

// TickHz returns the tick rate the session wants from the shell.
func (s *Session) TickHz() int {
	if s.melodyCue != CueNone {
		return MelodyTickHz
	}
	return NormalTickHz
}

// Settings returns a copy of the current settings.
func (s *Session) Settings() Settings { return *s.settings }
