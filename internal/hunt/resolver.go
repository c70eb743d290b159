// Package hunt resolves player actions against the cave: room moves, arrow
// shots, and the wumpus's own movement between rooms.
package hunt

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/PieterJanSterk/second-movement/internal/cave"
	"github.com/PieterJanSterk/second-movement/internal/entity"
	"github.com/PieterJanSterk/second-movement/internal/random"
	"github.com/PieterJanSterk/second-movement/internal/telemetry"
)

const (
	// MaxShotLength is the longest path an arrow can fly.
	MaxShotLength = 5
	// MoveProb tunes the active wumpus: after each confirmed player action
	// it moves iff a roll in [0,100) lands at or above this value, a 25%
	// chance per action.
	MoveProb = 75
)

// DeathCause labels why a hunt ended in the player's death. It is separate
// from cave.Hazard because two of the causes (empty quiver, shooting
// yourself) never sit in a room.
type DeathCause int

const (
	// DeathWumpus means the player met the wumpus, by walking in or by the
	// wumpus walking in on them.
	DeathWumpus DeathCause = iota
	// DeathPit means the player fell into a bottomless pit.
	DeathPit
	// DeathOutOfArrows means the player fired with an empty quiver.
	DeathOutOfArrows
	// DeathSelfShot means the arrow found its way back to the archer.
	DeathSelfShot
)

// String returns a short lowercase name for logs and traces.
func (c DeathCause) String() string {
	switch c {
	case DeathWumpus:
		return "wumpus"
	case DeathPit:
		return "pit"
	case DeathOutOfArrows:
		return "arrows"
	case DeathSelfShot:
		return "self_shot"
	default:
		return "unknown"
	}
}

// Outcome is what a resolved action leaves the player with.
type Outcome int

const (
	// OutcomeSafe means nothing happened; play continues.
	OutcomeSafe Outcome = iota
	// OutcomeBatTransport means a bat grabbed the player.
	OutcomeBatTransport
	// OutcomeMissed means the arrow flew its full path and hit nothing.
	OutcomeMissed
	// OutcomeWon means the arrow found the wumpus.
	OutcomeWon
	// OutcomeDied means the hunt is over; see Cause.
	OutcomeDied
)

// String returns a short lowercase name for logs and traces.
func (o Outcome) String() string {
	switch o {
	case OutcomeSafe:
		return "safe"
	case OutcomeBatTransport:
		return "bat_transport"
	case OutcomeMissed:
		return "missed"
	case OutcomeWon:
		return "won"
	case OutcomeDied:
		return "died"
	default:
		return "unknown"
	}
}

// Result is the outcome of a resolved move or shot.
type Result struct {
	Outcome Outcome
	Cause   DeathCause // set when Outcome is OutcomeDied
	BatDest cave.Room  // set when Outcome is OutcomeBatTransport
}

// Resolver applies moves and shots to the game state. All randomness flows
// through the injected source, so hunts replay exactly under a fixed seed.
type Resolver struct {
	src    random.Source
	logger *zap.Logger
}

// NewResolver creates a resolver drawing from src and logging to logger.
func NewResolver(src random.Source, logger *zap.Logger) *Resolver {
	return &Resolver{src: src, logger: logger}
}

// Move walks the player into dest and resolves whatever lives there. The
// player's room is updated before the hazard check, so a fatal move still
// leaves the body in the right place.
func (r *Resolver) Move(field *cave.Field, player *entity.Player, dest cave.Room) Result {
	player.MoveTo(dest)
	hazard := field.At(dest)

	r.logger.Debug("moved",
		zap.Int("room", dest.Display()),
		zap.String("hazard", hazard.String()),
	)

	switch hazard {
	case cave.HazardNone:
		return Result{Outcome: OutcomeSafe}
	case cave.HazardBat:
		return Result{Outcome: OutcomeBatTransport, BatDest: r.SafeRoom(field)}
	case cave.HazardPit:
		return Result{Outcome: OutcomeDied, Cause: DeathPit}
	default:
		return Result{Outcome: OutcomeDied, Cause: DeathWumpus}
	}
}

// Shoot fires an arrow along path. The quiver is spent before anything
// flies: shooting with no arrows left kills the player without touching the
// cave. Each leg of the path must connect to the one before it; a leg that
// doesn't is a crooked arrow and is replaced in place with a random tunnel
// out of the previous room. The first leg is taken as given.
//
// Along the (possibly straightened) path, reaching the player's own room is
// death, a bat is killed and removed, the wumpus means the hunt is won, and
// pits are flown over.
func (r *Resolver) Shoot(ctx context.Context, field *cave.Field, player *entity.Player, path []cave.Room) Result {
	tracer := telemetry.Tracer("hunt")
	_, span := tracer.Start(ctx, "hunt.shoot")
	defer span.End()

	span.SetAttributes(
		attribute.Int("shot.length", len(path)),
		attribute.Int("shot.arrows_before", player.Arrows),
	)

	if player.SpendArrow() < 0 {
		span.SetAttributes(attribute.String("shot.outcome", "out_of_arrows"))
		return Result{Outcome: OutcomeDied, Cause: DeathOutOfArrows}
	}

	res := r.resolvePath(field, player, path)

	span.SetAttributes(attribute.String("shot.outcome", res.Outcome.String()))
	r.logger.Debug("shot resolved",
		zap.Int("length", len(path)),
		zap.String("outcome", res.Outcome.String()),
		zap.Int("arrows_left", player.Arrows),
	)
	return res
}

func (r *Resolver) resolvePath(field *cave.Field, player *entity.Player, path []cave.Room) Result {
	for i := range path {
		if i > 0 && !cave.AreAdjacent(path[i-1], path[i]) {
			// Crooked arrow: the chosen room has no tunnel from the
			// previous one, so the arrow tumbles down a random tunnel
			// instead.
			path[i] = cave.Neighbor(path[i-1], r.src.Intn(cave.NumNeighbors))
		}

		if path[i] == player.Room {
			return Result{Outcome: OutcomeDied, Cause: DeathSelfShot}
		}

		switch field.At(path[i]) {
		case cave.HazardBat:
			field.Clear(path[i]) // the arrow kills the bat in passing
		case cave.HazardWumpus:
			return Result{Outcome: OutcomeWon}
		}
	}
	return Result{Outcome: OutcomeMissed}
}

// FleeWumpus relocates the wumpus one tunnel in a random direction. This is
// the whole movement policy for the stationary wumpus, triggered only by a
// missed shot. The wumpus squashes whatever hazard held the destination
// room. Reports the new room, or false if the wumpus is already dead.
func (r *Resolver) FleeWumpus(field *cave.Field) (cave.Room, bool) {
	from, ok := field.WumpusRoom()
	if !ok {
		return 0, false
	}
	to := cave.Neighbor(from, r.src.Intn(cave.NumNeighbors))
	field.Clear(from)
	field.Place(to, cave.HazardWumpus)

	r.logger.Debug("wumpus moved",
		zap.Int("from", from.Display()),
		zap.Int("to", to.Display()),
	)
	return to, true
}

// MoveWumpus rolls the active wumpus's movement: a MoveProb-in-100 chance of
// staying put, otherwise one step via FleeWumpus. Called after every
// confirmed player action while active mode is on.
func (r *Resolver) MoveWumpus(field *cave.Field) (cave.Room, bool) {
	if r.src.Intn(100) < MoveProb {
		return 0, false
	}
	return r.FleeWumpus(field)
}

// SafeRoom picks a uniform random room holding neither the wumpus nor a pit.
// Bats and the player's own room are fair game; a bat landing triggers
// another transport, which is handled by the caller.
func (r *Resolver) SafeRoom(field *cave.Field) cave.Room {
	for {
		room := cave.Room(r.src.Intn(cave.NumRooms))
		if h := field.At(room); h != cave.HazardWumpus && h != cave.HazardPit {
			return room
		}
	}
}
