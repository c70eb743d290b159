package cave

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/PieterJanSterk/second-movement/internal/random"
	"github.com/PieterJanSterk/second-movement/internal/telemetry"
)

// Hazard is what a room may hold. A room holds at most one hazard.
type Hazard int

const (
	// HazardNone marks an empty room.
	HazardNone Hazard = iota
	// HazardWumpus is the beast itself. Walking in is fatal.
	HazardWumpus
	// HazardBat is a super bat that carries the player off.
	HazardBat
	// HazardPit is a bottomless pit. Also fatal.
	HazardPit
)

// String returns a short lowercase name for logs and traces.
func (h Hazard) String() string {
	switch h {
	case HazardNone:
		return "none"
	case HazardWumpus:
		return "wumpus"
	case HazardBat:
		return "bat"
	case HazardPit:
		return "pit"
	default:
		return "unknown"
	}
}

const (
	// NumPits is how many bottomless pits a fresh cave holds.
	NumPits = 2
	// NumBats is how many super bats a fresh cave holds.
	NumBats = 2
)

// Field maps each room to the hazard inside it. It is mutated in exactly two
// places after generation: an arrow kills a bat, and the wumpus relocates.
type Field [NumRooms]Hazard

// GenerateField populates a fresh field: NumPits pits, then NumBats bats,
// then the wumpus, each in its own room and never in the player's starting
// room. Placement is rejection sampling: uniform rooms are drawn until an
// eligible one comes up, which terminates quickly since hazards occupy 5 of
// 20 rooms at most.
func GenerateField(ctx context.Context, playerRoom Room, src random.Source) *Field {
	tracer := telemetry.Tracer("cave")
	_, span := tracer.Start(ctx, "field.generate")
	defer span.End()

	var f Field
	for i := 0; i < NumPits; i++ {
		f[f.pickUniqueRoom(playerRoom, src)] = HazardPit
	}
	for i := 0; i < NumBats; i++ {
		f[f.pickUniqueRoom(playerRoom, src)] = HazardBat
	}
	f[f.pickUniqueRoom(playerRoom, src)] = HazardWumpus

	span.SetAttributes(
		attribute.Int("cave.player_room", playerRoom.Display()),
		attribute.Int("cave.pits", NumPits),
		attribute.Int("cave.bats", NumBats),
	)
	return &f
}

// pickUniqueRoom draws uniform rooms until one is neither the player's
// starting room nor already occupied.
func (f *Field) pickUniqueRoom(playerRoom Room, src random.Source) Room {
	for {
		room := Room(src.Intn(NumRooms))
		if room != playerRoom && f[room] == HazardNone {
			return room
		}
	}
}

// At returns the hazard in room.
func (f *Field) At(room Room) Hazard {
	return f[room]
}

// Clear empties room.
func (f *Field) Clear(room Room) {
	f[room] = HazardNone
}

// Place puts h in room, replacing whatever was there.
func (f *Field) Place(room Room, h Hazard) {
	f[room] = h
}

// WumpusRoom returns the wumpus's room, or false if it is gone.
func (f *Field) WumpusRoom() (Room, bool) {
	for room, h := range f {
		if h == HazardWumpus {
			return Room(room), true
		}
	}
	return 0, false
}

// Count returns how many rooms hold h.
func (f *Field) Count(h Hazard) int {
	n := 0
	for _, got := range f {
		if got == h {
			n++
		}
	}
	return n
}

// WarningsFor returns the hazards in the rooms adjacent to room, in
// tunnel order, skipping empty rooms. The face cycles through these.
func (f *Field) WarningsFor(room Room) []Hazard {
	var warnings []Hazard
	for _, n := range Neighbors(room) {
		if h := f[n]; h != HazardNone {
			warnings = append(warnings, h)
		}
	}
	return warnings
}
