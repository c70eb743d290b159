// Package entity provides the creatures taking part in the hunt.
package entity

import "github.com/PieterJanSterk/second-movement/internal/cave"

// NumArrows is the quiver size at the start of every hunt.
const NumArrows = 5

// Player is the hunter: a current room and a quiver of crooked arrows.
// Arrows is signed on purpose: the shot resolver decrements before checking,
// so -1 means the player fired with an empty quiver.
type Player struct {
	Room   cave.Room
	Arrows int
}

// NewPlayer creates a player in the given room with a full quiver.
func NewPlayer(room cave.Room) *Player {
	return &Player{
		Room:   room,
		Arrows: NumArrows,
	}
}

// MoveTo relocates the player.
func (p *Player) MoveTo(room cave.Room) {
	p.Room = room
}

// SpendArrow removes one arrow and returns the new count, which may be -1.
func (p *Player) SpendArrow() int {
	p.Arrows--
	return p.Arrows
}

// ArrowsLeft returns the arrow count clamped at zero, for display.
func (p *Player) ArrowsLeft() int {
	if p.Arrows < 0 {
		return 0
	}
	return p.Arrows
}
