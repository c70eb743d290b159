// Package cave models the 20-room labyrinth and the hazards lurking in it.
package cave

// Room identifies one of the cave's rooms, numbered 0-19. The face shows
// rooms 1-20; Display does the shift.
type Room int

const (
	// NumRooms is the number of rooms in the cave.
	NumRooms = 20
	// NumNeighbors is the number of tunnels leaving each room.
	NumNeighbors = 3
)

// caveMap is the fixed labyrinth layout from the classic 1973 game: a
// dodecahedron, every room opening onto exactly three tunnels. The graph is
// connected, 3-regular, and symmetric; the whole game relies on that.
var caveMap = [NumRooms][NumNeighbors]Room{
	{1, 4, 7}, {0, 2, 9}, {1, 3, 11}, {2, 4, 13}, {0, 3, 5},
	{4, 6, 14}, {5, 7, 16}, {0, 6, 8}, {7, 9, 17}, {1, 8, 10},
	{9, 11, 18}, {2, 10, 12}, {11, 13, 19}, {3, 12, 14}, {5, 13, 15},
	{14, 16, 19}, {6, 15, 17}, {8, 16, 18}, {10, 17, 19}, {12, 15, 18},
}

// Neighbors returns the three rooms connected to room.
func Neighbors(room Room) [NumNeighbors]Room {
	return caveMap[room]
}

// Neighbor returns the room behind the i-th tunnel out of room.
func Neighbor(room Room, i int) Room {
	return caveMap[room][i]
}

// AreAdjacent reports whether a tunnel connects a and b.
func AreAdjacent(a, b Room) bool {
	for _, n := range caveMap[a] {
		if n == b {
			return true
		}
	}
	return false
}

// Display returns the 1-based room number shown to the player.
func (r Room) Display() int {
	return int(r) + 1
}
