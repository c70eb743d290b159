package game

// Settings are player preferences that outlive a single hunt. A new
// session receives the same Settings value its predecessor used, so
// toggles carry across restarts.
type Settings struct {
	// ActiveWumpus makes the wumpus roam after every confirmed player
	// action instead of only stirring when an arrow misses.
	ActiveWumpus bool
	// Sound enables melodies and toggle chirps.
	Sound bool
}

// DefaultSettings returns the preferences a fresh install starts with.
func DefaultSettings() Settings {
	return Settings{
		ActiveWumpus: false,
		Sound:        true,
	}
}
