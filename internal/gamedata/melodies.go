package gamedata

import "errors"

// MelodyDef defines a buzzer melody loaded from JSON. Notes are names like
// "C4" or "A#4"; the shell plays one note per melody tick and the game core
// only ever reads the step count.
type MelodyDef struct {
	ID    string   `json:"id"`    // Unique identifier (e.g., "win")
	Name  string   `json:"name"`  // Display name (e.g., "Victory Arpeggio")
	Notes []string `json:"notes"` // Note names, one per tick
}

// Steps returns how many ticks the melody occupies.
func (m *MelodyDef) Steps() int {
	return len(m.Notes)
}

// Note returns the note name at the given step, or "" past the end.
func (m *MelodyDef) Note(step int) string {
	if step < 0 || step >= len(m.Notes) {
		return ""
	}
	return m.Notes[step]
}

// MelodiesFile represents the structure of melodies.json.
type MelodiesFile struct {
	Melodies []MelodyDef `json:"melodies"`
}

// LoadMelodies loads melody definitions from the embedded melodies.json.
func LoadMelodies() ([]MelodyDef, error) {
	file, err := Load[MelodiesFile]("melodies.json")
	if err != nil {
		return nil, err
	}
	return file.Melodies, nil
}

// MelodyRegistry holds loaded melody definitions and provides lookup.
type MelodyRegistry struct {
	melodies map[string]*MelodyDef
	all      []MelodyDef
}

// NewMelodyRegistry creates a registry from loaded melody definitions.
func NewMelodyRegistry(melodies []MelodyDef) *MelodyRegistry {
	registry := &MelodyRegistry{
		melodies: make(map[string]*MelodyDef),
		all:      melodies,
	}
	for i := range melodies {
		registry.melodies[melodies[i].ID] = &melodies[i]
	}
	return registry
}

// LoadMelodyRegistry loads and creates a registry from the embedded
// melodies.json.
func LoadMelodyRegistry() (*MelodyRegistry, error) {
	melodies, err := LoadMelodies()
	if err != nil {
		return nil, err
	}
	if len(melodies) == 0 {
		return nil, errors.New("no melodies loaded from melodies.json")
	}
	return NewMelodyRegistry(melodies), nil
}

// MustLoadMelodyRegistry loads a registry, panicking on error.
func MustLoadMelodyRegistry() *MelodyRegistry {
	registry, err := LoadMelodyRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// GetByID returns the melody with the given ID, or nil if not found.
func (r *MelodyRegistry) GetByID(id string) *MelodyDef {
	return r.melodies[id]
}

// Steps returns the step count of the melody with the given ID, or 0 if the
// melody is unknown.
func (r *MelodyRegistry) Steps(id string) int {
	if m := r.melodies[id]; m != nil {
		return m.Steps()
	}
	return 0
}

// All returns all melody definitions.
func (r *MelodyRegistry) All() []MelodyDef {
	return r.all
}

// Count returns the number of melodies in the registry.
func (r *MelodyRegistry) Count() int {
	return len(r.all)
}
