package gamedata

import (
	"encoding/json"
	"fmt"
)

// Load reads one of the embedded JSON files into T. The embedded data ships
// with the binary, so a failure here means the build itself is broken.
func Load[T any](filename string) (T, error) {
	var result T

	content, err := dataFS.ReadFile(filename)
	if err != nil {
		return result, fmt.Errorf("read embedded %s: %w", filename, err)
	}
	if err := json.Unmarshal(content, &result); err != nil {
		return result, fmt.Errorf("parse %s: %w", filename, err)
	}
	return result, nil
}
