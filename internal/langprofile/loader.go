package langprofile

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadFile reads an ExtractionProfile from a JSON file (spec.md §6,
// `--profile path.json`), for a language not among the compiled-in set or to
// override one of them.
func LoadFile(path string) (*ExtractionProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("langprofile: failed to read %s: %w", path, err)
	}

	var profile ExtractionProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("langprofile: failed to parse %s: %w", path, err)
	}
	if profile.Language == "" {
		return nil, fmt.Errorf("langprofile: %s is missing required field \"language\"", path)
	}

	return &profile, nil
}
