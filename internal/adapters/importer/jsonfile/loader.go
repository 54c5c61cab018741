// Package jsonfile reads participant descriptors from a JSON file, the import
// source consumed by a bulk replace.
package jsonfile

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/contest/api/internal/core/ports"
)

// Load parses a file holding a JSON array of participant descriptors.
// Validation of the individual entries is left to the participant service.
func Load(path string) ([]ports.ImportEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read import file: %w", err)
	}

	var entries []ports.ImportEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse import file: %w", err)
	}
	return entries, nil
}
