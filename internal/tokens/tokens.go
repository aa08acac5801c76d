// Package tokens loads and exposes the design-token set that every
// generated component is validated against.
package tokens

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
)

// DefaultPath is where the token file lives relative to the working directory.
const DefaultPath = "design-system/tokens.json"

// ErrConfig marks a missing or malformed token source. Callers can test for
// it with errors.Is to distinguish configuration failures from everything else.
var ErrConfig = errors.New("design tokens configuration error")

// Typography names the two font families components are allowed to use.
type Typography struct {
	FontFamilySans string `json:"font-family-sans"`
	FontFamilyMono string `json:"font-family-mono"`
}

// Set is the immutable design-token set. It is loaded once per pipeline run
// and never mutated afterwards.
type Set struct {
	Colors     map[string]string `json:"colors"`
	Borders    map[string]string `json:"borders"`
	Typography Typography        `json:"typography"`
}

// Load reads and validates a token set from a JSON file.
func Load(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrConfig, path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a token set from raw JSON.
func Parse(data []byte) (*Set, error) {
	var set Set
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON: %v", ErrConfig, err)
	}
	if err := set.validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	return &set, nil
}

func (s *Set) validate() error {
	if len(s.Colors) == 0 {
		return fmt.Errorf("colors must not be empty")
	}
	for name, hex := range s.Colors {
		if !strings.HasPrefix(hex, "#") {
			return fmt.Errorf("color %q: %q is not a hex value", name, hex)
		}
	}
	if len(s.Borders) == 0 {
		return fmt.Errorf("borders must not be empty")
	}
	if s.Typography.FontFamilySans == "" {
		return fmt.Errorf("typography.font-family-sans is required")
	}
	if s.Typography.FontFamilyMono == "" {
		return fmt.Errorf("typography.font-family-mono is required")
	}
	return nil
}

// AllowedColors returns the allowed hex values, lowercased and sorted.
func (s *Set) AllowedColors() []string {
	out := make([]string, 0, len(s.Colors))
	for _, hex := range s.Colors {
		out = append(out, strings.ToLower(hex))
	}
	sort.Strings(out)
	return out
}

// AllowedRadii returns the allowed border-radius values, sorted.
func (s *Set) AllowedRadii() []string {
	out := make([]string, 0, len(s.Borders))
	for _, px := range s.Borders {
		out = append(out, px)
	}
	sort.Strings(out)
	return out
}

// FontFamilies returns the two configured font family names.
func (s *Set) FontFamilies() []string {
	return []string{s.Typography.FontFamilySans, s.Typography.FontFamilyMono}
}

// JSON renders the set as indented JSON for embedding into prompts.
// The output is deterministic: encoding/json sorts map keys.
func (s *Set) JSON() string {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		// A Set built from valid JSON always marshals.
		return "{}"
	}
	return string(data)
}
