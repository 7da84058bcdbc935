// Package seed provides the sample prayer wall content restored into an empty
// registry at startup.
package seed

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/PrayerWall/models"
)

//go:embed prayers.yaml
var defaultFixture []byte

// Default returns the built-in sample items.
func Default() ([]models.PrayerItemSeed, error) {
	return Parse(defaultFixture)
}

// Load reads a fixture file, or the built-in one when path is empty.
func Load(path string) ([]models.PrayerItemSeed, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("seed: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a YAML list of items. Unknown keys are an error so typos in a
// fixture do not silently drop data.
func Parse(data []byte) ([]models.PrayerItemSeed, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var seeds []models.PrayerItemSeed
	if err := dec.Decode(&seeds); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("seed: decode: %w", err)
	}
	return seeds, nil
}
