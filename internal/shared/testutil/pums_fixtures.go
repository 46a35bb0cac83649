package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"pumscli/internal/config"
)

// SampleDictionary is a small dictionary in the PUMS text layout.
const SampleDictionary = `RT          Character   1
Record Type
      H .Housing Record or Group Quarters Unit
      P .Person Record

SERIALNO    Character   13
Housing unit/GQ person serial number
      2018GQ0000001..2018HU9999999 .Unique identifier

VEH         Numeric     1
Vehicles (1 ton or less) available
      0 .No vehicles

AGEP        Numeric     2
Age
      00 .Under 1 year
`

// WriteFile writes content to base/rel, creating parent directories.
func WriteFile(t testing.TB, base, rel, content string) string {
	t.Helper()
	path := filepath.Join(base, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("create %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// PUMSTree lays out SampleDictionary and the two CSV inputs at their default
// relative paths under a temp dir and returns a default config rooted there.
func PUMSTree(t testing.TB, housing, person string) *config.Config {
	t.Helper()
	base := t.TempDir()

	WriteFile(t, base, config.DefaultDictionaryFile, SampleDictionary)
	WriteFile(t, base, config.DefaultHousingCSV, housing)
	WriteFile(t, base, config.DefaultPersonCSV, person)

	cfg := config.Default()
	cfg.Data.BaseDir = base
	return cfg
}
