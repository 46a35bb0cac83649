package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPaths(t *testing.T) {
	cfg := Default()
	cfg.Data.BaseDir = "/data"
	cfg.Data.PersonCSV = "/elsewhere/psam_p06.csv"

	paths := NewPaths(cfg.Data, cfg.Rewrite)

	assert.Equal(t, filepath.Join("/data", DefaultDictionaryFile), paths.DictionaryFile)
	assert.Equal(t, filepath.Join("/data", DefaultHousingCSV), paths.HousingCSV)
	assert.Equal(t, "/elsewhere/psam_p06.csv", paths.PersonCSV)
	assert.Equal(t, []string{paths.DictionaryFile, paths.HousingCSV, paths.PersonCSV}, paths.Inputs())
}

func TestPaths_OutputFor(t *testing.T) {
	cfg := Default()
	cfg.Data.BaseDir = ""

	paths := NewPaths(cfg.Data, cfg.Rewrite)
	assert.Equal(t, ".", paths.BaseDir)
	assert.Equal(t, "PUMS-2018-data/csv_hfl/psam_h12_updated_headers.csv", paths.OutputFor(paths.HousingCSV))

	cfg.Rewrite.InPlace = true
	inPlace := NewPaths(cfg.Data, cfg.Rewrite)
	assert.Equal(t, inPlace.HousingCSV, inPlace.OutputFor(inPlace.HousingCSV))
}

func TestUpdatedPath(t *testing.T) {
	tests := []struct {
		in, suffix, want string
	}{
		{"psam_h12.csv", "_updated_headers", "psam_h12_updated_headers.csv"},
		{"dir.csv/psam_p12.csv", "_v2", "dir.csv/psam_p12_v2.csv"},
		{"noext", "_x", "noext_x"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, UpdatedPath(tt.in, tt.suffix), tt.in)
	}
}
