package config

import (
	"log/slog"
	"path/filepath"
	"strings"
)

// Default locations of the 2018 Florida PUMS extract, relative to the base directory.
const (
	DefaultDictionaryFile = "PUMS-2018-data/PUMS_Data_Dictionary_2018.txt"
	DefaultHousingCSV     = "PUMS-2018-data/csv_hfl/psam_h12.csv"
	DefaultPersonCSV      = "PUMS-2018-data/csv_pfl/psam_p12.csv"
	DefaultOutputSuffix   = "_updated_headers"
)

// Paths contains every file path the commands touch, already resolved
// against the configured base directory.
type Paths struct {
	BaseDir        string
	DictionaryFile string
	HousingCSV     string
	PersonCSV      string

	inPlace      bool
	outputSuffix string
}

// NewPaths resolves the data and rewrite configuration into concrete paths.
func NewPaths(data DataConfig, rewrite RewriteConfig) *Paths {
	base := data.BaseDir
	if base == "" {
		base = "."
	}

	return &Paths{
		BaseDir:        base,
		DictionaryFile: resolve(base, data.DictionaryFile),
		HousingCSV:     resolve(base, data.HousingCSV),
		PersonCSV:      resolve(base, data.PersonCSV),
		inPlace:        rewrite.InPlace,
		outputSuffix:   rewrite.OutputSuffix,
	}
}

func resolve(base, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

// Inputs lists every file that must exist before any work starts.
func (p *Paths) Inputs() []string {
	return []string{p.DictionaryFile, p.HousingCSV, p.PersonCSV}
}

// OutputFor returns where the rewritten copy of csvPath is written.
func (p *Paths) OutputFor(csvPath string) string {
	if p.inPlace {
		return csvPath
	}
	return UpdatedPath(csvPath, p.outputSuffix)
}

// UpdatedPath inserts suffix before the file extension:
// psam_h12.csv -> psam_h12_updated_headers.csv
func UpdatedPath(csvPath, suffix string) string {
	ext := filepath.Ext(csvPath)
	return strings.TrimSuffix(csvPath, ext) + suffix + ext
}

// LogPathResolution logs all resolved paths for debugging
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("Resolved data paths",
		slog.String("base_dir", p.BaseDir),
		slog.String("dictionary", p.DictionaryFile),
		slog.String("housing_csv", p.HousingCSV),
		slog.String("person_csv", p.PersonCSV),
		slog.Bool("in_place", p.inPlace))
}
