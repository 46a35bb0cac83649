// Package config provides configuration for the PUMS header tools.
//
// # Configuration Sources
//
// Configuration is layered in the following order, later sources winning:
//
//	1. Default values (Default)
//	2. YAML file: $PUMS_CONFIG_FILE, pums.yaml or configs/pums.yaml
//	3. Environment variables
//
// # Environment Variables
//
// All environment variables follow the pattern PUMS_<SECTION>_<FIELD>:
//
//	PUMS_DATA_BASE_DIR=/data/census
//	PUMS_DATA_ENCODING=latin-1
//	PUMS_REWRITE_IN_PLACE=true
//	PUMS_LOGGING_LEVEL=debug
//	PUMS_REPORT_XLSX_PATH=reports/header_mapping.xlsx
//	PUMS_TRACING_EXPORTER=stdout
//
// # Path Management
//
// Paths resolves the dictionary and CSV locations against the base directory
// and derives output names for rewritten files:
//
//	paths := config.NewPaths(cfg.Data, cfg.Rewrite)
//	out := paths.OutputFor(paths.HousingCSV) // .../psam_h12_updated_headers.csv
package config
