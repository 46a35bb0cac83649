package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pumscli/internal/config"
	"pumscli/internal/shared/testutil"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestRun(t *testing.T) {
	cfg := testutil.PUMSTree(t,
		"RT,SERIALNO,VEH,ST\nH,2018HU0000001,2,12\n",
		"RT,SERIALNO,AGEP\nP,2018HU0000001,45\nP,2018HU0000001,9\n")

	var out bytes.Buffer
	code := run(context.Background(), cfg, &out, quietLogger())
	require.Equal(t, 0, code, out.String())

	text := out.String()
	assert.Contains(t, text, "Found 4 variable descriptions")
	assert.Contains(t, text, "  RT: Record Type\n")
	assert.Contains(t, text, "  VEH: Vehicles (1 ton or less) available\n")
	assert.Contains(t, text, "Found 3 out of 4 columns in dictionary")
	assert.Contains(t, text, "Found 3 out of 3 columns in dictionary")
	assert.True(t, strings.HasSuffix(text, "Header update complete!\n"))

	housingOut := filepath.Join(cfg.Data.BaseDir, "PUMS-2018-data/csv_hfl/psam_h12_updated_headers.csv")
	content, err := os.ReadFile(housingOut)
	require.NoError(t, err)
	assert.Equal(t,
		"RT_Record_Type,SERIALNO_Housing_unitGQ_person_serial_number,VEH_Vehicles_1_ton_or_less_available,ST\nH,2018HU0000001,2,12\n",
		string(content))

	original, err := os.ReadFile(filepath.Join(cfg.Data.BaseDir, config.DefaultHousingCSV))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(original), "RT,SERIALNO,VEH,ST\n"))
}

func TestRun_InPlaceTwiceIsStable(t *testing.T) {
	cfg := testutil.PUMSTree(t, "RT,VEH\nH,1\n", "RT,AGEP\nP,45\n")
	cfg.Rewrite.InPlace = true

	var out bytes.Buffer
	require.Equal(t, 0, run(context.Background(), cfg, &out, quietLogger()))

	person := filepath.Join(cfg.Data.BaseDir, config.DefaultPersonCSV)
	first, err := os.ReadFile(person)
	require.NoError(t, err)
	assert.Equal(t, "RT_Record_Type,AGEP_Age\nP,45\n", string(first))

	out.Reset()
	require.Equal(t, 0, run(context.Background(), cfg, &out, quietLogger()))
	assert.Contains(t, out.String(), "Found 0 out of 2 columns in dictionary")

	second, err := os.ReadFile(person)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestRun_EmptyFileIsSkipped(t *testing.T) {
	cfg := testutil.PUMSTree(t, "RT,VEH\n", "RT,AGEP\nP,45\n")

	logger, logs := testutil.NewCaptureLogger()
	var out bytes.Buffer
	code := run(context.Background(), cfg, &out, logger)
	assert.Equal(t, 0, code)
	assert.Contains(t, out.String(), "psam_h12.csv is empty")

	rec, ok := logs.Find(slog.LevelWarn, "Skipping empty CSV file")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(cfg.Data.BaseDir, config.DefaultHousingCSV), rec.Attrs["file"])
	assert.Contains(t, out.String(), "Found 2 out of 2 columns in dictionary")

	_, err := os.Stat(filepath.Join(cfg.Data.BaseDir, "PUMS-2018-data/csv_hfl/psam_h12_updated_headers.csv"))
	assert.True(t, os.IsNotExist(err))
}

func TestRun_MissingInputStopsEarly(t *testing.T) {
	cfg := testutil.PUMSTree(t, "RT\nH\n", "RT\nP\n")
	require.NoError(t, os.Remove(filepath.Join(cfg.Data.BaseDir, config.DefaultPersonCSV)))

	var out bytes.Buffer
	code := run(context.Background(), cfg, &out, quietLogger())
	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), "not found")
	assert.NotContains(t, out.String(), "Parsing PUMS data dictionary")

	_, err := os.Stat(filepath.Join(cfg.Data.BaseDir, "PUMS-2018-data/csv_hfl/psam_h12_updated_headers.csv"))
	assert.True(t, os.IsNotExist(err), "no work may happen before all inputs are present")
}

func TestRun_LenientQuotesPassThrough(t *testing.T) {
	housing := "RT,VEH\nH,5\"6 tall\nH,\"unterminated\n"
	cfg := testutil.PUMSTree(t, housing, "RT,AGEP\nP,45\n")

	var out bytes.Buffer
	require.Equal(t, 0, run(context.Background(), cfg, &out, quietLogger()), out.String())
	assert.Contains(t, out.String(), "Found 2 out of 2 columns in dictionary")

	content, err := os.ReadFile(filepath.Join(cfg.Data.BaseDir, "PUMS-2018-data/csv_hfl/psam_h12_updated_headers.csv"))
	require.NoError(t, err)
	assert.Equal(t, "RT_Record_Type,VEH_Vehicles_1_ton_or_less_available\nH,5\"6 tall\nH,\"unterminated\n", string(content))
}

func TestRun_WriteFailureFails(t *testing.T) {
	cfg := testutil.PUMSTree(t, "RT,VEH\nH,1\n", "RT,AGEP\nP,45\n")
	blocked := filepath.Join(cfg.Data.BaseDir, "PUMS-2018-data/csv_hfl/psam_h12_updated_headers.csv")
	require.NoError(t, os.MkdirAll(blocked, 0755))

	logger, logs := testutil.NewCaptureLogger()
	var out bytes.Buffer
	code := run(context.Background(), cfg, &out, logger)
	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), "STORAGE")

	rec, ok := logs.Find(slog.LevelError, "Failed to update CSV headers")
	require.True(t, ok)
	assert.Equal(t, "STORAGE", rec.Attrs["error_type"])
	assert.Equal(t, 1, logs.Count(slog.LevelError))

	// The person file is still processed.
	assert.Contains(t, out.String(), "Found 2 out of 2 columns in dictionary")
	assert.NotContains(t, out.String(), "Header update complete!")
}
