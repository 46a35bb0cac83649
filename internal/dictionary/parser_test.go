package dictionary

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLines_SingleEntry(t *testing.T) {
	dict, report := ParseLines([]string{"AGEP N 2", "Age"})

	desc, ok := dict.Description("AGEP")
	require.True(t, ok)
	assert.Equal(t, "Age", desc)

	entry, _ := dict.Lookup("AGEP")
	assert.Equal(t, "N", entry.DataType)
	assert.Equal(t, 2, entry.Length)
	assert.Equal(t, 1, entry.Line)

	assert.Equal(t, 2, report.LinesScanned)
	assert.Equal(t, 1, report.Definitions)
	assert.Equal(t, 1, report.Entries)
}

func TestParseLines_SampleDictionary(t *testing.T) {
	content, err := os.ReadFile("testdata/pums_sample.txt")
	require.NoError(t, err)

	dict, report := ParseLines(strings.Split(string(content), "\n"))

	expected := map[string]string{
		"RT":       "Record Type",
		"SERIALNO": "Housing unit/GQ person serial number",
		"VEH":      "Vehicles (1 ton or less) available",
		"AGEP":     "Age",
		"HISP":     "Recoded detailed Hispanic origin",
	}
	assert.Equal(t, expected, dict.Descriptions())

	names := make([]string, 0, dict.Len())
	for _, e := range dict.Entries() {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"RT", "SERIALNO", "VEH", "AGEP", "HISP"}, names)

	_, ok := dict.Lookup("BROKEN")
	assert.False(t, ok, "definition without a length must not match")

	assert.Equal(t, 5, report.Definitions)
	assert.Equal(t, 5, report.Entries)
	assert.Equal(t, 0, report.MissingDescriptions)
	assert.Equal(t, 11, report.CodeLinesSkipped)
	assert.Empty(t, report.Duplicates)
}

func TestParseLines_EdgeCases(t *testing.T) {
	tests := []struct {
		name        string
		lines       []string
		want        map[string]string
		definitions int
		missing     int
		skipped     int
	}{
		{
			name:  "empty input",
			lines: nil,
			want:  map[string]string{},
		},
		{
			name:        "definition on last line",
			lines:       []string{"AGEP Numeric 2"},
			want:        map[string]string{},
			definitions: 1,
			missing:     1,
		},
		{
			name:        "blank line after definition",
			lines:       []string{"AGEP Numeric 2", "", "Age"},
			want:        map[string]string{},
			definitions: 1,
			missing:     1,
		},
		{
			name:        "continuation marker instead of description",
			lines:       []string{"VEH Numeric 1", ".No vehicles", "AGEP Numeric 2", "Age"},
			want:        map[string]string{"AGEP": "Age"},
			definitions: 2,
			missing:     1,
		},
		{
			name:        "definition directly after definition",
			lines:       []string{"RT Character 1", "AGEP Numeric 2", "Age"},
			want:        map[string]string{"RT": "AGEP Numeric 2"},
			definitions: 1,
		},
		{
			name:  "lowercase and single letter names never match",
			lines: []string{"agep Numeric 2", "Age", "A Numeric 1", "Alpha"},
			want:  map[string]string{},
		},
		{
			name:        "trailing text rejects definition",
			lines:       []string{"AGEP Numeric 2 extra", "Age"},
			want:        map[string]string{},
			definitions: 0,
		},
		{
			name:        "indented definition line is trimmed",
			lines:       []string{"   WGTP1  Numeric  5  ", "  Housing Weight replicate 1  "},
			want:        map[string]string{"WGTP1": "Housing Weight replicate 1"},
			definitions: 1,
		},
		{
			name:        "code lines stop at first unindented line",
			lines: []string{
				"VEH Numeric 1", "Vehicles",
				"      0 .No vehicles",
				"\t1 .1 vehicle",
				"      indented without separator",
				"      2 .2 vehicles",
			},
			want:        map[string]string{"VEH": "Vehicles"},
			definitions: 1,
			skipped:     2,
		},
		{
			name:        "windows line endings",
			lines:       []string{"AGEP Numeric 2\r", "Age\r", "      00 .Under 1 year\r"},
			want:        map[string]string{"AGEP": "Age"},
			definitions: 1,
			skipped:     1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dict, report := ParseLines(tt.lines)
			assert.Equal(t, tt.want, dict.Descriptions())
			assert.Equal(t, tt.definitions, report.Definitions)
			assert.Equal(t, tt.missing, report.MissingDescriptions)
			assert.Equal(t, tt.skipped, report.CodeLinesSkipped)
			assert.LessOrEqual(t, report.Entries, report.Definitions)
		})
	}
}

func TestParseLines_DuplicateLastWins(t *testing.T) {
	dict, report := ParseLines([]string{
		"RT Character 1", "Record Type",
		"AGEP Numeric 2", "Age",
		"RT Character 1", "Record Type (person)",
	})

	desc, _ := dict.Description("RT")
	assert.Equal(t, "Record Type (person)", desc)
	assert.Equal(t, 2, dict.Len())
	assert.Equal(t, "RT", dict.Entries()[0].Name)
	assert.Equal(t, 5, dict.Entries()[0].Line)
	assert.Equal(t, []string{"RT"}, report.Duplicates)
	assert.Equal(t, 3, report.Entries)
}

func TestDictionary_Head(t *testing.T) {
	dict, _ := ParseLines([]string{"A1 N 1", "one", "B2 N 1", "two", "C3 N 1", "three"})

	assert.Len(t, dict.Head(2), 2)
	assert.Equal(t, "B2", dict.Head(2)[1].Name)
	assert.Len(t, dict.Head(10), 3)
	assert.Empty(t, dict.Head(0))
}

func TestScanState_String(t *testing.T) {
	assert.Equal(t, "scanning", stateScanning.String())
	assert.Equal(t, "in-description", stateInDescription.String())
	assert.Equal(t, "skipping-codes", stateSkippingCodes.String())
}
