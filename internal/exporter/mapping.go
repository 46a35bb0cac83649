package exporter

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "pumscli/internal/errors"
)

const (
	tableWidth        = 80
	originalColWidth  = 30
	updatedColWidth   = 50
	maxSheetNameRunes = 31
)

// HeaderPair is one column of a header mapping.
type HeaderPair struct {
	Index    int
	Original string
	Updated  string
}

// Changed reports whether the column name was rewritten.
func (p HeaderPair) Changed() bool {
	return p.Original != p.Updated
}

// HeaderMapping pairs an original header row with its rewritten counterpart.
type HeaderMapping struct {
	Name          string
	Pairs         []HeaderPair
	OriginalCount int
	UpdatedCount  int
}

// BuildHeaderMapping pairs columns by position; extra columns on either side are dropped.
func BuildHeaderMapping(name string, original, updated []string) *HeaderMapping {
	n := min(len(original), len(updated))
	pairs := make([]HeaderPair, n)
	for i := 0; i < n; i++ {
		pairs[i] = HeaderPair{Index: i, Original: original[i], Updated: updated[i]}
	}
	return &HeaderMapping{
		Name:          name,
		Pairs:         pairs,
		OriginalCount: len(original),
		UpdatedCount:  len(updated),
	}
}

// ChangedCount returns how many columns were rewritten.
func (m *HeaderMapping) ChangedCount() int {
	changed := 0
	for _, p := range m.Pairs {
		if p.Changed() {
			changed++
		}
	}
	return changed
}

// WriteTable renders the first maxColumns pairs as a fixed-width table.
func (m *HeaderMapping) WriteTable(w io.Writer, maxColumns int) error {
	var b strings.Builder

	fmt.Fprintf(&b, "\nHeader mapping for %s:\n", m.Name)
	b.WriteString(strings.Repeat("=", tableWidth) + "\n")
	fmt.Fprintf(&b, "%-*s %-*s\n", originalColWidth, "Original", updatedColWidth, "Updated")
	b.WriteString(strings.Repeat("-", tableWidth) + "\n")

	for i, p := range m.Pairs {
		if i >= maxColumns {
			fmt.Fprintf(&b, "... and %d more columns\n", m.OriginalCount-maxColumns)
			break
		}
		fmt.Fprintf(&b, "%-*s %-*s\n",
			originalColWidth, truncate(p.Original, originalColWidth),
			updatedColWidth, truncate(p.Updated, updatedColWidth))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// truncate shortens s to width-2 runes plus ".." when it exceeds width.
func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-2]) + ".."
}

// WriteMappingWorkbook exports every mapping to its own sheet of an XLSX file.
func WriteMappingWorkbook(path string, mappings []*HeaderMapping) error {
	f := excelize.NewFile()
	defer f.Close()

	used := make(map[string]bool)
	for i, m := range mappings {
		sheet := sheetName(m.Name, i, used)
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return apperrors.NewStorageError("failed to name sheet", err)
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return apperrors.NewStorageError("failed to add sheet", err)
		}

		if err := f.SetSheetRow(sheet, "A1", &[]interface{}{"Index", "Original", "Updated", "Changed"}); err != nil {
			return apperrors.NewStorageError("failed to write sheet header", err)
		}
		for j, p := range m.Pairs {
			cell, err := excelize.CoordinatesToCellName(1, j+2)
			if err != nil {
				return apperrors.NewStorageError("failed to address cell", err)
			}
			row := []interface{}{p.Index, p.Original, p.Updated, p.Changed()}
			if err := f.SetSheetRow(sheet, cell, &row); err != nil {
				return apperrors.NewStorageError("failed to write sheet row", err)
			}
		}
		if err := f.SetColWidth(sheet, "B", "C", 40); err != nil {
			return apperrors.NewStorageError("failed to size columns", err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return apperrors.NewStorageError("failed to save workbook", err).WithContext("path", path)
	}
	return nil
}

// sheetName derives a unique sheet name within Excel's limits.
func sheetName(name string, index int, used map[string]bool) string {
	base := strings.TrimSuffix(name, ".csv")
	base = strings.Map(func(r rune) rune {
		if strings.ContainsRune(`:\/?*[]`, r) {
			return '_'
		}
		return r
	}, base)
	if base == "" {
		base = "Sheet"
	}

	candidate := truncateRunes(base, maxSheetNameRunes)
	for n := index + 1; used[candidate]; n++ {
		suffix := fmt.Sprintf("_%d", n)
		candidate = truncateRunes(base, maxSheetNameRunes-len(suffix)) + suffix
	}
	used[candidate] = true
	return candidate
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
