package dictionary

import (
	"regexp"
	"strconv"
	"strings"
)

// definitionRe matches "NAME  Type  Length" over the whole trimmed line.
var definitionRe = regexp.MustCompile(`^([A-Z][A-Z0-9]+)\s+(\w+)\s+(\d+)$`)

// continuationMarker starts value-code text and is never a description.
const continuationMarker = "."

type scanState int

const (
	stateScanning scanState = iota
	stateInDescription
	stateSkippingCodes
)

func (s scanState) String() string {
	switch s {
	case stateScanning:
		return "scanning"
	case stateInDescription:
		return "in-description"
	case stateSkippingCodes:
		return "skipping-codes"
	default:
		return "unknown"
	}
}

// ParseReport summarizes one parse.
type ParseReport struct {
	LinesScanned int
	// Definitions counts lines matching the definition pattern.
	Definitions int
	// Entries counts descriptions recorded, duplicates included.
	Entries int
	// MissingDescriptions counts definitions not followed by a usable description.
	MissingDescriptions int
	CodeLinesSkipped    int
	// Duplicates lists names recorded more than once, in the order they recurred.
	Duplicates []string
}

// ParseLines scans lines with a three-state machine and never fails:
// lines that fit no state are skipped.
func ParseLines(lines []string) (*Dictionary, *ParseReport) {
	dict := New()
	report := &ParseReport{LinesScanned: len(lines)}

	var (
		state   = stateScanning
		pending Entry
		i       int
	)

	for i < len(lines) {
		switch state {
		case stateScanning:
			m := definitionRe.FindStringSubmatch(strings.TrimSpace(lines[i]))
			if m == nil {
				i++
				continue
			}
			length, _ := strconv.Atoi(m[3])
			pending = Entry{Name: m[1], DataType: m[2], Length: length, Line: i + 1}
			report.Definitions++
			i++
			state = stateInDescription

		case stateInDescription:
			desc := strings.TrimSpace(lines[i])
			if desc == "" || strings.HasPrefix(desc, continuationMarker) {
				// Not a description; rescan this line from the top.
				report.MissingDescriptions++
				state = stateScanning
				continue
			}
			pending.Description = desc
			if dict.Add(pending) {
				report.Duplicates = append(report.Duplicates, pending.Name)
			}
			report.Entries++
			i++
			state = stateSkippingCodes

		case stateSkippingCodes:
			if isValueCode(lines[i]) {
				report.CodeLinesSkipped++
				i++
				continue
			}
			state = stateScanning
		}
	}

	// A definition on the final line has no description.
	if state == stateInDescription {
		report.MissingDescriptions++
	}

	return dict, report
}

// isValueCode reports whether raw is an indented value-code line.
func isValueCode(raw string) bool {
	if raw == "" || (raw[0] != ' ' && raw[0] != '\t') {
		return false
	}
	return strings.Contains(raw, continuationMarker)
}
