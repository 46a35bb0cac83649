// Package shared holds code used across the pumscli packages that belongs to
// no single component.
//
// The testutil subpackage provides test helpers:
//
//   - CaptureHandler records slog output so tests can assert on warnings
//     and errors emitted by commands.
//   - PUMS fixture writers that lay out a dictionary and CSV files under a
//     temporary base directory using the default relative paths.
//
// Nothing here may import a component package other than config.
package shared
