// Package dictionary parses PUMS text data dictionaries.
//
// A dictionary lists each variable as a definition line (name, data type,
// length), a one-line description, and a block of indented value codes:
//
//	VEH       Numeric     1
//	Vehicles (1 ton or less) available
//	      b .N/A (GQ/vacant)
//	      0 .No vehicles
//
// Parse turns that text into a Dictionary mapping VEH to
// "Vehicles (1 ton or less) available" and returns a ParseReport describing
// what the scan saw. Malformed lines are skipped, never reported as errors.
package dictionary
