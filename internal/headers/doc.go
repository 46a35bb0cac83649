// Package headers rewrites CSV header rows using dictionary descriptions.
//
// Each header column whose name has a description becomes
// name + "_" + Sanitize(description); every other column and every data row
// is left exactly as read. A file whose header was already rewritten no
// longer matches any plain variable name, so a second pass changes nothing.
package headers
