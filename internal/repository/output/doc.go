// Package output writes generated files to disk.
//
// The FileWriter creates missing parent directories and replaces any existing
// file. Concurrent runs against the same path are not coordinated; the last
// writer wins.
package output
