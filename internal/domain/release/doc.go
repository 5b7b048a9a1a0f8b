// Package release contains the core domain types for a generated version file.
//
// It defines VersionInfo (what gets rendered), OutputPath (where it goes), the
// commit timestamp tag used to build release identifiers, and the semantic
// version breakdown exposed to generated code.
package release
