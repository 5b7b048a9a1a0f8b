// Package generator implements the mkver workflow: find the declared version,
// ask version control about the head commit, render the module and write it.
//
// Every failure is returned as a GenerationFailedError carrying the output
// path, so the command can report a single message per run.
package generator
