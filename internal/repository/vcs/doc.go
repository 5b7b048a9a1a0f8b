// Package vcs answers the two questions the generator asks version control:
// what is the head commit SHA and when was it committed.
//
// Two Querier implementations exist. GitCLI runs the git binary; GoGit reads
// the repository in-process. Both map their failures onto the same small set
// of sentinel errors so callers never see raw subprocess output.
package vcs
