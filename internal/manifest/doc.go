// Package manifest locates the project manifest that declares the version.
//
// The Resolver walks from a starting directory toward the filesystem root and
// stops at the nearest readable manifest. A manifest without a usable version
// ends the search with an error instead of falling through to a parent project.
package manifest
