// Package config defines the optional mkver settings file and provides
// helpers to load, validate and save it in YAML format.
//
// A missing settings file is not an error: Load returns defaults so the tool
// works with zero configuration, the same way the command line does.
package config
