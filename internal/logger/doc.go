// Package logger provides a small wrapper around zap to offer:
//   - a global sugared logger with a console encoder writing to stderr,
//   - context helpers (ToContext/FromContext/WithName/WithKV),
//   - level configuration and parsing utilities,
//   - convenience functions (Debugf, InfoKV, etc.).
//
// Generated source is never written through the logger, so stdout stays
// reserved for explicit command output such as the --print summary.
package logger
