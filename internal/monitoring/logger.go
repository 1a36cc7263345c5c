// Package monitoring provides the engine's package-level diagnostic
// logging hook. It is intentionally minimal: one swappable function
// variable, no structured-logging dependency, matching the ambient
// logging style used throughout the teacher's own internal packages.
package monitoring

import "log"

// Logf is the package-level diagnostic logger. It defaults to
// log.Printf but may be replaced by SetLogger. Tests or embedding
// applications can redirect or mute it.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the package logger. Passing nil installs a no-op
// logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}
