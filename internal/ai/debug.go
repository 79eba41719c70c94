package ai

import "sync/atomic"

// debugLoggingEnabled gates hot-path debug logs of controllers.
// Guards tick at the physics rate, so even a disabled slog.Debug call with
// attributes is measurable there.
var debugLoggingEnabled atomic.Bool

// EnableDebugLogging enables or disables debug logging for AI subsystem.
// Called from main after the log level is parsed.
func EnableDebugLogging(enabled bool) {
	debugLoggingEnabled.Store(enabled)
}

// IsDebugEnabled returns true if debug logging is enabled.
//
//	if ai.IsDebugEnabled() {
//	    slog.Debug("target selected", "npc", npc.ObjectID(), "target", id)
//	}
func IsDebugEnabled() bool {
	return debugLoggingEnabled.Load()
}
