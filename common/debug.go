package common

// EnableDebug gates all debug output.
var EnableDebug = true

// Debug logs a message if debug mode is enabled.
func Debug(args ...interface{}) {
	if EnableDebug {
		output("log", args...)
	}
}

// DebugWarn logs a warning if debug mode is enabled.
func DebugWarn(args ...interface{}) {
	if EnableDebug {
		output("warn", args...)
	}
}

// DebugError logs an error if debug mode is enabled.
func DebugError(args ...interface{}) {
	if EnableDebug {
		output("error", args...)
	}
}
