package lambdapi

import (
	"log"
	"os"
	"sync/atomic"
)

// Opt-in tracing of checker and reducer decisions. Enable by setting env var
// LAMBDAPI_TRACE=1 or by constructing a Checker with Config.Trace set (the
// latter flips the global flag).

var traceOn atomic.Bool

func init() {
	if os.Getenv("LAMBDAPI_TRACE") == "1" {
		traceOn.Store(true)
	}
}

// EnableTrace turns tracing on for the whole process.
func EnableTrace() { traceOn.Store(true) }

// DisableTrace turns tracing off.
func DisableTrace() { traceOn.Store(false) }

func traceEnabled() bool { return traceOn.Load() }

func tracef(format string, args ...any) {
	if !traceOn.Load() {
		return
	}
	log.Printf("[check] "+format, args...)
}
