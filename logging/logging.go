package logging

import (
	"io"
	"log"
	"os"
)

var (
	InfoLog = log.New(os.Stdout, "INFO: ", log.LstdFlags|log.Lshortfile)
	WarnLog = log.New(os.Stdout, "WARN: ", log.LstdFlags|log.Lshortfile)
	ErrLog  = log.New(os.Stderr, "ERR: ", log.LstdFlags|log.Lshortfile)

	// DebugLog is silent unless SetVerbose(true) is called. Per-draw events
	// (cache entries, texture uploads) go here.
	DebugLog = log.New(io.Discard, "DEBUG: ", log.LstdFlags|log.Lshortfile)

	verbose bool
	out     io.Writer = os.Stdout
)

// SetOutput redirects info, warn and (when verbose) debug logs to w.
// Error logs are redirected too so tests can capture everything in one place.
func SetOutput(w io.Writer) {

	out = w
	InfoLog.SetOutput(w)
	WarnLog.SetOutput(w)
	ErrLog.SetOutput(w)

	if verbose {
		DebugLog.SetOutput(w)
	}
}

func SetVerbose(isVerbose bool) {

	verbose = isVerbose
	if verbose {
		DebugLog.SetOutput(out)
	} else {
		DebugLog.SetOutput(io.Discard)
	}
}

func IsVerbose() bool {
	return verbose
}
