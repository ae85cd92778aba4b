package petrinet

import (
	"os"

	"github.com/rs/zerolog"
)

// Logger is the package-level structured logger. It defaults to a stderr
// logger at zerolog.Disabled — the engine stays silent unless a caller opts
// in with SetLogger, matching a library's posture rather than a service's.
var Logger zerolog.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.Disabled)

// SetLogger overrides the package-level logger used for activate/fire
// tracing and long-job spawn/reap events. zerolog.DebugLevel shows
// activations and spawn/reap; zerolog.TraceLevel additionally shows every
// fire.
func SetLogger(l zerolog.Logger) {
	Logger = l
}
