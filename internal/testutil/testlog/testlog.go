package testlog

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/danmuck/glbctl/internal/logging"
	"github.com/rs/zerolog/log"
)

// Start configures test logging and logs the test name with the package
// directory of the calling test file.
func Start(t *testing.T) {
	t.Helper()
	logging.ConfigureTests()
	log.Info().Str("pkg", callerPackage()).Str("test", t.Name()).Msg("start")
}

func callerPackage() string {
	_, file, _, ok := runtime.Caller(2)
	if !ok {
		return "unknown"
	}
	return filepath.Base(filepath.Dir(file))
}
