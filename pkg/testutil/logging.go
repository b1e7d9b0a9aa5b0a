package testutil

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// LogLevelEnvName overrides the trace level tests log at.
const LogLevelEnvName = "TEST_LOG_LEVEL"

// Importing testutil silences the standard logger unless tests run with -v.
func init() {
	level := logrus.TraceLevel
	if parsed, err := logrus.ParseLevel(os.Getenv(LogLevelEnvName)); err == nil {
		level = parsed
	}
	logrus.SetLevel(level)

	if !isVerbose() {
		logrus.SetOutput(io.Discard)
	}
}

func isVerbose() bool {
	for _, arg := range os.Args {
		switch arg {
		case "-test.v", "-test.v=true", "--test.v", "--test.v=true":
			return true
		}
	}
	return false
}

// DisableLogging discards standard logger output until reset is called.
func DisableLogging() (reset func()) {
	original := logrus.StandardLogger().Out
	logrus.SetOutput(io.Discard)
	return func() {
		logrus.SetOutput(original)
	}
}
