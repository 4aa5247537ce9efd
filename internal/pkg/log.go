package pkg

import (
	"io"
	"os"
	"path/filepath"

	"github.com/powerman/structlog"
)

// InitLog sets the key layout of structlog.DefaultLogger. It must be called
// once, before anything is logged.
func InitLog() {
	structlog.DefaultLogger.
		SetPrefixKeys(
			structlog.KeyApp, structlog.KeyPID, structlog.KeyLevel, structlog.KeyUnit, structlog.KeyTime,
		).
		SetDefaultKeyvals(
			structlog.KeyApp, filepath.Base(os.Args[0]),
			structlog.KeySource, structlog.Auto,
		).
		SetSuffixKeys(
			structlog.KeyStack,
		).
		SetSuffixKeys(structlog.KeySource).
		SetKeysFormat(map[string]string{
			structlog.KeyTime:   " %[2]s",
			structlog.KeySource: " %6[2]s",
			structlog.KeyUnit:   " %6[2]s",
		})
}

// SetLogOutput directs DefaultLogger and loggers to output at the given
// level name. Loggers which have already logged keep the settings of their
// parent, so the ones in use are passed explicitly.
func SetLogOutput(output io.Writer, level string, loggers ...*structlog.Logger) {
	lvl := structlog.ParseLevel(level)
	structlog.DefaultLogger.SetOutput(output).SetLogLevel(lvl)
	for _, l := range loggers {
		l.SetOutput(output).SetLogLevel(lvl)
	}
}

// LogPrependSuffixKeys returns a child logger with args appended as key-value
// pairs printed right before the default suffix keys.
func LogPrependSuffixKeys(log *structlog.Logger, args ...interface{}) *structlog.Logger {
	var keys []string
	for i, arg := range args {
		if i%2 == 0 {
			k, ok := arg.(string)
			if !ok {
				panic("key must be string")
			}
			keys = append(keys, k)
		}
	}
	return log.New(args...).PrependSuffixKeys(keys...)
}
