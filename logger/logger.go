package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options selects how the process logs.
type Options struct {
	// Debug lowers the default level to debug and turns sampling off.
	Debug bool
	// Level overrides the default level when set: debug, info, warn or error.
	Level string
	// Name tags every entry with the running binary, e.g. "server" or "cli".
	Name string
}

// New builds a JSON zap logger tagged with the app name.
func New(o Options) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if o.Debug {
		level = zapcore.DebugLevel
	}
	if s := strings.TrimSpace(o.Level); s != "" {
		if err := level.UnmarshalText([]byte(strings.ToLower(s))); err != nil {
			return nil, fmt.Errorf("logger: bad level %q: %w", o.Level, err)
		}
	}

	cfg := zap.NewProductionConfig()
	cfg.Encoding = "json"
	cfg.Level = zap.NewAtomicLevelAt(level)
	if o.Debug {
		cfg.Sampling = nil
	}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.InitialFields = map[string]interface{}{"app": "playcall"}

	log, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	if o.Name != "" {
		log = log.Named(o.Name)
	}
	return log, nil
}

// Component names log for one subsystem. A nil log gives a no-op logger,
// so packages can take an optional logger.
func Component(log *zap.Logger, name string) *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log.Named(name)
}
