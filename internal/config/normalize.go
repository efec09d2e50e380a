package config

import (
	"git.home.luguber.info/inful/assemble/internal/foundation/normalization"
)

// LogLevel enumerates supported logging levels.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// LogFormat enumerates supported log output formats.
type LogFormat string

const (
	LogFormatJSON LogFormat = "json"
	LogFormatText LogFormat = "text"
)

var (
	strategyNormalizer = normalization.NewNormalizer(map[string]MaterialStrategy{
		"partials":  StrategyPartials,
		"partial":   StrategyPartials,
		"fragments": StrategyFragments,
		"fragment":  StrategyFragments,
		"helpers":   StrategyFragments,
	}, StrategyPartials)

	errorPolicyNormalizer = normalization.NewNormalizer(map[string]ErrorPolicy{
		"continue": OnErrorContinue,
		"abort":    OnErrorAbort,
		"stop":     OnErrorAbort,
	}, OnErrorContinue)

	logLevelNormalizer = normalization.NewNormalizer(map[string]LogLevel{
		"debug":   LogLevelDebug,
		"info":    LogLevelInfo,
		"warn":    LogLevelWarn,
		"warning": LogLevelWarn,
		"error":   LogLevelError,
	}, LogLevelInfo)

	logFormatNormalizer = normalization.NewNormalizer(map[string]LogFormat{
		"json": LogFormatJSON,
		"text": LogFormatText,
	}, LogFormatText)
)

// ParseStrategy converts raw to a MaterialStrategy, rejecting unknown names.
func ParseStrategy(raw string) (MaterialStrategy, error) {
	return strategyNormalizer.Parse(raw)
}

// ParseErrorPolicy converts raw to an ErrorPolicy, rejecting unknown names.
func ParseErrorPolicy(raw string) (ErrorPolicy, error) {
	return errorPolicyNormalizer.Parse(raw)
}

// NormalizeLogLevel maps raw to a LogLevel, defaulting to info.
func NormalizeLogLevel(raw string) LogLevel {
	return logLevelNormalizer.Normalize(raw)
}

// NormalizeLogFormat maps raw to a LogFormat, defaulting to text.
func NormalizeLogFormat(raw string) LogFormat {
	return logFormatNormalizer.Normalize(raw)
}

func (c *Config) normalize() error {
	strategy, err := ParseStrategy(string(c.Assemble.Strategy))
	if err != nil {
		return err
	}
	c.Assemble.Strategy = strategy

	policy, err := ParseErrorPolicy(string(c.OnError))
	if err != nil {
		return err
	}
	c.OnError = policy

	c.Logging.Level = NormalizeLogLevel(string(c.Logging.Level))
	c.Logging.Format = NormalizeLogFormat(string(c.Logging.Format))
	return nil
}
