package observability

import (
	"fmt"
	"strings"

	"github.com/fulmenhq/gofulmen/logging"
)

var (
	// CLILogger writes human-oriented output for one-shot commands.
	CLILogger *logging.Logger

	// ServerLogger writes JSON lines to stderr while serving.
	ServerLogger *logging.Logger
)

// InitCLILogger installs the SIMPLE-profile logger used by commands.
func InitCLILogger(serviceName string, verbose bool) error {
	logger, err := logging.NewCLI(serviceName)
	if err != nil {
		return fmt.Errorf("create cli logger: %w", err)
	}
	if verbose {
		logger.SetLevel(logging.DEBUG)
	}
	CLILogger = logger
	return nil
}

// InitServerLogger installs the STRUCTURED-profile logger used by serve.
func InitServerLogger(serviceName, level, namespace string) error {
	logger, err := logging.New(serverLoggerConfig(serviceName, level, namespace))
	if err != nil {
		return fmt.Errorf("create server logger: %w", err)
	}
	ServerLogger = logger
	return nil
}

func serverLoggerConfig(serviceName, level, namespace string) *logging.LoggerConfig {
	static := map[string]any{}
	if namespace != "" {
		static["namespace"] = namespace
	}

	return &logging.LoggerConfig{
		Profile:      logging.ProfileStructured,
		DefaultLevel: parseLogLevel(level),
		Service:      serviceName,
		Environment:  "production",
		StaticFields: static,
		// correlation IDs ride along from the request middleware
		Middleware: []logging.MiddlewareConfig{{
			Name:    "correlation",
			Enabled: true,
			Order:   100,
			Config:  map[string]any{},
		}},
		Sinks: []logging.SinkConfig{{
			Type:    "console",
			Format:  "json",
			Console: &logging.ConsoleSinkConfig{Stream: "stderr"},
		}},
		EnableCaller:     true,
		EnableStacktrace: true,
	}
}

// Logger prefers the server logger. Nil until one is initialised.
func Logger() *logging.Logger {
	if ServerLogger != nil {
		return ServerLogger
	}
	return CLILogger
}

var logLevels = map[string]string{
	"trace":   "TRACE",
	"debug":   "DEBUG",
	"info":    "INFO",
	"warn":    "WARN",
	"warning": "WARN",
	"error":   "ERROR",
}

// parseLogLevel maps a config level onto a logging severity, defaulting to INFO.
func parseLogLevel(level string) string {
	if sev, ok := logLevels[strings.ToLower(strings.TrimSpace(level))]; ok {
		return sev
	}
	return "INFO"
}
