package observability

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoggers(t *testing.T) {
	prevCLI, prevServer := CLILogger, ServerLogger
	t.Cleanup(func() { CLILogger, ServerLogger = prevCLI, prevServer })

	CLILogger, ServerLogger = nil, nil
	require.Nil(t, Logger())

	require.NoError(t, InitCLILogger("vanguard-test", true))
	require.NotNil(t, CLILogger)
	require.Same(t, CLILogger, Logger())
	CLILogger.Debug("cli logger ready", zap.String("component", "test"))

	require.NoError(t, InitServerLogger("vanguard-test", "debug", "vanguard"))
	require.NotNil(t, ServerLogger)
	require.Same(t, ServerLogger, Logger())
	ServerLogger.Info("server logger ready", zap.Int("port", 8080))
}

func TestParseLogLevel(t *testing.T) {
	cases := map[string]string{
		"trace":   "TRACE",
		"DEBUG":   "DEBUG",
		" info ":  "INFO",
		"warning": "WARN",
		"error":   "ERROR",
		"bogus":   "INFO",
		"":        "INFO",
	}
	for in, want := range cases {
		require.Equal(t, want, parseLogLevel(in), in)
	}
}

func TestServerLoggerConfig(t *testing.T) {
	cfg := serverLoggerConfig("vanguard", "warning", "")
	require.Equal(t, "WARN", cfg.DefaultLevel)
	require.Equal(t, "vanguard", cfg.Service)
	require.Empty(t, cfg.StaticFields)
	require.Len(t, cfg.Sinks, 1)
	require.Equal(t, "stderr", cfg.Sinks[0].Console.Stream)

	cfg = serverLoggerConfig("vanguard", "", "career26")
	require.Equal(t, "INFO", cfg.DefaultLevel)
	require.Equal(t, "career26", cfg.StaticFields["namespace"])
}

func TestResolvePort(t *testing.T) {
	port, err := resolvePort("127.0.0.1:9464")
	require.NoError(t, err)
	require.Equal(t, 9464, port)

	port, err = resolvePort("[::]:9090")
	require.NoError(t, err)
	require.Equal(t, 9090, port)

	_, err = resolvePort("no-port")
	require.Error(t, err)
}

func TestShutdownMetricsWithoutExporter(t *testing.T) {
	prevExporter, prevSystem := PrometheusExporter, TelemetrySystem
	t.Cleanup(func() { PrometheusExporter, TelemetrySystem = prevExporter, prevSystem })

	PrometheusExporter, TelemetrySystem = nil, nil
	require.NoError(t, ShutdownMetrics())
	require.Zero(t, GetMetricsPort())
}
