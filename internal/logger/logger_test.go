package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fileConfig struct {
	level, output, file string
}

func (c fileConfig) GetLevel() string  { return c.level }
func (c fileConfig) GetOutput() string { return c.output }
func (c fileConfig) GetFile() string   { return c.file }

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", DEBUG},
		{"INFO", INFO},
		{"warning", WARN},
		{"error", ERROR},
		{"fatal", FATAL},
		{"bogus", INFO},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, ParseLogLevel(tt.in), tt.in)
	}
}

func TestInitWritesToRotatingFile(t *testing.T) {
	previous := defaultLogger
	t.Cleanup(func() { defaultLogger = previous })

	path := filepath.Join(t.TempDir(), "app.log")
	require.NoError(t, Init(fileConfig{level: "info", output: "file", file: path}))

	Info("project %d funded", 7)
	Debug("hidden at info level")
	Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "project 7 funded")
	require.NotContains(t, string(data), "hidden at info level")
}

func TestInitRejectsEmptyFile(t *testing.T) {
	previous := defaultLogger
	t.Cleanup(func() { defaultLogger = previous })

	require.Error(t, Init(fileConfig{level: "info", output: "file"}))
}

func TestWithAddsFieldsAndKeepsCaller(t *testing.T) {
	previous := defaultLogger
	t.Cleanup(func() { defaultLogger = previous })

	path := filepath.Join(t.TempDir(), "app.log")
	require.NoError(t, Init(fileConfig{level: "info", output: "file", file: path}))

	jobLog := With(zap.String("job", "project_expiry_updater"))
	jobLog.Info("cancelled %d projects", 2)
	Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `"job":"project_expiry_updater"`)
	require.Contains(t, string(data), "cancelled 2 projects")
	require.Contains(t, string(data), "logger/logger_test.go")
}
