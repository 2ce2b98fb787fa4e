package config

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "Corp Registers_.xlsx", cfg.Statement.TemplateName)
	assert.Equal(t, "2590", cfg.Statement.PDFMatch)
	assert.Equal(t, "Check Register-Corp", cfg.Register.Sheet)
	assert.Equal(t, "B9", cfg.Register.AsOfCell)
	assert.Equal(t, 4, cfg.Register.ExpenseColumn)
	assert.Equal(t, 5, cfg.Register.DepositColumn)
	assert.Equal(t, float64(80), cfg.Register.MaxColWidth)
	assert.True(t, cfg.Register.Overwrite)
	assert.Empty(t, cfg.Labels.File)
	assert.Equal(t, ",", cfg.CSV.Delimiter)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("REGISTER_LOG_LEVEL", "debug")
	t.Setenv("REGISTER_STATEMENT_PDF_MATCH", "9999")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "9999", cfg.Statement.PDFMatch)
}

func TestLoadRejectsInvalidEnvironment(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad log level", "REGISTER_LOG_LEVEL", "verbose"},
		{"bad log format", "REGISTER_LOG_FORMAT", "xml"},
		{"multi-char delimiter", "REGISTER_CSV_DELIMITER", ";;"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestValidateCategoryColumns(t *testing.T) {
	base := func() *Config {
		cfg, err := Load()
		require.NoError(t, err)
		return cfg
	}

	cfg := base()
	cfg.Register.ExpenseColumn = 0
	assert.Error(t, validate(cfg))

	cfg = base()
	cfg.Register.DepositColumn = cfg.Register.ExpenseColumn
	assert.Error(t, validate(cfg))

	cfg = base()
	cfg.Register.MaxColWidth = 0
	assert.Error(t, validate(cfg))
}

func TestConfigureLogging(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	cfg.Log.Level = "debug"
	cfg.Log.Format = "json"

	logger := ConfigureLogging(cfg)

	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)
}

func TestConfigureLoggingFallsBackToInfo(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	cfg.Log.Level = "nonsense"

	logger := ConfigureLogging(cfg)

	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
}
