// Package config provides Viper-based hierarchical configuration management:
// built-in defaults, then an optional config file, then REGISTER_* environment
// variables.
package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Statement struct {
		// TemplateName is the exact register template filename expected in
		// the target directory.
		TemplateName string `mapstructure:"template_name" yaml:"template_name"`
		// PDFMatch is the substring exactly one PDF in the target directory
		// must contain.
		PDFMatch string `mapstructure:"pdf_match" yaml:"pdf_match"`
	} `mapstructure:"statement" yaml:"statement"`

	Register struct {
		Sheet         string  `mapstructure:"sheet" yaml:"sheet"`
		AsOfCell      string  `mapstructure:"as_of_cell" yaml:"as_of_cell"`
		ExpenseColumn int     `mapstructure:"expense_column" yaml:"expense_column"`
		DepositColumn int     `mapstructure:"deposit_column" yaml:"deposit_column"`
		MaxColWidth   float64 `mapstructure:"max_col_width" yaml:"max_col_width"`
		Overwrite     bool    `mapstructure:"overwrite" yaml:"overwrite"`
	} `mapstructure:"register" yaml:"register"`

	Labels struct {
		// File optionally points to a YAML file overriding the built-in
		// description label rules.
		File string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"labels" yaml:"labels"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`
}

// Load initializes Viper configuration with hierarchical loading.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.corp-register")
	v.AddConfigPath(".corp-register")
	v.AddConfigPath(".")

	v.SetEnvPrefix("REGISTER")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file present but unreadable: warn and continue with
			// defaults and environment variables.
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("statement.template_name", "Corp Registers_.xlsx")
	v.SetDefault("statement.pdf_match", "2590")

	v.SetDefault("register.sheet", "Check Register-Corp")
	v.SetDefault("register.as_of_cell", "B9")
	v.SetDefault("register.expense_column", 4)
	v.SetDefault("register.deposit_column", 5)
	v.SetDefault("register.max_col_width", 80)
	v.SetDefault("register.overwrite", true)

	v.SetDefault("labels.file", "")

	v.SetDefault("csv.delimiter", ",")
}

// validate rejects configuration values the run cannot work with.
func validate(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if config.Statement.TemplateName == "" {
		return fmt.Errorf("statement.template_name must not be empty")
	}

	if config.Statement.PDFMatch == "" {
		return fmt.Errorf("statement.pdf_match must not be empty")
	}

	if config.Register.Sheet == "" {
		return fmt.Errorf("register.sheet must not be empty")
	}

	if config.Register.ExpenseColumn < 1 || config.Register.DepositColumn < 1 {
		return fmt.Errorf("register category columns must be 1-based, got expense=%d deposit=%d",
			config.Register.ExpenseColumn, config.Register.DepositColumn)
	}

	if config.Register.ExpenseColumn == config.Register.DepositColumn {
		return fmt.Errorf("register expense and deposit columns must differ, both are %d",
			config.Register.ExpenseColumn)
	}

	if config.Register.MaxColWidth <= 0 {
		return fmt.Errorf("register.max_col_width must be positive, got %v", config.Register.MaxColWidth)
	}

	if len(config.CSV.Delimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	return nil
}

// ConfigureLogging builds a logrus logger from the Config struct.
func ConfigureLogging(config *Config) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}
