package main

import (
	"fmt"
	"os"
	"strings"

	"bookkeeping/corp-register/cmd/build"
	"bookkeeping/corp-register/cmd/export"
	"bookkeeping/corp-register/cmd/root"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func init() {
	// Load environment variables silently first (no logging yet), then set
	// the global log level before any logger is created.
	loadEnvSilently()
	configureLogLevel()

	root.Init()
	root.Cmd.AddCommand(build.Cmd)
	root.Cmd.AddCommand(export.Cmd)
}

// loadEnvSilently loads environment variables from a .env file if one exists.
func loadEnvSilently() {
	if _, err := os.Stat(".env"); os.IsNotExist(err) {
		return
	}
	_ = godotenv.Load(".env")
}

// configureLogLevel sets the global logrus level from LOG_LEVEL before any
// logging happens, so that all loggers created later inherit it.
func configureLogLevel() {
	logLevelStr := os.Getenv("LOG_LEVEL")
	if logLevelStr == "" {
		logLevelStr = "info"
	}

	logLevel, err := logrus.ParseLevel(strings.ToLower(logLevelStr))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
