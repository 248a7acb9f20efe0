package logging

import (
	"os"

	"github.com/op/go-logging"
)

// Init receives the log level to be set in go-logging as a string, parses it
// and installs a leveled stderr backend. Diagnostics go to stderr so table
// output on stdout stays clean. An invalid level string returns an error.
func Init(logLevel string) error {
	baseBackend := logging.NewLogBackend(os.Stderr, "", 0)
	format := logging.MustStringFormatter(
		`%{time:2006-01-02 15:04:05} %{level:.5s} %{module} %{message}`,
	)
	backendFormatter := logging.NewBackendFormatter(baseBackend, format)

	backendLeveled := logging.AddModuleLevel(backendFormatter)
	logLevelCode, err := logging.LogLevel(logLevel)
	if err != nil {
		return err
	}
	backendLeveled.SetLevel(logLevelCode, "")

	logging.SetBackend(backendLeveled)
	return nil
}
