package main

import (
	"os"

	"github.com/MarkLTZ/bitcoin/infrastructure/logger"
	"github.com/MarkLTZ/bitcoin/util/panics"
	"github.com/pkg/errors"
)

var (
	log   = logger.RegisterSubSystem("TXCK")
	spawn = panics.GoroutineWrapperFunc(log)
)

// initLog sends the log to stderr, leaving stdout to the verdicts.
func initLog(logLevel string) error {
	err := logger.BackendLog.AddLogWriter(os.Stderr, logger.LevelTrace)
	if err != nil {
		return errors.Wrap(err, "error adding stderr to the logger")
	}
	err = logger.BackendLog.Run()
	if err != nil {
		return errors.Wrap(err, "error starting the logger")
	}
	return logger.ParseAndSetLogLevels(logLevel)
}
