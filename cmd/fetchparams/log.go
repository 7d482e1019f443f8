package main

import (
	"path/filepath"

	"github.com/MarkLTZ/bitcoin/infrastructure/logger"
	"github.com/MarkLTZ/bitcoin/util/panics"
)

const (
	defaultLogFilename    = "fetchparams.log"
	defaultErrLogFilename = "fetchparams_err.log"
)

var (
	log   = logger.RegisterSubSystem("FTCH")
	spawn = panics.GoroutineWrapperFunc(log)
)

// initLog logs to stdout, and to rotated files in logDir unless it is empty.
func initLog(logDir string, logLevel string) error {
	var err error
	if logDir == "" {
		err = logger.InitLogStdout(logger.LevelInfo)
	} else {
		err = logger.InitLog(filepath.Join(logDir, defaultLogFilename), filepath.Join(logDir, defaultErrLogFilename))
	}
	if err != nil {
		return err
	}
	return logger.ParseAndSetLogLevels(logLevel)
}
