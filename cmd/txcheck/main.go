package main

import (
	"fmt"
	"io"
	"os"

	"github.com/MarkLTZ/bitcoin/domain/consensus/processes/transactionvalidator"
	"github.com/MarkLTZ/bitcoin/infrastructure/logger"
	"github.com/MarkLTZ/bitcoin/util/panics"
	"github.com/MarkLTZ/bitcoin/util/profiling"
	"github.com/pkg/errors"
)

func main() {
	defer panics.HandlePanic(log, nil)

	cfg, err := parseConfig()
	if err != nil {
		printErrorAndExit(errors.Errorf("Error parsing command-line arguments: %s", err))
	}
	defer logger.BackendLog.Close()

	if cfg.Profile != "" {
		profiling.Start(cfg.Profile, log)
	}

	input := io.Reader(os.Stdin)
	if cfg.File != "" {
		file, err := os.Open(cfg.File)
		if err != nil {
			printErrorAndExit(errors.Wrapf(err, "error opening %s", cfg.File))
		}
		defer file.Close()
		input = file
	}

	params := cfg.NetParams()
	log.Infof("Checking transactions against %s rules with %d workers", params.Name, cfg.Workers)
	validator := transactionvalidator.New(params)

	failures, err := checkTransactions(input, os.Stdout, validator, cfg.Workers)
	if err != nil {
		printErrorAndExit(err)
	}
	if failures > 0 {
		log.Warnf("%d transactions failed", failures)
		logger.BackendLog.Close()
		os.Exit(1)
	}
}

func printErrorAndExit(err error) {
	fmt.Fprintf(os.Stderr, "%+v\n", err)
	os.Exit(1)
}
