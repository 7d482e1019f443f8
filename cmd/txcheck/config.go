package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/MarkLTZ/bitcoin/infrastructure/config"
	"github.com/MarkLTZ/bitcoin/util/profiling"
	"github.com/MarkLTZ/bitcoin/version"
	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
)

const defaultLogLevel = "info"

type configFlags struct {
	ShowVersion bool   `short:"V" long:"version" description:"Display version information and exit"`
	File        string `short:"f" long:"file" description:"Read hex-encoded transactions from this file instead of stdin"`
	Workers     int    `short:"w" long:"workers" description:"Number of transactions validated concurrently"`
	LogLevel    string `short:"d" long:"loglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical} -- You may also specify <subsystem>=<level>,<subsystem2>=<level>,... to set the log level for individual subsystems"`
	Profile     string `long:"profile" description:"Enable HTTP profiling on given port -- NOTE port must be between 1024 and 65535"`
	config.NetworkFlags
}

func parseConfig() (*configFlags, error) {
	cfg := &configFlags{
		Workers:  runtime.NumCPU(),
		LogLevel: defaultLogLevel,
	}
	parser := flags.NewParser(cfg, flags.PrintErrors|flags.HelpFlag)
	_, err := parser.Parse()

	// Show the version and exit if the version flag was specified.
	if cfg.ShowVersion {
		appName := filepath.Base(os.Args[0])
		appName = strings.TrimSuffix(appName, filepath.Ext(appName))
		fmt.Println(appName, "version", version.Version())
		os.Exit(0)
	}

	if err != nil {
		return nil, err
	}

	err = cfg.ResolveNetwork(parser)
	if err != nil {
		return nil, err
	}

	if cfg.Workers < 1 {
		return nil, errors.Errorf("--workers must be at least 1, got %d", cfg.Workers)
	}

	if cfg.Profile != "" {
		err = profiling.ValidatePort(cfg.Profile)
		if err != nil {
			return nil, err
		}
	}

	err = initLog(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
