package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/MarkLTZ/bitcoin/infrastructure/config"
	"github.com/MarkLTZ/bitcoin/version"
	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
)

const (
	defaultLogLevel = "info"
	defaultTimeout  = 2 * time.Hour
)

type configFlags struct {
	ShowVersion   bool          `short:"V" long:"version" description:"Display version information and exit"`
	ParamsDir     string        `short:"p" long:"paramsdir" description:"Directory to keep the zk-SNARK parameters in"`
	Timeout       time.Duration `long:"timeout" description:"Give up if the parameters are not in place after this long"`
	MetricsListen string        `long:"metricslisten" description:"Serve Prometheus metrics on this address while fetching"`
	LogDir        string        `long:"logdir" description:"Also write rotated log files to this directory"`
	LogLevel      string        `short:"d" long:"loglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical} -- You may also specify <subsystem>=<level>,<subsystem2>=<level>,... to set the log level for individual subsystems"`
	config.NetworkFlags
}

func parseConfig() (*configFlags, error) {
	cfg := &configFlags{
		Timeout:  defaultTimeout,
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

	if cfg.ParamsDir == "" {
		cfg.ParamsDir, err = defaultParamsDir()
		if err != nil {
			return nil, err
		}
	}
	if cfg.Timeout <= 0 {
		return nil, errors.Errorf("--timeout must be positive, got %s", cfg.Timeout)
	}

	err = initLog(cfg.LogDir, cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// defaultParamsDir returns the platform's conventional location of the
// zk-SNARK parameters.
func defaultParamsDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "could not find the home directory, please use --paramsdir")
	}
	return paramsDirForOS(runtime.GOOS, homeDir, os.Getenv("APPDATA")), nil
}

func paramsDirForOS(goos string, homeDir string, appData string) string {
	switch goos {
	case "windows":
		if appData != "" {
			return filepath.Join(appData, "ZcashParams")
		}
		return filepath.Join(homeDir, "AppData", "Roaming", "ZcashParams")
	case "darwin":
		return filepath.Join(homeDir, "Library", "Application Support", "ZcashParams")
	default:
		return filepath.Join(homeDir, ".zcash-params")
	}
}
