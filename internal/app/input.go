package app

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/probekit/tcpping"
	"github.com/probekit/tcpping/statistics"
)

var (
	// ErrUsageRequested indicates usage help was requested
	ErrUsageRequested = errors.New("usage requested")

	// ErrVersionRequested indicates version display was requested
	ErrVersionRequested = errors.New("version requested")

	// ErrUpdateCheckRequested indicates update check was requested
	ErrUpdateCheckRequested = errors.New("update check requested")
)

// Config contains everything needed to run one measurement.
type Config struct {
	// Target configuration
	Target string
	Port   uint16

	// Timing options
	Timeout  time.Duration
	Interval time.Duration

	// Probe control
	Count uint

	// Output options
	PrinterConfig tcpping.PrinterConfig
}

// valueFlags are the flags that consume the following argument; permuteArgs
// must keep their values attached when reordering.
var valueFlags = []string{"p", "port", "c", "count", "i", "interval", "t", "timeout", "csv", "db"}

// permuteArgs reorders args so every flag precedes the positional target,
// because flag parsing stops just before the first non-flag argument.
// see: https://pkg.go.dev/flag
func permuteArgs(args []string) error {
	var flagArgs []string
	var nonFlagArgs []string

	for i := 0; i < len(args); i++ {
		v := args[i]
		if v[0] == '-' {
			var optionName string
			if len(v) > 1 && v[1] == '-' {
				optionName = v[2:]
			} else {
				optionName = v[1:]
			}

			if slices.Contains(valueFlags, optionName) {
				// out of index
				if len(args) <= i+1 {
					return ErrUsageRequested
				}
				// the next flag has come
				optionVal := args[i+1]
				if optionVal[0] == '-' {
					return ErrUsageRequested
				}
				flagArgs = append(flagArgs, args[i:i+2]...)
				i++
			} else {
				flagArgs = append(flagArgs, args[i])
			}
		} else {
			nonFlagArgs = append(nonFlagArgs, args[i])
		}
	}

	permutedArgs := slices.Concat(flagArgs, nonFlagArgs)

	// replace args in place
	for i := range len(args) {
		args[i] = permutedArgs[i]
	}

	return nil
}

// validateOptions performs the sanity checks on parsed values.
func validateOptions(port uint, count uint, interval, timeout float64) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("port should be in 1..65535 range")
	}

	if count < 1 {
		return fmt.Errorf("probe count should be at least 1")
	}

	if interval < 0 {
		return fmt.Errorf("interval cannot be negative")
	}

	if timeout <= 0 {
		return fmt.Errorf("timeout should be greater than zero")
	}

	return nil
}

// ProcessUserInput parses command-line flags. Returns ErrUsageRequested,
// ErrVersionRequested, or ErrUpdateCheckRequested for special control flow.
func ProcessUserInput() (Config, error) {
	var (
		port     uint
		count    uint
		interval float64
		timeout  float64
	)

	flag.UintVar(&port, "p", 80, "target port number.")
	flag.UintVar(&port, "port", 80, "target port number.")
	flag.UintVar(&count, "c", 4, "number of probe rounds. Every resolved IP is probed once per round.")
	flag.UintVar(&count, "count", 4, "number of probe rounds. Every resolved IP is probed once per round.")
	flag.Float64Var(&interval, "i", 1, "interval between rounds in seconds. Real number allowed with dot as a decimal separator.")
	flag.Float64Var(&interval, "interval", 1, "interval between rounds in seconds. Real number allowed with dot as a decimal separator.")
	flag.Float64Var(&timeout, "t", 2, "time to wait for each connection in seconds. Real number allowed.")
	flag.Float64Var(&timeout, "timeout", 2, "time to wait for each connection in seconds. Real number allowed.")

	outputJSON := flag.Bool("j", false, "output in JSON format.")
	prettyJSON := flag.Bool("pretty",
		false,
		"use indentation when using json output format. No effect without the '-j' flag.")
	noColor := flag.Bool("no-color", false, "do not colorize output.")
	saveToCSV := flag.String("csv",
		"",
		"path and file name to store output to a CSV file. The stats will be saved with the same name and `_stats` suffix.")
	saveToDB := flag.String("db", "", "path and file name to store output to a sqlite3 database.")
	showVer := flag.Bool("v", false, "show version and exit.")
	checkUpdates := flag.Bool("u", false, "check for updates and exit.")

	flag.CommandLine.Usage = PrintUsage

	if err := permuteArgs(os.Args[1:]); err != nil {
		return Config{}, err
	}

	flag.Parse()

	args := flag.Args()

	if *showVer {
		return Config{}, ErrVersionRequested
	}

	if *checkUpdates {
		return Config{}, ErrUpdateCheckRequested
	}

	// The target is the only positional argument
	if len(args) != 1 {
		return Config{}, ErrUsageRequested
	}

	if err := validateOptions(port, count, interval, timeout); err != nil {
		return Config{}, err
	}

	config := Config{
		Target:   args[0],
		Port:     uint16(port),
		Count:    count,
		Interval: statistics.SecondsToDuration(interval),
		Timeout:  statistics.SecondsToDuration(timeout),
		PrinterConfig: tcpping.PrinterConfig{
			OutputJSON:    *outputJSON,
			PrettyJSON:    *prettyJSON,
			NoColor:       *noColor,
			OutputDBPath:  *saveToDB,
			OutputCSVPath: *saveToCSV,
			Target:        args[0],
			Port:          uint16(port),
		},
	}

	return config, nil
}
