// Package app wires resolution, probing and reporting into the CLI flow.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/netip"
	"os"
	"os/signal"
	"syscall"

	"github.com/probekit/tcpping"
	"github.com/probekit/tcpping/dns"
	"github.com/probekit/tcpping/probes"
	"github.com/probekit/tcpping/statistics"
)

// Run executes the application and returns an exit code.
func Run() int {
	config, err := ProcessUserInput()
	if err != nil {
		return handleError(err, nil)
	}

	printer, err := tcpping.NewPrinter(config.PrinterConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	resolver, err := dns.NewResolver()
	if err != nil {
		return handleError(err, printer)
	}

	// An interrupt is observed by the prober at round and sleep
	// boundaries; the flow still reaches the statistics phase.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addrs, err := resolveTarget(ctx, resolver, config.Target)
	if err != nil {
		// An unresolvable target is a clean no-op, not a failure.
		printer.PrintError("%v", err)
		printer.Done()
		return 0
	}

	printer.PrintStart(&statistics.RunInfo{
		Target:    config.Target,
		Port:      config.Port,
		Addresses: addrs,
		Count:     config.Count,
	})

	pinger := probes.NewTCPProber(config.Port, probes.WithTimeout(config.Timeout))

	prober := tcpping.NewProber(pinger, printer,
		tcpping.WithTarget(config.Target, config.Port),
		tcpping.WithAddresses(addrs),
		tcpping.WithCount(config.Count),
		tcpping.WithInterval(config.Interval),
	)

	records := prober.Run(ctx)

	if ctx.Err() != nil {
		printer.PrintError("\nPing interrupted by user")
	}

	printer.PrintStatistics(statistics.BuildReport(config.Target, config.Port, records))
	printer.Done()

	return 0
}

// resolveTarget resolves the target into a non-empty address set, turning
// every resolution problem into a printable message.
func resolveTarget(ctx context.Context, resolver *dns.Resolver, target string) ([]netip.Addr, error) {
	resolveCtx, cancel := context.WithTimeout(ctx, dns.Timeout)
	defer cancel()

	addrs, err := resolver.Resolve(resolveCtx, target)

	switch {
	case errors.Is(err, dns.ErrHostNotFound):
		return nil, fmt.Errorf("Could not resolve hostname: %s", target)
	case err != nil:
		return nil, fmt.Errorf("Error resolving hostname: %v", err)
	case len(addrs) == 0:
		return nil, fmt.Errorf("Could not resolve hostname: %s", target)
	}

	return addrs, nil
}

func handleError(err error, printer tcpping.Printer) int {
	if err == nil {
		return 0
	}

	if errors.Is(err, ErrUsageRequested) {
		PrintUsage()
		return 1
	}

	if errors.Is(err, ErrVersionRequested) {
		PrintVersion()
		return 0
	}

	if errors.Is(err, ErrUpdateCheckRequested) {
		msg, checkErr := CheckForUpdates()
		if checkErr != nil {
			printError(checkErr, printer)
			return 1
		}
		fmt.Println(msg)
		return 0
	}

	printError(err, printer)
	return 1
}

func printError(err error, printer tcpping.Printer) {
	if printer != nil {
		printer.PrintError("%v", err)
		return
	}

	fmt.Fprintf(os.Stderr, "error: %v\n", err)
}
