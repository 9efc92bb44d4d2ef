package tcpping

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/probekit/tcpping/printers"
	"github.com/probekit/tcpping/statistics"
)

var (
	_ Printer = (*printers.ColorPrinter)(nil)
	_ Printer = (*printers.PlainPrinter)(nil)
	_ Printer = (*printers.JSONPrinter)(nil)
	_ Printer = (*printers.CSVPrinter)(nil)
	_ Printer = (*printers.DatabasePrinter)(nil)
)

// Printer defines the output surface every printer implementation must
// provide. Printers only render; they never modify data or compute
// statistics.
type Printer interface {
	// PrintStart prints the opening message with the target, the
	// resolved addresses and the probe count. Printed once.
	PrintStart(info *statistics.RunInfo)

	// PrintProbeSuccess prints one successful probe as it happens.
	PrintProbeSuccess(ev *statistics.ProbeEvent)

	// PrintProbeFailure prints one failed probe as it happens.
	PrintProbeFailure(ev *statistics.ProbeEvent)

	// PrintStatistics prints the end-of-run per-address summary blocks.
	PrintStatistics(r *statistics.Report)

	// PrintError prints an error message. Printers append the trailing
	// newline if the format lacks one.
	PrintError(format string, args ...any)

	// Done flushes and releases whatever the printer holds open.
	Done()
}

// PrinterConfig holds the output selection options.
type PrinterConfig struct {
	OutputJSON    bool
	PrettyJSON    bool
	NoColor       bool
	OutputDBPath  string
	OutputCSVPath string
	Target        string
	Port          uint16
}

// NewPrinter creates the printer matching the configuration. Color output
// is the default, degrading to plain text when stdout is not a terminal.
func NewPrinter(cfg PrinterConfig) (Printer, error) {
	if cfg.PrettyJSON && !cfg.OutputJSON {
		return nil, fmt.Errorf("--pretty has no effect without the -j flag")
	}

	switch {
	case cfg.OutputJSON:
		return printers.NewJSONPrinter(cfg.PrettyJSON), nil

	case cfg.OutputDBPath != "":
		return printers.NewDatabasePrinter(cfg.OutputDBPath, cfg.Target, cfg.Port)

	case cfg.OutputCSVPath != "":
		return printers.NewCSVPrinter(cfg.OutputCSVPath)

	case cfg.NoColor || !term.IsTerminal(int(os.Stdout.Fd())):
		return printers.NewPlainPrinter(), nil

	default:
		return printers.NewColorPrinter(), nil
	}
}
