package printers

import (
	"github.com/gookit/color"

	"github.com/probekit/tcpping/statistics"
)

// Color functions used when printing information
var (
	ColorCyan        = color.Cyan.Printf
	ColorLightCyan   = color.LightCyan.Printf
	ColorGreen       = color.Green.Printf
	ColorLightGreen  = color.LightGreen.Printf
	ColorYellow      = color.Yellow.Printf
	ColorLightYellow = color.LightYellow.Printf
	ColorRed         = color.Red.Printf
)

// ColorPrinter renders the same output as PlainPrinter with color:
// green for successful probes, red for failures, yellow for summaries.
type ColorPrinter struct{}

// NewColorPrinter creates a new ColorPrinter instance.
func NewColorPrinter() *ColorPrinter {
	return &ColorPrinter{}
}

// PrintStart prints the opening block with the target and its addresses.
func (p *ColorPrinter) PrintStart(info *statistics.RunInfo) {
	ColorLightCyan("\nTCP ping to %s:%d\n", info.Target, info.Port)
	ColorLightCyan("Resolved IPs: %s\n", joinAddrs(info.Addresses))
	ColorLightCyan("Sending %d TCP ping probes to each IP\n\n", info.Count)
}

// PrintProbeSuccess prints one successful probe line in light green.
func (p *ColorPrinter) PrintProbeSuccess(ev *statistics.ProbeEvent) {
	ColorLightGreen("[%s] Connected to %s: time=%.2fms\n",
		ev.Time.Format(probeTimeLayout),
		ev.IP,
		ev.RTT)
}

// PrintProbeFailure prints one failed probe line in red.
func (p *ColorPrinter) PrintProbeFailure(ev *statistics.ProbeEvent) {
	ColorRed("[%s] Failed to connect to %s\n",
		ev.Time.Format(probeTimeLayout),
		ev.IP)
}

// PrintStatistics prints the per-address summary blocks.
func (p *ColorPrinter) PrintStatistics(r *statistics.Report) {
	if len(r.Summaries) == 0 {
		return
	}

	ColorYellow("\n=== TCP ping statistics per IP ===\n")

	for _, s := range r.Summaries {
		ColorYellow("\nIP: %s\n", s.IP)

		ColorYellow("Sent: %d, Successful: ", s.Sent)
		ColorGreen("%d", s.Successful)
		ColorYellow(", Failed: ")
		ColorRed("%d", s.Failed)

		switch {
		case s.LossPct == 0:
			ColorGreen(" (%.1f%% loss)\n", s.LossPct)
		case s.LossPct <= 30:
			ColorLightYellow(" (%.1f%% loss)\n", s.LossPct)
		default:
			ColorRed(" (%.1f%% loss)\n", s.LossPct)
		}

		if s.Successful == 0 {
			continue
		}

		ColorYellow("RTT min/avg/max/mdev = ")
		ColorGreen("%.2f", s.Min)
		ColorYellow("/")
		ColorCyan("%.2f", s.Avg)
		ColorYellow("/")
		ColorRed("%.2f", s.Max)
		ColorYellow("/")
		ColorCyan("%.2f", s.Mdev)
		ColorYellow(" ms\n")

		ColorYellow("Percentiles (p50/p90/p99) = ")
		ColorCyan("%.2f/%.2f/%.2f", s.P50, s.P90, s.P99)
		ColorYellow(" ms\n")
	}
}

// PrintError prints an error message in red.
func (p *ColorPrinter) PrintError(format string, args ...any) {
	ColorRed(format+"\n", args...)
}

// Done is a no-op for console output.
func (p *ColorPrinter) Done() {}
