// Package printers renders probe results and summaries to the console
// and to structured outputs.
package printers

import (
	"fmt"
	"net/netip"
	"strings"

	"github.com/probekit/tcpping/statistics"
)

// probeTimeLayout is the wall-clock stamp prefixed to each probe line.
const probeTimeLayout = "15:04:05.000"

// joinAddrs renders the resolved address list for display.
func joinAddrs(addrs []netip.Addr) string {
	strs := make([]string, 0, len(addrs))
	for _, a := range addrs {
		strs = append(strs, a.String())
	}

	return strings.Join(strs, ", ")
}

// PlainPrinter prints results as uncolored text.
type PlainPrinter struct{}

// NewPlainPrinter creates a new PlainPrinter instance.
func NewPlainPrinter() *PlainPrinter {
	return &PlainPrinter{}
}

// PrintStart prints the opening block with the target and its addresses.
func (p *PlainPrinter) PrintStart(info *statistics.RunInfo) {
	fmt.Printf("\nTCP ping to %s:%d\n", info.Target, info.Port)
	fmt.Printf("Resolved IPs: %s\n", joinAddrs(info.Addresses))
	fmt.Printf("Sending %d TCP ping probes to each IP\n\n", info.Count)
}

// PrintProbeSuccess prints one successful probe line.
func (p *PlainPrinter) PrintProbeSuccess(ev *statistics.ProbeEvent) {
	fmt.Printf("[%s] Connected to %s: time=%.2fms\n",
		ev.Time.Format(probeTimeLayout),
		ev.IP,
		ev.RTT)
}

// PrintProbeFailure prints one failed probe line.
func (p *PlainPrinter) PrintProbeFailure(ev *statistics.ProbeEvent) {
	fmt.Printf("[%s] Failed to connect to %s\n",
		ev.Time.Format(probeTimeLayout),
		ev.IP)
}

// PrintStatistics prints the per-address summary blocks.
func (p *PlainPrinter) PrintStatistics(r *statistics.Report) {
	if len(r.Summaries) == 0 {
		return
	}

	fmt.Printf("\n=== TCP ping statistics per IP ===\n")

	for _, s := range r.Summaries {
		fmt.Printf("\nIP: %s\n", s.IP)
		fmt.Printf("Sent: %d, Successful: %d, Failed: %d (%.1f%% loss)\n",
			s.Sent,
			s.Successful,
			s.Failed,
			s.LossPct)

		if s.Successful == 0 {
			continue
		}

		fmt.Printf("RTT min/avg/max/mdev = %.2f/%.2f/%.2f/%.2f ms\n",
			s.Min, s.Avg, s.Max, s.Mdev)
		fmt.Printf("Percentiles (p50/p90/p99) = %.2f/%.2f/%.2f ms\n",
			s.P50, s.P90, s.P99)
	}
}

// PrintError prints error messages.
func (p *PlainPrinter) PrintError(format string, args ...any) {
	fmt.Printf(format+"\n", args...)
}

// Done is a no-op; plain output holds nothing open.
func (p *PlainPrinter) Done() {}
