package printers_test

import (
	"bytes"
	"io"
	"net/netip"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/probekit/tcpping/printers"
	"github.com/probekit/tcpping/statistics"
)

// captureOutput captures stdout during function execution
func captureOutput(fn func()) string {
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	done := make(chan string)
	go func() {
		var buf bytes.Buffer
		io.Copy(&buf, r)
		done <- buf.String()
	}()

	fn()

	w.Close()
	output := <-done
	os.Stdout = oldStdout

	return output
}

func probeTime() time.Time {
	return time.Date(2025, 6, 1, 12, 30, 45, 123_000_000, time.UTC)
}

func TestPlainPrinter_PrintStart(t *testing.T) {
	p := printers.NewPlainPrinter()

	info := &statistics.RunInfo{
		Target: "example.com",
		Port:   443,
		Addresses: []netip.Addr{
			netip.MustParseAddr("192.0.2.1"),
			netip.MustParseAddr("192.0.2.2"),
		},
		Count: 4,
	}

	output := captureOutput(func() {
		p.PrintStart(info)
	})

	for _, want := range []string{
		"TCP ping to example.com:443",
		"Resolved IPs: 192.0.2.1, 192.0.2.2",
		"Sending 4 TCP ping probes to each IP",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output, got: %q", want, output)
		}
	}
}

func TestPlainPrinter_PrintProbeSuccess(t *testing.T) {
	p := printers.NewPlainPrinter()

	ev := &statistics.ProbeEvent{
		IP:   netip.MustParseAddr("192.0.2.1"),
		Port: 80,
		Time: probeTime(),
		OK:   true,
		RTT:  12.345,
	}

	output := captureOutput(func() {
		p.PrintProbeSuccess(ev)
	})

	if !strings.Contains(output, "Connected to 192.0.2.1: time=12.35ms") {
		t.Errorf("unexpected probe line: %q", output)
	}
	if !strings.Contains(output, "[12:30:45.123]") {
		t.Errorf("expected timestamp in output, got: %q", output)
	}
}

func TestPlainPrinter_PrintProbeFailure(t *testing.T) {
	p := printers.NewPlainPrinter()

	ev := &statistics.ProbeEvent{
		IP:     netip.MustParseAddr("192.0.2.1"),
		Port:   80,
		Time:   probeTime(),
		Reason: "refused",
	}

	output := captureOutput(func() {
		p.PrintProbeFailure(ev)
	})

	if !strings.Contains(output, "Failed to connect to 192.0.2.1") {
		t.Errorf("unexpected failure line: %q", output)
	}
}

func TestPlainPrinter_PrintStatistics(t *testing.T) {
	p := printers.NewPlainPrinter()

	report := &statistics.Report{
		Target: "example.com",
		Port:   80,
		Summaries: []statistics.Summary{
			{
				IP:         netip.MustParseAddr("192.0.2.1"),
				Sent:       4,
				Successful: 3,
				Failed:     1,
				LossPct:    25,
				Min:        1,
				Avg:        2,
				Max:        3,
				Mdev:       1,
				P50:        2,
				P90:        2.8,
				P99:        2.98,
			},
			{
				IP:      netip.MustParseAddr("192.0.2.2"),
				Sent:    4,
				Failed:  4,
				LossPct: 100,
			},
		},
	}

	output := captureOutput(func() {
		p.PrintStatistics(report)
	})

	for _, want := range []string{
		"=== TCP ping statistics per IP ===",
		"IP: 192.0.2.1",
		"Sent: 4, Successful: 3, Failed: 1 (25.0% loss)",
		"RTT min/avg/max/mdev = 1.00/2.00/3.00/1.00 ms",
		"Percentiles (p50/p90/p99) = 2.00/2.80/2.98 ms",
		"IP: 192.0.2.2",
		"Sent: 4, Successful: 0, Failed: 4 (100.0% loss)",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output, got: %q", want, output)
		}
	}

	// No latency lines for an address that never connected.
	if strings.Count(output, "RTT min/avg/max/mdev") != 1 {
		t.Errorf("expected exactly one RTT line, got: %q", output)
	}
}

func TestPlainPrinter_PrintStatisticsEmptyReport(t *testing.T) {
	p := printers.NewPlainPrinter()

	output := captureOutput(func() {
		p.PrintStatistics(&statistics.Report{Target: "example.com", Port: 80})
	})

	if output != "" {
		t.Errorf("expected no output for an empty report, got: %q", output)
	}
}
