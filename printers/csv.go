package printers

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/probekit/tcpping/statistics"
)

const (
	colTimestamp string = "Timestamp"
	colStatus    string = "Status"
	colIP        string = "IP"
	colPort      string = "Port"
	colRound     string = "Round"
	colLatency   string = "Latency(ms)"
	colReason    string = "Reason"
)

var statsHeader = []string{
	"IP", "Port", "Sent", "Successful", "Failed", "Loss(%)",
	"Min", "Avg", "Max", "Mdev", "P50", "P90", "P99",
}

const (
	filePermission os.FileMode = 0644
	fileFlag       int         = os.O_CREATE | os.O_WRONLY | os.O_TRUNC
)

// CSVPrinter writes probe results and statistics to a pair of CSV files:
// the given path for per-probe rows and a "_stats" sibling for summaries.
type CSVPrinter struct {
	ProbeWriter   *csv.Writer
	StatsWriter   *csv.Writer
	ProbeFile     *os.File
	StatsFile     *os.File
	headerWritten bool
}

// NewCSVPrinter initializes a CSVPrinter for the given file path.
func NewCSVPrinter(filePath string) (*CSVPrinter, error) {
	probeFilename := addCSVExtension(filePath, false)

	probeFile, err := os.OpenFile(probeFilename, fileFlag, filePermission)
	if err != nil {
		return nil, fmt.Errorf("create probe CSV file %s: %w", probeFilename, err)
	}

	statsFilename := addCSVExtension(filePath, true)

	statsFile, err := os.OpenFile(statsFilename, fileFlag, filePermission)
	if err != nil {
		probeFile.Close()
		return nil, fmt.Errorf("create stats CSV file %s: %w", statsFilename, err)
	}

	return &CSVPrinter{
		ProbeWriter: csv.NewWriter(probeFile),
		StatsWriter: csv.NewWriter(statsFile),
		ProbeFile:   probeFile,
		StatsFile:   statsFile,
	}, nil
}

func addCSVExtension(filename string, withStatsExt bool) string {
	if withStatsExt {
		base := strings.TrimSuffix(filename, ".csv")
		return base + "_stats.csv"
	}

	if strings.HasSuffix(filename, ".csv") {
		return filename
	}

	return filename + ".csv"
}

func (p *CSVPrinter) writeProbeRow(ev *statistics.ProbeEvent, status, latency, reason string) {
	if !p.headerWritten {
		p.ProbeWriter.Write([]string{
			colTimestamp, colStatus, colIP, colPort, colRound, colLatency, colReason,
		})
		p.headerWritten = true
	}

	p.ProbeWriter.Write([]string{
		ev.Time.Format(probeTimeLayout),
		status,
		ev.IP.String(),
		strconv.Itoa(int(ev.Port)),
		strconv.Itoa(ev.Round),
		latency,
		reason,
	})
}

// PrintStart is a no-op; the probe file carries a header row instead.
func (p *CSVPrinter) PrintStart(_ *statistics.RunInfo) {}

// PrintProbeSuccess writes one successful probe row.
func (p *CSVPrinter) PrintProbeSuccess(ev *statistics.ProbeEvent) {
	p.writeProbeRow(ev, "Connected", fmt.Sprintf("%.3f", ev.RTT), "")
}

// PrintProbeFailure writes one failed probe row with its reason.
func (p *CSVPrinter) PrintProbeFailure(ev *statistics.ProbeEvent) {
	p.writeProbeRow(ev, "Failed", "", ev.Reason)
}

// PrintStatistics writes one summary row per address to the stats file.
func (p *CSVPrinter) PrintStatistics(r *statistics.Report) {
	if len(r.Summaries) == 0 {
		return
	}

	p.StatsWriter.Write(statsHeader)

	for _, s := range r.Summaries {
		p.StatsWriter.Write([]string{
			s.IP.String(),
			strconv.Itoa(int(r.Port)),
			strconv.Itoa(s.Sent),
			strconv.Itoa(s.Successful),
			strconv.Itoa(s.Failed),
			fmt.Sprintf("%.1f", s.LossPct),
			fmt.Sprintf("%.3f", s.Min),
			fmt.Sprintf("%.3f", s.Avg),
			fmt.Sprintf("%.3f", s.Max),
			fmt.Sprintf("%.3f", s.Mdev),
			fmt.Sprintf("%.3f", s.P50),
			fmt.Sprintf("%.3f", s.P90),
			fmt.Sprintf("%.3f", s.P99),
		})
	}
}

// PrintError reports errors on stderr; the CSV files carry data only.
func (p *CSVPrinter) PrintError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}

// Done flushes the writers and closes both files.
func (p *CSVPrinter) Done() {
	if p.ProbeWriter != nil {
		p.ProbeWriter.Flush()
	}

	if p.ProbeFile != nil {
		p.ProbeFile.Close()
	}

	if p.StatsWriter != nil {
		p.StatsWriter.Flush()
	}

	if p.StatsFile != nil {
		p.StatsFile.Close()
	}
}
