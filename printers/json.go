package printers

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/probekit/tcpping/statistics"
)

// JSONEventType tags each emitted object so automatic consumers can tell
// what kind of event they received.
type JSONEventType string

const (
	startEvent      JSONEventType = "start"      // Event type for the `PrintStart` method.
	probeEvent      JSONEventType = "probe"      // Event type for both `PrintProbeSuccess` and `PrintProbeFailure`.
	statisticsEvent JSONEventType = "statistics" // Event type for the `PrintStatistics` method.
	errorEvent      JSONEventType = "error"      // Event type for the `PrintError` method.
)

// JSONData contains all possible fields for JSON output. Each event only
// carries a subset; the rest are omitted.
type JSONData struct {
	Type JSONEventType `json:"type"`
	// Success is a pointer on purpose: success=false must survive in
	// probe events while staying omitted everywhere else.
	Success   *bool                `json:"success,omitempty"`
	Message   string               `json:"message,omitempty"`
	Target    string               `json:"target,omitempty"`
	IPAddr    string               `json:"ipAddress,omitempty"`
	Port      uint16               `json:"port,omitempty"`
	Round     *int                 `json:"round,omitempty"`
	Timestamp string               `json:"timestamp,omitempty"`
	Addresses []string             `json:"addresses,omitempty"`
	Count     uint                 `json:"probeCount,omitempty"`
	RTT       float64              `json:"rtt,omitempty"` // milliseconds
	Reason    string               `json:"reason,omitempty"`
	Summaries []statistics.Summary `json:"summaries,omitempty"`
}

// JSONPrinter emits one JSON object per event to stdout.
type JSONPrinter struct {
	encoder *json.Encoder
}

// NewJSONPrinter creates a new JSONPrinter instance.
// If pretty is true the output is indented.
func NewJSONPrinter(pretty bool) *JSONPrinter {
	encoder := json.NewEncoder(os.Stdout)

	if pretty {
		encoder.SetIndent("", "\t")
	}

	return &JSONPrinter{encoder: encoder}
}

// PrintStart emits the start event with the resolved address set.
func (p *JSONPrinter) PrintStart(info *statistics.RunInfo) {
	addrs := make([]string, 0, len(info.Addresses))
	for _, a := range info.Addresses {
		addrs = append(addrs, a.String())
	}

	p.encoder.Encode(JSONData{
		Type:      startEvent,
		Message:   fmt.Sprintf("TCP ping to %s:%d", info.Target, info.Port),
		Target:    info.Target,
		Port:      info.Port,
		Addresses: addrs,
		Count:     info.Count,
	})
}

// PrintProbeSuccess emits a probe event with success=true.
func (p *JSONPrinter) PrintProbeSuccess(ev *statistics.ProbeEvent) {
	ok := true
	round := ev.Round

	p.encoder.Encode(JSONData{
		Type:      probeEvent,
		Success:   &ok,
		Message:   fmt.Sprintf("Connected to %s: time=%.2fms", ev.IP, ev.RTT),
		Target:    ev.Target,
		IPAddr:    ev.IP.String(),
		Port:      ev.Port,
		Round:     &round,
		Timestamp: ev.Time.Format(probeTimeLayout),
		RTT:       ev.RTT,
	})
}

// PrintProbeFailure emits a probe event with success=false and the
// classified failure reason.
func (p *JSONPrinter) PrintProbeFailure(ev *statistics.ProbeEvent) {
	ok := false
	round := ev.Round

	p.encoder.Encode(JSONData{
		Type:      probeEvent,
		Success:   &ok,
		Message:   fmt.Sprintf("Failed to connect to %s", ev.IP),
		Target:    ev.Target,
		IPAddr:    ev.IP.String(),
		Port:      ev.Port,
		Round:     &round,
		Timestamp: ev.Time.Format(probeTimeLayout),
		Reason:    ev.Reason,
	})
}

// PrintStatistics emits one statistics event carrying every per-address summary.
func (p *JSONPrinter) PrintStatistics(r *statistics.Report) {
	if len(r.Summaries) == 0 {
		return
	}

	p.encoder.Encode(JSONData{
		Type:      statisticsEvent,
		Target:    r.Target,
		Port:      r.Port,
		Summaries: r.Summaries,
	})
}

// PrintError emits an error event.
func (p *JSONPrinter) PrintError(format string, args ...any) {
	p.encoder.Encode(JSONData{
		Type:    errorEvent,
		Message: fmt.Sprintf(format, args...),
	})
}

// Done is a no-op; the encoder writes through on every event.
func (p *JSONPrinter) Done() {}
