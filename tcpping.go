// Package tcpping drives repeated TCP connect probes against a set of
// resolved addresses and collects the per-address records.
package tcpping

import (
	"context"
	"net/netip"
	"time"

	"github.com/probekit/tcpping/option"
	"github.com/probekit/tcpping/probes"
	"github.com/probekit/tcpping/statistics"
)

// Pinger performs one probe against one address.
type Pinger interface {
	Probe(ip netip.Addr) probes.Outcome
}

// Prober runs the round loop: count rounds, each probing every address
// once, in resolution order, strictly one at a time.
type Prober struct {
	pinger   Pinger
	printer  Printer
	target   string
	port     uint16
	addrs    []netip.Addr
	count    uint
	interval time.Duration
}

// ProberOption configures a Prober.
type ProberOption = option.Option[Prober]

// NewProber creates a prober with the given pinger and printer.
func NewProber(pinger Pinger, printer Printer, opts ...ProberOption) *Prober {
	p := &Prober{
		pinger:   pinger,
		printer:  printer,
		count:    4,
		interval: time.Second,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// WithTarget sets the user-supplied target name and port, used only for
// tagging emitted events.
func WithTarget(target string, port uint16) ProberOption {
	return func(p *Prober) {
		p.target = target
		p.port = port
	}
}

// WithAddresses sets the resolved addresses to probe, in the order they
// will be visited within every round.
func WithAddresses(addrs []netip.Addr) ProberOption {
	return func(p *Prober) {
		p.addrs = addrs
	}
}

// WithCount sets the number of rounds.
func WithCount(count uint) ProberOption {
	return func(p *Prober) {
		p.count = count
	}
}

// WithInterval sets the pause between rounds.
func WithInterval(interval time.Duration) ProberOption {
	return func(p *Prober) {
		p.interval = interval
	}
}

// Run executes the round loop and returns one record per address, in
// address order. Every outcome is handed to the printer as it happens.
//
// With no addresses it returns immediately. Cancelling the context stops
// the loop at the next round boundary, or during the inter-round pause;
// records accumulated so far are returned so the statistics phase still
// runs. A probe already in flight finishes on its own timeout.
func (p *Prober) Run(ctx context.Context) []*statistics.Record {
	if len(p.addrs) == 0 {
		return nil
	}

	records := make(map[netip.Addr]*statistics.Record, len(p.addrs))

	for round := 0; round < int(p.count); round++ {
		if ctx.Err() != nil {
			break
		}

		for _, ip := range p.addrs {
			outcome := p.pinger.Probe(ip)

			rec := records[ip]
			if rec == nil {
				rec = &statistics.Record{IP: ip}
				records[ip] = rec
			}

			ev := statistics.ProbeEvent{
				Round:  round,
				Target: p.target,
				IP:     ip,
				Port:   p.port,
				Time:   time.Now(),
			}

			if outcome.OK {
				ev.OK = true
				ev.RTT = statistics.NanoToMillisecond(outcome.Elapsed.Nanoseconds())
				rec.AddSuccess(ev.RTT)
				p.printer.PrintProbeSuccess(&ev)
			} else {
				ev.Reason = outcome.Reason.String()
				rec.AddFailure()
				p.printer.PrintProbeFailure(&ev)
			}
		}

		// No pause after the final round.
		if round == int(p.count)-1 {
			break
		}

		if !sleep(ctx, p.interval) {
			break
		}
	}

	ordered := make([]*statistics.Record, 0, len(p.addrs))
	for _, ip := range p.addrs {
		if rec := records[ip]; rec != nil {
			ordered = append(ordered, rec)
		}
	}

	return ordered
}

// sleep pauses for d, waking early when ctx is cancelled. It reports
// whether the full pause elapsed.
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
