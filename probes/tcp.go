// Package probes implements the timed TCP connect probe used to measure
// reachability and latency of a single address.
package probes

import (
	"errors"
	"net"
	"net/netip"
	"syscall"
	"time"

	"github.com/probekit/tcpping/option"
)

// FailureReason classifies why a probe did not establish a connection.
// The console summary only reports aggregate loss; the reason is kept
// so structured outputs do not lose the diagnostic.
type FailureReason uint8

const (
	ReasonNone FailureReason = iota
	ReasonRefused
	ReasonTimeout
	ReasonUnreachable
	ReasonOther
)

func (r FailureReason) String() string {
	switch r {
	case ReasonNone:
		return ""
	case ReasonRefused:
		return "refused"
	case ReasonTimeout:
		return "timeout"
	case ReasonUnreachable:
		return "unreachable"
	default:
		return "error"
	}
}

// Outcome is the result of one connect attempt. Elapsed is the wall time
// spent on the attempt regardless of whether it succeeded.
type Outcome struct {
	OK      bool
	Elapsed time.Duration
	Reason  FailureReason
}

// TCPProber performs single timed TCP connect attempts against one port.
type TCPProber struct {
	dialer *net.Dialer
	port   uint16
}

// TCPProberOption configures a TCPProber.
type TCPProberOption = option.Option[TCPProber]

// NewTCPProber creates a prober for the given port with optional configuration.
func NewTCPProber(port uint16, opts ...TCPProberOption) *TCPProber {
	t := &TCPProber{
		port: port,
		dialer: &net.Dialer{
			Timeout: 2 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// WithTimeout bounds each connect attempt.
func WithTimeout(timeout time.Duration) TCPProberOption {
	return func(t *TCPProber) {
		t.dialer.Timeout = timeout
	}
}

// WithDialer replaces the dialer, for callers that need a specific
// source address.
func WithDialer(dialer *net.Dialer) TCPProberOption {
	return func(t *TCPProber) {
		t.dialer = dialer
	}
}

// Probe opens one TCP connection to ip on the configured port, timed from
// just before the dial to just after it resolves. The connection is closed
// immediately on success; no data is exchanged. A pending dial is never
// aborted from outside, it completes or times out on its own.
func (t *TCPProber) Probe(ip netip.Addr) Outcome {
	network := "tcp4"
	if ip.Is6() {
		network = "tcp6"
	}

	addr := netip.AddrPortFrom(ip, t.port).String()

	start := time.Now()
	conn, err := t.dialer.Dial(network, addr)
	elapsed := time.Since(start)

	if err != nil {
		return Outcome{Elapsed: elapsed, Reason: classify(err)}
	}

	conn.Close()

	return Outcome{OK: true, Elapsed: elapsed}
}

// classify maps a dial error to a FailureReason.
func classify(err error) FailureReason {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ReasonTimeout
	}

	switch {
	case errors.Is(err, syscall.ECONNREFUSED):
		return ReasonRefused
	case errors.Is(err, syscall.ENETUNREACH), errors.Is(err, syscall.EHOSTUNREACH), errors.Is(err, syscall.EHOSTDOWN):
		return ReasonUnreachable
	default:
		return ReasonOther
	}
}
