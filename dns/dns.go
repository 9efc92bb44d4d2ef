// Package dns resolves a target string into the set of IP addresses to
// probe. Lookups go through record-level A/AAAA queries so that a missing
// name (NXDOMAIN) can be told apart from a name with an empty answer.
package dns

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/netip"
	"time"

	"github.com/miekg/dns"
)

// ErrHostNotFound is returned when the target name does not exist.
var ErrHostNotFound = errors.New("hostname could not be resolved")

// Timeout bounds each DNS exchange.
const Timeout = 2 * time.Second

// Exchanger performs one DNS query/response round trip. The production
// implementation talks to the system's configured nameserver; tests
// substitute a fake.
type Exchanger interface {
	Exchange(ctx context.Context, msg *dns.Msg) (*dns.Msg, error)
}

type clientExchanger struct {
	client *dns.Client
	server string
}

func (e *clientExchanger) Exchange(ctx context.Context, msg *dns.Msg) (*dns.Msg, error) {
	in, _, err := e.client.ExchangeContext(ctx, msg, e.server)
	return in, err
}

// Resolver turns target strings into deduplicated address sets.
// It is stateless per call and keeps no cache.
type Resolver struct {
	exch Exchanger
}

// NewResolver builds a resolver against the first nameserver in the
// system resolver configuration.
func NewResolver() (*Resolver, error) {
	conf, err := dns.ClientConfigFromFile("/etc/resolv.conf")
	if err != nil {
		return nil, fmt.Errorf("read resolver configuration: %w", err)
	}

	if len(conf.Servers) == 0 {
		return nil, fmt.Errorf("no nameservers configured")
	}

	return NewResolverWith(&clientExchanger{
		client: &dns.Client{Timeout: Timeout},
		server: net.JoinHostPort(conf.Servers[0], conf.Port),
	}), nil
}

// NewResolverWith builds a resolver around an explicit exchanger.
func NewResolverWith(exch Exchanger) *Resolver {
	return &Resolver{exch: exch}
}

// Resolve returns the addresses the target maps to, in first-seen order
// with duplicates removed.
//
// A literal IP address is returned as a singleton without any query.
// Otherwise the name is looked up for A records, then independently for
// AAAA records; an empty AAAA answer is not an error, and an AAAA
// failure never discards the A results. NXDOMAIN on the A query is
// reported as ErrHostNotFound.
func (r *Resolver) Resolve(ctx context.Context, target string) ([]netip.Addr, error) {
	if ip, err := netip.ParseAddr(target); err == nil {
		return []netip.Addr{ip}, nil
	}

	var addrs []netip.Addr
	seen := make(map[netip.Addr]struct{})

	add := func(ip netip.Addr) {
		if _, ok := seen[ip]; ok {
			return
		}
		seen[ip] = struct{}{}
		addrs = append(addrs, ip)
	}

	in, err := r.query(ctx, target, dns.TypeA)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", target, err)
	}

	switch in.Rcode {
	case dns.RcodeSuccess:
	case dns.RcodeNameError:
		return nil, fmt.Errorf("%w: %s", ErrHostNotFound, target)
	default:
		return nil, fmt.Errorf("resolve %s: server returned %s", target, dns.RcodeToString[in.Rcode])
	}

	for _, rr := range in.Answer {
		if a, ok := rr.(*dns.A); ok {
			if ip, ok := netip.AddrFromSlice(a.A.To4()); ok {
				add(ip)
			}
		}
	}

	// The AAAA leg is independent: no answer or a failed query must not
	// turn a resolvable name into an error.
	if in, err := r.query(ctx, target, dns.TypeAAAA); err == nil && in.Rcode == dns.RcodeSuccess {
		for _, rr := range in.Answer {
			if aaaa, ok := rr.(*dns.AAAA); ok {
				if ip, ok := netip.AddrFromSlice(aaaa.AAAA.To16()); ok {
					add(ip)
				}
			}
		}
	}

	return addrs, nil
}

func (r *Resolver) query(ctx context.Context, name string, qtype uint16) (*dns.Msg, error) {
	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(name), qtype)

	return r.exch.Exchange(ctx, msg)
}
