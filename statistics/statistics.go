// Package statistics accumulates per-address probe results and derives
// the summary figures reported at the end of a run.
package statistics

import (
	"math"
	"net/netip"
	"slices"
	"time"
)

// RunInfo describes one invocation: the target as the user typed it,
// the port and the addresses it resolved to.
type RunInfo struct {
	Target    string
	Port      uint16
	Addresses []netip.Addr
	Count     uint
}

// ProbeEvent is a single live probe result, emitted as it happens.
type ProbeEvent struct {
	Round  int
	Target string
	IP     netip.Addr
	Port   uint16
	Time   time.Time
	OK     bool
	RTT    float64 // milliseconds, only meaningful when OK
	Reason string  // failure reason, only meaningful when !OK
}

// Record accumulates outcomes for a single resolved address.
// Successful RTTs are kept in probe order; failures are only counted.
type Record struct {
	IP     netip.Addr
	RTTs   []float64 // milliseconds
	Failed int
}

// AddSuccess appends a successful round-trip time in milliseconds.
func (r *Record) AddSuccess(rtt float64) {
	r.RTTs = append(r.RTTs, rtt)
}

// AddFailure counts a probe that did not establish a connection.
func (r *Record) AddFailure() {
	r.Failed++
}

// Sent returns the total number of probes recorded for this address.
func (r *Record) Sent() int {
	return len(r.RTTs) + r.Failed
}

// Summary holds the derived statistics for one address.
// All latency fields are in milliseconds and stay zero when the
// address never connected successfully.
type Summary struct {
	IP         netip.Addr `json:"ip"`
	Sent       int        `json:"sent"`
	Successful int        `json:"successful"`
	Failed     int        `json:"failed"`
	LossPct    float64    `json:"lossPercent"`
	Min        float64    `json:"min"`
	Avg        float64    `json:"avg"`
	Max        float64    `json:"max"`
	Mdev       float64    `json:"mdev"`
	P50        float64    `json:"p50"`
	P90        float64    `json:"p90"`
	P99        float64    `json:"p99"`
}

// Report is the final per-address breakdown for a run, in resolution order.
type Report struct {
	Target    string
	Port      uint16
	Summaries []Summary
}

// Summarize derives the summary statistics for a single address record.
func Summarize(rec *Record) Summary {
	s := Summary{
		IP:         rec.IP,
		Sent:       rec.Sent(),
		Successful: len(rec.RTTs),
		Failed:     rec.Failed,
	}

	if s.Sent > 0 {
		s.LossPct = float64(s.Failed) / float64(s.Sent) * 100
	}

	if s.Successful == 0 {
		return s
	}

	s.Min = slices.Min(rec.RTTs)
	s.Max = slices.Max(rec.RTTs)

	var sum float64
	for _, rtt := range rec.RTTs {
		sum += rtt
	}
	s.Avg = sum / float64(s.Successful)

	s.Mdev = stdev(rec.RTTs, s.Avg)
	s.P50 = Percentile(rec.RTTs, 50)
	s.P90 = Percentile(rec.RTTs, 90)
	s.P99 = Percentile(rec.RTTs, 99)

	return s
}

// BuildReport summarizes every record, preserving the given order.
// Records that saw no outcomes are skipped.
func BuildReport(target string, port uint16, records []*Record) *Report {
	report := &Report{Target: target, Port: port}

	for _, rec := range records {
		if rec == nil || rec.Sent() == 0 {
			continue
		}
		report.Summaries = append(report.Summaries, Summarize(rec))
	}

	return report
}

// stdev is the sample standard deviation with an n-1 denominator,
// zero when fewer than two samples exist.
func stdev(samples []float64, mean float64) float64 {
	if len(samples) < 2 {
		return 0
	}

	var sqsum float64
	for _, v := range samples {
		d := v - mean
		sqsum += d * d
	}

	return math.Sqrt(sqsum / float64(len(samples)-1))
}

// Percentile returns the p-th percentile of samples using linear
// interpolation between closest ranks: the value at fractional rank
// p/100*(n-1) in the sorted sequence, interpolated between the two
// neighboring samples. Returns 0 for an empty input.
func Percentile(samples []float64, p float64) float64 {
	if len(samples) == 0 {
		return 0
	}

	sorted := slices.Clone(samples)
	slices.Sort(sorted)

	if len(sorted) == 1 {
		return sorted[0]
	}

	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))

	if lo == hi {
		return sorted[lo]
	}

	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

// NanoToMillisecond returns an amount of milliseconds from nanoseconds.
// Using duration.Milliseconds() is not an option, because it drops
// decimal points, returning an int.
func NanoToMillisecond(nano int64) float64 {
	return float64(nano) / float64(time.Millisecond)
}

// SecondsToDuration returns the corresponding duration from seconds expressed with a float.
func SecondsToDuration(seconds float64) time.Duration {
	return time.Duration(1000*seconds) * time.Millisecond
}
