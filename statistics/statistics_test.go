package statistics_test

import (
	"net/netip"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/probekit/tcpping/statistics"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name    string
		samples []float64
		p       float64
		want    float64
	}{
		{
			name:    "empty input returns zero",
			samples: nil,
			p:       50,
			want:    0,
		},
		{
			name:    "single sample",
			samples: []float64{7.5},
			p:       99,
			want:    7.5,
		},
		{
			name:    "median of odd count",
			samples: []float64{1, 2, 3, 4, 5},
			p:       50,
			want:    3,
		},
		{
			name:    "p90 interpolates between ranks",
			samples: []float64{1, 2, 3, 4, 5},
			p:       90,
			want:    4.6,
		},
		{
			name:    "p99 interpolates between ranks",
			samples: []float64{1, 2, 3, 4, 5},
			p:       99,
			want:    4.96,
		},
		{
			name:    "median of two samples",
			samples: []float64{1, 3},
			p:       50,
			want:    2,
		},
		{
			name:    "unsorted input",
			samples: []float64{5, 1, 4, 2, 3},
			p:       50,
			want:    3,
		},
		{
			name:    "p100 is the maximum",
			samples: []float64{1, 2, 3},
			p:       100,
			want:    3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := statistics.Percentile(tt.samples, tt.p)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestPercentileDoesNotMutateInput(t *testing.T) {
	samples := []float64{3, 1, 2}
	statistics.Percentile(samples, 50)

	assert.Equal(t, []float64{3, 1, 2}, samples)
}

func TestSummarize(t *testing.T) {
	ip := netip.MustParseAddr("10.0.0.1")

	t.Run("zero successes reports zero latency fields", func(t *testing.T) {
		rec := &statistics.Record{IP: ip, Failed: 3}

		s := statistics.Summarize(rec)

		assert.Equal(t, 3, s.Sent)
		assert.Equal(t, 0, s.Successful)
		assert.Equal(t, 3, s.Failed)
		assert.Equal(t, float64(100), s.LossPct)
		assert.Zero(t, s.Min)
		assert.Zero(t, s.Avg)
		assert.Zero(t, s.Max)
		assert.Zero(t, s.Mdev)
		assert.Zero(t, s.P50)
		assert.Zero(t, s.P90)
		assert.Zero(t, s.P99)
	})

	t.Run("constant samples collapse to the constant", func(t *testing.T) {
		rec := &statistics.Record{IP: ip, RTTs: []float64{4.2, 4.2, 4.2, 4.2}}

		s := statistics.Summarize(rec)

		assert.Equal(t, 4, s.Sent)
		assert.Zero(t, s.LossPct)
		assert.Equal(t, 4.2, s.Min)
		assert.Equal(t, 4.2, s.Avg)
		assert.Equal(t, 4.2, s.Max)
		assert.Zero(t, s.Mdev)
		assert.Equal(t, 4.2, s.P50)
		assert.Equal(t, 4.2, s.P90)
		assert.Equal(t, 4.2, s.P99)
	})

	t.Run("single success has zero deviation", func(t *testing.T) {
		rec := &statistics.Record{IP: ip, RTTs: []float64{12.5}}

		s := statistics.Summarize(rec)

		assert.Equal(t, 12.5, s.Min)
		assert.Equal(t, 12.5, s.Max)
		assert.Equal(t, 12.5, s.Avg)
		assert.Zero(t, s.Mdev)
	})

	t.Run("mixed outcomes", func(t *testing.T) {
		rec := &statistics.Record{IP: ip, RTTs: []float64{1, 2, 3, 4, 5}, Failed: 3}

		s := statistics.Summarize(rec)

		assert.Equal(t, 8, s.Sent)
		assert.Equal(t, 5, s.Successful)
		assert.Equal(t, 3, s.Failed)
		assert.InDelta(t, 37.5, s.LossPct, 1e-9)
		assert.Equal(t, float64(1), s.Min)
		assert.Equal(t, float64(3), s.Avg)
		assert.Equal(t, float64(5), s.Max)
		assert.InDelta(t, 1.5811, s.Mdev, 1e-4) // sample stdev of 1..5
		assert.InDelta(t, 3, s.P50, 1e-9)
		assert.InDelta(t, 4.6, s.P90, 1e-9)
		assert.InDelta(t, 4.96, s.P99, 1e-9)
	})
}

func TestRecordInvariant(t *testing.T) {
	rec := &statistics.Record{IP: netip.MustParseAddr("192.0.2.1")}

	rec.AddSuccess(1.0)
	rec.AddFailure()
	rec.AddSuccess(2.0)
	rec.AddFailure()

	assert.Equal(t, 4, rec.Sent())
	assert.Equal(t, 2, len(rec.RTTs))
	assert.Equal(t, 2, rec.Failed)
}

func TestBuildReport(t *testing.T) {
	ip1 := netip.MustParseAddr("192.0.2.1")
	ip2 := netip.MustParseAddr("192.0.2.2")

	records := []*statistics.Record{
		{IP: ip1, RTTs: []float64{1, 2}},
		nil,
		{IP: ip2},            // no outcomes, skipped
		{IP: ip2, Failed: 2}, // all failed, still summarized
	}

	report := statistics.BuildReport("example.com", 443, records)

	assert.Equal(t, "example.com", report.Target)
	assert.Equal(t, uint16(443), report.Port)
	assert.Len(t, report.Summaries, 2)
	assert.Equal(t, ip1, report.Summaries[0].IP)
	assert.Equal(t, ip2, report.Summaries[1].IP)
	assert.Equal(t, float64(100), report.Summaries[1].LossPct)
}

func TestNanoToMillisecond(t *testing.T) {
	tests := []struct {
		name string
		nano int64
		want float64
	}{
		{name: "zero", nano: 0, want: 0},
		{name: "one millisecond", nano: int64(time.Millisecond), want: 1.0},
		{name: "half millisecond keeps the fraction", nano: int64(500 * time.Microsecond), want: 0.5},
		{name: "one second", nano: int64(time.Second), want: 1000.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := statistics.NanoToMillisecond(tt.nano); got != tt.want {
				t.Errorf("NanoToMillisecond(%d) = %v, want %v", tt.nano, got, tt.want)
			}
		})
	}
}

func TestSecondsToDuration(t *testing.T) {
	tests := []struct {
		name    string
		seconds float64
		want    time.Duration
	}{
		{name: "zero", seconds: 0, want: 0},
		{name: "one second", seconds: 1, want: time.Second},
		{name: "fractional seconds", seconds: 1.5, want: 1500 * time.Millisecond},
		{name: "sub-second", seconds: 0.25, want: 250 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := statistics.SecondsToDuration(tt.seconds); got != tt.want {
				t.Errorf("SecondsToDuration(%v) = %v, want %v", tt.seconds, got, tt.want)
			}
		})
	}
}
