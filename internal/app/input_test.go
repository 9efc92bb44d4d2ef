package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPermuteArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "flags already first",
			args: []string{"-p", "443", "example.com"},
			want: []string{"-p", "443", "example.com"},
		},
		{
			name: "flags after target",
			args: []string{"example.com", "-p", "443"},
			want: []string{"-p", "443", "example.com"},
		},
		{
			name: "long flags after target",
			args: []string{"example.com", "--port", "443", "--count", "10"},
			want: []string{"--port", "443", "--count", "10", "example.com"},
		},
		{
			name: "bool flag after target",
			args: []string{"example.com", "-j"},
			want: []string{"-j", "example.com"},
		},
		{
			name: "mixed flags around target",
			args: []string{"-j", "example.com", "-i", "0.5"},
			want: []string{"-j", "-i", "0.5", "example.com"},
		},
		{
			name: "target only",
			args: []string{"example.com"},
			want: []string{"example.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, permuteArgs(tt.args))
			assert.Equal(t, tt.want, tt.args)
		})
	}
}

func TestPermuteArgsMalformed(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{
			name: "value flag at end without value",
			args: []string{"example.com", "-p"},
		},
		{
			name: "value flag followed by another flag",
			args: []string{"-p", "-j", "example.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, permuteArgs(tt.args), ErrUsageRequested)
		})
	}
}

func TestValidateOptions(t *testing.T) {
	tests := []struct {
		name     string
		port     uint
		count    uint
		interval float64
		timeout  float64
		wantErr  bool
	}{
		{name: "defaults", port: 80, count: 4, interval: 1, timeout: 2, wantErr: false},
		{name: "port zero", port: 0, count: 4, interval: 1, timeout: 2, wantErr: true},
		{name: "port too large", port: 65536, count: 4, interval: 1, timeout: 2, wantErr: true},
		{name: "port upper bound", port: 65535, count: 4, interval: 1, timeout: 2, wantErr: false},
		{name: "count zero", port: 80, count: 0, interval: 1, timeout: 2, wantErr: true},
		{name: "negative interval", port: 80, count: 4, interval: -0.1, timeout: 2, wantErr: true},
		{name: "zero interval allowed", port: 80, count: 4, interval: 0, timeout: 2, wantErr: false},
		{name: "zero timeout", port: 80, count: 4, interval: 1, timeout: 0, wantErr: true},
		{name: "fractional timing", port: 443, count: 1, interval: 0.25, timeout: 0.5, wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateOptions(tt.port, tt.count, tt.interval, tt.timeout)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
