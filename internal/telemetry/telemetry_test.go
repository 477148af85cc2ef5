package telemetry

import (
	"context"
	"testing"
)

func validConfig() Config {
	return Config{
		ServiceName:    "storefront-test",
		ServiceVersion: "0.0.1",
		Environment:    "test",
		SampleRate:     1.0,
	}
}

func TestInitialize_RejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing service name", func(c *Config) { c.ServiceName = "" }},
		{"missing service version", func(c *Config) { c.ServiceVersion = "" }},
		{"negative sample rate", func(c *Config) { c.SampleRate = -0.1 }},
		{"sample rate above one", func(c *Config) { c.SampleRate = 1.5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			if _, err := Initialize(context.Background(), cfg); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestInitialize_EnablesRequestedSignals(t *testing.T) {
	tests := []struct {
		name        string
		tracing     bool
		metrics     bool
		wantTracing bool
		wantMetrics bool
	}{
		{"nothing enabled", false, false, false, false},
		{"tracing only", true, false, true, false},
		{"metrics only", false, true, false, true},
		{"both", true, true, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.EnableTracing = tt.tracing
			cfg.EnableMetrics = tt.metrics

			tel, err := Initialize(context.Background(), cfg,
				WithTraceExporter(NewNoopTraceExporter()),
				WithMetricExporter(NewNoopMetricExporter()),
			)
			if err != nil {
				t.Fatalf("failed to initialize telemetry: %v", err)
			}
			t.Cleanup(func() {
				if err := tel.Shutdown(context.Background()); err != nil {
					t.Errorf("shutdown failed: %v", err)
				}
			})

			if got := tel.TracerProvider() != nil; got != tt.wantTracing {
				t.Errorf("tracer provider present = %v, want %v", got, tt.wantTracing)
			}
			if got := tel.MeterProvider() != nil; got != tt.wantMetrics {
				t.Errorf("meter provider present = %v, want %v", got, tt.wantMetrics)
			}
		})
	}
}

func TestShutdown_WithoutInitialize(t *testing.T) {
	var tel Telemetry

	if err := tel.Shutdown(context.Background()); err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
}

func TestSamplerFor(t *testing.T) {
	tests := []struct {
		name string
		rate float64
		want string
	}{
		{"zero never samples", 0.0, "AlwaysOffSampler"},
		{"one always samples", 1.0, "AlwaysOnSampler"},
		{"fraction is parent based", 0.25, "ParentBased{root:TraceIDRatioBased{0.25},remoteParentSampled:AlwaysOnSampler,remoteParentNotSampled:AlwaysOffSampler,localParentSampled:AlwaysOnSampler,localParentNotSampled:AlwaysOffSampler}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := samplerFor(tt.rate).Description(); got != tt.want {
				t.Errorf("expected sampler %q, got %q", tt.want, got)
			}
		})
	}
}
