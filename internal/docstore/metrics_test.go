package docstore_test

import (
	"context"
	"testing"

	"github.com/dejobratic/storefront/internal/docstore"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

func TestNewMetrics(t *testing.T) {
	provider := sdkmetric.NewMeterProvider()
	meter := provider.Meter("test")

	m, err := docstore.NewMetrics(meter)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if m == nil {
		t.Fatal("expected metrics to be created")
	}
}

func TestRecordQuery(t *testing.T) {
	provider := sdkmetric.NewMeterProvider()
	meter := provider.Meter("test")

	m, err := docstore.NewMetrics(meter)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	// Recording must not panic regardless of operation label.
	m.RecordQuery(context.Background(), "get_cart_by_user", 0.042)
	m.RecordQuery(context.Background(), "", 0)
}
