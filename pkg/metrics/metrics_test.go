package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordingDisabledIsNoOp(t *testing.T) {
	// Must not panic before Enable.
	RecordNavigation("/users/:id", "match")
	ObserveResolveDuration("/users/:id", 0.001)
	RecordRouteError("/missing")
}

func TestEnableAndRecord(t *testing.T) {
	reg := prometheus.NewRegistry()
	Enable(WithRegistry(reg), WithNamespace("test"))

	RecordNavigation("/users/:id", "match")
	RecordNavigation("/users/:id", "match")
	RecordRouteError("/missing")
	ObserveResolveDuration("/users/:id", 0.002)

	if !Enabled() {
		t.Fatal("Enabled() = false after Enable")
	}

	m := load()
	got := testutil.ToFloat64(m.navigationsTotal.WithLabelValues("/users/:id", "match"))
	if got != 2 {
		t.Errorf("navigations_total = %v, want 2", got)
	}
	got = testutil.ToFloat64(m.routeErrors.WithLabelValues("/missing"))
	if got != 1 {
		t.Errorf("route_errors_total = %v, want 1", got)
	}
}

func TestEnableFirstCallWins(t *testing.T) {
	// The registry from TestEnableAndRecord is already installed; a second
	// Enable with the default registry must not re-register collectors
	// (which would panic on duplicate registration).
	Enable()
}
