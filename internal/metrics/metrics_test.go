package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/mmynk/canteen/internal/models"
)

func TestMetrics(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.OrderPlaced(75)
	m.OrderPlaced(25)
	m.StatusChanged(models.StatusCompleted)
	m.SetMenuItems(4)
	m.ObserveRequest("GET", "/api/menu", 200, 5*time.Millisecond)

	if got := testutil.ToFloat64(m.ordersPlaced); got != 2 {
		t.Errorf("orders placed = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.revenue); got != 100 {
		t.Errorf("revenue = %v, want 100", got)
	}
	if got := testutil.ToFloat64(m.statusChanges.WithLabelValues("completed")); got != 1 {
		t.Errorf("completed transitions = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.menuItems); got != 4 {
		t.Errorf("menu items = %v, want 4", got)
	}
	if got := testutil.ToFloat64(m.requests.WithLabelValues("GET", "/api/menu", "200")); got != 1 {
		t.Errorf("requests = %v, want 1", got)
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.OrderPlaced(1)
	m.StatusChanged(models.StatusPending)
	m.SetMenuItems(1)
	m.ObserveRequest("GET", "/", 200, time.Millisecond)
}
