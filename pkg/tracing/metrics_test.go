package tracing

import (
	"context"
	"testing"
	"time"

	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newTestMetrics() *AppMetrics {
	return NewAppMetrics(prometheus.NewRegistry())
}

func TestRecordPetOperation(t *testing.T) {
	RegisterTestingT(t)
	m := newTestMetrics()
	ctx := context.Background()

	m.RecordPetOperation(ctx, "Create")
	m.RecordPetOperation(ctx, "Create")
	m.RecordPetOperation(ctx, "Delete")

	Expect(testutil.ToFloat64(m.petOperations.WithLabelValues("Create"))).To(Equal(2.0))
	Expect(testutil.ToFloat64(m.petOperations.WithLabelValues("Delete"))).To(Equal(1.0))
}

func TestRecordDatabaseOperation(t *testing.T) {
	RegisterTestingT(t)
	m := newTestMetrics()
	ctx := context.Background()

	m.RecordDatabaseOperation(ctx, "List", "pet")
	m.RecordDatabaseOperation(ctx, "List", "pet")

	Expect(testutil.ToFloat64(m.databaseOperations.WithLabelValues("List", "pet"))).To(Equal(2.0))
}

func TestRecordRequest(t *testing.T) {
	RegisterTestingT(t)
	m := newTestMetrics()

	m.RecordRequest(context.Background(), "GET", "/pets", "200", 25*time.Millisecond)

	Expect(testutil.ToFloat64(m.requestTotal.WithLabelValues("GET", "/pets", "200"))).To(Equal(1.0))
}

func TestActiveConnectionsGauge(t *testing.T) {
	RegisterTestingT(t)
	m := newTestMetrics()
	ctx := context.Background()

	m.IncrementActiveConnections(ctx)
	m.IncrementActiveConnections(ctx)
	m.DecrementActiveConnections(ctx)

	Expect(testutil.ToFloat64(m.activeConnections)).To(Equal(1.0))
}
