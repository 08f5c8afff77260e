package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_Counters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.MessageAppended("send")
	m.MessageAppended("send")
	m.MessageAppended("standup")
	if got := testutil.ToFloat64(m.appended.WithLabelValues("send")); got != 2 {
		t.Fatalf("expected 2 send appends, got %v", got)
	}

	m.DeferredPending(1)
	m.DeferredPending(1)
	m.DeferredPending(-1)
	if got := testutil.ToFloat64(m.pending); got != 1 {
		t.Fatalf("expected 1 pending, got %v", got)
	}

	m.Request("/message/send", 200)
	if got := testutil.ToFloat64(m.requests.WithLabelValues("/message/send", "200")); got != 1 {
		t.Fatalf("expected 1 request, got %v", got)
	}
}

func TestMetrics_WatchGauge(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	m.WatchGauge("flockr_streams_open", "Open streams.", func() float64 { return 3 })

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, f := range families {
		if f.GetName() == "flockr_streams_open" {
			if v := f.GetMetric()[0].GetGauge().GetValue(); v != 3 {
				t.Fatalf("expected 3, got %v", v)
			}
			return
		}
	}
	t.Fatalf("gauge not registered")
}
