package network

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/lixenwraith/colormix/status"
)

const metricNamespace = "colormix"

// statusCollector exports a status registry as gauges
// Keys are discovered at scrape time, so the collector is unchecked
type statusCollector struct {
	reg *status.Registry
}

// Describe sends nothing; the metric set grows as components register keys
func (c *statusCollector) Describe(chan<- *prometheus.Desc) {}

func (c *statusCollector) Collect(ch chan<- prometheus.Metric) {
	snap := c.reg.Snapshot()
	for k, v := range snap.Bools {
		val := 0.0
		if v {
			val = 1
		}
		ch <- prometheus.MustNewConstMetric(gaugeDesc(k, nil), prometheus.GaugeValue, val)
	}
	for k, v := range snap.Ints {
		ch <- prometheus.MustNewConstMetric(gaugeDesc(k, nil), prometheus.GaugeValue, float64(v))
	}
	for k, v := range snap.Strings {
		// string metrics become info-style gauges carrying the value as a label
		ch <- prometheus.MustNewConstMetric(gaugeDesc(k, []string{"value"}), prometheus.GaugeValue, 1, v)
	}
}

// metricName maps "game.safe_color" to "colormix_game_safe_color"
func metricName(key string) string {
	return prometheus.BuildFQName(metricNamespace, "", strings.NewReplacer(".", "_", "-", "_").Replace(key))
}

func gaugeDesc(key string, labels []string) *prometheus.Desc {
	return prometheus.NewDesc(metricName(key), "status metric "+key, labels, nil)
}

// NewMetrics builds a Prometheus registry exporting reg plus Go runtime metrics
func NewMetrics(reg *status.Registry) *prometheus.Registry {
	pr := prometheus.NewRegistry()
	pr.MustRegister(
		&statusCollector{reg: reg},
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return pr
}
