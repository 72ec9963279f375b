// Package metrics exports Prometheus instrumentation for chash tables.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ResizeCount = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "chash_resizes_total",
		Help: "Total number of resizes by table",
	}, []string{"table"})

	Capacity = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "chash_capacity",
		Help: "Current bucket count by table",
	}, []string{"table"})

	Size = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "chash_size",
		Help: "Current key count by table",
	}, []string{"table"})
)

func init() {
	prometheus.MustRegister(ResizeCount)
	prometheus.MustRegister(Capacity)
	prometheus.MustRegister(Size)
}

// Observer records resizes of one table. It satisfies chash.Observer.
type Observer struct {
	Table string
}

func NewObserver(table string) *Observer {
	return &Observer{Table: table}
}

func (o *Observer) ObserveResize(oldCapacity, newCapacity, size int) {
	ResizeCount.WithLabelValues(o.Table).Inc()
	Capacity.WithLabelValues(o.Table).Set(float64(newCapacity))
	Size.WithLabelValues(o.Table).Set(float64(size))
}

func SetCapacity(table string, capacity int) {
	Capacity.WithLabelValues(table).Set(float64(capacity))
}

func SetSize(table string, size int) {
	Size.WithLabelValues(table).Set(float64(size))
}
