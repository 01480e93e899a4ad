// Package metrics expone contadores Prometheus del motor de cuidado.
// Todos los métodos son nil-safe: un *Care nil no registra nada (tests).
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "petcare"

// Tipos de save: debounced (ventana de 1 unidad) o flush (close / cambio de mascota).
const (
	SaveDebounced = "debounced"
	SaveFlush     = "flush"
)

type Care struct {
	registry *prometheus.Registry

	ticks      prometheus.Counter
	actions    *prometheus.CounterVec
	saves      *prometheus.CounterVec
	loads      *prometheus.CounterVec
	activePets prometheus.Gauge
}

func NewCare() *Care {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	c := &Care{
		registry: reg,
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "decay_ticks_total",
			Help:      "Decay ticks applied to active pets.",
		}),
		actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "actions_total",
			Help:      "Care actions applied, by action.",
		}, []string{"action"}),
		saves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "saves_total",
			Help:      "Stats writes issued to the store, by kind and result.",
		}, []string{"kind", "result"}),
		loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "loads_total",
			Help:      "Stats reads on pet selection, by result (found, missing, failed).",
		}, []string{"result"}),
		activePets: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_pets",
			Help:      "Pets currently active (decay loop running).",
		}),
	}

	reg.MustRegister(c.ticks, c.actions, c.saves, c.loads, c.activePets)
	return c
}

func (c *Care) Tick() {
	if c == nil {
		return
	}
	c.ticks.Inc()
}

func (c *Care) Action(action string) {
	if c == nil {
		return
	}
	c.actions.WithLabelValues(action).Inc()
}

func (c *Care) Save(kind string, err error) {
	if c == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	c.saves.WithLabelValues(kind, result).Inc()
}

func (c *Care) Load(result string) {
	if c == nil {
		return
	}
	c.loads.WithLabelValues(result).Inc()
}

func (c *Care) Activated() {
	if c == nil {
		return
	}
	c.activePets.Inc()
}

func (c *Care) Deactivated() {
	if c == nil {
		return
	}
	c.activePets.Dec()
}

// Handler sirve /metrics con el registry propio (sin globals).
func (c *Care) Handler() http.Handler {
	if c == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}
