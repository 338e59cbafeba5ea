// Package metrics holds the Prometheus instruments of the shim.
package metrics

import (
	"sort"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "xrizer"

var (
	// InterfaceLookups counts factory lookups by outcome ("found", "not_found", "error").
	InterfaceLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "export",
		Name:      "interface_lookups_total",
		Help:      "Interface version lookups through the factory by outcome",
	}, []string{"result"})

	// ExportedInterfaces counts vtables handed out, by interface name.
	ExportedInterfaces = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "export",
		Name:      "vtables_total",
		Help:      "Exported vtables allocated for the process lifetime",
	}, []string{"interface"})

	// Calls counts calls dispatched through exported vtables.
	Calls = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "export",
		Name:      "calls_total",
		Help:      "Calls dispatched through exported vtables",
	}, []string{"interface"})

	// StaleCalls counts calls whose owning object was already gone.
	StaleCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "export",
		Name:      "stale_calls_total",
		Help:      "Calls through a vtable whose owner could not be upgraded",
	}, []string{"interface"})

	// RecoveredPanics counts panics caught at the native boundary.
	RecoveredPanics = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "export",
		Name:      "recovered_panics_total",
		Help:      "Panics recovered inside exported functions",
	}, []string{"interface"})

	// ExtensionLoads counts extension function table loads by outcome.
	ExtensionLoads = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "extensions",
		Name:      "loads_total",
		Help:      "Extension function table loads by extension and outcome",
	}, []string{"extension", "result"})

	// LiveXDevLists is the number of device lists not yet destroyed.
	LiveXDevLists = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "extensions",
		Name:      "xdev_lists_live",
		Help:      "Device lists created and not yet destroyed",
	})

	// XDevListDestroys counts destroy calls issued for device lists.
	XDevListDestroys = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "extensions",
		Name:      "xdev_list_destroys_total",
		Help:      "Destroy calls issued for device lists",
	})
)

// Outcome labels.
const (
	ResultFound    = "found"
	ResultNotFound = "not_found"
	ResultError    = "error"
	ResultLoaded   = "loaded"
	ResultFailed   = "failed"
)

// Sample is one gathered metric value.
type Sample struct {
	Name   string
	Labels map[string]string
	Value  float64
}

// Snapshot gathers every xrizer metric from the default registry, sorted by name.
func Snapshot() ([]Sample, error) {
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return nil, err
	}

	var samples []Sample
	for _, mf := range families {
		name := mf.GetName()
		if len(name) < len(namespace) || name[:len(namespace)] != namespace {
			continue
		}
		for _, m := range mf.GetMetric() {
			labels := make(map[string]string, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			var v float64
			switch {
			case m.GetCounter() != nil:
				v = m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				v = m.GetGauge().GetValue()
			}
			samples = append(samples, Sample{Name: name, Labels: labels, Value: v})
		}
	}
	sort.SliceStable(samples, func(i, j int) bool { return samples[i].Name < samples[j].Name })
	return samples, nil
}
