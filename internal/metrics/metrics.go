// Package metrics exposes prometheus instrumentation of the order desk.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	resultOK     = "ok"
	resultFailed = "failed"
)

// Metrics holds every collector of the service.
type Metrics struct {
	calculations    *prometheus.CounterVec
	submissions     *prometheus.CounterVec
	autosaves       *prometheus.CounterVec
	referenceLoads  *prometheus.HistogramVec
	searchSupersede prometheus.Counter
	autosaveBacklog prometheus.Gauge
	activeDrafts    prometheus.Gauge
}

// New registers collectors with the default registerer.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers collectors with registerer. Collectors that are already
// registered are reused.
func NewWithRegisterer(registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &Metrics{
		calculations: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "orderdesk_calculations_total",
			Help: "Order calculations by result",
		}, []string{"result"}),
		submissions: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "orderdesk_submissions_total",
			Help: "Order submissions by result",
		}, []string{"result"}),
		autosaves: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "orderdesk_autosaves_total",
			Help: "Draft autosaves by result",
		}, []string{"result"}),
		referenceLoads: registerHistogramVec(registerer, prometheus.HistogramOpts{
			Name:    "orderdesk_reference_load_seconds",
			Help:    "Reference data load duration by source",
			Buckets: prometheus.DefBuckets,
		}, []string{"source"}),
		searchSupersede: registerCounter(registerer, prometheus.CounterOpts{
			Name: "orderdesk_search_superseded_total",
			Help: "Product searches cancelled by a newer search of the same session",
		}),
		autosaveBacklog: registerGauge(registerer, prometheus.GaugeOpts{
			Name: "orderdesk_autosave_backlog",
			Help: "Drafts waiting to be persisted",
		}),
		activeDrafts: registerGauge(registerer, prometheus.GaugeOpts{
			Name: "orderdesk_active_drafts",
			Help: "Drafts held in memory",
		}),
	}
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	collector := prometheus.NewCounter(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Counter)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerGauge(registerer prometheus.Registerer, opts prometheus.GaugeOpts) prometheus.Gauge {
	collector := prometheus.NewGauge(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Gauge)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register gauge %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogramVec(registerer prometheus.Registerer, opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	collector := prometheus.NewHistogramVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.HistogramVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram vec %q: %v", opts.Name, err))
	}
	return collector
}

func result(err error) string {
	if err != nil {
		return resultFailed
	}
	return resultOK
}

// RecordCalculation counts a calculation attempt.
func (m *Metrics) RecordCalculation(err error) {
	m.calculations.WithLabelValues(result(err)).Inc()
}

// RecordSubmission counts a submission attempt.
func (m *Metrics) RecordSubmission(err error) {
	m.submissions.WithLabelValues(result(err)).Inc()
}

// RecordAutosave counts a persisted draft snapshot.
func (m *Metrics) RecordAutosave(err error) {
	m.autosaves.WithLabelValues(result(err)).Inc()
}

// RecordReferenceLoad observes how long loading reference data from source took.
func (m *Metrics) RecordReferenceLoad(source string, d time.Duration) {
	m.referenceLoads.WithLabelValues(source).Observe(d.Seconds())
}

// RecordSearchSuperseded counts a search cancelled by a newer one.
func (m *Metrics) RecordSearchSuperseded() {
	m.searchSupersede.Inc()
}

// SetAutosaveBacklog reports pending autosaves.
func (m *Metrics) SetAutosaveBacklog(n int) {
	m.autosaveBacklog.Set(float64(n))
}

// SetActiveDrafts reports drafts held in memory.
func (m *Metrics) SetActiveDrafts(n int) {
	m.activeDrafts.Set(float64(n))
}
