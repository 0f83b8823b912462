// Package metrics exposes mapper activity as Prometheus metrics.
//
//	reg := prometheus.NewRegistry()
//	c, err := metrics.New(reg, "bimapper")
//	m, err := mapper.New(mapper.WithEvents(c.Events()))
package metrics

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/prometheus/client_golang/prometheus"

	"bimapper/mapper"
)

// Collector holds the mapper metrics.
type Collector struct {
	cacheLookups   *prometheus.CounterVec
	cacheEvictions prometheus.Counter
	skipped        *prometheus.CounterVec
	calls          *prometheus.CounterVec
	elements       prometheus.Counter
	duration       prometheus.Histogram
}

// New creates the metrics and registers them on reg.
func New(reg prometheus.Registerer, namespace string) (*Collector, error) {
	c := &Collector{
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "metadata_cache_lookups_total",
			Help:      "Metadata cache lookups by result.",
		}, []string{"result"}),
		cacheEvictions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "metadata_cache_evictions_total",
			Help:      "Type pairs evicted from the metadata cache.",
		}),
		skipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "properties_skipped_total",
			Help:      "Correspondences not applied, by reason.",
		}, []string{"reason"}),
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "calls_total",
			Help:      "Top level mapping calls by outcome.",
		}, []string{"outcome"}),
		elements: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "elements_mapped_total",
			Help:      "Collection elements mapped.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "call_duration_seconds",
			Help:      "Duration of top level mapping calls.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}),
	}

	for _, col := range []prometheus.Collector{
		c.cacheLookups, c.cacheEvictions, c.skipped, c.calls, c.elements, c.duration,
	} {
		if err := reg.Register(col); err != nil {
			return nil, fmt.Errorf("register metrics: %w", err)
		}
	}

	return c, nil
}

// Events returns mapper hooks feeding the collector.
func (c *Collector) Events() mapper.Events {
	return mapper.Events{
		CacheHit: func(_, _ reflect.Type) {
			c.cacheLookups.WithLabelValues("hit").Inc()
		},
		CacheMiss: func(_, _ reflect.Type) {
			c.cacheLookups.WithLabelValues("miss").Inc()
		},
		CacheEvict: func(_, _ reflect.Type) {
			c.cacheEvictions.Inc()
		},
		FieldSkipped: func(_, _ reflect.Type, _, reason string) {
			c.skipped.WithLabelValues(reason).Inc()
		},
		Done: c.done,
	}
}

func (c *Collector) done(s mapper.Stats) {
	c.calls.WithLabelValues(Outcome(s.Err)).Inc()
	c.elements.Add(float64(s.Elements))
	c.duration.Observe(s.Duration.Seconds())
}

// Outcome labels a call result: "ok", the failure kind, or "error".
func Outcome(err error) string {
	if err == nil {
		return "ok"
	}

	var me *mapper.Error
	if errors.As(err, &me) {
		return me.Kind.String()
	}

	return "error"
}
