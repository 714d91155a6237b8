package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Query results recorded by Metrics.ObserveQuery.
const (
	ResultFound           = "found"
	ResultStationNotFound = "station_not_found"
	ResultNoRoute         = "no_route"
	ResultCanceled        = "canceled"
)

type Metrics struct {
	Queries       *prometheus.CounterVec
	QueryDuration prometheus.Histogram
	CacheHits     prometheus.Counter
	CacheMisses   prometheus.Counter
	Stations      prometheus.Gauge
	Connections   prometheus.Gauge
	Requests      *prometheus.CounterVec
}

// New creates the collectors and registers them with reg. A nil reg leaves
// them unregistered.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tubemap_path_queries_total",
			Help: "Shortest path queries by result",
		}, []string{"result"}),
		QueryDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "tubemap_path_query_duration_seconds",
			Help:    "Time spent answering shortest path queries",
			Buckets: prometheus.ExponentialBuckets(0.00005, 4, 8),
		}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tubemap_path_cache_hits_total",
			Help: "Shortest path queries served from the cache",
		}),
		CacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tubemap_path_cache_misses_total",
			Help: "Shortest path queries that ran a search",
		}),
		Stations: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tubemap_graph_stations",
			Help: "Stations present in the neighbour graph",
		}),
		Connections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tubemap_map_connections",
			Help: "Connections loaded from the map",
		}),
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tubemap_http_requests_total",
			Help: "HTTP requests by route and status code",
		}, []string{"route", "code"}),
	}

	if reg != nil {
		reg.MustRegister(
			m.Queries,
			m.QueryDuration,
			m.CacheHits,
			m.CacheMisses,
			m.Stations,
			m.Connections,
			m.Requests,
		)
	}
	return m
}

func (m *Metrics) ObserveQuery(result string, started time.Time) {
	if m == nil {
		return
	}
	m.Queries.WithLabelValues(result).Inc()
	m.QueryDuration.Observe(time.Since(started).Seconds())
}

func (m *Metrics) ObserveCache(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.CacheHits.Inc()
	} else {
		m.CacheMisses.Inc()
	}
}

func (m *Metrics) SetGraphSize(stations, connections int) {
	if m == nil {
		return
	}
	m.Stations.Set(float64(stations))
	m.Connections.Set(float64(connections))
}
