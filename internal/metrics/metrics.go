package metrics

import (
    "net/http"
    "time"

    "github.com/prometheus/client_golang/prometheus"
    "github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
    attemptsTotal = prometheus.NewCounterVec(
        prometheus.CounterOpts{
            Namespace: "contextblog",
            Name:      "ai_attempts_total",
            Help:      "Candidate attempts by operation kind, model and outcome",
        },
        []string{"kind", "model", "outcome"},
    )

    attemptLatency = prometheus.NewHistogramVec(
        prometheus.HistogramOpts{
            Namespace: "contextblog",
            Name:      "ai_attempt_duration_seconds",
            Help:      "Duration of candidate attempts by operation kind and model",
            Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 20, 30},
        },
        []string{"kind", "model"},
    )

    resultsTotal = prometheus.NewCounterVec(
        prometheus.CounterOpts{
            Namespace: "contextblog",
            Name:      "ai_results_total",
            Help:      "Gateway results by operation kind and provenance (api, local_fallback, error_message)",
        },
        []string{"kind", "provenance"},
    )

    cacheEvents = prometheus.NewCounterVec(
        prometheus.CounterOpts{
            Namespace: "contextblog",
            Name:      "ai_cache_events_total",
            Help:      "Result cache events by operation kind and event (hit, miss, store, error)",
        },
        []string{"kind", "event"},
    )

    blogIndexSize = prometheus.NewGauge(
        prometheus.GaugeOpts{
            Namespace: "contextblog",
            Name:      "blog_index_size",
            Help:      "Blogs known to the engagement index at the last trending query",
        },
    )
)

// Init registers collectors.
func Init() {
    prometheus.MustRegister(attemptsTotal, attemptLatency, resultsTotal, cacheEvents, blogIndexSize)
}

// Handler returns the http.Handler for /metrics
func Handler() http.Handler { return promhttp.Handler() }

func ObserveAttempt(kind, model, outcome string, dur time.Duration) {
    attemptsTotal.WithLabelValues(kind, model, outcome).Inc()
    attemptLatency.WithLabelValues(kind, model).Observe(dur.Seconds())
}

func ObserveResult(kind, provenance string) { resultsTotal.WithLabelValues(kind, provenance).Inc() }

func CacheHit(kind string)   { cacheEvents.WithLabelValues(kind, "hit").Inc() }
func CacheMiss(kind string)  { cacheEvents.WithLabelValues(kind, "miss").Inc() }
func CacheStore(kind string) { cacheEvents.WithLabelValues(kind, "store").Inc() }
func CacheError(kind string) { cacheEvents.WithLabelValues(kind, "error").Inc() }

func SetBlogIndexSize(n int) { blogIndexSize.Set(float64(n)) }
