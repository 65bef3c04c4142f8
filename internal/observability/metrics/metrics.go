package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	metricPrefix = "wattchart_"

	resultSuccess = "success"
	resultError   = "error"
)

var (
	registerOnce sync.Once

	runsTotal    *prometheus.CounterVec
	runLatency   prometheus.Histogram
	readingsRead prometheus.Counter
	rowsRejected prometheus.Counter
	weatherTotal *prometheus.CounterVec
	rendersTotal *prometheus.CounterVec
)

// Init registers pipeline metrics. Safe to call more than once.
func Init() {
	registerOnce.Do(func() {
		runsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "runs_total",
				Help: "Total pipeline runs by result",
			},
			[]string{"result"},
		)
		runLatency = prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "run_latency_seconds",
				Help:    "End-to-end run latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
		)
		readingsRead = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "readings_parsed_total",
				Help: "Total CSV readings parsed",
			},
		)
		rowsRejected = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "rows_rejected_total",
				Help: "Total malformed CSV rows rejected",
			},
		)
		weatherTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "weather_fetch_total",
				Help: "Total weather archive fetches by result",
			},
			[]string{"result"},
		)
		rendersTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "renders_total",
				Help: "Total rendered artifacts by format",
			},
			[]string{"format"},
		)

		prometheus.MustRegister(
			runsTotal,
			runLatency,
			readingsRead,
			rowsRejected,
			weatherTotal,
			rendersTotal,
		)
	})
}

// Serve exposes /metrics on addr. Blocks; run it in a goroutine.
func Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(addr, mux)
}

// ObserveRun records one pipeline run.
func ObserveRun(err error, elapsed time.Duration) {
	if runsTotal == nil {
		return
	}
	result := resultSuccess
	if err != nil {
		result = resultError
	}
	runsTotal.WithLabelValues(result).Inc()
	runLatency.Observe(elapsed.Seconds())
}

// AddReadings counts parsed readings.
func AddReadings(n int) {
	if readingsRead != nil {
		readingsRead.Add(float64(n))
	}
}

// IncRowRejected counts one rejected row.
func IncRowRejected() {
	if rowsRejected != nil {
		rowsRejected.Inc()
	}
}

// ObserveWeatherFetch records a weather fetch outcome.
func ObserveWeatherFetch(err error) {
	if weatherTotal == nil {
		return
	}
	if err != nil {
		weatherTotal.WithLabelValues(resultError).Inc()
		return
	}
	weatherTotal.WithLabelValues(resultSuccess).Inc()
}

// IncRender counts one rendered artifact by format.
func IncRender(format string) {
	if rendersTotal != nil {
		rendersTotal.WithLabelValues(format).Inc()
	}
}
