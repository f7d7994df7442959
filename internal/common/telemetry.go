package common

import (
	"fmt"
	"net"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	HTTPRequestSeconds *prometheus.HistogramVec
	FeedPollSeconds    *prometheus.HistogramVec
	FeedErrorsTotal    *prometheus.CounterVec
	StatusSamplesTotal *prometheus.CounterVec
}

func NewMetrics(registry *prometheus.Registry) *Metrics {
	metrics := &Metrics{
		HTTPRequestSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "resort_http_request_seconds",
				Help:    "Time to serve resort-web HTTP requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		),
		FeedPollSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "resort_feed_poll_seconds",
				Help:    "Time to fetch and decode one queue-count feed poll",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		),
		FeedErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "resort_feed_errors_total",
				Help: "Errors incurred from sustained polling of a queue-count feed",
			},
			[]string{"endpoint"},
		),
		StatusSamplesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "resort_status_samples_total",
				Help: "Lift status samples ingested per lift",
			},
			[]string{"lift_id"},
		),
	}

	registry.MustRegister(
		metrics.HTTPRequestSeconds,
		metrics.FeedPollSeconds,
		metrics.FeedErrorsTotal,
		metrics.StatusSamplesTotal,
	)

	return metrics
}

type TelemetryServer struct {
	addr     string
	mux      *http.ServeMux
	registry *prometheus.Registry

	server   *http.Server
	listener net.Listener
}

func NewTelemetryServer(addr string) *TelemetryServer {
	telemetry := &TelemetryServer{
		addr:     addr,
		registry: prometheus.NewRegistry(),
		mux:      http.NewServeMux(),
	}

	telemetry.mux.Handle(
		"/metrics",
		promhttp.HandlerFor(telemetry.registry, promhttp.HandlerOpts{}),
	)

	buildInfo := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "resort_build_info",
			Help: "Build metadata",
		},
		[]string{"version", "git_commit"},
	)

	telemetry.registry.MustRegister(
		collectors.NewGoCollector(), // Go runtime metrics
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		buildInfo,
	)

	buildInfo.WithLabelValues(Version, GitCommit).Set(1)

	telemetry.mux.HandleFunc("/debug/pprof/", pprof.Index)
	telemetry.mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	telemetry.mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	telemetry.mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	telemetry.mux.HandleFunc("/debug/pprof/trace", pprof.Trace)

	return telemetry
}

func (telemetry *TelemetryServer) GetRegistry() *prometheus.Registry {
	return telemetry.registry
}

func (telemetry *TelemetryServer) Start() error {
	telemetry.server = &http.Server{
		Addr:              telemetry.addr,
		Handler:           telemetry.mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	listener, err := net.Listen("tcp", telemetry.addr)
	if err != nil {
		return err
	}

	telemetry.listener = listener

	go telemetry.server.Serve(telemetry.listener)

	fmt.Printf("Telemetry server started: %s\n", telemetry.addr)
	return nil
}

func (telemetry TelemetryServer) Stop() error {
	if telemetry.server == nil {
		return nil
	}

	return telemetry.server.Close()
}
