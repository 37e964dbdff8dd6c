// Package metrics exposes render statistics as Prometheus metrics.
//
// Collector implements movie.Observer, so attaching it to a movie records
// every rendered frame:
//
//	vidar_frames_rendered_total   frames composited
//	vidar_layers_rendered_total   active layers rendered across all frames
//	vidar_frame_render_seconds    per-frame render latency
//	vidar_frames_written_total    frames persisted by the CLI
//	vidar_frame_write_errors_total
//	vidar_active_layers           active layers in the last frame
package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector records render metrics.
type Collector struct {
	framesRendered prometheus.Counter
	layersRendered prometheus.Counter
	framesWritten  prometheus.Counter
	writeErrors    prometheus.Counter

	frameLatency prometheus.Histogram
	activeLayers prometheus.Gauge
}

// NewCollector creates a collector and registers it with reg. A nil reg uses
// prometheus.DefaultRegisterer.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := &Collector{
		framesRendered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vidar_frames_rendered_total",
			Help: "Total number of frames composited",
		}),
		layersRendered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vidar_layers_rendered_total",
			Help: "Total number of layer renders across all frames",
		}),
		framesWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vidar_frames_written_total",
			Help: "Total number of frames written to disk",
		}),
		writeErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vidar_frame_write_errors_total",
			Help: "Total number of frames that failed to write",
		}),
		frameLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "vidar_frame_render_seconds",
			Help:    "Frame render latency in seconds",
			Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		activeLayers: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "vidar_active_layers",
			Help: "Number of active layers in the last rendered frame",
		}),
	}

	for _, m := range []prometheus.Collector{
		c.framesRendered, c.layersRendered, c.framesWritten,
		c.writeErrors, c.frameLatency, c.activeLayers,
	} {
		if err := reg.Register(m); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// ObserveFrame records one composited frame.
func (c *Collector) ObserveFrame(elapsed time.Duration, rendered int) {
	c.framesRendered.Inc()
	c.layersRendered.Add(float64(rendered))
	c.activeLayers.Set(float64(rendered))
	c.frameLatency.Observe(elapsed.Seconds())
}

// RecordWrite records the outcome of persisting one frame.
func (c *Collector) RecordWrite(err error) {
	if err != nil {
		c.writeErrors.Inc()
		return
	}
	c.framesWritten.Inc()
}

// Handler serves the metrics gathered by g in the Prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	if g == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string, g prometheus.Gatherer) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(g))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	slog.Info("serving metrics", slog.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
