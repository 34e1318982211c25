// Package metrics exposes prometheus counters for workspace commands, XP and
// toasts on a private registry.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Command results.
const (
	ResultOK        = "ok"
	ResultNotFound  = "not_found"
	ResultForbidden = "forbidden"
	ResultInvalid   = "invalid"
	ResultError     = "error"
)

// Recorder owns the registry and the counters registered on it.
type Recorder struct {
	Registry  *prometheus.Registry
	Commands  *prometheus.CounterVec
	XPAwarded prometheus.Counter
	Toasts    *prometheus.CounterVec
}

func New() *Recorder {
	r := &Recorder{
		Registry: prometheus.NewRegistry(),
		Commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "flowstate_commands_total",
			Help: "Workspace commands dispatched, by operation and result.",
		}, []string{"op", "result"}),
		XPAwarded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "flowstate_xp_awarded_total",
			Help: "XP awarded to users.",
		}),
		Toasts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "flowstate_toasts_total",
			Help: "Toasts pushed, by kind.",
		}, []string{"kind"}),
	}
	r.Registry.MustRegister(r.Commands, r.XPAwarded, r.Toasts)
	return r
}

// Command counts one dispatched operation. result is one of the Result
// constants.
func (r *Recorder) Command(op, result string) {
	if r == nil {
		return
	}
	r.Commands.WithLabelValues(op, result).Inc()
}

// XP adds a positive award; deductions are not counted.
func (r *Recorder) XP(delta int) {
	if r == nil || delta <= 0 {
		return
	}
	r.XPAwarded.Add(float64(delta))
}

func (r *Recorder) Toast(kind string) {
	if r == nil {
		return
	}
	r.Toasts.WithLabelValues(kind).Inc()
}

// Handler serves the registry in the prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.Registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (r *Recorder) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", r.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
