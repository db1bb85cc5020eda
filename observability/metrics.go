package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/KomalYerkal/Preparation-of-Soap/instrumentation/hooking"
	"github.com/KomalYerkal/Preparation-of-Soap/lab"
)

var (
	registerOnce sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "soaplab",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "soaplab",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
	ingredientsAdded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "soaplab",
			Subsystem: "lab",
			Name:      "ingredients_added_total",
			Help:      "Ingredients poured into a vessel.",
		},
		[]string{"ingredient"},
	)
	labResets = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "soaplab",
			Subsystem: "lab",
			Name:      "resets_total",
			Help:      "Vessels emptied.",
		},
	)
	reactionsStarted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "soaplab",
			Subsystem: "lab",
			Name:      "reactions_started_total",
			Help:      "Saponifications started.",
		},
	)
	reactionsCompleted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "soaplab",
			Subsystem: "lab",
			Name:      "reactions_completed_total",
			Help:      "Saponifications that reached success.",
		},
	)
	staleReactions = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "soaplab",
			Subsystem: "lab",
			Name:      "stale_reactions_dropped_total",
			Help:      "Reaction completions dropped because the vessel was reset.",
		},
	)
)

// RegisterMetrics registers every collector with the default registry. It is
// safe to call more than once.
func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			httpRequests, httpDuration,
			ingredientsAdded, labResets,
			reactionsStarted, reactionsCompleted, staleReactions,
		)
	})
}

// RecordHTTPRequest counts one finished request.
func RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(method, path, statusLabel).Observe(duration.Seconds())
}

// LabMetrics is a lab hook that feeds the lab counters.
type LabMetrics struct{}

// NewLabMetrics registers the collectors and returns the hook.
func NewLabMetrics() LabMetrics {
	RegisterMetrics()
	return LabMetrics{}
}

// Func implements hooking.Hook.
func (LabMetrics) Func(ctx hooking.HookCtx) {
	switch ctx.Pos {
	case lab.HookPosIngredientAdded:
		if i, ok := ctx.Detail.(lab.Ingredient); ok {
			ingredientsAdded.WithLabelValues(i.String()).Inc()
		}
	case lab.HookPosReset:
		labResets.Inc()
	case lab.HookPosReactionStarted:
		reactionsStarted.Inc()
	case lab.HookPosReactionComplete:
		reactionsCompleted.Inc()
	case lab.HookPosStaleReactionDropped:
		staleReactions.Inc()
	}
}
