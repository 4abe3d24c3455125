package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	tasksLaunched = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "taskmux",
			Subsystem: "task",
			Name:      "launched_total",
			Help:      "Tasks successfully handed to a worker.",
		},
	)
	launchRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "taskmux",
			Subsystem: "task",
			Name:      "launch_rejected_total",
			Help:      "Launches that failed synchronously, by reason.",
		},
		[]string{"reason"},
	)
	tasksCompleted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "taskmux",
			Subsystem: "task",
			Name:      "completed_total",
			Help:      "Joined task outcomes by status.",
		},
		[]string{"status"},
	)
	lockWaitDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "taskmux",
			Subsystem: "task",
			Name:      "lock_wait_seconds",
			Help:      "Time spent blocked acquiring the shared mutex.",
			Buckets:   prometheus.DefBuckets,
		},
	)
	lockHoldDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "taskmux",
			Subsystem: "task",
			Name:      "lock_hold_seconds",
			Help:      "Time spent inside the critical section.",
			Buckets:   prometheus.DefBuckets,
		},
	)
	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "taskmux",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests on the serve surface.",
		},
		[]string{"app", "method", "path", "status"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			tasksLaunched, launchRejected, tasksCompleted,
			lockWaitDuration, lockHoldDuration, httpRequests,
		)
	})
}

func RecordTaskLaunched() {
	RegisterMetrics()
	tasksLaunched.Inc()
}

func RecordLaunchRejected(reason string) {
	RegisterMetrics()
	launchRejected.WithLabelValues(reason).Inc()
}

func RecordTaskOutcome(status string, lockWait, lockHold time.Duration) {
	RegisterMetrics()
	tasksCompleted.WithLabelValues(status).Inc()
	lockWaitDuration.Observe(lockWait.Seconds())
	lockHoldDuration.Observe(lockHold.Seconds())
}

func RecordHTTPRequest(app, method, path string, status int) {
	RegisterMetrics()
	httpRequests.WithLabelValues(app, method, path, strconv.Itoa(status)).Inc()
}
