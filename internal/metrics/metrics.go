// Package metrics collects and exposes Prometheus metrics for store
// operations and persistence health.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector counts the store operations the view layer drives.
type Collector struct {
	registry *prometheus.Registry

	logins        prometheus.Counter
	loginFailures prometheus.Counter
	videosAdded   prometheus.Counter
	videosDeleted prometheus.Counter
	commentsAdded prometheus.Counter
	toastsShown   prometheus.Counter
	missedWrites  prometheus.Counter
}

// NewCollector builds a Collector with its own registry.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		logins: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "formcheck_logins_total",
			Help: "Successful logins.",
		}),
		loginFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "formcheck_login_failures_total",
			Help: "Rejected login attempts.",
		}),
		videosAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "formcheck_videos_added_total",
			Help: "Videos added to the catalog.",
		}),
		videosDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "formcheck_videos_deleted_total",
			Help: "Videos removed from the catalog.",
		}),
		commentsAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "formcheck_comments_added_total",
			Help: "Comments added to feedback threads.",
		}),
		toastsShown: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "formcheck_toasts_shown_total",
			Help: "Toast notifications displayed.",
		}),
		missedWrites: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "formcheck_persistence_missed_writes_total",
			Help: "Backing store writes that failed and were dropped.",
		}),
	}

	c.registry.MustRegister(
		c.logins,
		c.loginFailures,
		c.videosAdded,
		c.videosDeleted,
		c.commentsAdded,
		c.toastsShown,
		c.missedWrites,
	)

	return c
}

// Handler serves the /metrics endpoint for this collector's registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// RecordLogin counts a successful login.
func (c *Collector) RecordLogin() { c.logins.Inc() }

// RecordLoginFailure counts a rejected login attempt.
func (c *Collector) RecordLoginFailure() { c.loginFailures.Inc() }

// RecordVideoAdded counts a catalog insertion.
func (c *Collector) RecordVideoAdded() { c.videosAdded.Inc() }

// RecordVideoDeleted counts a catalog removal.
func (c *Collector) RecordVideoDeleted() { c.videosDeleted.Inc() }

// RecordCommentAdded counts a new feedback comment.
func (c *Collector) RecordCommentAdded() { c.commentsAdded.Inc() }

// RecordToastShown counts a displayed toast.
func (c *Collector) RecordToastShown() { c.toastsShown.Inc() }

// RecordMissedWrite counts a swallowed backing store failure.
func (c *Collector) RecordMissedWrite() { c.missedWrites.Inc() }
