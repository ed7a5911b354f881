package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	GeocodeSeconds     *prometheus.HistogramVec
	GeocodeFailures    prometheus.Counter
	PositionUpdates    prometheus.Counter
	GeofenceTriggers   prometheus.Counter
	MonitoredReminders prometheus.Gauge
	Notifications      *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		GeocodeSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "waypost_geocode_request_duration_seconds",
			Help:    "Duration of requests to the geocoding provider API.",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
		GeocodeFailures: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "waypost_geocode_failures_total",
			Help: "Total number of addresses the geocoding provider could not resolve.",
		}),
		PositionUpdates: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "waypost_position_updates_total",
			Help: "Total number of position fixes evaluated against the monitoring set.",
		}),
		GeofenceTriggers: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "waypost_geofence_triggers_total",
			Help: "Total number of reminders fired by proximity entry.",
		}),
		MonitoredReminders: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "waypost_monitored_reminders",
			Help: "Current number of reminders armed for proximity monitoring.",
		}),
		Notifications: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "waypost_notifications_dispatched_total",
			Help: "Total number of notification dispatch attempts.",
		}, []string{"status"}),
	}
}
