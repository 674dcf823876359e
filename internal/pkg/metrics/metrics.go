package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	LedgerOperationsTotal *prometheus.CounterVec
	ConsultationsTotal    *prometheus.CounterVec
	SlotReservationsTotal *prometheus.CounterVec

	// RealtimeLifecycleErrorsTotal counts lifecycle calls triggered from a
	// room whose error was logged and dropped.
	RealtimeLifecycleErrorsTotal *prometheus.CounterVec
	RoomConnections              prometheus.Gauge
	RoomMessagesTotal            *prometheus.CounterVec
	RoomSendFailuresTotal        prometheus.Counter

	NotificationPublishFailuresTotal prometheus.Counter
	SweeperCancelledTotal            prometheus.Counter
}

// NewCollector registers every metric on registerer. Tests pass a fresh
// prometheus.NewRegistry() so collectors can be built more than once.
func NewCollector(serviceName string, registerer prometheus.Registerer) *Collector {
	factory := promauto.With(registerer)
	return &Collector{
		LedgerOperationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "ledger",
			Name:      "operations_total",
			Help:      "Total ledger operations by transaction type and outcome.",
		}, []string{"transaction_type", "outcome"}),

		ConsultationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "consultation",
			Name:      "transitions_total",
			Help:      "Total consultation lifecycle transitions by resulting status.",
		}, []string{"status"}),

		SlotReservationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "slot",
			Name:      "reservations_total",
			Help:      "Total slot reservation attempts by outcome.",
		}, []string{"outcome"}),

		RealtimeLifecycleErrorsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "realtime",
			Name:      "lifecycle_errors_total",
			Help:      "Lifecycle calls fired from a room that failed. Alert if growing.",
		}, []string{"trigger"}),

		RoomConnections: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: serviceName,
			Subsystem: "realtime",
			Name:      "connections",
			Help:      "Current number of registered room connections.",
		}),

		RoomMessagesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "realtime",
			Name:      "messages_total",
			Help:      "Total inbound room messages by type.",
		}, []string{"type"}),

		RoomSendFailuresTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "realtime",
			Name:      "send_failures_total",
			Help:      "Sends that failed and dropped the recipient from its room.",
		}),

		NotificationPublishFailuresTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "notification",
			Name:      "publish_failures_total",
			Help:      "Notifications that could not be persisted or published.",
		}),

		SweeperCancelledTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "sweeper",
			Name:      "cancelled_total",
			Help:      "Consultations cancelled by the expiry sweeper.",
		}),
	}
}

func NewNopCollector() *Collector {
	return NewCollector("test", prometheus.NewRegistry())
}

func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
