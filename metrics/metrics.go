package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coachhub_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "coachhub_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	SlotQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coachhub_slot_queries_total",
			Help: "Slot generator calls by whether any slot was open",
		},
		[]string{"result"},
	)

	BookingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coachhub_bookings_total",
			Help: "Bookings written, by resulting status and payment method",
		},
		[]string{"status", "payment_method"},
	)

	BookingRejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coachhub_booking_rejections_total",
			Help: "Booking attempts rejected, by error code",
		},
		[]string{"code"},
	)

	BookingCancellationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coachhub_booking_cancellations_total",
			Help: "Booking cancellations by policy outcome",
		},
		[]string{"policy"},
	)

	WebhookEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coachhub_payment_webhook_events_total",
			Help: "Payment webhook events by type and outcome",
		},
		[]string{"type", "outcome"},
	)

	RemindersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coachhub_reminders_total",
			Help: "Booking reminders by outcome",
		},
		[]string{"outcome"},
	)

	FeedEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coachhub_feed_counter_events_total",
			Help: "Counter reconciliation events by source and whether they were applied",
		},
		[]string{"source", "applied"},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordSlotQuery(open int) {
	result := "open"
	if open == 0 {
		result = "empty"
	}
	SlotQueriesTotal.WithLabelValues(result).Inc()
}

func RecordBooking(status, paymentMethod string) {
	BookingsTotal.WithLabelValues(status, paymentMethod).Inc()
}

func RecordBookingRejection(code string) {
	BookingRejectionsTotal.WithLabelValues(code).Inc()
}

func RecordBookingCancellation(policy string) {
	BookingCancellationsTotal.WithLabelValues(policy).Inc()
}

func RecordWebhookEvent(eventType, outcome string) {
	WebhookEventsTotal.WithLabelValues(eventType, outcome).Inc()
}

func RecordReminder(outcome string) {
	RemindersTotal.WithLabelValues(outcome).Inc()
}

func RecordFeedEvent(source string, applied bool) {
	a := "false"
	if applied {
		a = "true"
	}
	FeedEventsTotal.WithLabelValues(source, a).Inc()
}
