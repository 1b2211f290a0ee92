package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BookingsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "parkspot_bookings_created_total",
		Help: "Number of bookings created.",
	})

	BookingRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "parkspot_booking_rejections_total",
		Help: "Number of booking attempts rejected, by reason.",
	}, []string{"reason"})

	BookingsExpired = promauto.NewCounter(prometheus.CounterOpts{
		Name: "parkspot_bookings_expired_total",
		Help: "Number of bookings cancelled by the expiry job.",
	})

	Notifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "parkspot_notifications_total",
		Help: "Notification deliveries attempted, by channel and outcome.",
	}, []string{"channel", "outcome"})
)
