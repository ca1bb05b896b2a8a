package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	roundsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lottery_rounds_created_total",
		Help: "Total number of lottery rounds created",
	})

	ticketsBooked = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lottery_tickets_booked_total",
		Help: "Total number of individual ticket numbers booked",
	})

	bookingConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lottery_booking_conflicts_total",
		Help: "Bookings rejected because a requested number was not available",
	})
)

func RoundCreated() {
	roundsCreated.Inc()
}

func TicketsBooked(n int) {
	ticketsBooked.Add(float64(n))
}

func BookingConflict() {
	bookingConflicts.Inc()
}
