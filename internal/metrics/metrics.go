package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	notificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "unobhala_payment_notifications_total",
			Help: "Payment notifications by flow and outcome",
		},
		[]string{"flow", "result"},
	)

	checkoutOps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "unobhala_checkout_operations_total",
			Help: "Checkout engine operations",
		},
		[]string{"operation", "status"},
	)
)

// RecordNotification counts an ITN outcome, e.g. ("order", "paid") or ("admission", "amount_mismatch").
func RecordNotification(flow, result string) {
	notificationsTotal.WithLabelValues(flow, result).Inc()
}

func RecordCheckout(operation string, ok bool) {
	status := "success"
	if !ok {
		status = "error"
	}
	checkoutOps.WithLabelValues(operation, status).Inc()
}

// Handler exposes the default prometheus registry for /metrics.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
