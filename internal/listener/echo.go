// Package listener holds the downstream consumers of the domain's events:
// an in-process echo logger plus the out-of-process redis persister and
// email notifier fed by the message broker.
package listener

import (
	"go.uber.org/zap"

	"github.com/atherlangga/dddtix/internal/domain"
)

// RegisterEcho logs every customer event that goes through the given
// eventing, mainly to make the delivery visible during development.
func RegisterEcho(eventing domain.Eventing, log *zap.Logger) {
	echoLog := log.With(zap.String("listener", "echo"))
	eventing.Receive(domain.TopicCustomer, func(event domain.Event) {
		fields := []zap.Field{zap.String("topic", string(event.Topic()))}
		if customer := eventCustomer(event); customer != nil {
			fields = append(fields,
				zap.String("customer_id", customer.ID()),
				zap.Float64("deposit", customer.Deposit()),
			)
		}
		echoLog.Info("Got event", fields...)
	})
}

// eventCustomer pulls the customer reference out of any of the event kinds.
func eventCustomer(event domain.Event) *domain.Customer {
	switch e := event.(type) {
	case domain.BookingSucceeded:
		return e.Customer
	case domain.BookingFailed:
		return e.Customer
	case domain.PaymentSucceeded:
		return e.Customer
	case domain.PaymentFailed:
		return e.Customer
	case domain.CancellationSucceeded:
		return e.Customer
	case domain.CancellationFailed:
		return e.Customer
	case domain.DepositReduced:
		return e.Customer
	case domain.DepositRefunded:
		return e.Customer
	default:
		return nil
	}
}
