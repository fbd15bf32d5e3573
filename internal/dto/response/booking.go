package response

import "github.com/atherlangga/dddtix/internal/domain"

// BookingOutcome reports the business result of a book/pay/cancel call plus
// the customer's state after it, in its serialized form.
type BookingOutcome struct {
	Succeeded bool                    `json:"succeeded"`
	Customer  domain.CustomerSnapshot `json:"customer"`
}

func NewBookingOutcome(succeeded bool, customer *domain.Customer) BookingOutcome {
	return BookingOutcome{
		Succeeded: succeeded,
		Customer:  customer.Snapshot(),
	}
}
