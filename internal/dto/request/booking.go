package request

type CreateBookingRequest struct {
	CustomerID string `json:"customer_id" validate:"required"`
	MovieCode  string `json:"movie_code" validate:"required"`
	Seat       string `json:"seat" validate:"required"`
}

type PayBookingRequest struct {
	CustomerID string `json:"customer_id" validate:"required"`
}

type CancelBookingRequest struct {
	CustomerID string `json:"customer_id" validate:"required"`
}
