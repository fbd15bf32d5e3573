package domain

// MovieTicket is a seat/price pair for one screening. It has no identity of
// its own; two tickets with the same seat and price are the same ticket.
type MovieTicket struct {
	seat  string
	price float64
}

func NewMovieTicket(seat string, price float64) MovieTicket {
	return MovieTicket{
		seat:  seat,
		price: price,
	}
}

func (t MovieTicket) Seat() string   { return t.seat }
func (t MovieTicket) Price() float64 { return t.price }
