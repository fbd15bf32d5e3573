package listener

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/atherlangga/dddtix/internal/messaging"
)

// MailDialer sends a composed message; satisfied by *gomail.Dialer.
type MailDialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// EmailNotifier mails the customer about every event that concerns them.
// Customer ids are email addresses, so the id doubles as the recipient.
type EmailNotifier struct {
	dialer MailDialer
	from   string
	log    *zap.Logger
}

func NewEmailNotifier(dialer MailDialer, from string, log *zap.Logger) *EmailNotifier {
	return &EmailNotifier{
		dialer: dialer,
		from:   from,
		log:    log.With(zap.String("listener", "email-notifier")),
	}
}

// NewEmailDialer builds the SMTP dialer from plain settings.
func NewEmailDialer(host string, port int, user, password string) *gomail.Dialer {
	return gomail.NewDialer(host, port, user, password)
}

// HandleEnvelope sends the notification for envelopes that carry a customer.
func (n *EmailNotifier) HandleEnvelope(ctx context.Context, envelope messaging.Envelope) error {
	if envelope.Customer == nil {
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", envelope.Customer.ID)
	m.SetHeader("Subject", fmt.Sprintf("%s !", envelope.Name))
	m.SetBody("text/plain", fmt.Sprintf("Received event: %s.", envelope.Name))

	if err := n.dialer.DialAndSend(m); err != nil {
		n.log.Error("Failed to send notification mail",
			zap.Error(err),
			zap.String("customer_id", envelope.Customer.ID),
			zap.String("event", envelope.Name),
		)
		return fmt.Errorf("send mail to %s: %w", envelope.Customer.ID, err)
	}
	return nil
}
