// Package mailer is the best-effort email collaborator. Sending failures are
// wrapped as NotificationError so callers can log them and carry on; a failed
// send never rolls back the action that triggered it.
package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"local-services-server/config"
	"local-services-server/models"
	"local-services-server/types"
)

// Sender delivers a composed message. The production implementation dials
// SMTP; tests substitute a failing or recording fake.
type Sender interface {
	Send(m *gomail.Message) error
}

type smtpSender struct {
	dialer *gomail.Dialer
}

func (s *smtpSender) Send(m *gomail.Message) error {
	return s.dialer.DialAndSend(m)
}

// Mailer composes and sends notification emails
type Mailer struct {
	sender Sender
	from   string
}

// New builds a Mailer from SMTP configuration
func New(cfg config.SMTPConfig) *Mailer {
	return &Mailer{
		sender: &smtpSender{dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)},
		from:   cfg.From,
	}
}

// NewWithSender builds a Mailer with a custom Sender
func NewWithSender(sender Sender, from string) *Mailer {
	return &Mailer{sender: sender, from: from}
}

// NotifyBookingCreated emails the worker a summary of a freshly created
// booking. Any failure is returned as *types.NotificationError.
func (m *Mailer) NotifyBookingCreated(worker, customer *models.User, booking *models.Booking) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", worker.Email)
	msg.SetHeader("Subject", "New Booking Confirmation")
	msg.SetBody("text/plain", BookingNotificationBody(worker, customer, booking))

	if err := m.sender.Send(msg); err != nil {
		return &types.NotificationError{Err: err}
	}
	return nil
}

// BookingNotificationBody renders the plain-text booking summary sent to the
// worker.
func BookingNotificationBody(worker, customer *models.User, booking *models.Booking) string {
	return fmt.Sprintf(
		"Hello %s,\n\n"+
			"You have a new booking request!\n\n"+
			"Service: %s\n"+
			"Date: %s\n"+
			"Customer: %s\n"+
			"Location: %s\n\n"+
			"Please log in to your dashboard to accept or reject it.\n",
		worker.Username,
		booking.Service,
		booking.Date.Format("2006-01-02 15:04"),
		customer.Username,
		customer.Location,
	)
}
