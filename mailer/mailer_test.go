package mailer

import (
	"errors"
	"strings"
	"testing"
	"time"

	"gopkg.in/gomail.v2"

	"local-services-server/models"
	"local-services-server/types"
)

type recordingSender struct {
	sent []*gomail.Message
}

func (s *recordingSender) Send(m *gomail.Message) error {
	s.sent = append(s.sent, m)
	return nil
}

type failingSender struct{}

func (failingSender) Send(m *gomail.Message) error {
	return errors.New("dial tcp: connection refused")
}

func testParties() (*models.User, *models.User, *models.Booking) {
	worker := &models.User{ID: 1, Username: "wanda", Email: "wanda@example.com", Role: models.RoleWorker}
	customer := &models.User{ID: 2, Username: "carl", Location: "Springfield", Role: models.RoleCustomer}
	booking := &models.Booking{
		ID:         7,
		WorkerID:   1,
		CustomerID: 2,
		Service:    "Plumbing repair",
		Date:       time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
	}
	return worker, customer, booking
}

func TestBookingNotificationBody(t *testing.T) {
	worker, customer, booking := testParties()
	body := BookingNotificationBody(worker, customer, booking)

	for _, want := range []string{
		"Hello wanda",
		"Service: Plumbing repair",
		"Date: 2024-06-01 10:00",
		"Customer: carl",
		"Location: Springfield",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("notification body missing %q:\n%s", want, body)
		}
	}
}

func TestNotifyBookingCreatedAddressesWorker(t *testing.T) {
	worker, customer, booking := testParties()
	sender := &recordingSender{}
	m := NewWithSender(sender, "no-reply@localservices.app")

	if err := m.NotifyBookingCreated(worker, customer, booking); err != nil {
		t.Fatalf("NotifyBookingCreated returned error: %v", err)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("expected 1 message, got %d", len(sender.sent))
	}

	msg := sender.sent[0]
	if to := msg.GetHeader("To"); len(to) != 1 || to[0] != worker.Email {
		t.Fatalf("message addressed to %v, want [%s]", to, worker.Email)
	}
	if subject := msg.GetHeader("Subject"); len(subject) != 1 || subject[0] != "New Booking Confirmation" {
		t.Fatalf("unexpected subject %v", subject)
	}
}

func TestNotifyFailureWrappedAsNotificationError(t *testing.T) {
	worker, customer, booking := testParties()
	m := NewWithSender(failingSender{}, "no-reply@localservices.app")

	err := m.NotifyBookingCreated(worker, customer, booking)
	if err == nil {
		t.Fatal("expected an error from a failing sender")
	}

	var notifErr *types.NotificationError
	if !errors.As(err, &notifErr) {
		t.Fatalf("got %T, want *types.NotificationError", err)
	}
	if !strings.Contains(notifErr.Error(), "connection refused") {
		t.Fatalf("wrapped error lost the cause: %v", notifErr)
	}
}
