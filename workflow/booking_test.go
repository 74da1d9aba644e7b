package workflow

import (
	"errors"
	"testing"

	"local-services-server/models"
	"local-services-server/types"
)

func worker(id uint) *models.User {
	return &models.User{ID: id, Role: models.RoleWorker}
}

func customer(id uint) *models.User {
	return &models.User{ID: id, Role: models.RoleCustomer}
}

func booking(status models.BookingStatus) *models.Booking {
	return &models.Booking{ID: 1, WorkerID: 10, CustomerID: 20, Status: status}
}

func TestCanTransition(t *testing.T) {
	allowed := map[[2]models.BookingStatus]bool{
		{models.BookingStatusPending, models.BookingStatusConfirmed}:   true,
		{models.BookingStatusPending, models.BookingStatusCancelled}:   true,
		{models.BookingStatusConfirmed, models.BookingStatusCompleted}: true,
		{models.BookingStatusConfirmed, models.BookingStatusCancelled}: true,
	}

	statuses := []models.BookingStatus{
		models.BookingStatusPending,
		models.BookingStatusConfirmed,
		models.BookingStatusCompleted,
		models.BookingStatusCancelled,
	}
	for _, from := range statuses {
		for _, to := range statuses {
			want := allowed[[2]models.BookingStatus{from, to}]
			if got := CanTransition(from, to); got != want {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", from, to, got, want)
			}
		}
	}
}

func TestAcceptOnlyFromPending(t *testing.T) {
	next, err := Apply(booking(models.BookingStatusPending), worker(10), ActionAccept)
	if err != nil {
		t.Fatalf("accept from pending returned error: %v", err)
	}
	if next != models.BookingStatusConfirmed {
		t.Fatalf("accept from pending = %s, want confirmed", next)
	}

	for _, status := range []models.BookingStatus{
		models.BookingStatusConfirmed,
		models.BookingStatusCompleted,
		models.BookingStatusCancelled,
	} {
		b := booking(status)
		_, err := Apply(b, worker(10), ActionAccept)
		var stateErr *types.InvalidStateError
		if !errors.As(err, &stateErr) {
			t.Errorf("accept from %s: got %v, want InvalidStateError", status, err)
		}
		if b.Status != status {
			t.Errorf("accept from %s mutated booking to %s", status, b.Status)
		}
	}
}

func TestCompleteOnlyFromConfirmed(t *testing.T) {
	next, err := Apply(booking(models.BookingStatusConfirmed), worker(10), ActionComplete)
	if err != nil {
		t.Fatalf("complete from confirmed returned error: %v", err)
	}
	if next != models.BookingStatusCompleted {
		t.Fatalf("complete from confirmed = %s, want completed", next)
	}

	for _, status := range []models.BookingStatus{
		models.BookingStatusPending,
		models.BookingStatusCompleted,
		models.BookingStatusCancelled,
	} {
		b := booking(status)
		_, err := Apply(b, worker(10), ActionComplete)
		var stateErr *types.InvalidStateError
		if !errors.As(err, &stateErr) {
			t.Errorf("complete from %s: got %v, want InvalidStateError", status, err)
		}
		if status == models.BookingStatusPending && stateErr != nil &&
			stateErr.Message != "only confirmed bookings can be completed" {
			t.Errorf("unexpected message: %q", stateErr.Message)
		}
	}
}

func TestRejectFromActiveStatuses(t *testing.T) {
	for _, status := range []models.BookingStatus{
		models.BookingStatusPending,
		models.BookingStatusConfirmed,
	} {
		next, err := Apply(booking(status), worker(10), ActionReject)
		if err != nil {
			t.Fatalf("reject from %s returned error: %v", status, err)
		}
		if next != models.BookingStatusCancelled {
			t.Fatalf("reject from %s = %s, want cancelled", status, next)
		}
	}

	for _, status := range []models.BookingStatus{
		models.BookingStatusCompleted,
		models.BookingStatusCancelled,
	} {
		_, err := Apply(booking(status), worker(10), ActionReject)
		var stateErr *types.InvalidStateError
		if !errors.As(err, &stateErr) {
			t.Errorf("reject from %s: got %v, want InvalidStateError", status, err)
		}
	}
}

func TestCancelIdempotentOnCancelled(t *testing.T) {
	b := booking(models.BookingStatusCancelled)
	next, err := Apply(b, customer(20), ActionCancel)
	if !errors.Is(err, ErrAlreadyCancelled) {
		t.Fatalf("cancel on cancelled: got %v, want ErrAlreadyCancelled", err)
	}
	if next != models.BookingStatusCancelled {
		t.Fatalf("cancel on cancelled changed status to %s", next)
	}
}

func TestCancelFromCompletedRefused(t *testing.T) {
	_, err := Apply(booking(models.BookingStatusCompleted), customer(20), ActionCancel)
	var stateErr *types.InvalidStateError
	if !errors.As(err, &stateErr) {
		t.Fatalf("cancel on completed: got %v, want InvalidStateError", err)
	}
}

func TestCancelFromActiveStatuses(t *testing.T) {
	for _, status := range []models.BookingStatus{
		models.BookingStatusPending,
		models.BookingStatusConfirmed,
	} {
		next, err := Apply(booking(status), customer(20), ActionCancel)
		if err != nil {
			t.Fatalf("cancel from %s returned error: %v", status, err)
		}
		if next != models.BookingStatusCancelled {
			t.Fatalf("cancel from %s = %s, want cancelled", status, next)
		}
	}
}

func TestOwnershipCheckedBeforeState(t *testing.T) {
	// A worker who doesn't own the booking sees not-found even when the
	// state would also be illegal.
	_, err := Apply(booking(models.BookingStatusCompleted), worker(99), ActionAccept)
	var notFound *types.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("foreign worker accept: got %v, want NotFoundError", err)
	}

	_, err = Apply(booking(models.BookingStatusPending), customer(99), ActionCancel)
	if !errors.As(err, &notFound) {
		t.Fatalf("foreign customer cancel: got %v, want NotFoundError", err)
	}
}

func TestRoleGating(t *testing.T) {
	var permErr *types.PermissionError

	// Customers cannot drive worker actions even on their own booking
	for _, action := range []Action{ActionAccept, ActionReject, ActionComplete} {
		_, err := Apply(booking(models.BookingStatusPending), customer(20), action)
		if !errors.As(err, &permErr) {
			t.Errorf("customer %s: got %v, want PermissionError", action, err)
		}
	}

	// Workers cannot cancel on the customer's behalf
	_, err := Apply(booking(models.BookingStatusPending), worker(10), ActionCancel)
	if !errors.As(err, &permErr) {
		t.Errorf("worker cancel: got %v, want PermissionError", err)
	}
}

func TestFullLifecycle(t *testing.T) {
	b := booking(models.BookingStatusPending)

	next, err := Apply(b, worker(10), ActionAccept)
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	b.Status = next

	next, err = Apply(b, worker(10), ActionComplete)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	b.Status = next

	if b.Status != models.BookingStatusCompleted {
		t.Fatalf("lifecycle ended in %s, want completed", b.Status)
	}
	if !b.Status.Terminal() {
		t.Fatal("completed should be terminal")
	}
}
