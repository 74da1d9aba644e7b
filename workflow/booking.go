// Package workflow implements the booking lifecycle state machine. All rules
// are pure functions over the models so they can be exercised without a
// database; persistence is the caller's concern.
package workflow

import (
	"errors"

	"local-services-server/models"
	"local-services-server/types"
)

// Action is an operation a user may attempt on a booking.
type Action string

const (
	ActionAccept   Action = "accept"
	ActionReject   Action = "reject"
	ActionComplete Action = "complete"
	ActionCancel   Action = "cancel"
)

// ErrAlreadyCancelled signals an idempotent cancel of an already-cancelled
// booking. Callers surface it as an informational message, not a failure.
var ErrAlreadyCancelled = errors.New("booking is already cancelled")

// CanTransition reports whether a booking may move from one status to
// another. Transitions are monotonic: nothing leaves completed or cancelled.
func CanTransition(from, to models.BookingStatus) bool {
	switch from {
	case models.BookingStatusPending:
		return to == models.BookingStatusConfirmed || to == models.BookingStatusCancelled
	case models.BookingStatusConfirmed:
		return to == models.BookingStatusCompleted || to == models.BookingStatusCancelled
	default:
		return false
	}
}

// Apply validates that actor may perform action on the booking and returns
// the resulting status. Ownership is checked before state: a booking that
// does not belong to the actor is reported as not found, matching the
// visibility rule on the HTTP surface. The booking itself is never mutated.
func Apply(b *models.Booking, actor *models.User, action Action) (models.BookingStatus, error) {
	switch action {
	case ActionAccept, ActionReject, ActionComplete:
		if !actor.IsWorker() {
			return b.Status, &types.PermissionError{Message: "only workers can manage booking requests"}
		}
		if b.WorkerID != actor.ID {
			return b.Status, &types.NotFoundError{Resource: "booking"}
		}
	case ActionCancel:
		if !actor.IsCustomer() {
			return b.Status, &types.PermissionError{Message: "only customers can cancel their bookings"}
		}
		if b.CustomerID != actor.ID {
			return b.Status, &types.NotFoundError{Resource: "booking"}
		}
	default:
		return b.Status, &types.ValidationError{Field: "action", Message: "unknown booking action"}
	}

	switch action {
	case ActionAccept:
		if b.Status != models.BookingStatusPending {
			return b.Status, &types.InvalidStateError{Message: "only pending bookings can be accepted"}
		}
		return models.BookingStatusConfirmed, nil
	case ActionReject:
		if b.Status.Terminal() {
			return b.Status, &types.InvalidStateError{Message: "this booking has already been " + string(b.Status)}
		}
		return models.BookingStatusCancelled, nil
	case ActionComplete:
		if b.Status != models.BookingStatusConfirmed {
			return b.Status, &types.InvalidStateError{Message: "only confirmed bookings can be completed"}
		}
		return models.BookingStatusCompleted, nil
	case ActionCancel:
		if b.Status == models.BookingStatusCancelled {
			return b.Status, ErrAlreadyCancelled
		}
		if b.Status == models.BookingStatusCompleted {
			return b.Status, &types.InvalidStateError{Message: "completed bookings cannot be cancelled"}
		}
		return models.BookingStatusCancelled, nil
	}

	return b.Status, &types.ValidationError{Field: "action", Message: "unknown booking action"}
}
