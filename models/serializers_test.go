package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestBookingResponseEmbedsBothUsers(t *testing.T) {
	b := Booking{
		ID:         3,
		WorkerID:   1,
		CustomerID: 2,
		Service:    "Plumbing repair",
		Date:       time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
		Status:     BookingStatusPending,
		Worker:     User{ID: 1, Username: "wanda", Role: RoleWorker},
		Customer:   User{ID: 2, Username: "carl", Role: RoleCustomer},
	}

	resp := NewBookingResponse(b)
	if resp.Worker.Username != "wanda" || resp.Customer.Username != "carl" {
		t.Fatalf("nested users not projected: %+v", resp)
	}
	if resp.Status != BookingStatusPending {
		t.Fatalf("status = %s, want pending", resp.Status)
	}
}

func TestFeedbackResponseNestsBooking(t *testing.T) {
	f := Feedback{
		ID:        5,
		BookingID: 3,
		Rating:    5,
		Comment:   "Great",
		Booking: Booking{
			ID:       3,
			Service:  "Plumbing repair",
			Status:   BookingStatusCompleted,
			Worker:   User{ID: 1, Username: "wanda"},
			Customer: User{ID: 2, Username: "carl"},
		},
	}

	resp := NewFeedbackResponse(f)
	if resp.Booking.Service != "Plumbing repair" {
		t.Fatalf("nested booking not projected: %+v", resp)
	}
	if resp.Rating != 5 {
		t.Fatalf("rating = %d, want 5", resp.Rating)
	}
}

func TestWorkerProfileResponseNullAvgRatingInJSON(t *testing.T) {
	p := WorkerProfile{
		ID:          1,
		UserID:      10,
		ServiceType: "Plumbing",
		Status:      WorkerAvailable,
		User:        User{ID: 10, Username: "wanda"},
	}

	body, err := json.Marshal(NewWorkerProfileResponse(p, nil))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if !strings.Contains(string(body), `"avg_rating":null`) {
		t.Fatalf("expected null avg_rating in json, got %s", body)
	}

	avg := 4.0
	body, err = json.Marshal(NewWorkerProfileResponse(p, &avg))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if !strings.Contains(string(body), `"avg_rating":4`) {
		t.Fatalf("expected avg_rating 4 in json, got %s", body)
	}
}

func TestUserResponseOmitsPasswordHash(t *testing.T) {
	u := User{ID: 1, Username: "wanda", PasswordHash: "secret-hash"}
	body, err := json.Marshal(NewUserResponse(u))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if strings.Contains(string(body), "secret-hash") {
		t.Fatalf("password hash leaked into response: %s", body)
	}
}

func TestWorkerStatusIsValid(t *testing.T) {
	for _, s := range []WorkerStatus{WorkerAvailable, WorkerBusy, WorkerOnLeave} {
		if !s.IsValid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if WorkerStatus("retired").IsValid() {
		t.Error("unknown status should be invalid")
	}
}

func TestBookingStatusTerminal(t *testing.T) {
	if BookingStatusPending.Terminal() || BookingStatusConfirmed.Terminal() {
		t.Error("active statuses must not be terminal")
	}
	if !BookingStatusCompleted.Terminal() || !BookingStatusCancelled.Terminal() {
		t.Error("completed and cancelled must be terminal")
	}
}
