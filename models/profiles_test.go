package models

import "testing"

func TestNewDefaultWorkerProfileDefaults(t *testing.T) {
	user := User{ID: 7, Username: "wanda", Location: "Springfield", Role: RoleWorker}

	profile := NewDefaultWorkerProfile(user, "")
	if profile.UserID != user.ID {
		t.Fatalf("profile owner = %d, want %d", profile.UserID, user.ID)
	}
	if profile.ServiceType != DefaultServiceType {
		t.Errorf("service type = %q, want %q", profile.ServiceType, DefaultServiceType)
	}
	if profile.ExperienceYears != 0 || profile.HourlyRate != 0 {
		t.Errorf("experience/rate not zeroed: %d years, %.2f", profile.ExperienceYears, profile.HourlyRate)
	}
	if profile.Location != "Springfield" {
		t.Errorf("location = %q, want the user's location", profile.Location)
	}
	if profile.Status != WorkerAvailable {
		t.Errorf("status = %q, want %q", profile.Status, WorkerAvailable)
	}
}

func TestNewDefaultWorkerProfileKeepsGivenServiceType(t *testing.T) {
	profile := NewDefaultWorkerProfile(User{ID: 7}, "Plumbing")
	if profile.ServiceType != "Plumbing" {
		t.Fatalf("service type = %q, want Plumbing", profile.ServiceType)
	}
}

func TestNewDefaultCustomerProfile(t *testing.T) {
	user := User{ID: 9, Username: "carl", Phone: "555-0101", Location: "Springfield", Role: RoleCustomer}

	profile := NewDefaultCustomerProfile(user)
	if profile.UserID != user.ID {
		t.Fatalf("profile owner = %d, want %d", profile.UserID, user.ID)
	}
	if profile.Location != "" {
		t.Errorf("location = %q, want empty", profile.Location)
	}
	if profile.Phone != "555-0101" {
		t.Errorf("phone = %q, want the user's phone", profile.Phone)
	}
}
