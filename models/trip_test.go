package models

import "testing"

func TestTripTransitions(t *testing.T) {
	if !TripStatusPlanned.CanTransitionTo(TripStatusInProgress) {
		t.Fatalf("expected planned -> in_progress allowed")
	}
	if !TripStatusInProgress.CanTransitionTo(TripStatusCompleted) {
		t.Fatalf("expected in_progress -> completed allowed")
	}
	if TripStatusPlanned.CanTransitionTo(TripStatusCompleted) {
		t.Fatalf("expected planned -> completed not allowed")
	}
	if TripStatusCompleted.CanTransitionTo(TripStatusInProgress) {
		t.Fatalf("expected completed to be terminal")
	}
	if TripStatusCancelled.CanTransitionTo(TripStatusPlanned) {
		t.Fatalf("expected cancelled to be terminal")
	}
}

func TestNewTripNumber(t *testing.T) {
	if got := NewTripNumber(2026, 7); got != "TRIP-2026-000007" {
		t.Fatalf("unexpected trip number %s", got)
	}
}

func TestNewIncidentNumber(t *testing.T) {
	if got := NewIncidentNumber(2026, 42); got != "INC-2026-000042" {
		t.Fatalf("unexpected incident number %s", got)
	}
}
