package models

import (
	"testing"
	"time"
)

func TestExpiryStatus(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	if got := ExpiryStatus(nil, 30, now); got != DocumentStatusValid {
		t.Fatalf("expected nil expiry valid, got %s", got)
	}

	past := now.AddDate(0, 0, -1)
	if got := ExpiryStatus(&past, 30, now); got != DocumentStatusExpired {
		t.Fatalf("expected past date expired, got %s", got)
	}

	soon := now.AddDate(0, 0, 15)
	if got := ExpiryStatus(&soon, 30, now); got != DocumentStatusExpiringSoon {
		t.Fatalf("expected 15 days out expiring_soon, got %s", got)
	}

	far := now.AddDate(0, 0, 90)
	if got := ExpiryStatus(&far, 30, now); got != DocumentStatusValid {
		t.Fatalf("expected 90 days out valid, got %s", got)
	}

	// Zero reminder days falls back to the default window.
	if got := ExpiryStatus(&soon, 0, now); got != DocumentStatusExpiringSoon {
		t.Fatalf("expected default reminder window applied, got %s", got)
	}
}

func TestDocumentTypeRequiresExpiry(t *testing.T) {
	if !DocumentRegistration.RequiresExpiry() {
		t.Fatalf("expected registration to require expiry")
	}
	if DocumentOther.RequiresExpiry() {
		t.Fatalf("expected other not to require expiry")
	}
}

func TestLicenseExpiresWithin(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	d := Driver{LicenseExpiry: now.AddDate(0, 0, 10)}
	if !d.LicenseExpiresWithin(30, now) {
		t.Fatalf("expected license 10 days out within 30-day window")
	}

	d.LicenseExpiry = now.AddDate(0, 0, 60)
	if d.LicenseExpiresWithin(30, now) {
		t.Fatalf("expected license 60 days out not within 30-day window")
	}
}
