package utils

import "testing"

func TestIsValidEmail(t *testing.T) {
	valid := []string{"user@example.com", "fleet.manager+test@dns-maynilad.ph"}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Fatalf("expected %q valid", email)
		}
	}
	invalid := []string{"", "notanemail", "user@", "@example.com", "user@host"}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Fatalf("expected %q invalid", email)
		}
	}
}

func TestIsValidPassword(t *testing.T) {
	if !IsValidPassword("Passw0rd") {
		t.Fatalf("expected mixed-case with number to pass")
	}
	if IsValidPassword("short") {
		t.Fatalf("expected short password to fail")
	}
	if IsValidPassword("alllowercase") {
		t.Fatalf("expected single character class to fail")
	}
}

func TestIsValidPlateNumber(t *testing.T) {
	if !IsValidPlateNumber("ABC-1234") {
		t.Fatalf("expected ABC-1234 valid")
	}
	if !IsValidPlateNumber("NDJ 558") {
		t.Fatalf("expected NDJ 558 valid")
	}
	if IsValidPlateNumber("ab") {
		t.Fatalf("expected too-short plate invalid")
	}
	if IsValidPlateNumber("abc-1234") {
		t.Fatalf("expected lowercase plate invalid")
	}
}

func TestIsValidVIN(t *testing.T) {
	if !IsValidVIN("1HGCM82633A004352") {
		t.Fatalf("expected well-formed VIN valid")
	}
	if IsValidVIN("1HGCM82633A00435") {
		t.Fatalf("expected 16-char VIN invalid")
	}
	if IsValidVIN("1HGCM82633A00435I") {
		t.Fatalf("expected VIN containing I invalid")
	}
	if IsValidVIN("1HGCM82633A00435O") {
		t.Fatalf("expected VIN containing O invalid")
	}
}

func TestIsValidYear(t *testing.T) {
	if !IsValidYear(2020) {
		t.Fatalf("expected 2020 valid")
	}
	if IsValidYear(1940) || IsValidYear(2150) {
		t.Fatalf("expected out-of-range years invalid")
	}
}

func TestIsValidPhone(t *testing.T) {
	if !IsValidPhone("+63 917 123 4567") {
		t.Fatalf("expected international format valid")
	}
	if IsValidPhone("12ab34") {
		t.Fatalf("expected letters in phone invalid")
	}
}
