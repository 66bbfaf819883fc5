package utils

import (
	"regexp"
	"unicode"
)

func IsValidEmail(email string) bool {
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	return emailRegex.MatchString(email)
}

func IsValidPassword(password string) bool {
	if len(password) < 6 {
		return false
	}

	var (
		hasUpper   = false
		hasLower   = false
		hasNumber  = false
		hasSpecial = false
	)

	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsNumber(char):
			hasNumber = true
		case unicode.IsPunct(char) || unicode.IsSymbol(char):
			hasSpecial = true
		}
	}

	// At least 3 of 4 character types required
	count := 0
	if hasUpper {
		count++
	}
	if hasLower {
		count++
	}
	if hasNumber {
		count++
	}
	if hasSpecial {
		count++
	}

	return count >= 3
}

func IsValidPlateNumber(plate string) bool {
	if len(plate) < 3 || len(plate) > 10 {
		return false
	}
	plateRegex := regexp.MustCompile(`^[A-Z0-9\- ]+$`)
	return plateRegex.MatchString(plate)
}

func IsValidVIN(vin string) bool {
	// 17 characters, I/O/Q excluded per ISO 3779
	vinRegex := regexp.MustCompile(`^[A-HJ-NPR-Z0-9]{17}$`)
	return vinRegex.MatchString(vin)
}

func IsValidYear(year int) bool {
	return year >= 1950 && year <= 2100
}

func IsValidPhone(phone string) bool {
	phoneRegex := regexp.MustCompile(`^\+?[0-9\- ]{7,20}$`)
	return phoneRegex.MatchString(phone)
}
