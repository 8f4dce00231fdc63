package formaterror

import "strings"

// uniqueViolationMarkers covers the drivers we run against: postgres in
// production, sqlite in tests.
var uniqueViolationMarkers = []string{
	"duplicate key value violates unique constraint",
	"UNIQUE constraint failed",
	"Duplicate entry",
}

// IsUniqueViolation reports whether err is the store surfacing a unique
// index conflict. The unique indexes are the correctness backstop for
// registration and the like/save/follow toggles, so racing inserts land
// here instead of the pre-checks.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	for _, marker := range uniqueViolationMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// FormatError maps raw store error text to the field-keyed messages the API
// returns.
func FormatError(err string) map[string]string {
	errorMessages := make(map[string]string)

	if strings.Contains(err, "username") {
		errorMessages["Taken_username"] = "Username Already Taken"
	}
	if strings.Contains(err, "email") {
		errorMessages["Taken_email"] = "Email Already Taken"
	}
	if strings.Contains(err, "hashedPassword") || strings.Contains(err, "crypto/bcrypt") {
		errorMessages["Incorrect_password"] = "Incorrect Password"
	}
	if strings.Contains(err, "record not found") {
		errorMessages["No_record"] = "No Record Found"
	}

	if len(errorMessages) > 0 {
		return errorMessages
	}
	return map[string]string{"Incorrect_details": "Incorrect Details"}
}
