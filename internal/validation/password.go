package validation

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 6

// ValidPassword checks registration password requirements.
func ValidPassword(s string) bool {
	return len(s) >= MinPasswordLength
}
