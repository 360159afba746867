package domain

import "regexp"

var janCandidatePattern = regexp.MustCompile(`[0-9]{13}`)

// IsValidJAN reports whether code is a well-formed JAN/EAN-13 identifier.
// The code must be exactly 13 decimal digits and carry a correct check
// digit. Codes starting with "10" are rejected outright regardless of
// checksum (reserved, non-retail range).
func IsValidJAN(code string) bool {
	if len(code) != 13 {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}
	if code[0] == '1' && code[1] == '0' {
		return false
	}

	// EAN-13 checksum: odd positions weight 1, even positions weight 3,
	// check digit at position 12.
	oddSum, evenSum := 0, 0
	for i := 0; i < 12; i += 2 {
		oddSum += int(code[i] - '0')
	}
	for i := 1; i < 12; i += 2 {
		evenSum += int(code[i] - '0')
	}
	check := (10 - (oddSum+evenSum*3)%10) % 10
	return int(code[12]-'0') == check
}

// FindJANCandidates returns every 13-digit substring of text in order of
// appearance. Candidates are not validated; callers filter with IsValidJAN.
func FindJANCandidates(text string) []string {
	return janCandidatePattern.FindAllString(text, -1)
}

// FirstValidJAN returns the first checksum-valid JAN code embedded in text,
// or "" when no candidate validates.
func FirstValidJAN(text string) string {
	for _, candidate := range FindJANCandidates(text) {
		if IsValidJAN(candidate) {
			return candidate
		}
	}
	return ""
}
