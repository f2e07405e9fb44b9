package service

import "strings"

// NormalizePhone canonicalizes Ethiopian phone numbers to +2519XXXXXXXX form.
// Accepted inputs: "+2519...", "2519...", "09...", "9..." with optional
// spaces, dashes or parentheses. Anything else fails validation.
func NormalizePhone(raw string) (string, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '(', ')', '.':
			return -1
		}
		return r
	}, strings.TrimSpace(raw))

	if cleaned == "" {
		return "", ErrInvalidPhone
	}

	digits := cleaned
	switch {
	case strings.HasPrefix(cleaned, "+251"):
		digits = cleaned[4:]
	case strings.HasPrefix(cleaned, "251"):
		digits = cleaned[3:]
	case strings.HasPrefix(cleaned, "0"):
		digits = cleaned[1:]
	}

	if len(digits) != 9 || !isAllDigits(digits) {
		return "", ErrInvalidPhone
	}
	// mobile numbers start with 9 or 7
	if digits[0] != '9' && digits[0] != '7' {
		return "", ErrInvalidPhone
	}

	return "+251" + digits, nil
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
