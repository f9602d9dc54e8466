package middleware

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Input validation for the analysis boundary. Sequences that fail here
// are rejected with a client fault and never reach the engine.

// MinSequenceLength is the shortest sequence the service will analyze.
const MinSequenceLength = 20

var (
	ErrSequenceMissing  = errors.New("no sequence provided")
	ErrSequenceTooShort = fmt.Errorf("sequence too short (minimum %d characters)", MinSequenceLength)
)

// ValidateSequence enforces the analysis preconditions.
func ValidateSequence(seq string) error {
	if strings.TrimSpace(seq) == "" {
		return ErrSequenceMissing
	}
	if len(seq) < MinSequenceLength {
		return ErrSequenceTooShort
	}
	return nil
}

// SanitizeSampleID strips control characters and trims a display name for
// storage; an empty result falls back to "unknown".
func SanitizeSampleID(name string) string {
	name = strings.ReplaceAll(name, "\x00", "")
	var b strings.Builder
	for _, r := range name {
		if r >= 32 {
			b.WriteRune(r)
		}
	}
	out := strings.TrimSpace(b.String())
	if out == "" {
		return "unknown"
	}
	if len(out) > 255 {
		out = out[:255]
	}
	return out
}

// ValidateAnalysisID validates the uuid id format
func ValidateAnalysisID(id string) error {
	if id == "" {
		return fmt.Errorf("analysis ID cannot be empty")
	}
	pattern := `^[a-f0-9]{8}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{12}$`
	matched, _ := regexp.MatchString(pattern, id)
	if !matched {
		return fmt.Errorf("invalid analysis ID format")
	}
	return nil
}

// ValidateLimit validates pagination limit
func ValidateLimit(limit int) int {
	if limit <= 0 {
		return 20 // default
	}
	if limit > 100 {
		return 100 // max limit
	}
	return limit
}

// ValidateDays validates days parameter
func ValidateDays(days int) int {
	if days <= 0 {
		return 7 // default
	}
	if days > 365 {
		return 365 // max 1 year
	}
	return days
}
