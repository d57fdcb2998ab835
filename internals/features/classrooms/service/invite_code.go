// file: internals/features/classrooms/service/invite_code.go
package service

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
)

const (
	// InviteCodeLength is the starting code length (upper-hex characters).
	InviteCodeLength = 6

	// inviteCodeMaxAttempts is how many collisions we tolerate per length
	// before growing the code space by two characters.
	inviteCodeMaxAttempts = 5

	// inviteCodeMaxLength bounds the growth so a broken existence check
	// can never spin forever.
	inviteCodeMaxLength = 16
)

var inviteCodePattern = regexp.MustCompile(`^[0-9A-F]{6,16}$`)

// RandomInviteCode returns a single random upper-hex code of the given length.
func RandomInviteCode(length int) (string, error) {
	buf := make([]byte, (length+1)/2)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("invite code entropy: %w", err)
	}
	return strings.ToUpper(hex.EncodeToString(buf))[:length], nil
}

// GenerateInviteCode produces a code that the exists func reports as unused.
// After inviteCodeMaxAttempts collisions at one length the length grows by 2,
// up to inviteCodeMaxLength.
func GenerateInviteCode(exists func(code string) (bool, error)) (string, error) {
	for length := InviteCodeLength; length <= inviteCodeMaxLength; length += 2 {
		for attempt := 0; attempt < inviteCodeMaxAttempts; attempt++ {
			code, err := RandomInviteCode(length)
			if err != nil {
				return "", err
			}
			taken, err := exists(code)
			if err != nil {
				return "", fmt.Errorf("invite code lookup: %w", err)
			}
			if !taken {
				return code, nil
			}
		}
	}
	return "", fmt.Errorf("invite code space exhausted up to length %d", inviteCodeMaxLength)
}

// ValidInviteCode reports whether a client-supplied code has the right shape.
func ValidInviteCode(code string) bool {
	return inviteCodePattern.MatchString(code)
}

// NormalizeInviteCode upper-cases and trims a client-supplied code.
func NormalizeInviteCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
