package service

import (
	"errors"
	"testing"
)

func TestRandomInviteCodeFormat(t *testing.T) {
	for _, length := range []int{6, 8, 10, 16} {
		code, err := RandomInviteCode(length)
		if err != nil {
			t.Fatalf("RandomInviteCode(%d): %v", length, err)
		}
		if len(code) != length {
			t.Errorf("RandomInviteCode(%d) length = %d, want %d", length, len(code), length)
		}
		if !ValidInviteCode(code) {
			t.Errorf("RandomInviteCode(%d) = %q, not upper-hex", length, code)
		}
	}
}

func TestGenerateInviteCodeFirstTry(t *testing.T) {
	calls := 0
	code, err := GenerateInviteCode(func(string) (bool, error) {
		calls++
		return false, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Errorf("existence checks = %d, want 1", calls)
	}
	if len(code) != InviteCodeLength {
		t.Errorf("code length = %d, want %d", len(code), InviteCodeLength)
	}
}

func TestGenerateInviteCodeGrowsAfterCap(t *testing.T) {
	// Report every 6-char candidate as taken; the generator must move on to
	// length 8 after exactly 5 attempts.
	attemptsAtSix := 0
	code, err := GenerateInviteCode(func(c string) (bool, error) {
		if len(c) == 6 {
			attemptsAtSix++
			return true, nil
		}
		return false, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if attemptsAtSix != 5 {
		t.Errorf("attempts at length 6 = %d, want 5", attemptsAtSix)
	}
	if len(code) != 8 {
		t.Errorf("code length = %d, want 8", len(code))
	}
}

func TestGenerateInviteCodeExhausted(t *testing.T) {
	calls := 0
	_, err := GenerateInviteCode(func(string) (bool, error) {
		calls++
		return true, nil
	})
	if err == nil {
		t.Fatal("expected error when every code is taken")
	}
	// lengths 6..16 step 2 = 6 lengths, 5 attempts each
	if calls != 30 {
		t.Errorf("existence checks = %d, want 30", calls)
	}
}

func TestGenerateInviteCodeLookupError(t *testing.T) {
	boom := errors.New("db down")
	_, err := GenerateInviteCode(func(string) (bool, error) {
		return false, boom
	})
	if err == nil || !errors.Is(err, boom) {
		t.Fatalf("error = %v, want wrapped %v", err, boom)
	}
}

func TestValidInviteCode(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{"A1B2C3", true},
		{"A1B2C3D4", true},
		{"a1b2c3", false},
		{"A1B2C", false},
		{"A1B2C3D4A1B2C3D4A1", false},
		{"GHIJKL", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := ValidInviteCode(tt.code); got != tt.want {
			t.Errorf("ValidInviteCode(%q) = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestNormalizeInviteCode(t *testing.T) {
	if got := NormalizeInviteCode("  a1b2c3 "); got != "A1B2C3" {
		t.Errorf("NormalizeInviteCode = %q, want A1B2C3", got)
	}
}
