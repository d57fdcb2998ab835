package model

import "testing"

func TestValidDoubtStatus(t *testing.T) {
	for _, valid := range []string{
		DoubtStatusPending, DoubtStatusAnswered, DoubtStatusResolved, DoubtStatusClosed,
	} {
		if !ValidDoubtStatus(valid) {
			t.Errorf("ValidDoubtStatus(%q) = false, want true", valid)
		}
	}
	for _, invalid := range []string{"", "open", "PENDING", "done"} {
		if ValidDoubtStatus(invalid) {
			t.Errorf("ValidDoubtStatus(%q) = true, want false", invalid)
		}
	}
}
