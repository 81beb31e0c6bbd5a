package models

import "testing"

func TestParsePriority(t *testing.T) {
	cases := map[string]TaskPriority{
		"LOW":     PriorityLow,
		"MEDIUM":  PriorityMedium,
		"HIGH":    PriorityHigh,
		"":        PriorityMedium,
		"high":    PriorityMedium,
		"unknown": PriorityMedium,
	}
	for in, want := range cases {
		if got := ParsePriority(in); got != want {
			t.Fatalf("ParsePriority(%q) = %q, want %q", in, got, want)
		}
	}
}
