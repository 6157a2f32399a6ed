package domain

import (
	"testing"
	"time"
)

func floatPtr(f float64) *float64 { return &f }
func strPtr(s string) *string     { return &s }
func intPtr(n int) *int           { return &n }

func profile(offset float64, birthday string) *Profile {
	return &Profile{
		UserID:    "42",
		UTCOffset: floatPtr(offset),
		Birthday:  strPtr(birthday),
	}
}

func TestEvaluate_Unconfigured(t *testing.T) {
	p := &Profile{UserID: "42", Birthday: strPtr("03-10")}
	if act := Evaluate(p, utc(2024, time.March, 10, 0, 0)); act.Kind != ActionNone {
		t.Fatalf("missing offset: want ActionNone, got %v", act.Kind)
	}
}

func TestEvaluate_BirthdayAnnounces(t *testing.T) {
	p := profile(-5, "03-10")
	act := Evaluate(p, utc(2024, time.March, 10, 0, 0))
	if act.Kind != ActionCelebrate {
		t.Fatalf("want ActionCelebrate, got %v", act.Kind)
	}
	if !act.Announce {
		t.Fatal("first evaluation of the year must announce")
	}
}

func TestEvaluate_AlreadyAnnouncedThisYear(t *testing.T) {
	p := profile(-5, "03-10")
	p.LastAnnounced = intPtr(2024)
	act := Evaluate(p, utc(2024, time.March, 10, 0, 0))
	if act.Kind != ActionCelebrate {
		t.Fatalf("want ActionCelebrate, got %v", act.Kind)
	}
	if act.Announce {
		t.Fatal("same-year re-evaluation must not announce again")
	}
}

func TestEvaluate_NextYearAnnouncesAgain(t *testing.T) {
	p := profile(-5, "03-10")
	p.LastAnnounced = intPtr(2024)
	act := Evaluate(p, utc(2025, time.March, 10, 0, 0))
	if act.Kind != ActionCelebrate || !act.Announce {
		t.Fatalf("next year must announce: got kind %v announce %v", act.Kind, act.Announce)
	}
}

func TestEvaluate_NotBirthday(t *testing.T) {
	p := profile(-5, "03-10")
	if act := Evaluate(p, utc(2024, time.March, 11, 0, 0)); act.Kind != ActionEnd {
		t.Fatalf("want ActionEnd, got %v", act.Kind)
	}
}

func TestEvaluate_LeapDaySubstitution(t *testing.T) {
	p := profile(0, "02-29")

	// Non-leap year: celebrated on Feb 28.
	if act := Evaluate(p, utc(2023, time.February, 28, 0, 0)); act.Kind != ActionCelebrate {
		t.Fatalf("2023-02-28: want ActionCelebrate, got %v", act.Kind)
	}
	// Leap year: Feb 28 is not the day, Feb 29 is.
	if act := Evaluate(p, utc(2024, time.February, 28, 0, 0)); act.Kind != ActionEnd {
		t.Fatalf("2024-02-28: want ActionEnd, got %v", act.Kind)
	}
	if act := Evaluate(p, utc(2024, time.February, 29, 0, 0)); act.Kind != ActionCelebrate {
		t.Fatalf("2024-02-29: want ActionCelebrate, got %v", act.Kind)
	}
}
