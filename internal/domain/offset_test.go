package domain

import (
	"errors"
	"math"
	"testing"
	"time"
)

func utc(y int, mo time.Month, d, hh, mm int) time.Time {
	return time.Date(y, mo, d, hh, mm, 0, 0, time.UTC)
}

func TestResolveOffset_TwelveHour(t *testing.T) {
	// User says "1:27 am" while it is 06:00 UTC → they are about 4h33m
	// behind, snapped to -4.5.
	got, err := ResolveOffset("1:27 am", utc(2024, time.January, 1, 6, 0))
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != -4.5 {
		t.Fatalf("want -4.5, got %v", got)
	}
}

func TestResolveOffset_TwentyFourHour(t *testing.T) {
	// "13:27" at 06:00 UTC → +7.5 ahead (7h27m snaps up).
	got, err := ResolveOffset("13:27", utc(2024, time.January, 1, 6, 0))
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != 7.5 {
		t.Fatalf("want 7.5, got %v", got)
	}
}

func TestResolveOffset_WrapsHighIntoRange(t *testing.T) {
	// "23:30" at 01:00 UTC → raw +22.5 wraps to -1.5.
	got, err := ResolveOffset("23:30", utc(2024, time.June, 15, 1, 0))
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != -1.5 {
		t.Fatalf("want -1.5, got %v", got)
	}
}

func TestResolveOffset_WrapsLowIntoRange(t *testing.T) {
	// "00:30" at 23:00 UTC → raw -22.5 wraps to +1.5.
	got, err := ResolveOffset("00:30", utc(2024, time.June, 15, 23, 0))
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != 1.5 {
		t.Fatalf("want 1.5, got %v", got)
	}
}

func TestResolveOffset_AlwaysHalfHourInRange(t *testing.T) {
	inputs := []string{
		"12:00 am", "1:27 am", "6:45 pm", "11:59 pm",
		"00:00", "05:30", "13:27", "23:59",
	}
	for hour := 0; hour < 24; hour++ {
		now := utc(2024, time.March, 10, hour, 17)
		for _, in := range inputs {
			off, err := ResolveOffset(in, now)
			if err != nil {
				t.Fatalf("resolve %q at %v: %v", in, now, err)
			}
			if off < -12 || off > 14 {
				t.Fatalf("offset %v for %q at %v outside [-12, 14]", off, in, now)
			}
			if math.Mod(off*2, 1) != 0 {
				t.Fatalf("offset %v for %q not a multiple of 0.5", off, in)
			}
		}
	}
}

func TestResolveOffset_ReconstructsStatedClock(t *testing.T) {
	// Applying the resolved offset to UTC now should land within a
	// quarter hour of the stated clock time (before the 0.5 snap).
	now := utc(2024, time.January, 1, 6, 0)
	off, err := ResolveOffset("1:27 am", now)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	local := AtOffset(now, off)
	stated := utc(2024, time.January, 1, 1, 27)
	drift := local.Sub(stated).Hours()
	if math.Abs(drift) > 0.25 {
		t.Fatalf("reconstructed local %v drifts %vh from stated 1:27", local, drift)
	}
}

func TestResolveOffset_QuarterHourTiesSnapAwayFromZero(t *testing.T) {
	now := utc(2024, time.January, 1, 6, 0)
	if got, err := ResolveOffset("06:15", now); err != nil || got != 0.5 {
		t.Fatalf("+15m tie: want 0.5, got %v (err %v)", got, err)
	}
	if got, err := ResolveOffset("05:45", now); err != nil || got != -0.5 {
		t.Fatalf("-15m tie: want -0.5, got %v (err %v)", got, err)
	}
}

func TestResolveOffset_Invalid(t *testing.T) {
	now := utc(2024, time.January, 1, 6, 0)
	for _, in := range []string{"", "banana", "25:00", "1:27 xm", "13:27 pm pm", "12-30"} {
		if _, err := ResolveOffset(in, now); !errors.Is(err, ErrBadTime) {
			t.Fatalf("input %q: want ErrBadTime, got %v", in, err)
		}
	}
}

func TestFormatOffset(t *testing.T) {
	cases := map[float64]string{
		5.5:  "+5.5",
		-4:   "-4",
		0:    "+0",
		-0.5: "-0.5",
		14:   "+14",
	}
	for off, want := range cases {
		if got := FormatOffset(off); got != want {
			t.Fatalf("FormatOffset(%v): want %q, got %q", off, want, got)
		}
	}
}

func TestFormatClock(t *testing.T) {
	if got := FormatClock(utc(2024, time.March, 10, 0, 0)); got != "12:00 AM" {
		t.Fatalf("want 12:00 AM, got %q", got)
	}
	if got := FormatClock(utc(2024, time.March, 10, 18, 5)); got != "06:05 PM" {
		t.Fatalf("want 06:05 PM, got %q", got)
	}
}
