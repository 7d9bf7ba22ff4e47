package markethours

import (
	"testing"
	"time"
)

func eastern(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, Eastern)
}

func TestIsMarketOpen(t *testing.T) {
	cases := []struct {
		name string
		t    time.Time
		want bool
	}{
		{"midsession tuesday", eastern(2026, time.March, 3, 12, 0), true},
		{"at the open", eastern(2026, time.March, 3, 9, 30), true},
		{"just before open", eastern(2026, time.March, 3, 9, 29), false},
		{"at the close", eastern(2026, time.March, 3, 16, 0), false},
		{"saturday", eastern(2026, time.March, 7, 12, 0), false},
		{"sunday", eastern(2026, time.March, 8, 12, 0), false},
		{"christmas", eastern(2026, time.December, 25, 12, 0), false},
		{"good friday", eastern(2026, time.April, 3, 12, 0), false},
	}
	for _, c := range cases {
		if got := IsMarketOpen(c.t); got != c.want {
			t.Errorf("%s: got %v, want %v", c.name, got, c.want)
		}
	}
}

func TestNextOpen(t *testing.T) {
	// Before the open on a trading day: today's open.
	got := NextOpen(eastern(2026, time.March, 3, 8, 0))
	if want := eastern(2026, time.March, 3, 9, 30); !got.Equal(want) {
		t.Errorf("before open: got %v, want %v", got, want)
	}

	// Friday evening rolls to Monday.
	got = NextOpen(eastern(2026, time.March, 6, 18, 0))
	if want := eastern(2026, time.March, 9, 9, 30); !got.Equal(want) {
		t.Errorf("friday evening: got %v, want %v", got, want)
	}

	// Christmas 2026 falls on Friday; Thursday evening rolls past it to Monday.
	got = NextOpen(eastern(2026, time.December, 24, 18, 0))
	if want := eastern(2026, time.December, 28, 9, 30); !got.Equal(want) {
		t.Errorf("over christmas: got %v, want %v", got, want)
	}
}

func TestTimeUntilClose(t *testing.T) {
	if d := TimeUntilClose(eastern(2026, time.March, 3, 15, 0)); d != time.Hour {
		t.Errorf("one hour before close: %v", d)
	}
	if d := TimeUntilClose(eastern(2026, time.March, 3, 17, 0)); d != 0 {
		t.Errorf("after close: %v", d)
	}
}

func TestStatusString(t *testing.T) {
	if s := StatusString(eastern(2026, time.March, 3, 12, 0)); s == "" || s[:11] != "Market Open" {
		t.Errorf("open status: %q", s)
	}
	if s := StatusString(eastern(2026, time.March, 7, 12, 0)); s == "" || s[:13] != "Market Closed" {
		t.Errorf("closed status: %q", s)
	}
}
