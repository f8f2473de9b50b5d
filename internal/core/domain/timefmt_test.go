package domain

import (
	"errors"
	"testing"
	"time"
)

func TestParseTimestamp_FallsBackToDate(t *testing.T) {
	got, err := ParseTimestamp("2026-08-01 09:30:15")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2026, 8, 1, 9, 30, 15, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	got, err = ParseTimestamp("2026-08-01")
	if err != nil {
		t.Fatalf("bare date must parse: %v", err)
	}
	if !got.Equal(time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("bare date must land at midnight, got %v", got)
	}

	_, err = ParseTimestamp("01/08/2026")
	var dfe *DateFormatError
	if !errors.As(err, &dfe) {
		t.Errorf("expected DateFormatError, got %v", err)
	}
	if dfe != nil && dfe.Detail != "01/08/2026" {
		t.Errorf("error must carry the rejected input, got %q", dfe.Detail)
	}
}

func TestDay(t *testing.T) {
	in := time.Date(2026, 8, 1, 23, 59, 59, 999, time.FixedZone("CET", 3600))
	got := Day(in)
	// 23:59 CET is 22:59 UTC; the UTC day decides.
	want := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestFormatMinutes(t *testing.T) {
	cases := []struct {
		minutes int64
		want    string
	}{
		{0, "0h 0m"},
		{35, "0h 35m"},
		{60, "1h 0m"},
		{480, "8h 0m"},
		{605, "10h 5m"},
	}
	for _, tc := range cases {
		if got := FormatMinutes(tc.minutes); got != tc.want {
			t.Errorf("%d minutes: expected %q, got %q", tc.minutes, tc.want, got)
		}
	}
}

func TestDreamMinutes(t *testing.T) {
	from := time.Date(2026, 8, 1, 20, 0, 0, 0, time.UTC)
	to := from.Add(8*time.Hour + 30*time.Second) // seconds are floored away

	d := Dream{FromDate: from, ToDate: &to}
	if got := d.Minutes(); got != 480 {
		t.Errorf("expected 480 minutes, got %d", got)
	}

	open := Dream{FromDate: from}
	if got := open.Minutes(); got != 0 {
		t.Errorf("open dream must report 0 minutes, got %d", got)
	}
}

func TestClampWeight(t *testing.T) {
	if got := ClampWeight(4.56789); got != 4.567 {
		t.Errorf("expected truncation to 4.567, got %v", got)
	}
	if got := ClampWeight(4.5); got != 4.5 {
		t.Errorf("expected 4.5 unchanged, got %v", got)
	}
}
