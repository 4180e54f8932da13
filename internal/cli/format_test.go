package cli

import (
	"strings"
	"testing"
)

func TestFormatHours(t *testing.T) {
	tests := []struct {
		hours float64
		want  string
	}{
		{0, "0.00h"},
		{1.5, "1.50h"},
		{160.25, "160.25h"},
	}
	for _, tt := range tests {
		if got := FormatHours(tt.hours); got != tt.want {
			t.Errorf("FormatHours(%v) = %q, want %q", tt.hours, got, tt.want)
		}
	}
}

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "0m"},
		{-5, "0m"},
		{45, "45m"},
		{60, "1h 00m"},
		{125, "2h 05m"},
	}
	for _, tt := range tests {
		if got := FormatMinutes(tt.minutes); got != tt.want {
			t.Errorf("FormatMinutes(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}

func TestFormatMoneyFallback(t *testing.T) {
	got := FormatMoney(12.5, "???", "en-US")
	if got != "12.50 ???" {
		t.Errorf("fallback = %q", got)
	}
}

func TestFormatMoneyKnownCurrency(t *testing.T) {
	got := FormatMoney(100, "EUR", "en-US")
	if got == "" || !strings.Contains(got, "100") {
		t.Errorf("EUR rendering = %q", got)
	}

	// A bad locale tag still renders via the fallback language.
	got = FormatMoney(100, "USD", "not a tag")
	if got == "" || !strings.Contains(got, "100") {
		t.Errorf("bad locale rendering = %q", got)
	}
}
