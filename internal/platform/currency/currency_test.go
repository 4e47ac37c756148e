package currency

import (
	"strings"
	"testing"
)

func TestFormat_GroupsAndPadsFractions(t *testing.T) {
	got := Format(1000, "KES", "en-KE")
	if !strings.Contains(got, "1,000.00") {
		t.Errorf("Format(1000) = %q, want grouped amount with two fraction digits", got)
	}
}

func TestFormat_KeepsGivenFractions(t *testing.T) {
	got := Format(12.5, "USD", "en-US")
	if !strings.Contains(got, "12.50") {
		t.Errorf("Format(12.5) = %q, want two fraction digits", got)
	}
}

func TestFormat_NegativeUsesParentheses(t *testing.T) {
	got := Format(-250, "KES", "en-KE")
	if !strings.HasPrefix(got, "(") || !strings.HasSuffix(got, ")") {
		t.Errorf("Format(-250) = %q, want parenthesized accounting notation", got)
	}
	if strings.Contains(got, "-") {
		t.Errorf("Format(-250) = %q, want absolute value inside parentheses", got)
	}
	if !strings.Contains(got, "250.00") {
		t.Errorf("Format(-250) = %q, want the absolute amount", got)
	}
}

func TestFormat_ZeroIsNotParenthesized(t *testing.T) {
	got := Format(0, "KES", "en-KE")
	if strings.HasPrefix(got, "(") {
		t.Errorf("Format(0) = %q, zero must not be parenthesized", got)
	}
}

func TestFormat_UnknownCodeFallsBack(t *testing.T) {
	got := Format(12.5, "???", "en-US")
	if !strings.Contains(got, "12.50") {
		t.Errorf("Format with unknown code = %q, want plain fixed-point fallback", got)
	}
}

func TestFormat_UnknownLocaleStillFormats(t *testing.T) {
	got := Format(99.9, "USD", "not a locale")
	if !strings.Contains(got, "99.90") {
		t.Errorf("Format with unknown locale = %q", got)
	}
}
