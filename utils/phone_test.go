package utils

import "testing"

func TestValidatePhoneNumber(t *testing.T) {
	valid := []string{
		"555123456",
		"0661234567",
		"+213 770 12 34 56",
		"213561234567",
	}
	for _, number := range valid {
		if !ValidatePhoneNumber(number) {
			t.Fatalf("expected %q to be valid", number)
		}
	}

	invalid := []string{
		"",
		"12345",
		"0811234567",  // mobile numbers start with 5, 6 or 7
		"55512345",    // too short
		"5551234567",  // too long
		"abcdefghi",
	}
	for _, number := range invalid {
		if ValidatePhoneNumber(number) {
			t.Fatalf("expected %q to be invalid", number)
		}
	}
}

func TestNormalizePhoneNumber(t *testing.T) {
	cases := map[string]string{
		"0661234567":        "213661234567",
		"+213 661 23 45 67": "213661234567",
		"661234567":         "213661234567",
	}
	for input, want := range cases {
		if got := NormalizePhoneNumber(input); got != want {
			t.Fatalf("NormalizePhoneNumber(%q) = %q, want %q", input, got, want)
		}
	}
}
