package phone_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xlab/phone"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		in  string
		exp string
	}{
		// Three or more letters switch to keypad mapping.
		{"1-800-FLOWERS", "18003569377"},
		{"1800 six-flags", "180074935247"},
		// Fewer than three letters: digits only.
		{"034-56&+a#234", "03456234"},
		{"(650) 253-0000", "6502530000"},
		// Unicode digits fold to ASCII either way.
		{"１６５０", "1650"},
		{"٠١٢", "012"},
		{"", ""},
	} {
		assert.Equal(t, tc.exp, phone.Normalize(tc.in), "input %q", tc.in)
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	t.Parallel()

	for _, s := range []string{
		"1-800-FLOWERS", "+1 (650) 253-0000", "１６５０",
		"0800x123x456", "~  650 ~ 253 ~",
	} {
		once := phone.Normalize(s)
		assert.Equal(t, once, phone.Normalize(once), "input %q", s)
	}
}

func TestNormalizeMapsXAsLetter(t *testing.T) {
	t.Parallel()

	// 'x' doubles as punctuation and as the keypad digit 9: with three or
	// more letters present it maps to 9, otherwise it is dropped.
	assert.Equal(t, "18009991234", phone.Normalize("1800xxx1234"))
	assert.Equal(t, "800359377", phone.Normalize("800x35x9377"))
}

func TestNormalizeDigitsOnly(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "16502530000", phone.NormalizeDigitsOnly("+1*650-253#0000 ext"))
	assert.Equal(t, "1650", phone.NormalizeDigitsOnly("＋１６５０"))
}

func TestNormalizeDiallableCharsOnly(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "+16502530000*",
		phone.NormalizeDiallableCharsOnly("+1 (650) 253-0000*"))
	assert.Equal(t, "123", phone.NormalizeDiallableCharsOnly("１-２-３ ext"))
}

func TestIsViablePhoneNumber(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		in  string
		exp bool
	}{
		{"12", true}, // exactly the minimum digit count
		{"1", false},
		{"+", false},
		{"+1 (650) 253-0000", true},
		{"＋１６５０２５３００００", true},
		{"650 253 0000 extn", true}, // trailing alpha is tolerated
		{"0800-1-23-45", true},
		{"1800 six-flags", true},
		{"ABC", false},
		{"+12", false}, // a plus demands three digits or more
		{"", false},
	} {
		assert.Equal(t, tc.exp, phone.IsViablePhoneNumber(tc.in), "input %q", tc.in)
	}
}
