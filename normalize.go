package phone

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Mapping of alpha characters to digits on an ITU E.161 keypad.
var alphaMappings = map[rune]byte{
	'A': '2', 'B': '2', 'C': '2',
	'D': '3', 'E': '3', 'F': '3',
	'G': '4', 'H': '4', 'I': '4',
	'J': '5', 'K': '5', 'L': '5',
	'M': '6', 'N': '6', 'O': '6',
	'P': '7', 'Q': '7', 'R': '7', 'S': '7',
	'T': '8', 'U': '8', 'V': '8',
	'W': '9', 'X': '9', 'Y': '9', 'Z': '9',
}

// Punctuation accepted inside a written phone number: hyphen and space
// variants, brackets in ASCII and full-width form, and a few tilde-like
// characters seen in the wild.
const validPunctuation = `-x\x{2010}-\x{2015}\x{2212}\x{30FC}\x{FF0D}-\x{FF0F} ` +
	`\x{00A0}\x{00AD}\x{200B}\x{2060}\x{3000}()\x{FF08}\x{FF09}\x{FF3B}\x{FF3D}` +
	`.\[\]/~\x{2053}\x{223C}\x{FF5E}`

// A viable number is either exactly the minimum count of digits, or an
// optional run of plus signs followed by at least three digits with
// punctuation interleaved, then optional trailing alpha characters.
var viablePhoneNumber = regexp.MustCompile(
	`(?i)^(?:\p{Nd}{2}|[+\x{FF0B}]*(?:[` + validPunctuation + `*]*\p{Nd}){3,}` +
		`[` + validPunctuation + `*a-z\p{Nd}]*)$`)

// IsViablePhoneNumber is a cheap pre-parse gate checking that the string
// plausibly looks like a phone number. It does not consult any metadata.
func IsViablePhoneNumber(number string) bool {
	if utf8.RuneCountInString(number) < MinNSNLength {
		return false
	}
	return viablePhoneNumber.MatchString(number)
}

// Normalize folds a written number into plain ASCII digits. When the input
// carries three or more ASCII letters it is treated as a vanity number and
// letters are converted via the keypad mapping; otherwise everything but
// decimal digits is stripped. Unicode digits fold to ASCII either way.
func Normalize(number string) string {
	letters := 0
	for _, r := range number {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' {
			letters++
		}
	}
	if letters < 3 {
		return NormalizeDigitsOnly(number)
	}
	var out strings.Builder
	for _, r := range number {
		if d, ok := alphaMappings[unicode.ToUpper(r)]; ok {
			out.WriteByte(d)
		} else if d, ok := digitValue(r); ok {
			out.WriteByte(d)
		}
	}
	return out.String()
}

// NormalizeDigitsOnly strips every code point that is not a decimal digit,
// folding Unicode digits to ASCII.
func NormalizeDigitsOnly(number string) string {
	var out strings.Builder
	for _, r := range number {
		if d, ok := digitValue(r); ok {
			out.WriteByte(d)
		}
	}
	return out.String()
}

// NormalizeDiallableCharsOnly retains only characters diallable on a
// keypad: digits (folded to ASCII), '+' and '*'.
func NormalizeDiallableCharsOnly(number string) string {
	var out strings.Builder
	for _, r := range number {
		if d, ok := digitValue(r); ok {
			out.WriteByte(d)
		} else if r == '+' || r == '*' {
			out.WriteByte(byte(r))
		}
	}
	return out.String()
}

// digitValue maps any Unicode decimal digit to its ASCII form. Decimal
// digit blocks are contiguous runs of ten starting at the zero digit, so
// the value is the distance to the block start. Blocks may adjoin each
// other, so the distance to the start of the whole run is taken modulo ten.
func digitValue(r rune) (byte, bool) {
	if r >= '0' && r <= '9' {
		return byte(r), true
	}
	if !unicode.IsDigit(r) {
		return 0, false
	}
	n := 0
	for d := r - 1; unicode.IsDigit(d); d-- {
		n++
	}
	return '0' + byte(n%10), true
}
