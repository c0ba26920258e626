package phone

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/xlab/phone/metadata"
)

// nonMatch is the IDD pattern used when the default region supplies none.
// It requires letters that never survive normalization, so it cannot match
// a digit string.
const nonMatch = "NonMatch"

// plusChars are the accepted international call prefixes: ASCII '+' and
// its full-width form.
const plusChars = "+＋"

// Parse parses a free-form number into its canonical representation.
// defaultRegion is the ISO 3166-1 alpha-2 region the number is assumed to
// be dialled from; it may be bogus ("ZZ") only when the number is written
// in international form with a leading plus sign.
//
// National trunk prefixes are not stripped: "020 7946 0000" parsed for GB
// keeps the zero, with ItalianLeadingZero set.
func (u *Util) Parse(number, defaultRegion string) (*PhoneNumber, error) {
	return u.parse(number, defaultRegion, false)
}

// ParseAndKeepRawInput parses like Parse and additionally records the raw
// input and the source the country code was derived from.
func (u *Util) ParseAndKeepRawInput(number, defaultRegion string) (*PhoneNumber, error) {
	return u.parse(number, defaultRegion, true)
}

func (u *Util) parse(numberToParse, defaultRegion string, keepRaw bool) (*PhoneNumber, error) {
	if utf8.RuneCountInString(numberToParse) > MaxInputLength {
		return nil, ErrTooLong
	}
	if !IsViablePhoneNumber(numberToParse) {
		return nil, ErrNotANumber
	}
	if !u.isValidRegion(defaultRegion) && !hasLeadingPlus(numberToParse) {
		return nil, ErrInvalidCountryCode
	}

	pn := &PhoneNumber{NumberOfLeadingZeros: 1}
	if keepRaw {
		pn.RawInput = numberToParse
	}
	regionMeta, err := u.store.ForRegion(defaultRegion)
	if err != nil {
		return nil, fmt.Errorf("phone: %w", err)
	}

	countryCode, national, err := u.maybeExtractCountryCode(numberToParse, regionMeta, keepRaw, pn)
	if err != nil {
		if !errors.Is(err, ErrInvalidCountryCode) || !hasLeadingPlus(numberToParse) {
			return nil, err
		}
		// The plus sign may be followed by junk the IDD logic choked on.
		countryCode, national, err = u.maybeExtractCountryCode(
			strings.TrimLeft(numberToParse, plusChars), regionMeta, keepRaw, pn)
		if err != nil {
			return nil, err
		}
		if countryCode == 0 {
			return nil, ErrInvalidCountryCode
		}
	}

	if countryCode == 0 {
		national = Normalize(numberToParse)
		if defaultRegion != "" && regionMeta != nil {
			pn.CountryCode = regionMeta.CountryCode
		} else if keepRaw {
			pn.CountryCodeSource = CountryCodeSources.FromNumberWithPlusSign
		}
	}

	if len(national) < MinNSNLength {
		return nil, ErrTooShortNSN
	}
	if len(national) > MaxNSNLength {
		return nil, ErrTooLong
	}
	setItalianLeadingZeros(national, pn)
	value, err := strconv.ParseUint(national, 10, 64)
	if err != nil {
		return nil, ErrNotANumber
	}
	pn.NationalNumber = value
	return pn, nil
}

// setItalianLeadingZeros flags written leading zeros: at least one sets
// ItalianLeadingZero, the count is recorded only when two or more, and the
// run never consumes the last digit.
func setItalianLeadingZeros(national string, pn *PhoneNumber) {
	if len(national) < 2 || national[0] != '0' {
		return
	}
	pn.ItalianLeadingZero = true
	zeros := 1
	for zeros < len(national)-1 && national[zeros] == '0' {
		zeros++
	}
	if zeros > 1 {
		pn.NumberOfLeadingZeros = zeros
	}
}

// maybeExtractCountryCode identifies the country calling code of the input
// and returns it along with the remaining national number. A return of 0
// with no error means the number is in national form for the default
// region.
func (u *Util) maybeExtractCountryCode(number string, regionMeta *metadata.Record,
	keepRaw bool, pn *PhoneNumber) (int, string, error) {

	if number == "" {
		return 0, "", nil
	}
	iddPattern := nonMatch
	if regionMeta != nil && regionMeta.InternationalPrefix != "" {
		iddPattern = regionMeta.InternationalPrefix
	}
	full, src := u.maybeStripInternationalPrefix(number, iddPattern)
	if keepRaw {
		pn.CountryCodeSource = src
	}

	if src != CountryCodeSources.FromDefaultCountry {
		if len(full) <= MinNSNLength {
			return 0, "", ErrTooShortAfterIDD
		}
		countryCode, national := u.extractCountryCode(full)
		if countryCode == 0 {
			return 0, "", ErrInvalidCountryCode
		}
		pn.CountryCode = countryCode
		return countryCode, national, nil
	}

	if regionMeta != nil {
		// The number may carry the default region's calling code without
		// any international prefix, e.g. "1 650 253 0000" dialled in US.
		defaultCode := regionMeta.CountryCode
		codeStr := strconv.Itoa(defaultCode)
		if strings.HasPrefix(full, codeStr) {
			potential := full[len(codeStr):]
			if (!u.matchesEntirely(regionMeta.GeneralDesc, full) &&
				u.matchesEntirely(regionMeta.GeneralDesc, potential)) ||
				u.testNumberLength(full, regionMeta) == ValidationResults.TooLong {
				if keepRaw {
					pn.CountryCodeSource = CountryCodeSources.FromNumberWithoutPlusSign
				}
				pn.CountryCode = defaultCode
				return defaultCode, potential, nil
			}
		}
	}
	pn.CountryCode = 0
	return 0, "", nil
}

// maybeStripInternationalPrefix normalizes the number and removes a
// leading plus run or a matching IDD prefix, reporting which was found.
// Country codes never start with zero, so an IDD strip that would leave a
// zero-led number is refused.
func (u *Util) maybeStripInternationalPrefix(number, iddPattern string) (string, CountryCodeSource) {
	if hasLeadingPlus(number) {
		return Normalize(strings.TrimLeft(number, plusChars)),
			CountryCodeSources.FromNumberWithPlusSign
	}
	normalized := Normalize(number)
	if end, ok := u.prefixMatch(iddPattern, normalized); ok {
		rest := normalized[end:]
		if rest != "" && rest[0] != '0' {
			return rest, CountryCodeSources.FromNumberWithIDD
		}
	}
	return normalized, CountryCodeSources.FromDefaultCountry
}

// extractCountryCode reads a known calling code of one to three digits off
// the front of a normalized number. Returns 0 when the number is empty,
// starts with zero, or matches no known code.
func (u *Util) extractCountryCode(full string) (int, string) {
	if full == "" || full[0] == '0' {
		return 0, ""
	}
	for i := 1; i <= 3 && i <= len(full); i++ {
		code, err := strconv.Atoi(full[:i])
		if err != nil {
			return 0, ""
		}
		if _, ok := u.regionsByCode[code]; ok {
			return code, full[i:]
		}
	}
	return 0, ""
}

func hasLeadingPlus(number string) bool {
	r, _ := utf8.DecodeRuneInString(number)
	return r == '+' || r == '＋'
}
