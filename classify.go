package phone

import (
	"go.uber.org/zap"

	"github.com/xlab/phone/metadata"
)

// NumberType classifies a number by the service it belongs to.
type NumberType byte

// NumberTypes are all possible classification results.
var NumberTypes = struct {
	FixedLine         NumberType
	Mobile            NumberType
	FixedLineOrMobile NumberType
	TollFree          NumberType
	PremiumRate       NumberType
	SharedCost        NumberType
	Voip              NumberType
	PersonalNumber    NumberType
	Pager             NumberType
	Uan               NumberType
	Voicemail         NumberType
	Unknown           NumberType
}{
	0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11,
}

var numberTypeNames = [...]string{
	"FIXED_LINE", "MOBILE", "FIXED_LINE_OR_MOBILE", "TOLL_FREE",
	"PREMIUM_RATE", "SHARED_COST", "VOIP", "PERSONAL_NUMBER",
	"PAGER", "UAN", "VOICEMAIL", "UNKNOWN",
}

func (t NumberType) String() string {
	if int(t) < len(numberTypeNames) {
		return numberTypeNames[t]
	}
	return "UNKNOWN"
}

// ValidationResult is the outcome of a possible-number length check.
type ValidationResult byte

// ValidationResults are all possible length check outcomes.
var ValidationResults = struct {
	IsPossible         ValidationResult
	InvalidCountryCode ValidationResult
	TooShort           ValidationResult
	TooLong            ValidationResult
}{
	0, 1, 2, 3,
}

var validationResultNames = [...]string{
	"IS_POSSIBLE", "INVALID_COUNTRY_CODE", "TOO_SHORT", "TOO_LONG",
}

func (v ValidationResult) String() string {
	if int(v) < len(validationResultNames) {
		return validationResultNames[v]
	}
	return "INVALID_COUNTRY_CODE"
}

// GetNumberType classifies a parsed number. Numbers whose region cannot be
// resolved, or that do not match the region's general description, come
// back as Unknown.
func (u *Util) GetNumberType(pn *PhoneNumber) NumberType {
	region := u.GetRegionCodeForNumber(pn)
	meta := u.metadataForRegionOrCallingCode(pn.CountryCode, region)
	if meta == nil {
		return NumberTypes.Unknown
	}
	return u.numberTypeFor(u.GetNationalSignificantNumber(pn), meta)
}

// numberTypeFor runs the fixed inspection order over the metadata
// patterns; the first full match wins.
func (u *Util) numberTypeFor(nsn string, m *metadata.Record) NumberType {
	if !u.matchesEntirely(m.GeneralDesc, nsn) {
		return NumberTypes.Unknown
	}
	switch {
	case u.matchesEntirely(m.PremiumRate, nsn):
		return NumberTypes.PremiumRate
	case u.matchesEntirely(m.TollFree, nsn):
		return NumberTypes.TollFree
	case u.matchesEntirely(m.SharedCost, nsn):
		return NumberTypes.SharedCost
	case u.matchesEntirely(m.Voip, nsn):
		return NumberTypes.Voip
	case u.matchesEntirely(m.PersonalNumber, nsn):
		return NumberTypes.PersonalNumber
	case u.matchesEntirely(m.Pager, nsn):
		return NumberTypes.Pager
	case u.matchesEntirely(m.Uan, nsn):
		return NumberTypes.Uan
	case u.matchesEntirely(m.Voicemail, nsn):
		return NumberTypes.Voicemail
	}
	if u.matchesEntirely(m.FixedLine, nsn) {
		if m.SameMobileAndFixedLinePattern {
			return NumberTypes.FixedLineOrMobile
		}
		if u.matchesEntirely(m.Mobile, nsn) {
			return NumberTypes.FixedLineOrMobile
		}
		return NumberTypes.FixedLine
	}
	if !m.SameMobileAndFixedLinePattern && u.matchesEntirely(m.Mobile, nsn) {
		return NumberTypes.Mobile
	}
	return NumberTypes.Unknown
}

// GetRegionCodeForNumber resolves the region a parsed number belongs to.
// Calling codes shared between regions are disambiguated by each region's
// leading-digit pattern where present, and by a full type test otherwise,
// in the table's order. Returns "" when no region claims the number.
func (u *Util) GetRegionCodeForNumber(pn *PhoneNumber) string {
	regions := u.regionsByCode[pn.CountryCode]
	if len(regions) == 0 {
		u.log.Info("phone: no regions for country calling code",
			zap.Int("countryCode", pn.CountryCode))
		return ""
	}
	if len(regions) == 1 {
		return regions[0]
	}
	nsn := u.GetNationalSignificantNumber(pn)
	for _, region := range regions {
		m := u.regionMetadata(region)
		if m == nil {
			continue
		}
		if m.LeadingDigits != "" {
			if _, ok := u.prefixMatch(m.LeadingDigits, nsn); ok {
				return region
			}
		} else if u.numberTypeFor(nsn, m) != NumberTypes.Unknown {
			return region
		}
	}
	return ""
}

// IsValidNumber reports whether the number fully matches a pattern of its
// resolved region.
func (u *Util) IsValidNumber(pn *PhoneNumber) bool {
	return u.IsValidNumberForRegion(pn, u.GetRegionCodeForNumber(pn))
}

// IsValidNumberForRegion is IsValidNumber pinned to one region: the number
// must carry that region's calling code, or region must be the "001"
// sentinel for a non-geographical number.
func (u *Util) IsValidNumberForRegion(pn *PhoneNumber, region string) bool {
	meta := u.metadataForRegionOrCallingCode(pn.CountryCode, region)
	if meta == nil {
		return false
	}
	if region != RegionNonGeo && pn.CountryCode != u.GetCountryCodeForRegion(region) {
		return false
	}
	return u.numberTypeFor(u.GetNationalSignificantNumber(pn), meta) != NumberTypes.Unknown
}

// IsPossibleNumber reports whether the number is possible purely by its
// length. A valid number is always possible; the converse does not hold.
func (u *Util) IsPossibleNumber(pn *PhoneNumber) bool {
	return u.IsPossibleNumberWithReason(pn) == ValidationResults.IsPossible
}

// IsPossibleNumberWithReason checks the number's length against the
// possible pattern of its calling code's main region.
func (u *Util) IsPossibleNumberWithReason(pn *PhoneNumber) ValidationResult {
	if _, ok := u.regionsByCode[pn.CountryCode]; !ok {
		return ValidationResults.InvalidCountryCode
	}
	region := u.GetRegionCodeForCountryCode(pn.CountryCode)
	meta := u.metadataForRegionOrCallingCode(pn.CountryCode, region)
	if meta == nil {
		return ValidationResults.InvalidCountryCode
	}
	return u.testNumberLength(u.GetNationalSignificantNumber(pn), meta)
}

// IsPossibleNumberWithRegion parses the text and checks possibility in one
// go; any parse failure reports false.
func (u *Util) IsPossibleNumberWithRegion(number, regionDialingFrom string) bool {
	pn, err := u.Parse(number, regionDialingFrom)
	if err != nil {
		return false
	}
	return u.IsPossibleNumber(pn)
}

// testNumberLength matches the NSN against the possible-length pattern:
// a full match is possible, a prefix match means the number runs long,
// anything else means it is short.
func (u *Util) testNumberLength(nsn string, m *metadata.Record) ValidationResult {
	pattern := m.GeneralDescPossible
	if pattern == "" {
		pattern = m.GeneralDesc
	}
	if u.matchesEntirely(pattern, nsn) {
		return ValidationResults.IsPossible
	}
	if _, ok := u.prefixMatch(pattern, nsn); ok {
		return ValidationResults.TooLong
	}
	return ValidationResults.TooShort
}

// matchesEntirely reports whether the whole string matches the pattern.
// Empty patterns, i.e. fields absent from the metadata, never match.
func (u *Util) matchesEntirely(pattern, s string) bool {
	if pattern == "" {
		return false
	}
	return u.cache.get("^(?:" + pattern + ")$").MatchString(s)
}

// prefixMatch anchors the pattern at the start of the string and returns
// the end offset of the match.
func (u *Util) prefixMatch(pattern, s string) (int, bool) {
	if pattern == "" {
		return 0, false
	}
	loc := u.cache.get("^(?:" + pattern + ")").FindStringIndex(s)
	if loc == nil {
		return 0, false
	}
	return loc[1], true
}
