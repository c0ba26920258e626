package phone

import (
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/xlab/phone/metadata"
)

// nanpaCode is the calling code shared by the North American Numbering
// Plan regions.
const nanpaCode = 1

// Util parses, validates and classifies phone numbers. It is immutable
// after construction apart from the lazily decoded metadata and the regex
// cache, both of which tolerate concurrent access.
type Util struct {
	store *metadata.Store
	cache *regexCache
	log   *zap.Logger

	regionsByCode map[int][]string
	ccByRegion    map[string]int
	supported     map[string]struct{}
	nanpa         map[string]struct{}
	nonGeoCodes   map[int]struct{}

	cacheSize int
}

// Option configures a Util.
type Option func(*Util)

// WithLogger sets the logger used for decode anomalies and lookups of
// unknown regions. The default is a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(u *Util) { u.log = log }
}

// WithRegexCacheSize overrides the compiled-pattern cache capacity.
func WithRegexCacheSize(size int) Option {
	return func(u *Util) { u.cacheSize = size }
}

// NewUtil builds a utility around a metadata byte stream and a table of
// calling codes to the ordered region lists sharing them. The first region
// of each list is the main country for that code; the sentinel list
// {"001"} marks a non-geographical calling code. The metadata stream is
// decoded lazily, on the first lookup that needs it.
func NewUtil(metadataBytes []byte, codeToRegion map[int][]string, opts ...Option) *Util {
	u := &Util{
		log:           zap.NewNop(),
		cacheSize:     defaultRegexCacheSize,
		regionsByCode: make(map[int][]string, len(codeToRegion)),
		ccByRegion:    make(map[string]int),
		supported:     make(map[string]struct{}),
		nanpa:         make(map[string]struct{}),
		nonGeoCodes:   make(map[int]struct{}),
	}
	for _, o := range opts {
		o(u)
	}
	u.cache = newRegexCache(u.cacheSize)
	u.store = metadata.NewStore(metadataBytes, metadata.WithLogger(u.log))

	for code, regions := range codeToRegion {
		list := make([]string, len(regions))
		copy(list, regions)
		u.regionsByCode[code] = list

		if len(list) == 1 && list[0] == RegionNonGeo {
			u.nonGeoCodes[code] = struct{}{}
			continue
		}
		for _, region := range list {
			u.supported[region] = struct{}{}
			if _, ok := u.ccByRegion[region]; !ok {
				u.ccByRegion[region] = code
			}
			if code == nanpaCode {
				u.nanpa[region] = struct{}{}
			}
		}
	}
	return u
}

// GetSupportedRegions lists every geographical region the utility knows
// about, sorted.
func (u *Util) GetSupportedRegions() []string {
	regions := make([]string, 0, len(u.supported))
	for r := range u.supported {
		regions = append(regions, r)
	}
	sort.Strings(regions)
	return regions
}

// GetSupportedGlobalNetworkCallingCodes lists the non-geographical calling
// codes, sorted.
func (u *Util) GetSupportedGlobalNetworkCallingCodes() []int {
	codes := make([]int, 0, len(u.nonGeoCodes))
	for c := range u.nonGeoCodes {
		codes = append(codes, c)
	}
	sort.Ints(codes)
	return codes
}

// IsNANPACountry reports whether the region participates in the North
// American Numbering Plan.
func (u *Util) IsNANPACountry(region string) bool {
	_, ok := u.nanpa[region]
	return ok
}

// GetCountryCodeForRegion returns the calling code of a region, or 0 when
// the region is unknown.
func (u *Util) GetCountryCodeForRegion(region string) int {
	code, ok := u.ccByRegion[region]
	if !ok {
		u.log.Warn("phone: country code lookup for unknown region",
			zap.String("region", region))
		return 0
	}
	return code
}

// GetRegionCodeForCountryCode returns the main region of a calling code,
// or RegionUnknown.
func (u *Util) GetRegionCodeForCountryCode(countryCode int) string {
	regions := u.regionsByCode[countryCode]
	if len(regions) == 0 {
		return RegionUnknown
	}
	return regions[0]
}

// GetRegionCodesForCountryCode returns every region sharing a calling
// code, main country first.
func (u *Util) GetRegionCodesForCountryCode(countryCode int) []string {
	regions := u.regionsByCode[countryCode]
	out := make([]string, len(regions))
	copy(out, regions)
	return out
}

// GetNationalSignificantNumber renders the national significant number of
// a parsed value, restoring leading zeros carried out-of-band.
func (u *Util) GetNationalSignificantNumber(pn *PhoneNumber) string {
	var out strings.Builder
	if pn.ItalianLeadingZero {
		out.WriteString(strings.Repeat("0", pn.leadingZeros()))
	}
	out.WriteString(strconv.FormatUint(pn.NationalNumber, 10))
	return out.String()
}

func (u *Util) isValidRegion(region string) bool {
	_, ok := u.supported[region]
	return ok
}

// regionMetadata resolves region metadata for classification paths, where
// a malformed stream degrades to "no metadata" rather than an error.
func (u *Util) regionMetadata(region string) *metadata.Record {
	rec, err := u.store.ForRegion(region)
	if err != nil {
		u.log.Error("phone: metadata decode failed", zap.Error(err))
		return nil
	}
	return rec
}

// metadataForRegionOrCallingCode resolves metadata by region code, falling
// back to the non-geographical entry when region is the "001" sentinel.
func (u *Util) metadataForRegionOrCallingCode(countryCode int, region string) *metadata.Record {
	if region == RegionNonGeo {
		rec, err := u.store.ForNonGeoCallingCode(countryCode)
		if err != nil {
			u.log.Error("phone: metadata decode failed", zap.Error(err))
			return nil
		}
		return rec
	}
	return u.regionMetadata(region)
}
