package metadata

import (
	"encoding/binary"
	"sort"
	"sync"

	"go.uber.org/zap"
)

// Store owns a metadata byte stream and serves decoded records from it.
// The header, index and symbol buffer are decoded exactly once, on first
// lookup; individual records are materialized on demand from their symbol
// range. A Store is safe for concurrent use.
type Store struct {
	raw []byte
	log *zap.Logger

	once sync.Once
	err  error

	entries []entryInfo
	regions map[string]int
	nonGeo  map[int]int
	symbols []byte
}

// An index entry: identity plus the entry's slice of the symbol stream.
type entryInfo struct {
	region string // empty for non-geographical entries
	nonGeo int    // calling code for non-geographical entries
	flags  uint16
	offset int // in symbols
	length int // in symbols
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the logger used for non-fatal decode anomalies.
// The default is a no-op logger.
func WithLogger(log *zap.Logger) StoreOption {
	return func(s *Store) { s.log = log }
}

// NewStore wraps the given metadata stream. The stream is not inspected
// until the first lookup.
func NewStore(data []byte, opts ...StoreOption) *Store {
	s := &Store{
		raw: data,
		log: zap.NewNop(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Init decodes the header, index and symbol buffer. It is idempotent and
// implied by every lookup; calling it explicitly merely surfaces a decode
// error early.
func (s *Store) Init() error {
	s.once.Do(func() { s.err = s.decode() })
	return s.err
}

func (s *Store) decode() error {
	if len(s.raw) < 2 {
		return ErrHeaderTruncated
	}
	n := int(binary.BigEndian.Uint16(s.raw))
	if n == 0 || n > MaxEntries {
		return ErrEntryCount
	}
	indexEnd := 2 + n*6
	if len(s.raw) < indexEnd {
		return ErrIndexTruncated
	}

	s.entries = make([]entryInfo, n)
	s.regions = make(map[string]int, n)
	s.nonGeo = make(map[int]int)
	offset := 0
	for i := 0; i < n; i++ {
		row := s.raw[2+i*6 : 2+i*6+6]
		id := binary.BigEndian.Uint16(row)
		length := int(binary.BigEndian.Uint16(row[2:]))
		flags := binary.BigEndian.Uint16(row[4:])

		e := entryInfo{flags: flags, offset: offset, length: length}
		if id > 1000 {
			// Two ASCII letters: high byte first.
			e.region = string([]byte{byte(id >> 8), byte(id)})
			s.regions[e.region] = i
		} else {
			e.nonGeo = int(id)
			s.nonGeo[e.nonGeo] = i
		}
		s.entries[i] = e
		offset += length
	}

	if len(s.raw) < indexEnd+symbolBytes(offset) {
		return ErrBodyTruncated
	}
	s.symbols = s.raw[indexEnd:]
	return nil
}

// ForRegion returns the record for a two-letter region code, or nil if the
// region is not present. The error is non-nil only when the stream itself
// is malformed.
func (s *Store) ForRegion(region string) (*Record, error) {
	if err := s.Init(); err != nil {
		return nil, err
	}
	i, ok := s.regions[region]
	if !ok {
		return nil, nil
	}
	return s.record(i)
}

// ForNonGeoCallingCode returns the record for a non-geographical calling
// code (the "001" entries), or nil if the code is not present.
func (s *Store) ForNonGeoCallingCode(code int) (*Record, error) {
	if err := s.Init(); err != nil {
		return nil, err
	}
	i, ok := s.nonGeo[code]
	if !ok {
		return nil, nil
	}
	return s.record(i)
}

// RegionCodes lists the region codes present in the stream, sorted.
func (s *Store) RegionCodes() ([]string, error) {
	if err := s.Init(); err != nil {
		return nil, err
	}
	codes := make([]string, 0, len(s.regions))
	for r := range s.regions {
		codes = append(codes, r)
	}
	sort.Strings(codes)
	return codes, nil
}

// NonGeoCallingCodes lists the non-geographical calling codes present in
// the stream, sorted.
func (s *Store) NonGeoCallingCodes() ([]int, error) {
	if err := s.Init(); err != nil {
		return nil, err
	}
	codes := make([]int, 0, len(s.nonGeo))
	for c := range s.nonGeo {
		codes = append(codes, c)
	}
	sort.Ints(codes)
	return codes, nil
}

// record materializes entry i. Each call decodes a fresh Record, so
// callers may hold on to the result without aliasing the store.
func (s *Store) record(i int) (*Record, error) {
	e := s.entries[i]
	rec := &Record{
		ID:          e.region,
		CountryCode: int(e.flags & callingCodeMask),

		SameMobileAndFixedLinePattern: e.flags&flagSameMobileAndFixedLine != 0,
		MainCountryForCode:            e.flags&flagMainCountryForCode != 0,
		LeadingZeroPossible:           e.flags&flagLeadingZeroPossible != 0,
		MobileNumberPortableRegion:    e.flags&flagMobileNumberPortable != 0,
	}
	if rec.ID == "" {
		rec.ID = NonGeoRegionCode
	}
	if err := decodeRecord(s.symbols, e.offset, e.length, rec, s.log); err != nil {
		return nil, err
	}
	return rec, nil
}
