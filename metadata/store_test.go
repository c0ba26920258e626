package metadata_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xlab/phone/metadata"
	"github.com/xlab/phone/metadata/metadatatest"
)

func testBlob() []byte {
	return metadatatest.Build(
		metadatatest.Entry{
			Region:                 "US",
			CallingCode:            1,
			SameMobileAndFixedLine: true,
			MainCountryForCode:     true,
			MobileNumberPortable:   true,
			Fields: []metadatatest.Field{
				{Code: 0, Value: "d7(d3)?"},
				{Code: 1, Value: "[2-9]d2[2-9]d6"},
				{Code: 2, Value: "[2-9]d2[2-9]d6"},
				{Code: 4, Value: "8(00|33|44|55|66|77|88)d7"},
				{Code: 11, Value: "011"},
			},
		},
		metadatatest.Entry{
			Region:              "GB",
			CallingCode:         44,
			LeadingZeroPossible: true,
			Fields: []metadatatest.Field{
				{Code: 1, Value: "0?[1-9]d8,9"},
				{Code: 3, Value: "0?7[1-9]d8"},
				{Code: 11, Value: "00"},
				{Code: 23, Value: "0?[17]"},
			},
		},
		metadatatest.Entry{
			NonGeo:             800,
			CallingCode:        800,
			MainCountryForCode: true,
			Fields: []metadatatest.Field{
				{Code: 1, Value: "d8"},
				{Code: 4, Value: "d8"},
			},
		},
	)
}

func TestBuildMatchesHandPackedStream(t *testing.T) {
	t.Parallel()

	// Single entry "US", calling code 1, same-pattern and main-country
	// flags, one general desc field "d2". Index id 0x5553, four symbols,
	// flags 0x0C01; body symbols 1, 11, 3, 0 pack to 0A C6 00.
	blob := metadatatest.Build(metadatatest.Entry{
		Region:                 "US",
		CallingCode:            1,
		SameMobileAndFixedLine: true,
		MainCountryForCode:     true,
		Fields:                 []metadatatest.Field{{Code: 1, Value: "d2"}},
	})
	assert.Equal(t, metadatatest.MustBytes("0001555300040C010AC600"), blob)
}

func TestStoreLookup(t *testing.T) {
	t.Parallel()

	s := metadata.NewStore(testBlob())

	us, err := s.ForRegion("US")
	require.NoError(t, err)
	require.NotNil(t, us)
	assert.Equal(t, "US", us.ID)
	assert.Equal(t, 1, us.CountryCode)
	assert.True(t, us.SameMobileAndFixedLinePattern)
	assert.True(t, us.MainCountryForCode)
	assert.True(t, us.MobileNumberPortableRegion)
	assert.False(t, us.LeadingZeroPossible)
	assert.Equal(t, `\d{7}(?:\d{3})?`, us.GeneralDescPossible)
	assert.Equal(t, `[2-9]\d{2}[2-9]\d{6}`, us.GeneralDesc)
	assert.Equal(t, `[2-9]\d{2}[2-9]\d{6}`, us.FixedLine)
	assert.Equal(t, `8(?:00|33|44|55|66|77|88)\d{7}`, us.TollFree)
	assert.Equal(t, "011", us.InternationalPrefix)
	assert.Empty(t, us.Mobile)

	gb, err := s.ForRegion("GB")
	require.NoError(t, err)
	require.NotNil(t, gb)
	assert.Equal(t, "GB", gb.ID)
	assert.Equal(t, 44, gb.CountryCode)
	assert.True(t, gb.LeadingZeroPossible)
	assert.Equal(t, `0?[1-9]\d{8,9}`, gb.GeneralDesc)
	assert.Equal(t, `0?7[1-9]\d{8}`, gb.Mobile)
	assert.Equal(t, `0?[17]`, gb.LeadingDigits)

	missing, err := s.ForRegion("FR")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestStoreNonGeo(t *testing.T) {
	t.Parallel()

	s := metadata.NewStore(testBlob())

	rec, err := s.ForNonGeoCallingCode(800)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, metadata.NonGeoRegionCode, rec.ID)
	assert.Equal(t, 800, rec.CountryCode)
	assert.True(t, rec.MainCountryForCode)
	assert.Equal(t, `\d{8}`, rec.TollFree)

	missing, err := s.ForNonGeoCallingCode(808)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestStoreCodeLists(t *testing.T) {
	t.Parallel()

	s := metadata.NewStore(testBlob())

	regions, err := s.RegionCodes()
	require.NoError(t, err)
	assert.Equal(t, []string{"GB", "US"}, regions)

	codes, err := s.NonGeoCallingCodes()
	require.NoError(t, err)
	assert.Equal(t, []int{800}, codes)
}

func TestStoreRecordsAreStable(t *testing.T) {
	t.Parallel()

	// Re-decoding an entry yields identical field strings and a distinct
	// value the caller may keep.
	s := metadata.NewStore(testBlob())
	a, err := s.ForRegion("US")
	require.NoError(t, err)
	b, err := s.ForRegion("US")
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.NotSame(t, a, b)
}

func TestStoreConcurrentInit(t *testing.T) {
	t.Parallel()

	s := metadata.NewStore(testBlob())
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec, err := s.ForRegion("GB")
			assert.NoError(t, err)
			assert.NotNil(t, rec)
		}()
	}
	wg.Wait()
}

func TestStoreDecodeErrors(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name string
		hex  string
		err  error
	}{
		{"empty", "", metadata.ErrHeaderTruncated},
		{"header short", "00", metadata.ErrHeaderTruncated},
		{"zero entries", "0000", metadata.ErrEntryCount},
		{"too many entries", "03E9", metadata.ErrEntryCount},
		{"index short", "0002555300040C01", metadata.ErrIndexTruncated},
		{"body short", "0001555300040C010A", metadata.ErrBodyTruncated},
	} {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			s := metadata.NewStore(metadatatest.MustBytes(tc.hex))
			assert.ErrorIs(t, s.Init(), tc.err)
		})
	}
}

func TestStoreUnterminatedRecord(t *testing.T) {
	t.Parallel()

	// Two symbols, no terminator: 00001 00011 -> 08 C0.
	s := metadata.NewStore(metadatatest.MustBytes("000155530002000108C0"))
	require.NoError(t, s.Init())
	_, err := s.ForRegion("US")
	assert.ErrorIs(t, err, metadata.ErrRecordUnterminated)
}
