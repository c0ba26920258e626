package metadata

import (
	"errors"
	"strings"

	"go.uber.org/zap"
)

// Common errors. All of them indicate a malformed metadata file and are
// fatal for the store that encountered them.
var (
	ErrHeaderTruncated    = errors.New("metadata: header truncated")
	ErrEntryCount         = errors.New("metadata: entry count out of range")
	ErrIndexTruncated     = errors.New("metadata: index truncated")
	ErrBodyTruncated      = errors.New("metadata: symbol buffer truncated")
	ErrRecordUnterminated = errors.New("metadata: record not terminated")
)

const (
	symTerminator     = 0  // ends the record
	symFieldSeparator = 31 // ends the field, next symbol is a field letter
)

// symbolChar maps a 5-bit symbol to its mini-language character. Symbols
// 22..30 are unused by the format; they decode to 0 and are dropped.
func symbolChar(v byte) byte {
	switch {
	case v >= 1 && v <= 10:
		return '0' + v - 1
	case v == 11:
		return 'd'
	case v == 12:
		return '['
	case v == 13:
		return ']'
	case v == 14:
		return '('
	case v == 15:
		return ')'
	case v == 16:
		return '|'
	case v == 17:
		return ','
	case v == 18:
		return '-'
	case v == 19:
		return '\\'
	case v == 20:
		return '?'
	case v == 21:
		return ';'
	}
	return 0
}

// decodeRecord runs the field state machine over the entry's symbol range
// and fills rec. The record must hit its terminator symbol before the
// range is exhausted.
func decodeRecord(buf []byte, offset, length int, rec *Record, log *zap.Logger) error {
	pos, end := offset, offset+length
	first := true
	code := -1
	var field []byte

	flush := func() {
		if code < 0 {
			return
		}
		assignField(rec, code, expandPattern(string(field)), log)
		code = -1
	}

	for {
		if pos >= end {
			return ErrRecordUnterminated
		}
		v := symbolAt(buf, pos)
		pos++
		switch {
		case first:
			// In field-letter position a 0 is the field code 'A', not
			// the record terminator.
			code = int(v)
			field = field[:0]
			first = false
		case v == symTerminator:
			flush()
			return nil
		case v == symFieldSeparator:
			flush()
			first = true
		default:
			if c := symbolChar(v); c != 0 {
				field = append(field, c)
			}
		}
	}
}

func assignField(rec *Record, code int, value string, log *zap.Logger) {
	switch code {
	case fieldGeneralDescPossible:
		rec.GeneralDescPossible = value
	case fieldGeneralDesc:
		rec.GeneralDesc = value
	case fieldFixedLine:
		rec.FixedLine = value
	case fieldMobile:
		rec.Mobile = value
	case fieldTollFree:
		rec.TollFree = value
	case fieldPremiumRate:
		rec.PremiumRate = value
	case fieldSharedCost:
		rec.SharedCost = value
	case fieldPersonalNumber:
		rec.PersonalNumber = value
	case fieldVoip:
		rec.Voip = value
	case fieldInternationalPrefix:
		rec.InternationalPrefix = value
	case fieldPager:
		rec.Pager = value
	case fieldLeadingDigits:
		rec.LeadingDigits = value
	case fieldUan:
		rec.Uan = value
	case fieldVoicemail:
		rec.Voicemail = value
	default:
		log.Warn("metadata: skipping unknown field code",
			zap.Int("code", code), zap.String("id", rec.ID))
	}
}

// expandPattern turns a decoded mini-language string into a standard
// regular expression:
//
//	(    becomes the non-capturing (?:   unless escaped
//	d    becomes \d, with a following digit run d3 or d3,5
//	     wrapped into a counted repetition \d{3} or \d{3,5}
//	\;   becomes a literal semicolon
//
// Any other escape sequence passes through with its backslash.
func expandPattern(s string) string {
	var out strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\\' && i+1 < len(s):
			if n := s[i+1]; n == ';' {
				out.WriteByte(';')
			} else {
				out.WriteByte('\\')
				out.WriteByte(n)
			}
			i++
		case c == '(':
			out.WriteString("(?:")
		case c == 'd':
			out.WriteString(`\d`)
			j := i + 1
			k := j
			for k < len(s) && isDigit(s[k]) {
				k++
			}
			if k > j {
				if k < len(s) && s[k] == ',' {
					k++
					for k < len(s) && isDigit(s[k]) {
						k++
					}
				}
				out.WriteByte('{')
				out.WriteString(s[j:k])
				out.WriteByte('}')
				i = k - 1
			}
		default:
			out.WriteByte(c)
		}
	}
	return out.String()
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
