// Package phone parses, validates and classifies international telephone numbers
// against a compact bit-packed metadata stream.
//
// Utility
//
// The entry point is Util, constructed from a metadata byte stream and a table
// mapping country calling codes to the ordered list of regions sharing them.
// Parse produces a canonical PhoneNumber; the classification methods answer
// questions about region of origin, possible length and number type
// (fixed-line, mobile, toll-free and so on).
//
// Metadata
//
// The metadata stream stores per-region dialing patterns in a regex
// mini-language packed five bits per symbol, see the metadata package.
// This build does not strip national trunk prefixes: a number written with its
// national leading zero keeps that zero in the national significant number and
// is flagged through ItalianLeadingZero.
//
// About
//
// Project page: https://github.com/xlab/phone
package phone
