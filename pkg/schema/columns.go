// Package schema holds the static table of known light-curve columns.
//
// Every column the old HAT light-curve server could emit has one entry here:
// a human description, the printf-style format the server used when writing
// the column as text, the FITS TFORM code it used in binary tables, and the
// value kind the text decoder coerces raw tokens to. The table is defined
// once at init and is read-only afterwards, so it is safe to share across any
// number of concurrent reads.
package schema

import (
	"sort"
	"strconv"
	"strings"
)

// Kind is the value family a column's raw text tokens coerce to.
type Kind int

const (
	// String columns are kept as trimmed raw tokens
	String Kind = iota
	// Int columns parse as base-10 integers
	Int
	// Float columns parse as decimal floating point
	Float
)

// String returns the kind's name.
func (k Kind) String() string {
	switch k {
	case Int:
		return "int"
	case Float:
		return "float"
	default:
		return "string"
	}
}

// ColumnSpec describes one known light-curve column. Specs are immutable;
// they are defined in the package-level table and never mutated.
type ColumnSpec struct {
	// Code is the short column code used in file legends, e.g. "BJD"
	Code string
	// Description is the server's human-readable column description
	Description string
	// TextFormat is the printf-style format the server used for text output
	TextFormat string
	// BinaryType is the FITS TFORM code the server used in binary tables
	BinaryType string
	// Kind selects the coercion applied to raw text tokens
	Kind Kind
}

// Coerce converts one raw text token to the column's value kind.
func (s ColumnSpec) Coerce(raw string) (interface{}, error) {
	raw = strings.TrimSpace(raw)
	switch s.Kind {
	case Float:
		return strconv.ParseFloat(raw, 64)
	case Int:
		return strconv.ParseInt(raw, 10, 64)
	default:
		return raw, nil
	}
}

// CoerceColumn converts a whole column of raw tokens, returning []float64,
// []int64, or []string depending on the column's kind. On failure the error
// reports the index of the offending token.
func (s ColumnSpec) CoerceColumn(raw []string) (interface{}, error) {
	switch s.Kind {
	case Float:
		out := make([]float64, len(raw))
		for i, tok := range raw {
			v, err := strconv.ParseFloat(strings.TrimSpace(tok), 64)
			if err != nil {
				return nil, &CoerceError{Code: s.Code, Index: i, Token: tok, Err: err}
			}
			out[i] = v
		}
		return out, nil
	case Int:
		out := make([]int64, len(raw))
		for i, tok := range raw {
			v, err := strconv.ParseInt(strings.TrimSpace(tok), 10, 64)
			if err != nil {
				return nil, &CoerceError{Code: s.Code, Index: i, Token: tok, Err: err}
			}
			out[i] = v
		}
		return out, nil
	default:
		out := make([]string, len(raw))
		for i, tok := range raw {
			out[i] = strings.TrimSpace(tok)
		}
		return out, nil
	}
}

// CoerceError reports a raw token that failed to parse as its column's kind.
type CoerceError struct {
	Code  string
	Index int
	Token string
	Err   error
}

func (e *CoerceError) Error() string {
	return "column " + e.Code + " value " + strconv.Itoa(e.Index) + " (" +
		strconv.Quote(e.Token) + "): " + e.Err.Error()
}

func (e *CoerceError) Unwrap() error { return e.Err }

// Lookup returns the spec for a column code.
func Lookup(code string) (ColumnSpec, bool) {
	s, ok := columns[code]
	return s, ok
}

// Codes returns all known column codes in sorted order.
func Codes() []string {
	out := make([]string, 0, len(columns))
	for code := range columns {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

// All returns the specs for all known columns in sorted code order.
func All() []ColumnSpec {
	codes := Codes()
	out := make([]ColumnSpec, len(codes))
	for i, code := range codes {
		out[i] = columns[code]
	}
	return out
}

// columns is the server's column table. Codes, descriptions, text formats and
// TFORM codes match the files it produced; do not edit entries without a
// matching change on the server side.
var columns = map[string]ColumnSpec{
	"BJD": {"BJD", "time in Baryocentric Julian Date", "%20.7f", "D", Float},
	"MJD": {"MJD", "time in Modified Julian Date", "%20.7f", "D", Float},
	"HJD": {"HJD", "time in Heliocentric Julian Date", "%20.7f", "D", Float},
	"RJD": {"RJD", "time in Reduced Julian Date", "%20.7f", "D", Float},
	"FJD": {"FJD", "time in Full Julian Date", "%20.7f", "D", Float},
	"XCC": {"XCC", "x coordinate on CCD", "%.1f", "E", Float},
	"YCC": {"YCC", "y coordinate on CCD", "%.1f", "E", Float},

	"IM1": {"IM1", "instrumental lightcurve magnitude (aperture 1)", "%12.5f", "D", Float},
	"IE1": {"IE1", "instrumental lightcurve measurement error (aperture 1)", "%12.5f", "D", Float},
	"IQ1": {"IQ1", "instrumental lightcurve quality flag (aperture 1)", "%s", "1A", String},
	"IM2": {"IM2", "instrumental lightcurve magnitude (aperture 2)", "%12.5f", "D", Float},
	"IE2": {"IE2", "instrumental lightcurve measurement error (aperture 2)", "%12.5f", "D", Float},
	"IQ2": {"IQ2", "instrumental lightcurve quality flag (aperture 2)", "%s", "1A", String},
	"IM3": {"IM3", "instrumental lightcurve magnitude (aperture 3)", "%12.5f", "D", Float},
	"IE3": {"IE3", "instrumental lightcurve measurement error (aperture 3)", "%12.5f", "D", Float},
	"IQ3": {"IQ3", "instrumental lightcurve quality flag (aperture 3)", "%s", "1A", String},

	"RM1": {"RM1", "reduced lightcurve magnitude (aperture 1)", "%12.5f", "D", Float},
	"RM2": {"RM2", "reduced lightcurve magnitude (aperture 2)", "%12.5f", "D", Float},
	"RM3": {"RM3", "reduced lightcurve magnitude (aperture 3)", "%12.5f", "D", Float},
	"EP1": {"EP1", "EPD lightcurve magnitude (aperture 1)", "%12.5f", "D", Float},
	"EP2": {"EP2", "EPD lightcurve magnitude (aperture 2)", "%12.5f", "D", Float},
	"EP3": {"EP3", "EPD lightcurve magnitude (aperture 3)", "%12.5f", "D", Float},
	"TF1": {"TF1", "TFA lightcurve magnitude (aperture 1)", "%12.5f", "D", Float},
	"TF2": {"TF2", "TFA lightcurve magnitude (aperture 2)", "%12.5f", "D", Float},
	"TF3": {"TF3", "TFA lightcurve magnitude (aperture 3)", "%12.5f", "D", Float},

	"RSTF":  {"RSTF", "HAT station and frame number of this LC point", "%s", "10A", String},
	"RSTFC": {"RSTFC", "HAT station, frame number, and CCD of this LC point", "%s", "10A", String},
	"ESTF":  {"ESTF", "HAT station and frame number of this LC point", "%s", "10A", String},
	"ESTFC": {"ESTFC", "HAT station, frame number, and CCD of this LC point", "%s", "10A", String},
	"TSTF":  {"TSTF", "HAT station and frame number of this LC point", "%s", "10A", String},
	"TSTFC": {"TSTFC", "HAT station, frame number, and CCD of this LC point", "%s", "10A", String},

	"FSV": {"FSV", "PSF fit S value", "%12.5f", "E", Float},
	"FDV": {"FDV", "PSF fit D value", "%12.5f", "E", Float},
	"FKV": {"FKV", "PSF fit K value", "%12.5f", "E", Float},

	"FLT": {"FLT", "filter used for this LC point", "%s", "1A", String},
	"FLD": {"FLD", "observed HAT field", "%s", "15A", String},
	"CCD": {"CCD", "CCD taking this LC point", "%s", "I", Int},
	"CFN": {"CFN", "CCD frame number", "%s", "I", Int},
	"STF": {"STF", "HAT station taking this LC point", "%s", "I", Int},
	"BGV": {"BGV", "Background value", "%12.5f", "E", Float},
	"BGE": {"BGE", "Background error", "%12.5f", "E", Float},
	"IHA": {"IHA", "Hour angle of object [hr]", "%12.5f", "E", Float},
	"IZD": {"IZD", "Zenith distance of object [deg]", "%12.5f", "E", Float},
	"NET": {"NET", "HAT network responsible for this LC point", "%s", "2A", String},
	"EXP": {"EXP", "exposure time for this LC point [seconds]", "%12.3f", "E", Float},
	"CAM": {"CAM", "camera taking the exposure for this LC point", "%s", "2A", String},
	"TEL": {"TEL", "telescope taking the exposure for this LC point", "%s", "2A", String},

	"XIC": {"XIC", "image-subtraction X coordinate on CCD", "%.1f", "E", Float},
	"YIC": {"YIC", "image-subtraction Y coordinate on CCD", "%.1f", "E", Float},

	"IRM1": {"IRM1", "image-subtraction lightcurve reduced magnitude (aperture 1)", "%12.5f", "D", Float},
	"IRE1": {"IRE1", "image-subtraction lightcurve measurement error (aperture 1)", "%12.5f", "D", Float},
	"IRQ1": {"IRQ1", "image-subtraction lightcurve quality flag (aperture 1)", "%s", "1A", String},
	"IRM2": {"IRM2", "image-subtraction lightcurve reduced magnitude (aperture 2)", "%12.5f", "D", Float},
	"IRE2": {"IRE2", "image-subtraction lightcurve measurement error (aperture 2)", "%12.5f", "D", Float},
	"IRQ2": {"IRQ2", "image-subtraction lightcurve quality flag (aperture 2)", "%s", "1A", String},
	"IRM3": {"IRM3", "image-subtraction lightcurve reduced magnitude (aperture 3)", "%12.5f", "D", Float},
	"IRE3": {"IRE3", "image-subtraction lightcurve measurement error (aperture 3)", "%12.5f", "D", Float},
	"IRQ3": {"IRQ3", "image-subtraction lightcurve quality flag (aperture 3)", "%s", "1A", String},
	"IEP1": {"IEP1", "image-subtraction EPD lightcurve magnitude (aperture 1)", "%12.5f", "D", Float},
	"IEP2": {"IEP2", "image-subtraction EPD lightcurve magnitude (aperture 2)", "%12.5f", "D", Float},
	"IEP3": {"IEP3", "image-subtraction EPD lightcurve magnitude (aperture 3)", "%12.5f", "D", Float},
	"ITF1": {"ITF1", "image-subtraction TFA lightcurve magnitude (aperture 1)", "%12.5f", "D", Float},
	"ITF2": {"ITF2", "image-subtraction TFA lightcurve magnitude (aperture 2)", "%12.5f", "D", Float},
	"ITF3": {"ITF3", "image-subtraction TFA lightcurve magnitude (aperture 3)", "%12.5f", "D", Float},
}
