// Package models provides the in-memory record a parsed light curve decodes
// into. A LightCurve is built fresh on every read, is never cached, and is
// owned entirely by the caller once returned.
package models

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// Magnitude band indexes into LightCurve.Magnitudes. The order is fixed by
// the server's metadata line and never changes.
const (
	BandV = iota
	BandR
	BandI
	BandJ
	BandH
	BandK
	// NumBands is the number of catalog magnitude bands
	NumBands
)

// LightCurve is one object's parsed light curve: scalar object metadata plus
// one value sequence per column present in the file.
type LightCurve struct {
	// ObjectID is the HAT identifier, e.g. "HAT-123-4567"
	ObjectID string `json:"object_id"`

	// CrossMatchID is the 2MASS cross-match identifier with its
	// "2MASS J" prefix stripped
	CrossMatchID string `json:"cross_match_id"`

	// RA and Dec are the object coordinates in degrees
	RA  float64 `json:"ra"`
	Dec float64 `json:"dec"`

	// Magnitudes holds the catalog magnitudes in fixed V,R,I,J,H,K order
	Magnitudes [NumBands]float64 `json:"magnitudes"`

	// DetectionCount is the number of data points in every column
	DetectionCount int `json:"detection_count"`

	// Stations lists the HAT stations that contributed points
	Stations []string `json:"stations"`

	// Filters lists the filters used
	Filters []string `json:"filters"`

	// Columns lists the column codes present, in file order
	Columns []string `json:"columns"`

	// Data maps each column code to its value sequence: []float64, []int64,
	// or []string, each of length DetectionCount
	Data map[string]interface{} `json:"data"`
}

// Floats returns a column's values as float64s.
func (lc *LightCurve) Floats(code string) ([]float64, bool) {
	v, ok := lc.Data[code].([]float64)
	return v, ok
}

// Ints returns a column's values as int64s.
func (lc *LightCurve) Ints(code string) ([]int64, bool) {
	v, ok := lc.Data[code].([]int64)
	return v, ok
}

// Strings returns a column's values as strings.
func (lc *LightCurve) Strings(code string) ([]string, bool) {
	v, ok := lc.Data[code].([]string)
	return v, ok
}

// Validate checks the record's structural invariants: Columns lists exactly
// the keys of Data, and every sequence has length DetectionCount.
func (lc *LightCurve) Validate() error {
	if len(lc.Columns) != len(lc.Data) {
		return fmt.Errorf("column list has %d entries but data has %d sequences",
			len(lc.Columns), len(lc.Data))
	}
	for _, code := range lc.Columns {
		seq, ok := lc.Data[code]
		if !ok {
			return fmt.Errorf("column %s listed but has no data sequence", code)
		}
		n, err := SequenceLen(seq)
		if err != nil {
			return fmt.Errorf("column %s: %w", code, err)
		}
		if n != lc.DetectionCount {
			return fmt.Errorf("column %s has %d values, want %d detections",
				code, n, lc.DetectionCount)
		}
	}
	return nil
}

// SequenceLen returns the length of a column value sequence.
func SequenceLen(seq interface{}) (int, error) {
	switch v := seq.(type) {
	case []float64:
		return len(v), nil
	case []int64:
		return len(v), nil
	case []string:
		return len(v), nil
	default:
		return 0, fmt.Errorf("unsupported sequence type %T", seq)
	}
}

// JSON renders the record for tooling and debugging.
func (lc *LightCurve) JSON() ([]byte, error) {
	return json.MarshalIndent(lc, "", "  ")
}
