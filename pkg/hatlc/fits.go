package hatlc

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/astrogo/fitsio"

	lcerrors "github.com/hatsurveys/lightcurve/pkg/errors"
	"github.com/hatsurveys/lightcurve/pkg/models"
)

// binaryTableData is the decoded content of a FITS light curve: the primary
// header's key/value pairs (keys lowercased) and the table extension's
// per-column value sequences.
type binaryTableData struct {
	header  map[string]interface{}
	columns []string
	data    map[string]interface{}
	rows    int
}

// openBinaryTable is the binary-table backend, consulted before the FITS
// branch runs. It is installed once at package init; a nil opener means no
// FITS-capable backend is linked in, and *.fits files fail with a
// missing_capability error instead of decoding.
var openBinaryTable func(io.Reader) (*binaryTableData, error) = openFITS

// decodeBinaryTable parses the FITS format: object metadata from the primary
// header, one value sequence per column of the first table extension. Column
// values keep their native binary types; no schema coercion is applied.
func decodeBinaryTable(r io.Reader, path string) (*models.LightCurve, error) {
	if openBinaryTable == nil {
		return nil, lcerrors.New(lcerrors.ErrorTypeMissingCapability,
			"FITS light curve requested but no binary-table backend is available "+
				"(github.com/astrogo/fitsio)").
			WithDetail("path", path)
	}

	bt, err := openBinaryTable(r)
	if err != nil {
		if lcErr, ok := err.(*lcerrors.Error); ok {
			return nil, lcErr.WithDetail("path", path)
		}
		return nil, lcerrors.Wrap(err, lcerrors.ErrorTypeIO, "reading FITS light curve").
			WithDetail("path", path)
	}

	lc := &models.LightCurve{
		Columns: bt.columns,
		Data:    bt.data,
	}

	if lc.ObjectID, err = headerString(bt, "hatid"); err != nil {
		return nil, wrapHeaderErr(err, path)
	}
	if lc.CrossMatchID, err = headerString(bt, "2massid"); err != nil {
		return nil, wrapHeaderErr(err, path)
	}
	if lc.RA, err = headerFloat(bt, "ra"); err != nil {
		return nil, wrapHeaderErr(err, path)
	}
	if lc.Dec, err = headerFloat(bt, "dec"); err != nil {
		return nil, wrapHeaderErr(err, path)
	}
	for i, key := range [models.NumBands]string{"vmag", "rmag", "imag", "jmag", "hmag", "kmag"} {
		if lc.Magnitudes[i], err = headerFloat(bt, key); err != nil {
			return nil, wrapHeaderErr(err, path)
		}
	}
	if lc.DetectionCount, err = headerInt(bt, "ndet"); err != nil {
		return nil, wrapHeaderErr(err, path)
	}

	stations, err := headerString(bt, "hats")
	if err != nil {
		return nil, wrapHeaderErr(err, path)
	}
	lc.Stations = splitHeaderList(stations)

	filters, err := headerString(bt, "filters")
	if err != nil {
		return nil, wrapHeaderErr(err, path)
	}
	lc.Filters = splitHeaderList(filters)

	return lc, nil
}

// openFITS is the fitsio-backed binary-table opener. The stream is buffered
// in full first: FITS readers seek between HDUs, and the input may be a
// non-seekable decompression stream.
func openFITS(r io.Reader) (*binaryTableData, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	f, err := fitsio.Open(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if len(f.HDUs()) < 2 {
		return nil, lcerrors.New(lcerrors.ErrorTypeMetadata,
			"FITS file has no table extension")
	}

	bt := &binaryTableData{header: make(map[string]interface{})}

	hdr := f.HDU(0).Header()
	for _, key := range hdr.Keys() {
		if card := hdr.Get(key); card != nil {
			bt.header[strings.ToLower(key)] = card.Value
		}
	}

	tbl, ok := f.HDU(1).(*fitsio.Table)
	if !ok {
		return nil, lcerrors.New(lcerrors.ErrorTypeMetadata,
			"FITS extension 1 is not a table")
	}

	cols := tbl.Cols()
	bt.columns = make([]string, len(cols))
	for i, col := range cols {
		bt.columns[i] = col.Name
	}
	bt.rows = int(tbl.NumRows())

	rows, err := tbl.Read(0, tbl.NumRows())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bt.data = make(map[string]interface{}, len(cols))
	scanned := 0
	for rows.Next() {
		vals := make(map[string]interface{}, len(cols))
		if err := rows.Scan(&vals); err != nil {
			return nil, err
		}
		for _, name := range bt.columns {
			seq, err := appendNative(bt.data[name], vals[name])
			if err != nil {
				return nil, fmt.Errorf("column %s: %w", name, err)
			}
			bt.data[name] = seq
		}
		scanned++
	}
	if scanned != bt.rows {
		return nil, fmt.Errorf("short table read: scanned %d of %d rows", scanned, bt.rows)
	}

	return bt, nil
}

// appendNative grows a per-column sequence with one binary value, keeping the
// column's native value family. Integer widths normalize to int64 and float
// widths to float64 so the record's typed accessors work uniformly.
func appendNative(seq, v interface{}) (interface{}, error) {
	switch x := v.(type) {
	case float64:
		s, _ := seq.([]float64)
		return append(s, x), nil
	case float32:
		s, _ := seq.([]float64)
		return append(s, float64(x)), nil
	case int:
		s, _ := seq.([]int64)
		return append(s, int64(x)), nil
	case int8:
		s, _ := seq.([]int64)
		return append(s, int64(x)), nil
	case int16:
		s, _ := seq.([]int64)
		return append(s, int64(x)), nil
	case int32:
		s, _ := seq.([]int64)
		return append(s, int64(x)), nil
	case int64:
		s, _ := seq.([]int64)
		return append(s, x), nil
	case uint8:
		s, _ := seq.([]int64)
		return append(s, int64(x)), nil
	case uint16:
		s, _ := seq.([]int64)
		return append(s, int64(x)), nil
	case uint32:
		s, _ := seq.([]int64)
		return append(s, int64(x)), nil
	case string:
		s, _ := seq.([]string)
		return append(s, x), nil
	case bool:
		s, _ := seq.([]string)
		return append(s, strconv.FormatBool(x)), nil
	default:
		return nil, fmt.Errorf("unsupported binary column type %T", v)
	}
}

func headerString(bt *binaryTableData, key string) (string, error) {
	v, ok := bt.header[key]
	if !ok {
		return "", missingHeaderKey(key)
	}
	switch x := v.(type) {
	case string:
		return strings.TrimSpace(x), nil
	default:
		return fmt.Sprint(x), nil
	}
}

func headerFloat(bt *binaryTableData, key string) (float64, error) {
	v, ok := bt.header[key]
	if !ok {
		return 0, missingHeaderKey(key)
	}
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, lcerrors.Newf(lcerrors.ErrorTypeMetadata,
				"header key %q holds %q, want a number", key, x)
		}
		return f, nil
	default:
		return 0, lcerrors.Newf(lcerrors.ErrorTypeMetadata,
			"header key %q has unexpected type %T", key, v)
	}
}

func headerInt(bt *binaryTableData, key string) (int, error) {
	f, err := headerFloat(bt, key)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

func missingHeaderKey(key string) *lcerrors.Error {
	return lcerrors.Newf(lcerrors.ErrorTypeMetadata,
		"FITS primary header is missing key %q", key).
		WithDetail("key", key)
}

func wrapHeaderErr(err error, path string) error {
	if lcErr, ok := err.(*lcerrors.Error); ok {
		return lcErr.WithDetail("path", path)
	}
	return lcerrors.Wrap(err, lcerrors.ErrorTypeMetadata, "reading FITS header").
		WithDetail("path", path)
}

// splitHeaderList splits a comma-separated header value like "HS02,HS04".
func splitHeaderList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
