// Package hatlc reads light curves produced by the old HAT light-curve
// server into models.LightCurve records.
//
// The server distributed each light curve as one file named so that both the
// compression and the payload format can be inferred from basename
// substrings: *.fits for binary tables, *.csv for comma-delimited text,
// *.hatlc for whitespace-delimited text, with an optional *.gz or *.bz2
// compression suffix. Compression is checked first and independently of the
// payload format, so a *.csv.gz file decompresses with gzip and then parses
// as comma-delimited text. There is no magic-byte sniffing.
//
// Decoding is all-or-nothing: on any failure an error from pkg/errors is
// returned and no partial record is ever produced.
package hatlc

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/hatsurveys/lightcurve/pkg/compression"
	lcerrors "github.com/hatsurveys/lightcurve/pkg/errors"
	"github.com/hatsurveys/lightcurve/pkg/logger"
	"github.com/hatsurveys/lightcurve/pkg/models"
)

// Format is a light-curve payload format.
type Format string

const (
	// FormatFITS is the binary-table format
	FormatFITS Format = "fits"
	// FormatCSV is comma-delimited text
	FormatCSV Format = "csv"
	// FormatHATLC is whitespace-delimited text
	FormatHATLC Format = "hatlc"
)

// DetectFormat returns the payload format implied by a file name. The checks
// are substring presence in a fixed order: .fits first, then .csv, then
// .hatlc. A name matching none of them reports false.
func DetectFormat(name string) (Format, bool) {
	switch {
	case strings.Contains(name, ".fits"):
		return FormatFITS, true
	case strings.Contains(name, ".csv"):
		return FormatCSV, true
	case strings.Contains(name, ".hatlc"):
		return FormatHATLC, true
	}
	return "", false
}

// Read parses the light-curve file at path. Compression and payload format
// are inferred from the basename; see the package documentation for the
// naming contract.
func Read(path string) (*models.LightCurve, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, lcerrors.Wrap(err, lcerrors.ErrorTypeIO, "opening light curve file").
			WithDetail("path", path)
	}
	defer f.Close()

	return readStream(f, filepath.Base(path), path)
}

// ReadFrom parses a light curve from an already-open stream. The name is
// used only for compression and format detection, exactly as a file's
// basename would be in Read.
func ReadFrom(r io.Reader, name string) (*models.LightCurve, error) {
	return readStream(r, name, name)
}

func readStream(r io.Reader, name, path string) (*models.LightCurve, error) {
	algo := compression.Detect(name)

	dr, err := compression.NewReader(algo, r)
	if err != nil {
		return nil, lcerrors.Wrap(err, lcerrors.ErrorTypeIO, "opening decompression stream").
			WithDetail("path", path).
			WithDetail("compression", string(algo))
	}
	defer dr.Close()

	format, ok := DetectFormat(name)
	if !ok {
		return nil, lcerrors.Newf(lcerrors.ErrorTypeUnsupportedFormat,
			"file name %q matches no known light-curve format (.fits, .csv, .hatlc)", name).
			WithDetail("path", path)
	}

	logger.Debug("decoding light curve",
		zap.String("file", name),
		zap.String("compression", string(algo)),
		zap.String("format", string(format)))

	var lc *models.LightCurve
	switch format {
	case FormatFITS:
		lc, err = decodeBinaryTable(dr, path)
	case FormatCSV:
		lc, err = decodeText(dr, path, delimComma)
	default:
		lc, err = decodeText(dr, path, delimWhitespace)
	}
	if err != nil {
		return nil, err
	}

	if verr := lc.Validate(); verr != nil {
		return nil, lcerrors.Wrap(verr, lcerrors.ErrorTypeMetadata,
			"decoded record fails structural checks").
			WithDetail("path", path)
	}

	logger.Debug("decoded light curve",
		zap.String("object_id", lc.ObjectID),
		zap.Int("detections", lc.DetectionCount),
		zap.Int("columns", len(lc.Columns)))

	return lc, nil
}
