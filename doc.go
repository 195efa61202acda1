// Package lightcurve reads HAT light curves produced by the old HAT light-curve
// server, as distributed for the hatnet.org and hatsouth.org confirmed-planet
// pages. A light curve arrives as a single file, optionally compressed, in one
// of two payload formats: a FITS binary table, or a delimited text file with a
// commented metadata header.
//
// The main entry point is pkg/hatlc:
//
//	lc, err := hatlc.Read("HAT-123-4567-lc.hatlc.gz")
//	if err != nil {
//	    // inspect with lcerrors.IsType
//	}
//	bjd, _ := lc.Floats("BJD")
//
// Compression (gzip, bzip2, zstd, lz4) and payload format are both inferred
// from substrings of the file's basename, never from magic bytes; callers must
// keep the server's naming convention (*.fits, *.csv, *.hatlc with optional
// *.gz / *.bz2 suffixes).
//
// # Packages
//
//   - pkg/hatlc: the reader itself (format sniffing, FITS and text decoders)
//   - pkg/schema: the static table of known light-curve columns
//   - pkg/models: the LightCurve record returned to callers
//   - pkg/compression: filename-keyed decompression streams
//   - pkg/errors: the structured error taxonomy
//   - pkg/logger: zap-based logging
//
// The cmd/lcdump command is a small inspector built on the reader.
package lightcurve
