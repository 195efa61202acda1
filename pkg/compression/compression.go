// Package compression provides the decompression streams used when reading
// light-curve files.
//
// The old HAT light-curve server shipped files either uncompressed or with a
// .gz / .bz2 suffix; the algorithm is inferred purely from the file name, by
// substring, never from magic bytes. Zstd and lz4 suffixes are also
// recognized, checked after the legacy suffixes so the server's naming
// contract keeps precedence.
//
//	algo := compression.Detect("HAT-123-4567-lc.hatlc.gz") // Gzip
//	rc, err := compression.NewReader(algo, f)
//	defer rc.Close()
//
// Writers for every algorithm are provided as the mirror image of the
// readers; the reader itself never writes, but tests and tooling use them to
// produce compressed fixtures with the same codecs that decode them.
package compression

import (
	"fmt"
	"io"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Algorithm represents a compression algorithm.
type Algorithm string

const (
	// None represents no compression
	None Algorithm = "none"
	// Gzip represents gzip compression
	Gzip Algorithm = "gzip"
	// Bzip2 represents bzip2 compression
	Bzip2 Algorithm = "bzip2"
	// Zstd represents zstandard compression
	Zstd Algorithm = "zstd"
	// LZ4 represents lz4 compression
	LZ4 Algorithm = "lz4"
)

// suffixes maps filename substrings to algorithms, in detection order. The
// .gz and .bz2 checks come first to match the legacy server contract.
var suffixes = []struct {
	substr string
	algo   Algorithm
}{
	{".gz", Gzip},
	{".bz2", Bzip2},
	{".zst", Zstd},
	{".lz4", LZ4},
}

// Detect returns the compression algorithm implied by a file name. The check
// is substring presence anywhere in the name, not exact-suffix matching:
// "lc.hatlc.gz" and "lc.gz.part" both detect as gzip.
func Detect(name string) Algorithm {
	for _, s := range suffixes {
		if strings.Contains(name, s.substr) {
			return s.algo
		}
	}
	return None
}

// NewReader wraps r in a decompression stream for the given algorithm. The
// returned ReadCloser must be closed by the caller; closing it does not close
// the underlying reader.
func NewReader(algo Algorithm, r io.Reader) (io.ReadCloser, error) {
	switch algo {
	case None:
		return io.NopCloser(r), nil
	case Gzip:
		return gzip.NewReader(r)
	case Bzip2:
		return bzip2.NewReader(r, nil)
	case Zstd:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return dec.IOReadCloser(), nil
	case LZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	default:
		return nil, fmt.Errorf("unsupported compression algorithm: %s", algo)
	}
}

// NewWriter wraps w in a compression stream for the given algorithm. The
// returned WriteCloser must be closed to flush the stream trailer.
func NewWriter(algo Algorithm, w io.Writer) (io.WriteCloser, error) {
	switch algo {
	case None:
		return nopWriteCloser{w}, nil
	case Gzip:
		return gzip.NewWriter(w), nil
	case Bzip2:
		return bzip2.NewWriter(w, &bzip2.WriterConfig{Level: bzip2.DefaultCompression})
	case Zstd:
		return zstd.NewWriter(w)
	case LZ4:
		return lz4.NewWriter(w), nil
	default:
		return nil, fmt.Errorf("unsupported compression algorithm: %s", algo)
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
