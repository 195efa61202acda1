package hatlc

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hatsurveys/lightcurve/pkg/compression"
	lcerrors "github.com/hatsurveys/lightcurve/pkg/errors"
)

func TestDetectFormat(t *testing.T) {
	cases := []struct {
		name   string
		format Format
		ok     bool
	}{
		{"HAT-123-4567-lc.fits", FormatFITS, true},
		{"HAT-123-4567-lc.fits.gz", FormatFITS, true},
		{"HAT-123-4567-lc.csv", FormatCSV, true},
		{"HAT-123-4567-lc.csv.bz2", FormatCSV, true},
		{"HAT-123-4567-lc.hatlc", FormatHATLC, true},
		{"HAT-123-4567-lc.hatlc.gz", FormatHATLC, true},
		// substring, not suffix
		{"lc.fits.backup", FormatFITS, true},
		// .fits wins over .csv when both appear
		{"lc.fits.csv", FormatFITS, true},
		{"HAT-123-4567-lc.dat", "", false},
		{"lightcurve.txt", "", false},
	}

	for _, c := range cases {
		format, ok := DetectFormat(c.name)
		assert.Equal(t, c.ok, ok, "name %q", c.name)
		assert.Equal(t, c.format, format, "name %q", c.name)
	}
}

func TestReadUnsupportedFormat(t *testing.T) {
	_, err := Read(writeFixture(t, "lc.dat", sampleHATLC))
	require.Error(t, err)
	assert.True(t, lcerrors.IsType(err, lcerrors.ErrorTypeUnsupportedFormat), "got %v", err)
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "no-such-lc.hatlc"))
	require.Error(t, err)
	assert.True(t, lcerrors.IsType(err, lcerrors.ErrorTypeIO), "got %v", err)
}

// Compression and payload format are inferred independently: every
// compression suffix must decompress first and then parse the same way.
func TestReadCompressedVariants(t *testing.T) {
	cases := []struct {
		suffix string
		algo   compression.Algorithm
	}{
		{".gz", compression.Gzip},
		{".bz2", compression.Bzip2},
		{".zst", compression.Zstd},
		{".lz4", compression.LZ4},
	}

	for _, c := range cases {
		t.Run(string(c.algo), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "HAT-123-4567-lc.hatlc"+c.suffix)
			f, err := os.Create(path)
			require.NoError(t, err)
			w, err := compression.NewWriter(c.algo, f)
			require.NoError(t, err)
			_, err = w.Write([]byte(sampleHATLC))
			require.NoError(t, err)
			require.NoError(t, w.Close())
			require.NoError(t, f.Close())

			lc, err := Read(path)
			require.NoError(t, err)
			assert.Equal(t, "HAT-123-4567", lc.ObjectID)
			assert.Equal(t, 2, lc.DetectionCount)
		})
	}
}

func TestReadCompressedCSV(t *testing.T) {
	content := "# HAT-123-4567 - 2MASS J01020304+0506070\n" +
		"# RA = 10.123 deg, Dec = 20.456 deg\n" +
		"# Vmag = 11.0, Rmag = 10.5, Imag = 10.2, Jmag = 9.8, Hmag = 9.5, Kmag = 9.3\n" +
		"# NDET: 2\n" +
		"# HS: G1,G2\n" +
		"# Filters used:\n" +
		"# (header)\n" +
		"# r\n" +
		"# Columns:\n" +
		"# 1 - BJD - time\n" +
		"# 2 - IM1 - mag\n" +
		"2456000.5,12.345\n" +
		"2456000.6,12.355\n"

	path := filepath.Join(t.TempDir(), "HAT-123-4567-lc.csv.gz")
	f, err := os.Create(path)
	require.NoError(t, err)
	w, err := compression.NewWriter(compression.Gzip, f)
	require.NoError(t, err)
	_, err = w.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())

	// a .csv.gz file must decompress with gzip and then parse as
	// comma-delimited text
	lc, err := Read(path)
	require.NoError(t, err)

	bjd, ok := lc.Floats("BJD")
	require.True(t, ok)
	assert.Equal(t, []float64{2456000.5, 2456000.6}, bjd)
}

func TestReadCorruptCompressionStream(t *testing.T) {
	// named .gz but holding plain text
	_, err := Read(writeFixture(t, "lc.hatlc.gz", sampleHATLC))
	require.Error(t, err)
	assert.True(t, lcerrors.IsType(err, lcerrors.ErrorTypeIO), "got %v", err)
}
