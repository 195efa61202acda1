package compression

import (
	"bytes"
	"io"
	"testing"
)

func TestDetect(t *testing.T) {
	cases := []struct {
		name string
		want Algorithm
	}{
		{"HAT-123-4567-lc.hatlc.gz", Gzip},
		{"HAT-123-4567-lc.csv.bz2", Bzip2},
		{"HAT-123-4567-lc.fits.gz", Gzip},
		{"HAT-123-4567-lc.hatlc.zst", Zstd},
		{"HAT-123-4567-lc.hatlc.lz4", LZ4},
		{"HAT-123-4567-lc.hatlc", None},
		{"HAT-123-4567-lc.csv", None},
		// substring, not suffix: the marker may appear mid-name
		{"lc.gz.partial", Gzip},
		{"lc.bz2.partial", Bzip2},
	}

	for _, c := range cases {
		if got := Detect(c.name); got != c.want {
			t.Errorf("Detect(%q) = %s, want %s", c.name, got, c.want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	original := bytes.Repeat([]byte("# BJD IM1 detection detection detection\n2456000.5 12.345\n"), 50)

	for _, algo := range []Algorithm{None, Gzip, Bzip2, Zstd, LZ4} {
		t.Run(string(algo), func(t *testing.T) {
			var buf bytes.Buffer
			w, err := NewWriter(algo, &buf)
			if err != nil {
				t.Fatalf("NewWriter(%s): %v", algo, err)
			}
			if _, err := w.Write(original); err != nil {
				t.Fatalf("write: %v", err)
			}
			if err := w.Close(); err != nil {
				t.Fatalf("close writer: %v", err)
			}

			r, err := NewReader(algo, bytes.NewReader(buf.Bytes()))
			if err != nil {
				t.Fatalf("NewReader(%s): %v", algo, err)
			}
			defer r.Close()

			decoded, err := io.ReadAll(r)
			if err != nil {
				t.Fatalf("read: %v", err)
			}
			if !bytes.Equal(original, decoded) {
				t.Errorf("round trip through %s mangled the payload", algo)
			}
		})
	}
}

func TestCorruptGzipStream(t *testing.T) {
	_, err := NewReader(Gzip, bytes.NewReader([]byte("this is not a gzip stream")))
	if err == nil {
		t.Fatal("expected an error for a corrupt gzip stream")
	}
}

func TestUnknownAlgorithm(t *testing.T) {
	if _, err := NewReader(Algorithm("7z"), bytes.NewReader(nil)); err == nil {
		t.Error("expected an error for an unknown algorithm")
	}
	if _, err := NewWriter(Algorithm("7z"), io.Discard); err == nil {
		t.Error("expected an error for an unknown algorithm")
	}
}
