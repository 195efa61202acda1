package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	spec, ok := Lookup("BJD")
	require.True(t, ok)
	assert.Equal(t, "BJD", spec.Code)
	assert.Equal(t, Float, spec.Kind)
	assert.Equal(t, "%20.7f", spec.TextFormat)
	assert.Equal(t, "D", spec.BinaryType)

	_, ok = Lookup("NOPE")
	assert.False(t, ok)

	// codes are case-sensitive, as in file legends
	_, ok = Lookup("bjd")
	assert.False(t, ok)
}

func TestCoerce(t *testing.T) {
	bjd, _ := Lookup("BJD")
	v, err := bjd.Coerce(" 2456000.5 ")
	require.NoError(t, err)
	assert.Equal(t, 2456000.5, v)

	stf, _ := Lookup("STF")
	n, err := stf.Coerce("7")
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)

	flt, _ := Lookup("FLT")
	s, err := flt.Coerce(" r ")
	require.NoError(t, err)
	assert.Equal(t, "r", s)

	_, err = bjd.Coerce("not-a-number")
	assert.Error(t, err)
}

func TestCoerceColumn(t *testing.T) {
	bjd, _ := Lookup("BJD")
	vals, err := bjd.CoerceColumn([]string{"2456000.5", "2456000.6"})
	require.NoError(t, err)
	assert.Equal(t, []float64{2456000.5, 2456000.6}, vals)

	ccd, _ := Lookup("CCD")
	ints, err := ccd.CoerceColumn([]string{"1", "2", "1"})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 1}, ints)

	_, err = bjd.CoerceColumn([]string{"2456000.5", "bogus"})
	require.Error(t, err)
	var ce *CoerceError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "BJD", ce.Code)
	assert.Equal(t, 1, ce.Index)
	assert.Equal(t, "bogus", ce.Token)
}

// The TFORM class and the coercion kind describe the same column; they must
// never disagree.
func TestKindAgreesWithBinaryType(t *testing.T) {
	for _, spec := range All() {
		switch {
		case strings.HasSuffix(spec.BinaryType, "A"):
			assert.Equal(t, String, spec.Kind, "column %s", spec.Code)
		case spec.BinaryType == "I" || spec.BinaryType == "J":
			assert.Equal(t, Int, spec.Kind, "column %s", spec.Code)
		case spec.BinaryType == "D" || spec.BinaryType == "E":
			assert.Equal(t, Float, spec.Kind, "column %s", spec.Code)
		default:
			t.Errorf("column %s has unexpected TFORM code %q", spec.Code, spec.BinaryType)
		}
	}
}

func TestTableShape(t *testing.T) {
	codes := Codes()
	assert.Len(t, codes, 64)
	for _, code := range codes {
		spec, ok := Lookup(code)
		require.True(t, ok)
		assert.Equal(t, code, spec.Code)
		assert.NotEmpty(t, spec.Description, "column %s", code)
		assert.NotEmpty(t, spec.TextFormat, "column %s", code)
		assert.NotEmpty(t, spec.BinaryType, "column %s", code)
	}
}
