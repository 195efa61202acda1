package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecord() *LightCurve {
	return &LightCurve{
		ObjectID:       "HAT-123-4567",
		CrossMatchID:   "01020304+0506070",
		RA:             10.123,
		Dec:            20.456,
		Magnitudes:     [NumBands]float64{11.0, 10.5, 10.2, 9.8, 9.5, 9.3},
		DetectionCount: 2,
		Stations:       []string{"G1", "G2"},
		Filters:        []string{"r"},
		Columns:        []string{"BJD", "IM1", "IQ1", "STF"},
		Data: map[string]interface{}{
			"BJD": []float64{2456000.5, 2456000.6},
			"IM1": []float64{12.345, 12.355},
			"IQ1": []string{"G", "G"},
			"STF": []int64{5, 6},
		},
	}
}

func TestValidate(t *testing.T) {
	lc := sampleRecord()
	require.NoError(t, lc.Validate())
}

func TestValidateLengthMismatch(t *testing.T) {
	lc := sampleRecord()
	lc.Data["BJD"] = []float64{2456000.5}

	err := lc.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BJD")
}

func TestValidateColumnListDisagreement(t *testing.T) {
	lc := sampleRecord()
	lc.Columns = append(lc.Columns, "TF1")
	assert.Error(t, lc.Validate())

	lc = sampleRecord()
	delete(lc.Data, "IQ1")
	assert.Error(t, lc.Validate())
}

func TestTypedAccessors(t *testing.T) {
	lc := sampleRecord()

	bjd, ok := lc.Floats("BJD")
	require.True(t, ok)
	assert.Equal(t, []float64{2456000.5, 2456000.6}, bjd)

	stf, ok := lc.Ints("STF")
	require.True(t, ok)
	assert.Equal(t, []int64{5, 6}, stf)

	iq, ok := lc.Strings("IQ1")
	require.True(t, ok)
	assert.Equal(t, []string{"G", "G"}, iq)

	// wrong family
	_, ok = lc.Floats("IQ1")
	assert.False(t, ok)
	_, ok = lc.Ints("missing")
	assert.False(t, ok)
}

func TestJSON(t *testing.T) {
	out, err := sampleRecord().JSON()
	require.NoError(t, err)

	s := string(out)
	for _, want := range []string{
		`"object_id": "HAT-123-4567"`,
		`"cross_match_id": "01020304+0506070"`,
		`"detection_count": 2`,
		`"BJD"`,
	} {
		assert.True(t, strings.Contains(s, want), "JSON output missing %s", want)
	}
}

func TestSequenceLen(t *testing.T) {
	n, err := SequenceLen([]float64{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = SequenceLen(42)
	assert.Error(t, err)
}
