package hatlc

import (
	"io"
	"strconv"
	"strings"

	lcerrors "github.com/hatsurveys/lightcurve/pkg/errors"
	"github.com/hatsurveys/lightcurve/pkg/models"
	"github.com/hatsurveys/lightcurve/pkg/schema"
)

// delimiter selects how data rows split into fields.
type delimiter int

const (
	// delimComma splits on single commas (*.csv sub-format)
	delimComma delimiter = iota
	// delimWhitespace splits on runs of whitespace (*.hatlc sub-format)
	delimWhitespace
)

// Section markers inside the metadata block. Lines between the two hold the
// filter list; lines after the second hold the column legend.
const (
	filterMarker = "Filters used:"
	columnMarker = "Columns:"
)

// textMetadata is the parsed result of the commented metadata block.
type textMetadata struct {
	objectID     string
	crossMatchID string
	ra, dec      float64
	mags         [models.NumBands]float64
	ndet         int
	stations     []string
	filters      []string
	columns      []string
}

// decodeText parses the delimited text format: '#'-prefixed lines form the
// metadata block, all other non-empty lines are one detection each.
func decodeText(r io.Reader, path string, delim delimiter) (*models.LightCurve, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, lcerrors.Wrap(err, lcerrors.ErrorTypeIO, "reading light curve stream").
			WithDetail("path", path)
	}

	var metaLines, dataLines []string
	for _, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.HasPrefix(line, "#") {
			metaLines = append(metaLines, line)
			continue
		}
		// the server pads some files with single-character junk lines;
		// they are discarded along with empties
		if len(line) > 1 {
			dataLines = append(dataLines, line)
		}
	}

	meta, err := parseMetadata(metaLines)
	if err != nil {
		if lcErr, ok := err.(*lcerrors.Error); ok {
			return nil, lcErr.WithDetail("path", path)
		}
		return nil, err
	}

	cols, err := transpose(dataLines, delim)
	if err != nil {
		if lcErr, ok := err.(*lcerrors.Error); ok {
			return nil, lcErr.WithDetail("path", path)
		}
		return nil, err
	}

	if len(cols) != len(meta.columns) {
		return nil, lcerrors.Newf(lcerrors.ErrorTypeMalformedRow,
			"data rows have %d fields but the column legend defines %d columns",
			len(cols), len(meta.columns)).
			WithDetail("path", path)
	}
	if len(dataLines) != meta.ndet {
		return nil, lcerrors.Newf(lcerrors.ErrorTypeMetadata,
			"metadata reports %d detections but the file has %d data rows",
			meta.ndet, len(dataLines)).
			WithDetail("path", path)
	}

	data := make(map[string]interface{}, len(meta.columns))
	for i, code := range meta.columns {
		spec, ok := schema.Lookup(code)
		if !ok {
			return nil, lcerrors.Newf(lcerrors.ErrorTypeUnknownColumn,
				"column code %q from the file legend has no schema entry", code).
				WithDetail("path", path).
				WithDetail("column", code)
		}
		seq, err := spec.CoerceColumn(cols[i])
		if err != nil {
			return nil, lcerrors.Wrap(err, lcerrors.ErrorTypeMalformedRow,
				"coercing column values").
				WithDetail("path", path).
				WithDetail("column", code)
		}
		data[code] = seq
	}

	return &models.LightCurve{
		ObjectID:       meta.objectID,
		CrossMatchID:   meta.crossMatchID,
		RA:             meta.ra,
		Dec:            meta.dec,
		Magnitudes:     meta.mags,
		DetectionCount: meta.ndet,
		Stations:       meta.stations,
		Filters:        meta.filters,
		Columns:        meta.columns,
		Data:           data,
	}, nil
}

// transpose splits each data row into fields and flips rows into per-column
// value lists. Every row must have the same field count; ragged input is
// rejected rather than silently misaligning columns.
func transpose(rows []string, delim delimiter) ([][]string, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	split := func(line string) []string {
		if delim == delimComma {
			return strings.Split(line, ",")
		}
		return strings.Fields(line)
	}

	first := split(rows[0])
	cols := make([][]string, len(first))
	for i := range cols {
		cols[i] = make([]string, len(rows))
		cols[i][0] = first[i]
	}

	for n := 1; n < len(rows); n++ {
		fields := split(rows[n])
		if len(fields) != len(first) {
			return nil, lcerrors.Newf(lcerrors.ErrorTypeMalformedRow,
				"data row %d has %d fields, want %d", n+1, len(fields), len(first)).
				WithDetail("row", n+1).
				WithDetail("expected_fields", len(first)).
				WithDetail("got_fields", len(fields))
		}
		for i, f := range fields {
			cols[i][n] = f
		}
	}

	return cols, nil
}

// parseMetadata decodes the commented header block. The block is positional
// by construction: the first five lines are fixed fields, then the
// filterMarker and columnMarker lines switch the scanner into list mode.
// Everything fragile about the old server's format lives in this one
// function.
func parseMetadata(commentLines []string) (*textMetadata, error) {
	lines := make([]string, 0, len(commentLines))
	for _, l := range commentLines {
		l = strings.TrimSpace(strings.TrimLeft(l, "#"))
		if len(l) > 0 {
			lines = append(lines, l)
		}
	}

	if len(lines) < 5 {
		return nil, lcerrors.Newf(lcerrors.ErrorTypeMetadata,
			"metadata block has %d usable lines, want at least 5", len(lines))
	}

	meta := &textMetadata{}

	// line 0: "<objectId> - <crossMatchId>"
	idParts := strings.Split(lines[0], " - ")
	if len(idParts) != 2 {
		return nil, metadataLineError(0, lines[0], "want \"<objectid> - <crossmatch id>\"")
	}
	meta.objectID = idParts[0]
	meta.crossMatchID = strings.TrimPrefix(idParts[1], "2MASS J")

	// line 1: "RA = <value> deg, Dec = <value> deg"
	coordParts := strings.Split(lines[1], ", ")
	if len(coordParts) != 2 {
		return nil, metadataLineError(1, lines[1], "want \"RA = <v> deg, Dec = <v> deg\"")
	}
	var err error
	if meta.ra, err = parseCoord(coordParts[0]); err != nil {
		return nil, metadataLineError(1, lines[1], err.Error())
	}
	if meta.dec, err = parseCoord(coordParts[1]); err != nil {
		return nil, metadataLineError(1, lines[1], err.Error())
	}

	// line 2: six magnitudes, positional V,R,I,J,H,K regardless of labels
	magParts := strings.Split(lines[2], ", ")
	if len(magParts) != models.NumBands {
		return nil, metadataLineError(2, lines[2], "want six \"<band>mag = <v>\" entries")
	}
	for i, part := range magParts {
		kv := strings.Split(part, " = ")
		v, perr := strconv.ParseFloat(strings.TrimSpace(kv[len(kv)-1]), 64)
		if perr != nil {
			return nil, metadataLineError(2, lines[2], perr.Error())
		}
		meta.mags[i] = v
	}

	// line 3: "<label>: <detection count>"
	ndetParts := strings.Split(lines[3], ": ")
	if len(ndetParts) < 2 {
		return nil, metadataLineError(3, lines[3], "want \"<label>: <count>\"")
	}
	ndet, err := strconv.Atoi(strings.TrimSpace(ndetParts[len(ndetParts)-1]))
	if err != nil {
		return nil, metadataLineError(3, lines[3], err.Error())
	}
	meta.ndet = ndet

	// line 4: "<label>: <station>, <station>, ..."
	stationParts := strings.Split(lines[4], ": ")
	if len(stationParts) < 2 {
		return nil, metadataLineError(4, lines[4], "want \"<label>: <stations>\"")
	}
	meta.stations = strings.Split(stationParts[len(stationParts)-1], ", ")

	filterIdx := indexOfLine(lines, filterMarker)
	columnIdx := indexOfLine(lines, columnMarker)
	if filterIdx < 0 || columnIdx < 0 || columnIdx < filterIdx {
		return nil, lcerrors.Newf(lcerrors.ErrorTypeMetadata,
			"metadata block is missing its %q / %q section markers", filterMarker, columnMarker)
	}

	// the first line of the filter block is a sub-header, not a filter
	filters := lines[filterIdx+1 : columnIdx]
	if len(filters) > 0 {
		meta.filters = filters[1:]
	}

	for _, line := range lines[columnIdx+1:] {
		defParts := strings.Split(line, " - ")
		if len(defParts) != 3 {
			return nil, lcerrors.Newf(lcerrors.ErrorTypeMetadata,
				"column definition %q does not match \"<index> - <code> - <description>\"", line).
				WithDetail("content", line)
		}
		meta.columns = append(meta.columns, defParts[1])
	}

	return meta, nil
}

// parseCoord parses one half of the coordinate line, "<label> = <value> deg".
func parseCoord(s string) (float64, error) {
	kv := strings.Split(s, " = ")
	return strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(kv[len(kv)-1], " deg")), 64)
}

func indexOfLine(lines []string, want string) int {
	for i, l := range lines {
		if l == want {
			return i
		}
	}
	return -1
}

func metadataLineError(idx int, content, why string) *lcerrors.Error {
	return lcerrors.Newf(lcerrors.ErrorTypeMetadata,
		"metadata line %d does not match its expected pattern: %s", idx, why).
		WithDetail("line", idx).
		WithDetail("content", content)
}
