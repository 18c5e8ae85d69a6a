package parser

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/example/aishub-feed/internal/models"
)

type csvParser struct{}

// Parse reads the header line into a column-name → position table and maps
// every following line through it. CSV carries no in-band status header, so
// a successful parse synthesizes ErrorCode 0 with Records set to the number
// of data rows. The header line must name the MMSI column: upstream error
// text is not CSV and must not be misread as a zero-row success.
func (csvParser) Parse(payload []byte) (*models.ParsedMessage, error) {
	r := csv.NewReader(bytes.NewReader(payload))
	r.TrimLeadingSpace = true

	lines, err := r.ReadAll()
	if err != nil {
		return nil, wrapParse(models.FormatCSV, err)
	}
	if len(lines) == 0 {
		return nil, wrapParse(models.FormatCSV, fmt.Errorf("missing header line"))
	}

	columns := make(map[string]int, len(lines[0]))
	for i, name := range lines[0] {
		columns[strings.TrimSpace(name)] = i
	}
	if _, ok := columns["MMSI"]; !ok {
		return nil, wrapParse(models.FormatCSV, fmt.Errorf("header line does not name an MMSI column"))
	}

	records := make([]models.VesselRecord, 0, len(lines)-1)
	for n, line := range lines[1:] {
		sc := rowScanner{columns: columns, row: line}
		rec := models.VesselRecord{
			MMSI:      sc.integer("MMSI"),
			Time:      sc.text("TIME"),
			Longitude: sc.float("LONGITUDE"),
			Latitude:  sc.float("LATITUDE"),
			COG:       sc.float("COG"),
			SOG:       sc.float("SOG"),
			Heading:   sc.integer("HEADING"),
			ROT:       sc.integer("ROT"),
			NavStat:   sc.integer("NAVSTAT"),
			IMO:       sc.integer("IMO"),
			Name:      sc.text("NAME"),
			Callsign:  sc.text("CALLSIGN"),
			Type:      sc.integer("TYPE"),
			DimA:      sc.integer("A"),
			DimB:      sc.integer("B"),
			DimC:      sc.integer("C"),
			DimD:      sc.integer("D"),
			Draught:   sc.float("DRAUGHT"),
			Dest:      sc.text("DEST"),
			ETA:       sc.text("ETA"),
		}
		if sc.err != nil {
			return nil, wrapParse(models.FormatCSV, fmt.Errorf("record %d: %v", n+1, sc.err))
		}
		records = append(records, rec)
	}

	count := len(records)
	return &models.ParsedMessage{
		Header:  models.StatusHeader{Records: &count},
		Records: records,
	}, nil
}

// rowScanner maps one CSV line through the column table, accumulating the
// first conversion failure. An absent column or an empty cell yields the
// field default; a non-empty cell that fails conversion is an error.
type rowScanner struct {
	columns map[string]int
	row     []string
	err     error
}

func (s *rowScanner) text(name string) string {
	idx, ok := s.columns[name]
	if !ok || idx >= len(s.row) {
		return ""
	}
	return s.row[idx]
}

func (s *rowScanner) integer(name string) int {
	raw := strings.TrimSpace(s.text(name))
	if raw == "" {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil && s.err == nil {
		s.err = fmt.Errorf("column %s: invalid integer %q", name, raw)
	}
	return v
}

func (s *rowScanner) float(name string) float64 {
	raw := strings.TrimSpace(s.text(name))
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil && s.err == nil {
		s.err = fmt.Errorf("column %s: invalid number %q", name, raw)
	}
	return v
}
