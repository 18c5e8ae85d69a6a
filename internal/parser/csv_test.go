package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/example/aishub-feed/internal/models"
)

func TestParseCSVMapsColumnsByName(t *testing.T) {
	payload := strings.Join([]string{
		"MMSI,TIME,LONGITUDE,LATITUDE,COG,SOG,HEADING,ROT,NAVSTAT,IMO,NAME,CALLSIGN,TYPE,A,B,C,D,DRAUGHT,DEST,ETA",
		`244660616,2020-08-17 12:36:27 GMT,6.17468,51.8392,360,0,121,0,0,0,EDELWEISS,PE6813,89,86,0,13,0,0.2,SPYCK,00-00 00:00`,
	}, "\n")

	msg, err := Parse([]byte(payload), models.FormatCSV)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg.Header.ErrorCode != 0 {
		t.Fatalf("expected synthesized success header, got error code %d", msg.Header.ErrorCode)
	}
	if msg.Header.Records == nil || *msg.Header.Records != 1 {
		t.Fatalf("expected synthesized record count 1, got %v", msg.Header.Records)
	}
	if len(msg.Records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(msg.Records))
	}

	rec := msg.Records[0]
	if rec.MMSI != 244660616 || rec.Name != "EDELWEISS" || rec.Draught != 0.2 {
		t.Fatalf("unexpected record %+v", rec)
	}
	if rec.ETA != models.ETAUnknown {
		t.Fatalf("expected eta sentinel passed through, got %q", rec.ETA)
	}
}

func TestParseCSVColumnOrderDoesNotMatter(t *testing.T) {
	payload := "NAME,MMSI,LATITUDE\nEDELWEISS,244660616,51.8392"

	msg, err := Parse([]byte(payload), models.FormatCSV)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rec := msg.Records[0]
	if rec.MMSI != 244660616 || rec.Name != "EDELWEISS" || rec.Latitude != 51.8392 {
		t.Fatalf("unexpected record %+v", rec)
	}
	// Columns missing from the header take the schema defaults.
	if rec.Longitude != 0 || rec.IMO != 0 || rec.Dest != "" {
		t.Fatalf("expected defaults for absent columns, got %+v", rec)
	}
}

func TestParseCSVEmptyCellIsAbsent(t *testing.T) {
	payload := "MMSI,IMO,NAME\n244660616,,EDELWEISS"

	msg, err := Parse([]byte(payload), models.FormatCSV)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg.Records[0].IMO != 0 {
		t.Fatalf("expected empty IMO cell to default to 0, got %d", msg.Records[0].IMO)
	}
}

func TestParseCSVMalformedNumericCell(t *testing.T) {
	payload := "MMSI,LONGITUDE\n244660616,abc"
	if _, err := Parse([]byte(payload), models.FormatCSV); !errors.Is(err, ErrParse) {
		t.Fatalf("expected ErrParse for non-numeric longitude, got %v", err)
	}
}

func TestParseCSVRejectsNonCSVErrorText(t *testing.T) {
	if _, err := Parse([]byte("wrong username"), models.FormatCSV); !errors.Is(err, ErrParse) {
		t.Fatalf("expected ErrParse for upstream error text, got %v", err)
	}
}

func TestParseCSVEmptyPayload(t *testing.T) {
	if _, err := Parse(nil, models.FormatCSV); !errors.Is(err, ErrParse) {
		t.Fatalf("expected ErrParse for empty payload, got %v", err)
	}
}

func TestParseCSVHeaderOnly(t *testing.T) {
	msg, err := Parse([]byte("MMSI,TIME,NAME"), models.FormatCSV)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(msg.Records) != 0 {
		t.Fatalf("expected no records, got %d", len(msg.Records))
	}
	if msg.Header.Records == nil || *msg.Header.Records != 0 {
		t.Fatalf("expected synthesized record count 0, got %v", msg.Header.Records)
	}
}
