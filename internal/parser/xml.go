package parser

import (
	"encoding/xml"
	"strings"

	"github.com/example/aishub-feed/internal/models"
)

// xmlEnvelope mirrors the upstream XML document: a <response> root carrying
// the status header as attributes, an optional <ERROR_MESSAGE> child, and
// one <vessel> element per row with the column schema as attributes. Typed
// struct decoding gives the required split between absent attributes (zero
// value defaults) and malformed ones (unmarshal errors).
type xmlEnvelope struct {
	XMLName      xml.Name              `xml:"response"`
	Error        int                   `xml:"ERROR,attr"`
	Records      *int                  `xml:"RECORDS,attr"`
	ErrorMessage string                `xml:"ERROR_MESSAGE"`
	Vessels      []models.VesselRecord `xml:"vessel"`
}

type xmlParser struct{}

func (xmlParser) Parse(payload []byte) (*models.ParsedMessage, error) {
	var env xmlEnvelope
	if err := xml.Unmarshal(payload, &env); err != nil {
		return nil, wrapParse(models.FormatXML, err)
	}

	header := models.StatusHeader{
		ErrorCode: env.Error,
		Records:   env.Records,
	}
	if env.Error != 0 {
		// Header-only result; any row elements present alongside the error
		// are discarded.
		header.ErrorMessage = strings.TrimSpace(env.ErrorMessage)
		return &models.ParsedMessage{Header: header}, nil
	}

	return &models.ParsedMessage{Header: header, Records: env.Vessels}, nil
}
