package parser

import (
	"encoding/json"

	"github.com/example/aishub-feed/internal/models"
)

// jsonEnvelope mirrors the upstream JSON document: a top-level object with
// the status header keys and a VESSELS array of per-record objects. As with
// XML, typed decoding defaults absent keys and rejects malformed values.
type jsonEnvelope struct {
	Error        int                   `json:"ERROR"`
	ErrorMessage string                `json:"ERROR_MESSAGE"`
	Records      *int                  `json:"RECORDS"`
	Vessels      []models.VesselRecord `json:"VESSELS"`
}

type jsonParser struct{}

func (jsonParser) Parse(payload []byte) (*models.ParsedMessage, error) {
	var env jsonEnvelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil, wrapParse(models.FormatJSON, err)
	}

	header := models.StatusHeader{
		ErrorCode: env.Error,
		Records:   env.Records,
	}
	if env.Error != 0 {
		header.ErrorMessage = env.ErrorMessage
		return &models.ParsedMessage{Header: header}, nil
	}

	return &models.ParsedMessage{Header: header, Records: env.Vessels}, nil
}
