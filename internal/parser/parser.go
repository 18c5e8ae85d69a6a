// Package parser converts decompressed upstream payloads into the
// normalized ParsedMessage representation. Each serialization format has its
// own Parser implementation behind an explicit format-keyed dispatch; the
// declared format is always trusted, content is never sniffed.
package parser

import (
	"errors"
	"fmt"

	"github.com/example/aishub-feed/internal/models"
)

// ErrParse is the sentinel wrapped by every structural parse failure:
// malformed documents, missing mandatory headers, and present fields that
// fail their required numeric conversion. Defaults are only ever substituted
// for absent fields, never for malformed ones.
var ErrParse = errors.New("parse error")

// Parser turns a decompressed payload into a ParsedMessage. Implementations
// are stateless and safe for concurrent use; row order always matches the
// order of appearance in the payload.
type Parser interface {
	Parse(payload []byte) (*models.ParsedMessage, error)
}

// For returns the Parser registered for the given serialization format.
func For(format models.SerializationFormat) (Parser, error) {
	switch format {
	case models.FormatXML:
		return xmlParser{}, nil
	case models.FormatJSON:
		return jsonParser{}, nil
	case models.FormatCSV:
		return csvParser{}, nil
	default:
		return nil, fmt.Errorf("parser: unsupported serialization format %q", format)
	}
}

// Parse dispatches to the parser for the declared format.
func Parse(payload []byte, format models.SerializationFormat) (*models.ParsedMessage, error) {
	p, err := For(format)
	if err != nil {
		return nil, err
	}
	return p.Parse(payload)
}

func wrapParse(format models.SerializationFormat, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrParse, format, err)
}
