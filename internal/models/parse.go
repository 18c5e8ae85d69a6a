package models

import (
	"fmt"
	"strings"
)

// ParseSerializationFormat normalizes a configured output format name.
func ParseSerializationFormat(value string) (SerializationFormat, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "xml":
		return FormatXML, nil
	case "json", "":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("unsupported serialization format %q", value)
	}
}

// ParseCompressionScheme validates a configured compression number.
func ParseCompressionScheme(value int) (CompressionScheme, error) {
	switch scheme := CompressionScheme(value); scheme {
	case CompressionNone, CompressionZip, CompressionGzip, CompressionBzip2:
		return scheme, nil
	default:
		return 0, fmt.Errorf("unsupported compression scheme %d", value)
	}
}

// ParseDataFormat validates a configured data format number.
func ParseDataFormat(value int) (DataFormat, error) {
	switch format := DataFormat(value); format {
	case DataFormatAIS, DataFormatHuman:
		return format, nil
	default:
		return 0, fmt.Errorf("unsupported data format %d", value)
	}
}
