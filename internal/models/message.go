package models

import "fmt"

// CompressionScheme enumerates the compressions the upstream service can
// apply to a response payload. The numeric values match the `compress`
// request parameter of the web service.
type CompressionScheme int

const (
	CompressionNone  CompressionScheme = 0
	CompressionZip   CompressionScheme = 1
	CompressionGzip  CompressionScheme = 2
	CompressionBzip2 CompressionScheme = 3
)

// String returns the lower case scheme name used in logs and errors.
func (s CompressionScheme) String() string {
	switch s {
	case CompressionNone:
		return "none"
	case CompressionZip:
		return "zip"
	case CompressionGzip:
		return "gzip"
	case CompressionBzip2:
		return "bzip2"
	default:
		return fmt.Sprintf("compression(%d)", int(s))
	}
}

// SerializationFormat enumerates the supported response encodings. The
// string values match the `output` request parameter of the web service.
type SerializationFormat string

const (
	FormatXML  SerializationFormat = "xml"
	FormatJSON SerializationFormat = "json"
	FormatCSV  SerializationFormat = "csv"
)

// DataFormat selects between raw AIS field values and their human readable
// rendering. It maps to the `format` request parameter.
type DataFormat int

const (
	DataFormatAIS   DataFormat = 0
	DataFormatHuman DataFormat = 1
)

// RawResponse is the byte payload returned by an upstream query together
// with the compression scheme and serialization format that were requested.
// Both are known a priori from the request configuration; nothing is sniffed
// from the content.
type RawResponse struct {
	Payload     []byte
	Compression CompressionScheme
	Format      SerializationFormat
}

// StatusHeader is the normalized response status. ErrorCode zero means
// success; nonzero codes are failure categories defined by the upstream
// service and ErrorMessage is only populated alongside them. Records is the
// row count when the source format carries one, nil otherwise.
type StatusHeader struct {
	ErrorCode    int
	ErrorMessage string
	Records      *int
}

// Err returns an *UpstreamError when the header reports an application-level
// failure, nil otherwise. An upstream failure is a valid parse: it must not
// be confused with the structural parse and decompression errors.
func (h StatusHeader) Err() error {
	if h.ErrorCode == 0 {
		return nil
	}
	return &UpstreamError{Code: h.ErrorCode, Message: h.ErrorMessage}
}

// UpstreamError carries an application-level failure reported inside a
// successfully parsed response (bad credentials, rate limiting, ...).
type UpstreamError struct {
	Code    int
	Message string
}

func (e *UpstreamError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("upstream error %d", e.Code)
	}
	return fmt.Sprintf("upstream error %d: %s", e.Code, e.Message)
}

// ParsedMessage is the final artifact of the parsing pipeline: the status
// header plus the vessel rows in their order of appearance in the source
// payload. When ErrorCode is nonzero the row slice is always empty.
type ParsedMessage struct {
	Header  StatusHeader
	Records []VesselRecord
}
