package models

// Sentinel values the upstream service uses to mark a field as
// "not available". They are ordinary domain data and are passed through
// unmodified by the parser; the constants exist for consumers that want
// to filter them out.
const (
	// HeadingUnavailable marks an unknown true heading.
	HeadingUnavailable = 511
	// ROTUnavailable marks an unknown rate of turn.
	ROTUnavailable = 128
	// ETAUnknown and ETAUnknownAlt are the literal ETA strings emitted when
	// no estimated time of arrival has been set.
	ETAUnknown    = "00-00 00:00"
	ETAUnknownAlt = "00-00 24:60"
)

// VesselRecord is one normalized vessel-position row. The column schema is
// fixed across all serialization formats: fields absent in a given source
// payload carry their zero value (0 for numeric codes, "" for text).
//
// TIME is a timestamp string with an explicit zone (e.g. "GMT") and ETA is
// the upstream "MM-DD HH:MM" form; both are carried verbatim, including the
// sentinel ETA strings above.
type VesselRecord struct {
	MMSI      int     `json:"MMSI" xml:"MMSI,attr"`
	Time      string  `json:"TIME" xml:"TIME,attr"`
	Longitude float64 `json:"LONGITUDE" xml:"LONGITUDE,attr"`
	Latitude  float64 `json:"LATITUDE" xml:"LATITUDE,attr"`
	COG       float64 `json:"COG" xml:"COG,attr"`
	SOG       float64 `json:"SOG" xml:"SOG,attr"`
	Heading   int     `json:"HEADING" xml:"HEADING,attr"`
	ROT       int     `json:"ROT" xml:"ROT,attr"`
	NavStat   int     `json:"NAVSTAT" xml:"NAVSTAT,attr"`
	IMO       int     `json:"IMO" xml:"IMO,attr"`
	Name      string  `json:"NAME" xml:"NAME,attr"`
	Callsign  string  `json:"CALLSIGN" xml:"CALLSIGN,attr"`
	Type      int     `json:"TYPE" xml:"TYPE,attr"`
	DimA      int     `json:"A" xml:"A,attr"`
	DimB      int     `json:"B" xml:"B,attr"`
	DimC      int     `json:"C" xml:"C,attr"`
	DimD      int     `json:"D" xml:"D,attr"`
	Draught   float64 `json:"DRAUGHT" xml:"DRAUGHT,attr"`
	Dest      string  `json:"DEST" xml:"DEST,attr"`
	ETA       string  `json:"ETA" xml:"ETA,attr"`
}
