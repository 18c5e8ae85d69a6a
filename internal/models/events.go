package models

import "time"

// Feed status constants emitted with FeedStatus events.
const (
	FeedStatusOK       = "ok"
	FeedStatusUpstream = "upstream_error"
	FeedStatusFailed   = "failed"
)

// PositionEvent is the record published to the positions topic, one per
// vessel row of a fetch cycle.
type PositionEvent struct {
	EventID   string       `json:"event_id"`
	BatchID   string       `json:"batch_id"`
	FetchedAt time.Time    `json:"fetched_at"`
	Record    VesselRecord `json:"record"`
}

// FeedStatus summarises one fetch cycle. Exactly one is published per
// cycle: ok with the record count, upstream_error with the service's error
// code, or failed with the structural failure classification.
type FeedStatus struct {
	BatchID         string    `json:"batch_id"`
	Status          string    `json:"status"`
	Records         int       `json:"records,omitempty"`
	UpstreamCode    int       `json:"upstream_code,omitempty"`
	UpstreamMessage string    `json:"upstream_message,omitempty"`
	FailureKind     string    `json:"failure_kind,omitempty"`
	Error           string    `json:"error,omitempty"`
	DurationMs      int64     `json:"duration_ms"`
	Timestamp       time.Time `json:"timestamp"`
}
