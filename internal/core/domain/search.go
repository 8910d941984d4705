package domain

import "encoding/json"

// SearchRequest is the body sent to the backend for one invocation.
type SearchRequest struct {
	Query string `json:"query"`
}

// SearchResponse is the decoded backend response.
// It lives only for the duration of one invocation.
type SearchResponse struct {
	// Success mirrors the backend's "success" field. An absent field is false.
	Success bool

	// TotalUniqueFiles is the number of distinct matches the backend found.
	TotalUniqueFiles int

	// Top5 holds the ranked primary results, best first.
	Top5 []VulnerabilityRecord

	// Top6To10 holds ranks 6-10, informational only.
	Top6To10 []VulnerabilityRecord

	// Error is the backend's message when Success is false.
	Error string

	// Raw is the verbatim response body.
	Raw []byte
}

// VulnerabilityRecord is a single result as returned by the backend.
// Nil fields were absent (or null) in the response.
type VulnerabilityRecord struct {
	Title       *string
	Severity    *string
	Description *string
	CodeExample *string
	Mitigation  *string
	Category    *string

	// FinalScore is the backend's overall score, kept as raw JSON.
	FinalScore json.RawMessage

	// OriginalJSON references the source file the record was built from.
	OriginalJSON json.RawMessage

	// Scores holds per-source relevance values.
	Scores json.RawMessage

	// FoundInCollections lists the source collections that matched.
	FoundInCollections json.RawMessage
}
