package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// NotAvailable is the placeholder for text fields the backend left out.
const NotAvailable = "N/A"

// ToolResult is the normalised outcome of one tool invocation.
// Exactly one of Ok and Err is set.
type ToolResult struct {
	Ok  *SearchSummary
	Err *SearchError
}

// OkResult wraps a successful search.
func OkResult(summary *SearchSummary) ToolResult {
	return ToolResult{Ok: summary}
}

// ErrResult wraps a failure. Unclassified errors become ErrorKindUnexpected.
func ErrResult(err error) ToolResult {
	return ToolResult{Err: AsSearchError(err)}
}

// IsError reports whether the result is a failure.
func (r ToolResult) IsError() bool {
	return r.Err != nil || r.Ok == nil
}

// SearchSummary is the successful shape of a ToolResult.
type SearchSummary struct {
	Summary            string          `json:"summary"`
	TotalFound         int             `json:"total_found"`
	TopResults                 []RankedVulnerability `json:"top_results"`
	AdditionalResultsAvailable int             `json:"additional_results_available,omitempty"`
	Note               string          `json:"note,omitempty"`
}

// RankedVulnerability is a backend record re-keyed for the host.
type RankedVulnerability struct {
	Rank               int             `json:"rank"`
	Title              string          `json:"title"`
	Severity           string          `json:"severity"`
	FinalScore         json.RawMessage `json:"final_score"`
	Description        string          `json:"description"`
	CodeExample        string          `json:"code_example"`
	Mitigation         string          `json:"mitigation"`
	Category           string          `json:"category"`
	FileReference      json.RawMessage `json:"file_reference"`
	RelevanceScores    json.RawMessage `json:"relevance_scores"`
	FoundInCollections json.RawMessage `json:"found_in_collections"`
}

// Ranked converts a backend record into its host-facing form at the given
// 1-based rank, filling absent fields with defaults. Raw JSON fields are
// passed through unchanged.
func (v VulnerabilityRecord) Ranked(rank int) RankedVulnerability {
	return RankedVulnerability{
		Rank:               rank,
		Title:              orNotAvailable(v.Title),
		Severity:           orNotAvailable(v.Severity),
		FinalScore:         rawOr(v.FinalScore, "0"),
		Description:        orNotAvailable(v.Description),
		CodeExample:        orNotAvailable(v.CodeExample),
		Mitigation:         orNotAvailable(v.Mitigation),
		Category:           orNotAvailable(v.Category),
		FileReference:      rawOr(v.OriginalJSON, `"`+NotAvailable+`"`),
		RelevanceScores:    rawOr(v.Scores, "[]"),
		FoundInCollections: rawOr(v.FoundInCollections, "[]"),
	}
}

// Score returns the final score as a number. Numeric strings are parsed;
// any other value counts as 0.
func (r RankedVulnerability) Score() float64 {
	var v any
	if err := json.Unmarshal(r.FinalScore, &v); err != nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return f
		}
	}
	return 0
}

// File returns the file reference as text: a JSON string's value, or the
// compact JSON of any other value.
func (r RankedVulnerability) File() string {
	if len(r.FileReference) == 0 {
		return NotAvailable
	}
	var s string
	if err := json.Unmarshal(r.FileReference, &s); err == nil {
		return s
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, r.FileReference); err != nil {
		return string(r.FileReference)
	}
	return buf.String()
}

func rawOr(raw json.RawMessage, def string) json.RawMessage {
	if len(raw) == 0 {
		return json.RawMessage(def)
	}
	return raw
}

func orNotAvailable(s *string) string {
	if s == nil {
		return NotAvailable
	}
	return *s
}

type okEnvelope struct {
	Success bool `json:"success"`
	*SearchSummary
}

type errEnvelope struct {
	Success bool   `json:"success"`
	Error              string          `json:"error"`
}

// MarshalJSON encodes the result in the shape the host reads:
// {"success": true, ...summary} or {"success": false, "error": reason}.
// A backend failure envelope is emitted unchanged.
func (r ToolResult) MarshalJSON() ([]byte, error) {
	switch {
	case r.Err != nil && len(r.Err.Envelope) > 0:
		if !json.Valid(r.Err.Envelope) {
			return nil, fmt.Errorf("backend envelope is not valid JSON")
		}
		return r.Err.Envelope, nil
	case r.Err != nil:
		return marshalNoEscape(errEnvelope{Success: false, Error: r.Err.Reason})
	case r.Ok != nil:
		return marshalNoEscape(okEnvelope{Success: true, SearchSummary: r.Ok})
	default:
		return nil, errors.New("empty tool result")
	}
}

// Text renders the result as indented JSON. HTML-significant characters
// (common in code examples) and non-ASCII text are kept as-is.
func (r ToolResult) Text() (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return "", err
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
