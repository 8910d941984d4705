package vulnapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/custodia-labs/vulnsearch/internal/core/domain"
)

// searchEnvelope is the wire format of a search response.
type searchEnvelope struct {
	Success          json.RawMessage   `json:"success"`
	Error            json.RawMessage   `json:"error"`
	TotalUniqueFiles *json.Number      `json:"total_unique_files"`
	Top5             []json.RawMessage `json:"top_5"`
	Top6To10         []json.RawMessage `json:"top_6_10"`
}

// wireRecord is the wire format of a single result. Every field is kept
// raw because the backend does not type them consistently.
type wireRecord struct {
	Title              json.RawMessage `json:"title"`
	Severity           json.RawMessage `json:"severity"`
	FinalScore         json.RawMessage `json:"final_score"`
	Description        json.RawMessage `json:"description"`
	CodeExample        json.RawMessage `json:"code_example"`
	Mitigation         json.RawMessage `json:"mitigation"`
	Category           json.RawMessage `json:"category"`
	OriginalJSON       json.RawMessage `json:"original_json"`
	Scores             json.RawMessage `json:"scores"`
	FoundInCollections json.RawMessage `json:"found_in_collections"`
}

// decodeResponse parses a 200 body. Failure envelopes are decoded, not
// rejected: deciding what to do with them is up to the core.
func decodeResponse(body []byte) (*domain.SearchResponse, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, domain.UnexpectedError(errors.New("response body is not a JSON object"))
	}

	var env searchEnvelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, domain.UnexpectedError(err)
	}

	resp := &domain.SearchResponse{
		Success: isTrue(env.Success),
		Raw:     trimmed,
	}

	if !resp.Success {
		if msg := flexText(env.Error); msg != nil {
			resp.Error = *msg
		}
		return resp, nil
	}

	if env.TotalUniqueFiles == nil {
		return nil, domain.UnexpectedError(errors.New("response is missing total_unique_files"))
	}
	total, err := toInt(*env.TotalUniqueFiles)
	if err != nil {
		return nil, domain.UnexpectedError(fmt.Errorf("total_unique_files: %w", err))
	}
	resp.TotalUniqueFiles = total

	if resp.Top5, err = decodeRecords(env.Top5); err != nil {
		return nil, domain.UnexpectedError(fmt.Errorf("top_5: %w", err))
	}
	if resp.Top6To10, err = decodeRecords(env.Top6To10); err != nil {
		return nil, domain.UnexpectedError(fmt.Errorf("top_6_10: %w", err))
	}

	return resp, nil
}

func decodeRecords(raw []json.RawMessage) ([]domain.VulnerabilityRecord, error) {
	records := make([]domain.VulnerabilityRecord, 0, len(raw))
	for i, item := range raw {
		var w wireRecord
		if err := json.Unmarshal(item, &w); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		records = append(records, domain.VulnerabilityRecord{
			Title:              flexText(w.Title),
			Severity:           flexText(w.Severity),
			FinalScore:         rawValue(w.FinalScore),
			Description:        flexText(w.Description),
			CodeExample:        flexText(w.CodeExample),
			Mitigation:         flexText(w.Mitigation),
			Category:           flexText(w.Category),
			OriginalJSON:       rawValue(w.OriginalJSON),
			Scores:             rawValue(w.Scores),
			FoundInCollections: rawValue(w.FoundInCollections),
		})
	}
	return records, nil
}

// flexText returns a JSON string's value, or the compact JSON text of any
// other value. Absent and null values yield nil.
func flexText(raw json.RawMessage) *string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}

	var s string
	if raw[0] == '"' && json.Unmarshal(raw, &s) == nil {
		return &s
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		s = string(raw)
		return &s
	}
	s = buf.String()
	return &s
}

// rawValue returns raw unchanged, or nil when it is absent or null.
func rawValue(raw json.RawMessage) json.RawMessage {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	return raw
}

// isTrue reports whether raw is the JSON literal true. Any other value,
// including 1 or "true", is not a success.
func isTrue(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("true"))
}

func toInt(n json.Number) (int, error) {
	if i, err := n.Int64(); err == nil {
		return int(i), nil
	}
	f, err := n.Float64()
	if err != nil {
		return 0, err
	}
	return int(f), nil
}
