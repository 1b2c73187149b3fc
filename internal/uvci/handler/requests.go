package handler

import (
	"fmt"

	"uvci/internal/uvci"
	"uvci/pkg/platform/sentinel"
)

// InspectRequest is the HTTP request body for POST /uvci/inspect and
// POST /uvci/listing. An empty identifier is accepted and yields an empty
// record.
type InspectRequest struct {
	UVCI *string `json:"uvci"`
}

// Validate implements httputil.Validatable.
func (r *InspectRequest) Validate() error {
	if r.UVCI == nil {
		return fmt.Errorf("%w: uvci is required", sentinel.ErrInvalidInput)
	}
	if len(*r.UVCI) > maxIdentifierBytes {
		return fmt.Errorf("%w: uvci must be at most %d bytes", sentinel.ErrInvalidInput, maxIdentifierBytes)
	}
	return nil
}

// Value returns the submitted identifier.
func (r *InspectRequest) Value() string {
	return *r.UVCI
}

// BatchRequest is the HTTP request body for POST /uvci/inspect/batch,
// POST /uvci/csv and POST /uvci/graph.
type BatchRequest struct {
	UVCIs []string `json:"uvcis"`
	// Compact selects the nine column CSV layout.
	Compact bool `json:"compact"`
	// Header prepends the CSV header line.
	Header bool `json:"header"`
}

// Validate implements httputil.Validatable.
func (r *BatchRequest) Validate() error {
	if r.UVCIs == nil {
		return fmt.Errorf("%w: uvcis is required", sentinel.ErrInvalidInput)
	}
	for i, raw := range r.UVCIs {
		if len(raw) > maxIdentifierBytes {
			return fmt.Errorf("%w: uvcis[%d] must be at most %d bytes", sentinel.ErrInvalidInput, i, maxIdentifierBytes)
		}
	}
	return nil
}

// maxIdentifierBytes bounds a single submitted identifier. Identifiers between
// uvci.MaxLength and this bound reach the parser and come back as empty
// records.
const maxIdentifierBytes = 4 * uvci.MaxLength
