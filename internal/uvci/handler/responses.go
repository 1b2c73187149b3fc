package handler

import (
	"time"

	"github.com/google/uuid"

	"uvci/internal/uvci"
	"uvci/internal/uvci/models"
)

// InspectionResponse is the HTTP representation of one inspection.
type InspectionResponse struct {
	ID              uuid.UUID   `json:"id"`
	Raw             string      `json:"raw"`
	Normalized      string      `json:"normalized"`
	Record          uvci.Record `json:"record"`
	NationalVariant bool        `json:"national_variant"`
	Cached          bool        `json:"cached"`
	InspectedAt     time.Time   `json:"inspected_at"`
}

// BatchResponse is the HTTP response for POST /uvci/inspect/batch.
type BatchResponse struct {
	Inspections []InspectionResponse `json:"inspections"`
	Count       int                  `json:"count"`
	Verified    int                  `json:"verified"`
}

// HistoryResponse is the HTTP response for
// GET /uvci/opaque/{opaqueID}/inspections.
type HistoryResponse struct {
	OpaqueID    string               `json:"opaque_id"`
	Inspections []InspectionResponse `json:"inspections"`
}

// FromInspection converts an inspection to its HTTP response.
func FromInspection(insp *models.Inspection) InspectionResponse {
	return InspectionResponse{
		ID:              insp.ID,
		Raw:             insp.Raw,
		Normalized:      insp.Normalized,
		Record:          insp.Record,
		NationalVariant: insp.Record.IsNationalVariant(),
		Cached:          insp.Cached,
		InspectedAt:     insp.InspectedAt,
	}
}

// FromBatch converts batch results, counting verified checksums.
func FromBatch(inspections []models.Inspection) BatchResponse {
	resp := BatchResponse{Inspections: make([]InspectionResponse, len(inspections))}
	for i := range inspections {
		resp.Inspections[i] = FromInspection(&inspections[i])
		if inspections[i].Record.ChecksumVerified {
			resp.Verified++
		}
	}
	resp.Count = len(inspections)
	return resp
}
