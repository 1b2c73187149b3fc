// Package models holds the inspection types shared by the service, stores,
// caches and publishers.
package models

import (
	"time"

	"github.com/google/uuid"

	"uvci/internal/uvci"
)

// Inspection is one parsed identifier as seen by the service.
type Inspection struct {
	ID uuid.UUID `json:"id"`
	// Raw is the identifier exactly as submitted.
	Raw string `json:"raw"`
	// Normalized is the uppercased, prefixed form; empty when rejected.
	Normalized  string      `json:"normalized"`
	Record      uvci.Record `json:"record"`
	Cached      bool        `json:"cached"`
	RequestID   string      `json:"request_id,omitempty"`
	InspectedAt time.Time   `json:"inspected_at"`
}

// NewInspection builds an Inspection with a fresh id.
func NewInspection(raw, normalized string, rec uvci.Record, now time.Time) *Inspection {
	return &Inspection{
		ID:          uuid.New(),
		Raw:         raw,
		Normalized:  normalized,
		Record:      rec,
		InspectedAt: now,
	}
}

// InspectionEvent is published for every stored inspection.
type InspectionEvent struct {
	InspectionID       uuid.UUID `json:"inspection_id"`
	RequestID          string    `json:"request_id,omitempty"`
	Country            string    `json:"country"`
	IssuingEntity      string    `json:"issuing_entity"`
	SchemaOption       uint8     `json:"schema_option"`
	OpaqueUniqueString string    `json:"opaque_unique_string"`
	ChecksumVerified   bool      `json:"checksum_verified"`
	NationalVariant    bool      `json:"national_variant"`
	VaccinationMonth   uint8     `json:"vaccination_month,omitempty"`
	VaccinationYear    uint16    `json:"vaccination_year,omitempty"`
	InspectedAt        time.Time `json:"inspected_at"`
}

// Event derives the published event from the inspection.
func (i *Inspection) Event() InspectionEvent {
	return InspectionEvent{
		InspectionID:       i.ID,
		RequestID:          i.RequestID,
		Country:            i.Record.Country,
		IssuingEntity:      i.Record.IssuingEntity,
		SchemaOption:       uint8(i.Record.SchemaOption),
		OpaqueUniqueString: i.Record.OpaqueUniqueString,
		ChecksumVerified:   i.Record.ChecksumVerified,
		NationalVariant:    i.Record.IsNationalVariant(),
		VaccinationMonth:   i.Record.OpaqueVaccinationMonth,
		VaccinationYear:    i.Record.OpaqueVaccinationYear,
		InspectedAt:        i.InspectedAt,
	}
}

// Key partitions events so reissues of one certificate stay ordered. Records
// without an opaque string fall back to the inspection id.
func (e InspectionEvent) Key() string {
	if e.OpaqueUniqueString != "" {
		return e.Country + ":" + e.OpaqueUniqueString
	}
	return e.InspectionID.String()
}
