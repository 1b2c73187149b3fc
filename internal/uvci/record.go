package uvci

// SchemaOption identifies the layout of the fifth colon-delimited block.
type SchemaOption uint8

const (
	SchemaUnknown SchemaOption = iota
	// SchemaSemantic is "issuer/vaccine/opaque".
	SchemaSemantic
	// SchemaOpaque is a bare opaque string.
	SchemaOpaque
	// SchemaSomeSemantics is "issuer/opaque".
	SchemaSomeSemantics
)

// Description returns the human readable label of the option, empty for
// SchemaUnknown.
func (o SchemaOption) Description() string {
	switch o {
	case SchemaSemantic:
		return "identifier with semantics"
	case SchemaOpaque:
		return "opaque identifier - no structure"
	case SchemaSomeSemantics:
		return "some semantics"
	default:
		return ""
	}
}

// IsKnown reports whether o is one of the three defined layouts.
func (o SchemaOption) IsKnown() bool {
	return o >= SchemaSemantic && o <= SchemaSomeSemantics
}

// National variant with a decodable opaque part.
const (
	NationalCountry       = "SE"
	NationalIssuer        = "EHM"
	NationalVersion uint8 = 1

	// nationalOpaqueLen is the length of "<id><issuance>", e.g. V12907267LAJW.
	nationalOpaqueLen = 13
	nationalIDLen     = 9
)

// Record is the parsed form of a UVCI. Fields that could not be extracted keep
// their zero value.
type Record struct {
	Version                uint8        `json:"version"`
	Country                string       `json:"country"`
	SchemaOption           SchemaOption `json:"schema_option"`
	SchemaOptionDesc       string       `json:"schema_option_desc"`
	IssuingEntity          string       `json:"issuing_entity"`
	VaccineID              string       `json:"vaccine_id"`
	OpaqueUniqueString     string       `json:"opaque_unique_string"`
	OpaqueID               string       `json:"opaque_id"`
	OpaqueIssuance         string       `json:"opaque_issuance"`
	OpaqueVaccinationMonth uint8        `json:"opaque_vaccination_month"`
	OpaqueVaccinationYear  uint16       `json:"opaque_vaccination_year"`
	Checksum               string       `json:"checksum"`
	ChecksumVerified       bool         `json:"checksum_verified"`
}

// IsNationalVariant reports whether r is a version 1 SE/EHM certificate using
// the "issuer/opaque" layout with a 13 character opaque string. Only such
// records carry an opaque id, issuance and vaccination date.
func (r Record) IsNationalVariant() bool {
	return r.Version == NationalVersion &&
		r.Country == NationalCountry &&
		r.IssuingEntity == NationalIssuer &&
		r.SchemaOption == SchemaSomeSemantics &&
		len(r.OpaqueUniqueString) == nationalOpaqueLen
}

// IsZero reports whether no field of r has been populated.
func (r Record) IsZero() bool {
	return r == Record{}
}
