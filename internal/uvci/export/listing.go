package export

import (
	"fmt"
	"strings"

	"uvci/internal/uvci"
)

const listingNameWidth = 25

// Listing renders one "name : value" line per field, names left aligned.
//
//	version                  : 1
//	country                  : SE
//	schema_option_number     : 3
//	...
func Listing(rec uvci.Record) string {
	fields := []struct {
		name  string
		value any
	}{
		{"version", rec.Version},
		{"country", rec.Country},
		{"schema_option_number", uint8(rec.SchemaOption)},
		{"schema_option_desc", rec.SchemaOptionDesc},
		{"issuing_entity", rec.IssuingEntity},
		{"vaccine_id", rec.VaccineID},
		{"opaque_unique_string", rec.OpaqueUniqueString},
		{"opaque_id", rec.OpaqueID},
		{"opaque_issuance", rec.OpaqueIssuance},
		{"opaque_vaccination_month", rec.OpaqueVaccinationMonth},
		{"opaque_vaccination_year", rec.OpaqueVaccinationYear},
		{"checksum", rec.Checksum},
		{"checksum_verification", rec.ChecksumVerified},
	}

	var b strings.Builder
	for _, f := range fields {
		fmt.Fprintf(&b, "%-*s: %v\n", listingNameWidth, f.name, f.value)
	}
	return b.String()
}
