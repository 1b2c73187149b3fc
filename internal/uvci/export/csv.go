// Package export renders parsed UVCI records as CSV lines, labelled listings
// and Cypher graph statements.
package export

import (
	"strconv"
	"strings"

	"uvci/internal/uvci"
)

const csvSeparator = ","

// CSVHeader names the columns of CSV, in order.
var CSVHeader = []string{
	"version",
	"country",
	"schema_option",
	"schema_option_desc",
	"issuing_entity",
	"vaccine_id",
	"opaque_unique_string",
	"opaque_id",
	"opaque_issuance",
	"opaque_vaccination_month",
	"opaque_vaccination_year",
	"checksum",
	"checksum_verified",
}

// CompactCSVHeader names the columns of CompactCSV, in order.
var CompactCSVHeader = []string{
	"version",
	"country",
	"schema_option",
	"schema_option_desc",
	"issuing_entity",
	"vaccine_id",
	"opaque_unique_string",
	"checksum",
	"checksum_verified",
}

// CSV renders all thirteen record fields as one comma separated line. Values
// are not quoted; a comma inside a field shifts the columns.
func CSV(rec uvci.Record) string {
	return strings.Join([]string{
		strconv.FormatUint(uint64(rec.Version), 10),
		rec.Country,
		strconv.FormatUint(uint64(rec.SchemaOption), 10),
		rec.SchemaOptionDesc,
		rec.IssuingEntity,
		rec.VaccineID,
		rec.OpaqueUniqueString,
		rec.OpaqueID,
		rec.OpaqueIssuance,
		strconv.FormatUint(uint64(rec.OpaqueVaccinationMonth), 10),
		strconv.FormatUint(uint64(rec.OpaqueVaccinationYear), 10),
		rec.Checksum,
		strconv.FormatBool(rec.ChecksumVerified),
	}, csvSeparator)
}

// CompactCSV is CSV without the national opaque id, issuance and date
// columns.
func CompactCSV(rec uvci.Record) string {
	return strings.Join([]string{
		strconv.FormatUint(uint64(rec.Version), 10),
		rec.Country,
		strconv.FormatUint(uint64(rec.SchemaOption), 10),
		rec.SchemaOptionDesc,
		rec.IssuingEntity,
		rec.VaccineID,
		rec.OpaqueUniqueString,
		rec.Checksum,
		strconv.FormatBool(rec.ChecksumVerified),
	}, csvSeparator)
}

// ParseCSV parses raw and renders it with CSV.
func ParseCSV(raw string) string {
	return CSV(uvci.Parse(raw))
}

// CSVTable renders one line per record, optionally preceded by the header
// line. Every line, the last included, ends with a newline.
func CSVTable(recs []uvci.Record, compact, header bool) string {
	render, columns := CSV, CSVHeader
	if compact {
		render, columns = CompactCSV, CompactCSVHeader
	}

	var b strings.Builder
	if header {
		b.WriteString(strings.Join(columns, csvSeparator))
		b.WriteByte('\n')
	}
	for _, rec := range recs {
		b.WriteString(render(rec))
		b.WriteByte('\n')
	}
	return b.String()
}
