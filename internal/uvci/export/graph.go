package export

import (
	"strconv"
	"strings"

	"uvci/internal/uvci"
	pstrings "uvci/pkg/platform/strings"
)

// ReturnDirective closes a batch of CREATE statements.
const ReturnDirective = "RETURN *"

// Display names of the national variant's nodes.
const (
	nationalCountryName = "Sweden"
	nationalIssuerName  = "E-Hälso Myndigheten"
)

var monthAbbreviations = [...]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// MonthAbbreviation returns "Jan".."Dec" for 1..12 and "Unknown" otherwise.
func MonthAbbreviation(month uint8) string {
	if month < 1 || int(month) > len(monthAbbreviations) {
		return "Unknown"
	}
	return monthAbbreviations[month-1]
}

// Graph returns the Cypher statements linking country, issuer, opaque id,
// vaccination month and reissue id of a national-variant record, in that
// order. Other records produce no statements.
func Graph(rec uvci.Record) []string {
	if !rec.IsNationalVariant() {
		return nil
	}

	year := strconv.FormatUint(uint64(rec.OpaqueVaccinationYear), 10)
	dateNode := "d" + year + strconv.FormatUint(uint64(rec.OpaqueVaccinationMonth), 10)
	dateName := MonthAbbreviation(rec.OpaqueVaccinationMonth) + " " + year

	return []string{
		"CREATE (" + rec.Country + ":country {name:'" + nationalCountryName + "'})" +
			"-[:COUNTRY_OF {}]->" +
			"(" + rec.IssuingEntity + ":issuing_entity {name:'" + nationalIssuerName + "'})",
		"CREATE (" + rec.IssuingEntity + ")" +
			"-[:ISSUER_OF {}]->" +
			"(" + rec.OpaqueID + ":opaque_id {name:'" + rec.OpaqueID + "'})",
		"CREATE (" + dateNode + ":vac_date {name:'" + dateName + "'})",
		"CREATE (" + dateNode + ")-[:VAC_DATE_OF {}]->(" + rec.OpaqueID + ")",
		"CREATE (" + rec.OpaqueUniqueString + ":reissue_id {name:'" + rec.OpaqueIssuance + "'})" +
			"-[:REISSUE_OF {}]->(" + rec.OpaqueID + ")",
	}
}

// GraphBatch parses every identifier in order and returns the combined
// statements with duplicate lines removed, keeping first occurrences.
func GraphBatch(raws []string) []string {
	return GraphRecords(parseAll(raws))
}

// GraphRecords is GraphBatch for already parsed records.
func GraphRecords(recs []uvci.Record) []string {
	var stmts []string
	for _, rec := range recs {
		stmts = append(stmts, Graph(rec)...)
	}
	return pstrings.Dedupe(stmts)
}

// RenderGraph joins statements one per line. With withReturn the
// ReturnDirective is added as the final line. The result ends with a newline
// unless it is empty.
func RenderGraph(stmts []string, withReturn bool) string {
	lines := stmts
	if withReturn {
		lines = append(append([]string(nil), stmts...), ReturnDirective)
	}
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

func parseAll(raws []string) []uvci.Record {
	recs := make([]uvci.Record, len(raws))
	for i, raw := range raws {
		recs[i] = uvci.Parse(raw)
	}
	return recs
}
