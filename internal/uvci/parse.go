package uvci

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// MaxLength is the longest accepted identifier in bytes, prefix included.
	MaxLength = 72

	// Prefix is prepended when the identifier does not already carry it.
	Prefix = "URN:UVCI:"

	blockDelimiter   = ":"
	segmentDelimiter = "/"
)

// Stage is the furthest parsing stage an identifier reached.
type Stage uint8

const (
	// StageRejected: empty or too long, nothing was computed.
	StageRejected Stage = iota
	// StageChecksum: the checksum was evaluated but the header was not usable.
	StageChecksum
	// StageHeader: version and country were read.
	StageHeader
	// StageSchema: the schema block was read, whether or not its layout is known.
	StageSchema
	// StageNational: the opaque part was decoded for the national variant.
	StageNational
)

func (s Stage) String() string {
	switch s {
	case StageRejected:
		return "rejected"
	case StageChecksum:
		return "checksum"
	case StageHeader:
		return "header"
	case StageSchema:
		return "schema"
	case StageNational:
		return "national"
	default:
		return "unknown"
	}
}

// Parse extracts a Record from raw. It never fails; see ParseWithStage for the
// stage the input reached.
func Parse(raw string) Record {
	rec, _ := ParseWithStage(raw)
	return rec
}

// Normalize uppercases raw and adds the URN:UVCI: prefix when missing. It
// returns false for input that Parse rejects outright. Uppercasing uses full
// Unicode case mapping, so "ß" becomes "SS" and the result may be longer than
// raw; the length limit applies to raw.
func Normalize(raw string) (string, bool) {
	if raw == "" || len(raw) > MaxLength {
		return "", false
	}
	s := cases.Upper(language.Und).String(raw)
	if !strings.HasPrefix(s, Prefix) {
		s = Prefix + s
	}
	return s, true
}

// ParseWithStage is Parse plus the stage at which parsing stopped.
func ParseWithStage(raw string) (Record, Stage) {
	var rec Record

	id, ok := Normalize(raw)
	if !ok {
		return rec, StageRejected
	}

	rec.ChecksumVerified = VerifyChecksum(id)

	body, check, hasCheck := strings.Cut(id, checksumDelimiter)
	if hasCheck {
		rec.Checksum = check
	}

	blocks := strings.Split(body, blockDelimiter)
	// Only rejected when both header words are wrong.
	if blockAt(blocks, 0) != "URN" && blockAt(blocks, 1) != "UVCI" {
		return rec, StageChecksum
	}
	if len(blocks) < 4 {
		return rec, StageChecksum
	}
	rec.Version = parseVersion(blocks[2])
	rec.Country = blocks[3]
	if len(blocks) < 5 {
		return rec, StageHeader
	}

	applySchema(&rec, strings.Split(blocks[4], segmentDelimiter))

	if !rec.IsNationalVariant() {
		return rec, StageSchema
	}
	rec.OpaqueID = rec.OpaqueUniqueString[:nationalIDLen]
	rec.OpaqueIssuance = rec.OpaqueUniqueString[nationalIDLen:]
	rec.OpaqueVaccinationMonth, rec.OpaqueVaccinationYear = EstimateVaccinationDate(rec.OpaqueID)
	return rec, StageNational
}

// schemaForSegments maps the number of "/" segments onto a layout.
func schemaForSegments(n int) SchemaOption {
	switch n {
	case 3:
		return SchemaSemantic
	case 1:
		return SchemaOpaque
	case 2:
		return SchemaSomeSemantics
	default:
		return SchemaUnknown
	}
}

func applySchema(rec *Record, segments []string) {
	option := schemaForSegments(len(segments))
	switch option {
	case SchemaSemantic:
		rec.IssuingEntity = segments[0]
		rec.VaccineID = segments[1]
		rec.OpaqueUniqueString = segments[2]
	case SchemaOpaque:
		rec.OpaqueUniqueString = segments[0]
	case SchemaSomeSemantics:
		rec.IssuingEntity = segments[0]
		rec.OpaqueUniqueString = segments[1]
	case SchemaUnknown:
		return
	}
	rec.SchemaOption = option
	rec.SchemaOptionDesc = option.Description()
}

// parseVersion reads an unsigned 8-bit version, 0 when unparsable.
func parseVersion(s string) uint8 {
	v, err := strconv.ParseUint(strings.TrimPrefix(s, "+"), 10, 8)
	if err != nil {
		return 0
	}
	return uint8(v)
}

func blockAt(blocks []string, i int) string {
	if i < len(blocks) {
		return blocks[i]
	}
	return ""
}
