// Package uvci parses and verifies EU Digital COVID Certificate UVCIs
// (Unique Vaccination Certificate/Assertion Identifiers).
//
// A UVCI has the shape
//
//	URN:UVCI:<version>:<country>:<schema block>#<check character>
//
// where the "URN:UVCI:" prefix and the check character are optional and the
// schema block takes one of three layouts separated by "/". Parsing never
// fails: malformed input yields a Record with fewer populated fields, and an
// integrity failure is reported through Record.ChecksumVerified.
//
// For Swedish certificates issued by E-hälsomyndigheten (EHM) the opaque part
// is further split into an id and a reissue suffix, and the id is used to
// estimate the vaccination month.
//
// Everything in this package is pure and safe for concurrent use.
package uvci
