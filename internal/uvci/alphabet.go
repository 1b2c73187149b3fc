package uvci

import "strings"

const (
	// NativeAlphabet is the symbol order of the UVCI character set.
	NativeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789/:"
	// ChecksumAlphabet is the symbol order the Luhn validator runs over.
	ChecksumAlphabet = "/0123456789:ABCDEFGHIJKLMNOPQRSTUVWXYZ"

	checksumDelimiter = "#"
)

// remapTable sends the k-th native symbol to the k-th checksum symbol, except
// that Z shares Y's target. Unlisted bytes map to themselves.
var remapTable = buildRemapTable()

func buildRemapTable() [256]byte {
	var t [256]byte
	for i := range t {
		t[i] = byte(i)
	}
	for i := 0; i < len(NativeAlphabet); i++ {
		t[NativeAlphabet[i]] = ChecksumAlphabet[i]
	}
	t['Z'] = t['Y']
	return t
}

// Remap rewrites a normalized identifier into the checksum alphabet. The "#"
// delimiter is dropped; the check character itself is kept and remapped.
// Callers must uppercase first. Bytes outside the native alphabet are copied
// unchanged.
func Remap(s string) string {
	s = strings.ReplaceAll(s, checksumDelimiter, "")
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		out[i] = remapTable[s[i]]
	}
	return string(out)
}
