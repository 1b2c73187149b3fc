package uvci

import "uvci/pkg/luhn"

var checksumValidator = luhn.Must(ChecksumAlphabet)

// VerifyChecksum reports whether a normalized identifier, including its
// trailing check character, passes the Luhn mod 38 check. Without a "#"
// suffix the last character of the body is treated as the check character.
// Symbols outside the UVCI alphabet fail verification.
func VerifyChecksum(normalized string) bool {
	ok, err := checksumValidator.Validate(Remap(normalized))
	if err != nil {
		return false
	}
	return ok
}
