// Package luhn implements the Luhn mod N check symbol algorithm over an
// arbitrary ordered alphabet.
package luhn

import (
	"errors"
	"fmt"
)

var (
	ErrAlphabetTooShort = errors.New("luhn: alphabet needs at least two symbols")
	ErrDuplicateSymbol  = errors.New("luhn: duplicate symbol in alphabet")
	ErrEmptyInput       = errors.New("luhn: input too short")
	ErrUnknownSymbol    = errors.New("luhn: symbol not in alphabet")
)

// Luhn validates and generates check symbols for a fixed alphabet. The
// codepoint of a symbol is its position in the alphabet. A Luhn is read-only
// after construction and safe for concurrent use.
type Luhn struct {
	alphabet   []byte
	codepoints [256]int
}

// New builds a validator for alphabet. Symbols are single bytes.
func New(alphabet string) (*Luhn, error) {
	if len(alphabet) < 2 {
		return nil, ErrAlphabetTooShort
	}
	l := &Luhn{alphabet: []byte(alphabet)}
	for i := range l.codepoints {
		l.codepoints[i] = -1
	}
	for i := 0; i < len(alphabet); i++ {
		c := alphabet[i]
		if l.codepoints[c] != -1 {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateSymbol, c)
		}
		l.codepoints[c] = i
	}
	return l, nil
}

// Must is like New but panics on an invalid alphabet. Use for package-level
// validators built from constants.
func Must(alphabet string) *Luhn {
	l, err := New(alphabet)
	if err != nil {
		panic(err)
	}
	return l
}

// Alphabet returns the ordered alphabet the validator was built with.
func (l *Luhn) Alphabet() string {
	return string(l.alphabet)
}

// Generate computes the check symbol for payload.
//
// The payload is walked left to right with factors 1, 2, 1, ... Each addend
// is reduced to the sum of its base-N digits.
func (l *Luhn) Generate(payload string) (byte, error) {
	if len(payload) == 0 {
		return 0, ErrEmptyInput
	}
	n := len(l.alphabet)
	factor := 1
	sum := 0
	for i := 0; i < len(payload); i++ {
		cp, err := l.codepoint(payload[i])
		if err != nil {
			return 0, err
		}
		addend := factor * cp
		if factor == 2 {
			factor = 1
		} else {
			factor = 2
		}
		sum += addend/n + addend%n
	}
	return l.alphabet[(n-sum%n)%n], nil
}

// Validate reports whether the last symbol of s is the check symbol of the
// rest. Inputs shorter than two symbols return ErrEmptyInput.
func (l *Luhn) Validate(s string) (bool, error) {
	if len(s) < 2 {
		return false, ErrEmptyInput
	}
	last := len(s) - 1
	if _, err := l.codepoint(s[last]); err != nil {
		return false, err
	}
	want, err := l.Generate(s[:last])
	if err != nil {
		return false, err
	}
	return s[last] == want, nil
}

func (l *Luhn) codepoint(c byte) (int, error) {
	cp := l.codepoints[c]
	if cp < 0 {
		return 0, fmt.Errorf("%w: %q", ErrUnknownSymbol, c)
	}
	return cp, nil
}
