package luhn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	decimal = "0123456789"
	mod38   = "/0123456789:ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

func TestNew(t *testing.T) {
	t.Run("rejects short alphabet", func(t *testing.T) {
		_, err := New("A")
		assert.ErrorIs(t, err, ErrAlphabetTooShort)
	})

	t.Run("rejects duplicate symbols", func(t *testing.T) {
		_, err := New("ABCA")
		assert.ErrorIs(t, err, ErrDuplicateSymbol)
	})

	t.Run("keeps alphabet order", func(t *testing.T) {
		l, err := New(mod38)
		require.NoError(t, err)
		assert.Equal(t, mod38, l.Alphabet())
	})

	t.Run("must panics on invalid alphabet", func(t *testing.T) {
		assert.Panics(t, func() { Must("") })
	})
}

func TestGenerate(t *testing.T) {
	tests := []struct {
		name     string
		alphabet string
		payload  string
		expected byte
	}{
		{name: "decimal even length", alphabet: decimal, payload: "7992739871", expected: '3'},
		{name: "decimal odd length", alphabet: decimal, payload: "123", expected: '2'},
		{name: "single zero", alphabet: decimal, payload: "0", expected: '0'},
		{name: "letters", alphabet: "ABCDEFGHIJKLMNOPQRSTUVWXYZ", payload: "ABCDEF", expected: 'C'},
		{name: "mod 38", alphabet: mod38, payload: "IFBZIJ17ZOPZG3Z36AYJPQXOVQUV:/8K", expected: '3'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := Must(tt.alphabet)
			got, err := l.Generate(tt.payload)
			require.NoError(t, err)
			assert.Equal(t, string(tt.expected), string(got))
		})
	}

	t.Run("empty payload", func(t *testing.T) {
		_, err := Must(decimal).Generate("")
		assert.ErrorIs(t, err, ErrEmptyInput)
	})

	t.Run("unknown symbol", func(t *testing.T) {
		_, err := Must(decimal).Generate("12a4")
		assert.ErrorIs(t, err, ErrUnknownSymbol)
	})
}

func TestValidate(t *testing.T) {
	l := Must(mod38)

	t.Run("accepts generated check symbol", func(t *testing.T) {
		ok, err := l.Validate("IFBZIJ17ZOPZG3Z36AYJPQXOVQUV:/8K3")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("rejects wrong check symbol", func(t *testing.T) {
		ok, err := l.Validate("IFBZIJ17ZOPZG3Z36AYJPQXOVQUV:/8K/")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("round trips every payload prefix", func(t *testing.T) {
		payload := "IFBZIJ17ZOPZG3Z36AYJPQXOVQUV"
		for i := 1; i <= len(payload); i++ {
			check, err := l.Generate(payload[:i])
			require.NoError(t, err)
			ok, err := l.Validate(payload[:i] + string(check))
			require.NoError(t, err)
			assert.True(t, ok, "prefix %q", payload[:i])
		}
	})

	t.Run("too short", func(t *testing.T) {
		_, err := l.Validate("A")
		assert.ErrorIs(t, err, ErrEmptyInput)
	})

	t.Run("unknown check symbol", func(t *testing.T) {
		_, err := l.Validate("ABC#")
		assert.ErrorIs(t, err, ErrUnknownSymbol)
	})

	t.Run("unknown payload symbol", func(t *testing.T) {
		_, err := l.Validate("AB-C")
		assert.ErrorIs(t, err, ErrUnknownSymbol)
	})
}

func FuzzValidate(f *testing.F) {
	f.Add("IFBZIJ17ZOPZG3Z36AYJPQXOVQUV:/8K3")
	f.Add("")
	f.Add("##")
	f.Add(string([]byte{0xff, 0x00}))

	l := Must(mod38)
	f.Fuzz(func(t *testing.T, input string) {
		ok, err := l.Validate(input)
		if err != nil && ok {
			t.Error("validation reported success together with an error")
		}
		if len(input) >= 2 && err == nil {
			check, genErr := l.Generate(input[:len(input)-1])
			if genErr != nil {
				t.Fatalf("generate failed on validated input: %v", genErr)
			}
			if ok != (check == input[len(input)-1]) {
				t.Error("validate disagrees with generate")
			}
		}
	})
}
