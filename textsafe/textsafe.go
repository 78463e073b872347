// Package textsafe transcodes compressed payloads to and from base64 text.
//
// Two alphabets are supported:
//
//   - format.AlphabetStandard: RFC 4648 §4, "+/" with "=" padding.
//   - format.AlphabetURLSafe: RFC 4648 §5, "-_" without padding.
//
// Decoding is strict in both alphabets. Line breaks, whitespace and
// non-zero trailing bits are rejected.
//
// The same alphabet must be used on both sides. Decoding with the other
// alphabet fails whenever the text contains a character or padding that
// belongs to only one of them. Text made only of the characters the two
// alphabets share ("A-Za-z0-9", with a length that is a multiple of four)
// decodes to identical bytes under both, so a mismatch never yields
// different bytes.
package textsafe

import (
	"encoding/base64"
	"fmt"

	"github.com/arloliu/wirepack/errs"
	"github.com/arloliu/wirepack/format"
)

const (
	sharedChars   = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	standardExtra = "+/"
	urlSafeExtra  = "-_"
)

var (
	standardEncoding = base64.StdEncoding.Strict()
	urlSafeEncoding  = base64.RawURLEncoding.Strict()

	standardTable = buildTable(sharedChars + standardExtra)
	urlSafeTable  = buildTable(sharedChars + urlSafeExtra)
)

func buildTable(chars string) (table [256]bool) {
	for i := range len(chars) {
		table[chars[i]] = true
	}

	return table
}

func lookup(alphabet format.Alphabet) (*base64.Encoding, *[256]bool, error) {
	switch alphabet {
	case format.AlphabetStandard:
		return standardEncoding, &standardTable, nil
	case format.AlphabetURLSafe:
		return urlSafeEncoding, &urlSafeTable, nil
	default:
		return nil, nil, fmt.Errorf("%w: %d", errs.ErrUnknownAlphabet, uint8(alphabet))
	}
}

// Encode returns the base64 text of data in the given alphabet.
// Empty input encodes to the empty string.
func Encode(data []byte, alphabet format.Alphabet) (string, error) {
	enc, _, err := lookup(alphabet)
	if err != nil {
		return "", err
	}

	return enc.EncodeToString(data), nil
}

// EncodedLen returns the length of the text Encode produces for n bytes.
func EncodedLen(n int, alphabet format.Alphabet) (int, error) {
	enc, _, err := lookup(alphabet)
	if err != nil {
		return 0, err
	}

	return enc.EncodedLen(n), nil
}

// Decode returns the bytes represented by text in the given alphabet.
//
// A byte outside the alphabet yields errs.ErrInvalidCharacter. A "=" in
// URL-safe text, a wrong length, misplaced or missing padding and
// non-canonical trailing bits yield errs.ErrInvalidPadding.
func Decode(text string, alphabet format.Alphabet) ([]byte, error) {
	enc, table, err := lookup(alphabet)
	if err != nil {
		return nil, err
	}

	if text == "" {
		return []byte{}, nil
	}

	for i := range len(text) {
		c := text[i]
		if table[c] {
			continue
		}

		if c == '=' {
			if alphabet == format.AlphabetURLSafe {
				return nil, fmt.Errorf("%w: '=' at offset %d in unpadded %s text", errs.ErrInvalidPadding, i, alphabet)
			}

			continue
		}

		return nil, fmt.Errorf("%w: %q at offset %d is not in the %s alphabet", errs.ErrInvalidCharacter, c, i, alphabet)
	}

	// Every byte is in the alphabet, so any remaining failure concerns
	// length, padding placement or trailing bits.
	out, err := enc.DecodeString(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %s text: %w", errs.ErrInvalidPadding, alphabet, err)
	}

	return out, nil
}
