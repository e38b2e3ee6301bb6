package types

import (
	"bytes"
	"encoding/hex"
	"fmt"
)

// HexBytes is a byte sequence that travels as a hex string in JSON
// (lowercase, even length) and as raw bytes in the binary form.
// Packed transactions, WASM blobs and table rows all use it.
type HexBytes []byte

// DecodeHex converts a string of hex digits to bytes. It fails with a
// FormatError if the length is odd or any character falls outside
// [0-9a-fA-F]; it never silently truncates.
func DecodeHex(s string) ([]byte, error) {
	if len(s)%2 != 0 {
		return nil, &FormatError{Pos: -1, Msg: fmt.Sprintf("odd length %d", len(s))}
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return nil, &FormatError{Pos: i, Msg: fmt.Sprintf("invalid digit %q", c)}
		}
	}
	if len(s) == 0 {
		return []byte{}, nil
	}
	return hex.DecodeString(s)
}

// EncodeHex converts bytes to their lowercase hex form. Always
// succeeds; every output round-trips through DecodeHex.
func EncodeHex(b []byte) string {
	return hex.EncodeToString(b)
}

// String returns the lowercase hex form.
func (h HexBytes) String() string { return EncodeHex(h) }

func (h HexBytes) MarshalJSON() ([]byte, error) {
	return []byte(`"` + EncodeHex(h) + `"`), nil
}

func (h *HexBytes) UnmarshalJSON(data []byte) error {
	if !bytes.HasPrefix(data, []byte(`"`)) || !bytes.HasSuffix(data, []byte(`"`)) {
		return fmt.Errorf("hex bytes must be a JSON string, got %s", data)
	}
	b, err := DecodeHex(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*h = b
	return nil
}
