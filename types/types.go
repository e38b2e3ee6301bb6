// Package types defines the wire-level data types of the chain API.
//
// Every shape exists in two serialization forms: tagged JSON (the
// node's HTTP API) via `json` struct tags and custom marshallers, and
// compact binary via cramberry struct tags. Transport concerns live in
// the transport packages.
package types

import (
	"bytes"
	"fmt"
)

// AccountName identifies an on-chain account (e.g. "berry.token").
type AccountName string

// Checksum256 is a 32-byte hash, rendered as 64 lowercase hex digits
// in JSON. Block ids, chain ids and code hashes are all Checksum256.
type Checksum256 [32]byte

// String returns the lowercase hex form.
func (c Checksum256) String() string {
	return EncodeHex(c[:])
}

// IsZero reports whether the checksum is all zeroes.
func (c Checksum256) IsZero() bool {
	return c == Checksum256{}
}

// Checksum256FromString parses 64 hex digits into a Checksum256.
func Checksum256FromString(s string) (Checksum256, error) {
	var c Checksum256
	b, err := DecodeHex(s)
	if err != nil {
		return c, err
	}
	if len(b) != len(c) {
		return c, fmt.Errorf("checksum256 must be %d bytes, got %d", len(c), len(b))
	}
	copy(c[:], b)
	return c, nil
}

func (c Checksum256) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.String() + `"`), nil
}

func (c *Checksum256) UnmarshalJSON(data []byte) error {
	if !bytes.HasPrefix(data, []byte(`"`)) || !bytes.HasSuffix(data, []byte(`"`)) {
		return fmt.Errorf("checksum256 must be a JSON string, got %s", data)
	}
	v, err := Checksum256FromString(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*c = v
	return nil
}
