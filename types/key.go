package types

import (
	"bytes"
	"fmt"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ripemd160"
)

// publicKeyPrefix precedes every rendered public key.
const publicKeyPrefix = "BB"

// PublicKey is a 33-byte compressed public key. The string form is the
// prefix followed by base58(key || ripemd160(key)[:4]). Key material
// is opaque to this binding — signing is the caller's concern.
type PublicKey [33]byte

// ParsePublicKey parses the node's string form, verifying the
// checksum.
func ParsePublicKey(s string) (PublicKey, error) {
	var k PublicKey
	if len(s) <= len(publicKeyPrefix) || s[:len(publicKeyPrefix)] != publicKeyPrefix {
		return k, fmt.Errorf("public key %q must start with %q", s, publicKeyPrefix)
	}
	raw, err := base58.Decode(s[len(publicKeyPrefix):])
	if err != nil {
		return k, fmt.Errorf("public key %q: %v", s, err)
	}
	if len(raw) != len(k)+4 {
		return k, fmt.Errorf("public key %q decodes to %d bytes, want %d", s, len(raw), len(k)+4)
	}
	if got, want := keyChecksum(raw[:len(k)]), raw[len(k):]; !bytes.Equal(got, want) {
		return k, fmt.Errorf("public key %q checksum mismatch", s)
	}
	copy(k[:], raw[:len(k)])
	return k, nil
}

func (k PublicKey) String() string {
	raw := make([]byte, 0, len(k)+4)
	raw = append(raw, k[:]...)
	raw = append(raw, keyChecksum(k[:])...)
	return publicKeyPrefix + base58.Encode(raw)
}

func (k PublicKey) MarshalJSON() ([]byte, error) {
	return []byte(`"` + k.String() + `"`), nil
}

func (k *PublicKey) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("public key must be a JSON string, got %s", data)
	}
	parsed, err := ParsePublicKey(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

func keyChecksum(key []byte) []byte {
	h := ripemd160.New()
	h.Write(key)
	return h.Sum(nil)[:4]
}
