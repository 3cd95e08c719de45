package clientip

import (
	"encoding/hex"
	"errors"

	"golang.org/x/crypto/blake2b"
)

var ErrInvalidHashKey = errors.New("clientip: hash key must be between 16 and 64 bytes")

// Hasher produces stable keyed digests of client addresses.
type Hasher struct {
	key []byte
}

func NewHasher(key []byte) (*Hasher, error) {
	if len(key) < 16 || len(key) > blake2b.Size {
		return nil, ErrInvalidHashKey
	}
	return &Hasher{key: append([]byte(nil), key...)}, nil
}

// Hash returns a hex BLAKE2b-256 MAC of ip. An empty ip hashes to "".
func (h *Hasher) Hash(ip string) string {
	if ip == "" {
		return ""
	}
	mac, err := blake2b.New256(h.key)
	if err != nil {
		// key length is checked in NewHasher
		panic(err)
	}
	mac.Write([]byte(ip))
	return hex.EncodeToString(mac.Sum(nil))
}
